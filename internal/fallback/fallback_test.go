package fallback

import (
	"reflect"
	"strings"
	"testing"
)

func TestTenantChain(t *testing.T) {
	for _, tc := range []struct {
		tenant string
		want   []string
	}{
		{"pb.a.b", []string{"pb.a.b", "pb.a", "pb", "*"}},
		{"pb.amritsar", []string{"pb.amritsar", "pb", "*"}},
		{"pb", []string{"pb", "*"}},
		{"", []string{"*"}},
	} {
		if got := TenantChain(tc.tenant); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("TenantChain(%q) = %v, want %v", tc.tenant, got, tc.want)
		}
	}
}

func TestTenantAncestryStopsAtRoot(t *testing.T) {
	got := TenantAncestry("state.city.ward")
	want := []string{"state.city.ward", "state.city", "state"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TenantAncestry = %v, want %v", got, want)
	}
	if len(TenantAncestry("")) != 0 {
		t.Error("empty tenant should yield an empty ancestry")
	}
}

// Every chain ends in the wildcard and strictly decreases in specificity
// (each candidate is a proper dotted ancestor of the previous one).
func TestTenantChainStrictlyDecreases(t *testing.T) {
	for _, tenant := range []string{"a", "a.b", "a.b.c", "pb.amritsar.ward3.block1"} {
		chain := TenantChain(tenant)
		if chain[len(chain)-1] != Wildcard {
			t.Fatalf("chain for %q does not end in wildcard: %v", tenant, chain)
		}
		for i := 1; i < len(chain)-1; i++ {
			prev, cur := chain[i-1], chain[i]
			if !strings.HasPrefix(prev, cur+".") {
				t.Errorf("chain for %q not strictly decreasing at %d: %v", tenant, i, chain)
			}
		}
	}
}

func TestLocaleChain(t *testing.T) {
	if got := LocaleChain("hi_IN"); !reflect.DeepEqual(got, []string{"hi_IN", "*"}) {
		t.Errorf("LocaleChain(hi_IN) = %v", got)
	}
	if got := LocaleChain(""); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("LocaleChain(\"\") = %v", got)
	}
}
