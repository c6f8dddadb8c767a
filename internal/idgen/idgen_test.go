package idgen

import (
	"strings"
	"testing"
)

func TestGeneratePrefixAndLength(t *testing.T) {
	for _, prefix := range []string{PrefixConfigSet, PrefixConfig, PrefixVersion, PrefixEntry, PrefixActivation} {
		id, err := Generate(prefix)
		if err != nil {
			t.Fatalf("Generate(%q): %v", prefix, err)
		}
		if !strings.HasPrefix(id, prefix) {
			t.Errorf("id %q missing prefix %q", id, prefix)
		}
		if len(id) != len(prefix)+Length {
			t.Errorf("id %q has length %d, want %d", id, len(id), len(prefix)+Length)
		}
		for _, r := range id[len(prefix):] {
			if !strings.ContainsRune(Alphabet, r) {
				t.Errorf("id %q contains character %q outside the alphabet", id, r)
			}
		}
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id, err := Generate(PrefixConfig)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d generations: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}
