package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/service"
)

func TestCreateConfigSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/configsets" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-User-Id"); got != "alice" {
			t.Errorf("X-User-Id = %q", got)
		}
		var in model.ConfigSet
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode: %v", err)
		}
		in.ID = "set-abc123"
		in.Status = model.StatusInactive
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "alice")
	cs, err := c.CreateConfigSet(context.Background(), &model.ConfigSet{
		TenantID: "pb", Name: "Baseline", Code: "PB_BASE",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs.ID != "set-abc123" || cs.Status != model.StatusInactive {
		t.Errorf("response = %+v", cs)
	}
}

func TestSearchConfigs_QueryEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("tenant_id") != "pb" || q.Get("namespace") != "billing" {
			t.Errorf("query = %v", q)
		}
		if q.Get("include_content") != "false" || q.Get("limit") != "5" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(ConfigSearchResponse{
			Configs:    []*model.Config{{ID: "cfg-1"}},
			Pagination: model.Pagination{Total: 1, Limit: 5},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	noContent := false
	resp, err := c.SearchConfigs(context.Background(), model.ConfigCriteria{
		TenantID: "pb", Namespace: "billing", IncludeContent: &noContent, Limit: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Configs) != 1 || resp.Pagination.Total != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestResolveEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/resolve/entry" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["config_code"] != "sms.otp" || body["tenant_id"] != "hr.gurugram" {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(service.ResolvedEntry{
			Entry:         &model.Entry{ID: "ent-1", TenantID: "hr"},
			MatchedTenant: "hr",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	res, err := c.ResolveEntry(context.Background(), "sms.otp", "", "hr.gurugram", "hi_IN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MatchedTenant != "hr" {
		t.Errorf("MatchedTenant = %q", res.MatchedTenant)
	}
}

func TestAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", "")
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q", status)
	}
}

func TestDomainErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(model.DomainError{
			Code:    model.CodeRevisionMismatch,
			Message: "Expected revision 1 but current is 2",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	rev := 1
	_, err := c.UpdateEntry(context.Background(), &model.EntryPatch{ID: "ent-1", Revision: &rev})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Code != model.CodeRevisionMismatch {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestPlainErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid JSON body"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	_, err := c.CreateConfig(context.Background(), &model.Config{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "invalid JSON body" || apiErr.Code != "" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestEvictSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/schemas/cache/billing.TaxHead" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"evicted": "billing.TaxHead"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	if err := c.EvictSchema(context.Background(), "billing.TaxHead"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
