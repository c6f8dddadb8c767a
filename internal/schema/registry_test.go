package schema

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegistryFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/mdms-v2/schema/v1/_search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req schemaSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SchemaDefCriteria.TenantID != "pb" ||
			len(req.SchemaDefCriteria.Codes) != 1 ||
			req.SchemaDefCriteria.Codes[0] != "billing.TaxHead" {
			t.Errorf("unexpected criteria %+v", req.SchemaDefCriteria)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"SchemaDefinitions":[{"definition":{
			"required":["name"],
			"properties":{"name":{"type":"string","maxLength":64}}
		}}]}`))
	}))
	defer srv.Close()

	r := NewRegistry(srv.URL, "")
	def, err := r.Fetch(context.Background(), "pb", "billing.TaxHead")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Required) != 1 || def.Required[0] != "name" {
		t.Fatalf("got required=%v", def.Required)
	}
	if fs := def.Properties["name"]; fs.Type != "string" || fs.MaxLength != 64 {
		t.Fatalf("got properties=%v", def.Properties)
	}
}

func TestRegistryFetch_NoDefinitions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SchemaDefinitions":[]}`))
	}))
	defer srv.Close()

	r := NewRegistry(srv.URL, "")
	_, err := r.Fetch(context.Background(), "pb", "missing.Schema")
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestRegistryFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRegistry(srv.URL, "")
	if _, err := r.Fetch(context.Background(), "pb", "billing.TaxHead"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRegistryFetch_Unconfigured(t *testing.T) {
	r := NewRegistry("", "")
	_, err := r.Fetch(context.Background(), "pb", "billing.TaxHead")
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}
