// Package schema validates config version content against JSON Schema
// definitions served by an MDMS v2 registry. Validation is fail-open: a
// missing or unreachable schema skips validation rather than blocking
// writes.
package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSchemaNotFound is returned by the registry when the MDMS response
// carries no definition for the requested ref.
var ErrSchemaNotFound = errors.New("schema not found")

// Definition is the subset of JSON Schema the validator enforces: required
// fields plus per-property type and string length constraints.
type Definition struct {
	Required   []string               `json:"required"`
	Properties map[string]FieldSchema `json:"properties"`
}

// FieldSchema constrains a single property.
type FieldSchema struct {
	Type      string `json:"type"`
	MinLength int    `json:"minLength"`
	MaxLength int    `json:"maxLength"`
}

// Registry fetches schema definitions from an MDMS v2 schema search
// endpoint. An empty host disables the registry; Fetch then reports
// ErrSchemaNotFound for every ref.
type Registry struct {
	host       string
	searchPath string
	client     *http.Client
}

// NewRegistry creates a registry client for the given MDMS host. searchPath
// defaults to /mdms-v2/schema/v1/_search when empty.
func NewRegistry(host, searchPath string) *Registry {
	if searchPath == "" {
		searchPath = "/mdms-v2/schema/v1/_search"
	}
	return &Registry{
		host:       host,
		searchPath: searchPath,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type schemaSearchRequest struct {
	RequestInfo       map[string]string `json:"RequestInfo"`
	SchemaDefCriteria schemaDefCriteria `json:"SchemaDefCriteria"`
}

type schemaDefCriteria struct {
	TenantID string   `json:"tenantId"`
	Codes    []string `json:"codes"`
}

type schemaSearchResponse struct {
	SchemaDefinitions []struct {
		Definition json.RawMessage `json:"definition"`
	} `json:"SchemaDefinitions"`
}

// Fetch retrieves the definition for the given schema ref. It returns
// ErrSchemaNotFound when the registry is not configured or the response
// carries no matching definition.
func (r *Registry) Fetch(ctx context.Context, tenantID, ref string) (*Definition, error) {
	if r.host == "" {
		return nil, ErrSchemaNotFound
	}

	body, err := json.Marshal(schemaSearchRequest{
		RequestInfo:       map[string]string{"apiId": "config-service"},
		SchemaDefCriteria: schemaDefCriteria{TenantID: tenantID, Codes: []string{ref}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal schema search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.host+r.searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create schema search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schema search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schema search: unexpected status %d", resp.StatusCode)
	}

	var sr schemaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode schema search response: %w", err)
	}
	if len(sr.SchemaDefinitions) == 0 || len(sr.SchemaDefinitions[0].Definition) == 0 {
		return nil, ErrSchemaNotFound
	}

	var def Definition
	if err := json.Unmarshal(sr.SchemaDefinitions[0].Definition, &def); err != nil {
		return nil, fmt.Errorf("decode schema definition: %w", err)
	}
	return &def, nil
}
