package model

import "encoding/json"

// Config is a namespaced configuration identity. The triple
// (tenant_id, namespace, config_code) is unique. Content lives in the
// attached versions; exactly one version is ACTIVE once any exists.
type Config struct {
	ID          string `json:"id"`
	ConfigSetID string `json:"config_set_id,omitempty"`
	TenantID    string `json:"tenant_id"`
	Namespace   string `json:"namespace"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Environment string `json:"environment,omitempty"`
	Description string `json:"description,omitempty"`
	// Status is a free-form lifecycle tag; resolution only considers "ACTIVE".
	Status string `json:"status"`
	AuditDetails

	// Versions is populated by searches and version listings, not stored on
	// the config row itself.
	Versions []*ConfigVersion `json:"versions,omitempty"`
}

// ConfigVersion is an immutable content snapshot of a config. Versions are
// append-only: they are deactivated, never deleted. The version label is
// caller-supplied, not auto-incremented.
type ConfigVersion struct {
	ID        string          `json:"id"`
	ConfigID  string          `json:"config_id"`
	Version   string          `json:"version"`
	Content   json.RawMessage `json:"content,omitempty"`
	SchemaRef string          `json:"schema_ref,omitempty"`
	Status    Status          `json:"status"`
	AuditDetails
}
