package model

import "time"

// Status is the lifecycle state shared by config sets and config versions.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

// ConfigSet is a named, versioned bundle of configuration scoped to one
// tenant. At most one set per tenant is ACTIVE; the transition happens only
// through activation, which atomically deactivates the previous set.
type ConfigSet struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	AuditDetails
}

// ConfigSetActivation is the immutable audit record of one activation
// transition. Rows are append-only and never mutated.
type ConfigSetActivation struct {
	ID                  string    `json:"id"`
	ConfigSetID         string    `json:"config_set_id"`
	TenantID            string    `json:"tenant_id"`
	ActivatedBy         string    `json:"activated_by,omitempty"`
	ActivatedAt         time.Time `json:"activated_at"`
	PreviousActiveSetID string    `json:"previous_active_set_id,omitempty"`
}
