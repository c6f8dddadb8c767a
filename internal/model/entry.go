package model

import "encoding/json"

// Entry is a flat key/value configuration record identified by the
// (code, module, event_type, channel, tenant_id, locale) dimensions. The
// revision counter implements optimistic concurrency: it starts at 1 and is
// incremented by exactly 1 on every successful update.
type Entry struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Module    string          `json:"module,omitempty"`
	EventType string          `json:"event_type,omitempty"`
	Channel   string          `json:"channel,omitempty"`
	TenantID  string          `json:"tenant_id"`
	Locale    string          `json:"locale,omitempty"`
	Enabled   *bool           `json:"enabled,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Revision  int             `json:"revision"`
	AuditDetails
}

// IsEnabled treats a nil Enabled flag as true, matching the create default.
func (e *Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// EntryPatch carries a partial update for an entry. Nil fields retain their
// stored values. A non-nil Revision must match the stored revision or the
// update is rejected with REVISION_MISMATCH.
type EntryPatch struct {
	ID        string          `json:"id"`
	EventType *string         `json:"event_type,omitempty"`
	Channel   *string         `json:"channel,omitempty"`
	Enabled   *bool           `json:"enabled,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Revision  *int            `json:"revision,omitempty"`
}
