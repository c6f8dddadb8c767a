package model

// ConfigSetCriteria filters config set searches. Zero-valued fields are
// ignored.
type ConfigSetCriteria struct {
	TenantID string `json:"tenant_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Status   string `json:"status,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// ConfigCriteria filters config searches. Zero-valued fields are ignored.
type ConfigCriteria struct {
	TenantID    string `json:"tenant_id,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	Name        string `json:"name,omitempty"`
	Code        string `json:"code,omitempty"`
	Environment string `json:"environment,omitempty"`
	Status      string `json:"status,omitempty"`
	// Version matches configs that have a version with this label.
	Version string `json:"version,omitempty"`
	// IncludeContent attaches each config's versions to the search result.
	// Defaults to true at the service layer.
	IncludeContent *bool `json:"include_content,omitempty"`
	Limit          int   `json:"limit,omitempty"`
	Offset         int   `json:"offset,omitempty"`
}

// EntryCriteria filters entry searches. Zero-valued fields are ignored.
type EntryCriteria struct {
	IDs       []string `json:"ids,omitempty"`
	Code      string   `json:"code,omitempty"`
	Module    string   `json:"module,omitempty"`
	EventType string   `json:"event_type,omitempty"`
	Channel   string   `json:"channel,omitempty"`
	TenantID  string   `json:"tenant_id,omitempty"`
	Locale    string   `json:"locale,omitempty"`
	Enabled   *bool    `json:"enabled,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// Pagination reports the window and total row count of a search.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
