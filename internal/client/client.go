// Package client provides a transport-agnostic interface for the config
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/service"
)

// ConfigClient is the interface CLI commands use to communicate with the
// config server.
type ConfigClient interface {
	// Config sets
	CreateConfigSet(ctx context.Context, cs *model.ConfigSet) (*model.ConfigSet, error)
	UpdateConfigSet(ctx context.Context, cs *model.ConfigSet) (*model.ConfigSet, error)
	SearchConfigSets(ctx context.Context, criteria model.ConfigSetCriteria) (*ConfigSetSearchResponse, error)
	ActivateConfigSet(ctx context.Context, setID, tenantID string) (*model.ConfigSetActivation, error)

	// Configs and versions
	CreateConfig(ctx context.Context, c *model.Config) (*model.Config, error)
	UpdateConfig(ctx context.Context, c *model.Config) (*model.Config, error)
	SearchConfigs(ctx context.Context, criteria model.ConfigCriteria) (*ConfigSearchResponse, error)
	GetVersions(ctx context.Context, configID string) ([]*model.ConfigVersion, error)

	// Entries
	CreateEntry(ctx context.Context, e *model.Entry) (*model.Entry, error)
	UpdateEntry(ctx context.Context, patch *model.EntryPatch) (*model.Entry, error)
	SearchEntries(ctx context.Context, criteria model.EntryCriteria) (*EntrySearchResponse, error)

	// Resolution
	ResolveConfig(ctx context.Context, req service.ResolveRequest) (*service.ResolveResponse, error)
	ResolveEntry(ctx context.Context, configCode, module, tenantID, locale string) (*service.ResolvedEntry, error)

	// Templates
	PreviewTemplate(ctx context.Context, req service.TemplatePreviewRequest) (*service.TemplatePreviewResponse, error)

	// Schema cache
	EvictSchema(ctx context.Context, ref string) error
	EvictAllSchemas(ctx context.Context) error

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ConfigSetSearchResponse is the GET /v1/configsets response body.
type ConfigSetSearchResponse struct {
	ConfigSets []*model.ConfigSet `json:"config_sets"`
	Pagination model.Pagination   `json:"pagination"`
}

// ConfigSearchResponse is the GET /v1/configs response body.
type ConfigSearchResponse struct {
	Configs    []*model.Config  `json:"configs"`
	Pagination model.Pagination `json:"pagination"`
}

// EntrySearchResponse is the GET /v1/entries response body.
type EntrySearchResponse struct {
	Entries    []*model.Entry   `json:"entries"`
	Pagination model.Pagination `json:"pagination"`
}
