package store

import (
	"context"
	"time"

	"github.com/egovernments/digit-config-service/internal/model"
)

// Store defines the persistence contract for configuration records.
// Search operations return the matching rows plus the unpaginated total
// count. Single-row lookups return sql.ErrNoRows when nothing matches;
// domain-level mapping happens in the service layer.
type Store interface {
	// Config sets
	CreateConfigSet(ctx context.Context, cs *model.ConfigSet) error
	UpdateConfigSet(ctx context.Context, cs *model.ConfigSet) error
	SearchConfigSets(ctx context.Context, criteria model.ConfigSetCriteria) ([]*model.ConfigSet, int, error)
	// FindActiveSetID returns the id of the tenant's ACTIVE set, or "" when
	// no set is active.
	FindActiveSetID(ctx context.Context, tenantID string) (string, error)
	ActivateConfigSet(ctx context.Context, setID, userID string, now time.Time) error
	// DeactivateOtherSets marks every ACTIVE set for the tenant INACTIVE,
	// except the given set.
	DeactivateOtherSets(ctx context.Context, setID, tenantID, userID string, now time.Time) error
	RecordActivation(ctx context.Context, a *model.ConfigSetActivation) error

	// Configs and versions
	CreateConfig(ctx context.Context, c *model.Config) error
	UpdateConfig(ctx context.Context, c *model.Config) error
	SearchConfigs(ctx context.Context, criteria model.ConfigCriteria) ([]*model.Config, int, error)
	CreateVersion(ctx context.Context, v *model.ConfigVersion) error
	// DeactivateVersions marks every ACTIVE version of the config INACTIVE.
	DeactivateVersions(ctx context.Context, configID, userID string, now time.Time) error
	GetVersionsByConfigID(ctx context.Context, configID string) ([]*model.ConfigVersion, error)
	GetActiveVersion(ctx context.Context, configID string) (*model.ConfigVersion, error)

	// Entries
	SaveEntry(ctx context.Context, e *model.Entry) error
	// UpdateEntry persists the entry guarded by the expected revision; it
	// returns sql.ErrNoRows when the stored revision no longer matches.
	UpdateEntry(ctx context.Context, e *model.Entry, expectedRevision int) error
	SearchEntries(ctx context.Context, criteria model.EntryCriteria) ([]*model.Entry, int, error)
	// ResolveEntry returns the single best enabled entry for the given
	// tenant and locale chains, ordered by chain position.
	ResolveEntry(ctx context.Context, code, module string, tenantChain, localeChain []string) (*model.Entry, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
