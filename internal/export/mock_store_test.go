package export

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/store"
)

// mockStore backs export tests with in-memory data. Only the read paths the
// exporter uses have real behavior.
type mockStore struct {
	sets     map[string]*model.ConfigSet
	configs  map[string]*model.Config
	versions map[string][]*model.ConfigVersion
	entries  map[string]*model.Entry
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		sets:     make(map[string]*model.ConfigSet),
		configs:  make(map[string]*model.Config),
		versions: make(map[string][]*model.ConfigVersion),
		entries:  make(map[string]*model.Entry),
	}
}

func (m *mockStore) SearchConfigSets(_ context.Context, _ model.ConfigSetCriteria) ([]*model.ConfigSet, int, error) {
	var result []*model.ConfigSet
	for _, cs := range m.sets {
		result = append(result, cs)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) SearchConfigs(_ context.Context, _ model.ConfigCriteria) ([]*model.Config, int, error) {
	var result []*model.Config
	for _, c := range m.configs {
		clone := *c
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) GetVersionsByConfigID(_ context.Context, configID string) ([]*model.ConfigVersion, error) {
	return m.versions[configID], nil
}

func (m *mockStore) SearchEntries(_ context.Context, _ model.EntryCriteria) ([]*model.Entry, int, error) {
	var result []*model.Entry
	for _, e := range m.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) CreateConfigSet(context.Context, *model.ConfigSet) error { return nil }
func (m *mockStore) UpdateConfigSet(context.Context, *model.ConfigSet) error { return nil }
func (m *mockStore) FindActiveSetID(context.Context, string) (string, error) { return "", nil }
func (m *mockStore) ActivateConfigSet(context.Context, string, string, time.Time) error {
	return nil
}
func (m *mockStore) DeactivateOtherSets(context.Context, string, string, string, time.Time) error {
	return nil
}
func (m *mockStore) RecordActivation(context.Context, *model.ConfigSetActivation) error { return nil }
func (m *mockStore) CreateConfig(context.Context, *model.Config) error                  { return nil }
func (m *mockStore) UpdateConfig(context.Context, *model.Config) error                  { return nil }
func (m *mockStore) CreateVersion(context.Context, *model.ConfigVersion) error          { return nil }
func (m *mockStore) DeactivateVersions(context.Context, string, string, time.Time) error {
	return nil
}
func (m *mockStore) GetActiveVersion(context.Context, string) (*model.ConfigVersion, error) {
	return nil, sql.ErrNoRows
}
func (m *mockStore) SaveEntry(context.Context, *model.Entry) error              { return nil }
func (m *mockStore) UpdateEntry(context.Context, *model.Entry, int) error       { return nil }
func (m *mockStore) ResolveEntry(context.Context, string, string, []string, []string) (*model.Entry, error) {
	return nil, sql.ErrNoRows
}
func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}
func (m *mockStore) Close() error { return nil }
