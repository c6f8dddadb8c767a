package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/store"
)

// mockStore is an in-memory store for service tests. Resolution follows the
// same ranking the SQL implementation uses: tenant chain position first,
// then locale chain position, blank locale last.
type mockStore struct {
	sets        map[string]*model.ConfigSet
	configs     map[string]*model.Config
	versions    map[string][]*model.ConfigVersion
	entries     map[string]*model.Entry
	activations []*model.ConfigSetActivation
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

func (m *mockStore) CreateConfigSet(_ context.Context, cs *model.ConfigSet) error {
	clone := *cs
	m.sets[cs.ID] = &clone
	return nil
}

func (m *mockStore) UpdateConfigSet(_ context.Context, cs *model.ConfigSet) error {
	if _, ok := m.sets[cs.ID]; !ok {
		return sql.ErrNoRows
	}
	clone := *cs
	m.sets[cs.ID] = &clone
	return nil
}

func (m *mockStore) SearchConfigSets(_ context.Context, criteria model.ConfigSetCriteria) ([]*model.ConfigSet, int, error) {
	var result []*model.ConfigSet
	for _, cs := range m.sets {
		if criteria.TenantID != "" && cs.TenantID != criteria.TenantID {
			continue
		}
		if criteria.Code != "" && cs.Code != criteria.Code {
			continue
		}
		if criteria.Name != "" && cs.Name != criteria.Name {
			continue
		}
		if criteria.Status != "" && cs.Status.String() != criteria.Status {
			continue
		}
		result = append(result, cs)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) FindActiveSetID(_ context.Context, tenantID string) (string, error) {
	for _, cs := range m.sets {
		if cs.TenantID == tenantID && cs.Status == model.StatusActive {
			return cs.ID, nil
		}
	}
	return "", nil
}

func (m *mockStore) ActivateConfigSet(_ context.Context, setID, userID string, now time.Time) error {
	cs, ok := m.sets[setID]
	if !ok {
		return sql.ErrNoRows
	}
	cs.Status = model.StatusActive
	cs.Touch(userID, now)
	return nil
}

func (m *mockStore) DeactivateOtherSets(_ context.Context, setID, tenantID, userID string, now time.Time) error {
	for _, cs := range m.sets {
		if cs.TenantID == tenantID && cs.Status == model.StatusActive && cs.ID != setID {
			cs.Status = model.StatusInactive
			cs.Touch(userID, now)
		}
	}
	return nil
}

func (m *mockStore) RecordActivation(_ context.Context, a *model.ConfigSetActivation) error {
	clone := *a
	m.activations = append(m.activations, &clone)
	return nil
}

func (m *mockStore) CreateConfig(_ context.Context, c *model.Config) error {
	clone := *c
	clone.Versions = nil
	m.configs[c.ID] = &clone
	return nil
}

func (m *mockStore) UpdateConfig(_ context.Context, c *model.Config) error {
	if _, ok := m.configs[c.ID]; !ok {
		return sql.ErrNoRows
	}
	clone := *c
	clone.Versions = nil
	m.configs[c.ID] = &clone
	return nil
}

func (m *mockStore) SearchConfigs(_ context.Context, criteria model.ConfigCriteria) ([]*model.Config, int, error) {
	var result []*model.Config
	for _, c := range m.configs {
		if criteria.TenantID != "" && c.TenantID != criteria.TenantID {
			continue
		}
		if criteria.Namespace != "" && c.Namespace != criteria.Namespace {
			continue
		}
		if criteria.Name != "" && c.Name != criteria.Name {
			continue
		}
		if criteria.Code != "" && c.Code != criteria.Code {
			continue
		}
		if criteria.Environment != "" && c.Environment != criteria.Environment {
			continue
		}
		if criteria.Status != "" && c.Status != criteria.Status {
			continue
		}
		clone := *c
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) CreateVersion(_ context.Context, v *model.ConfigVersion) error {
	clone := *v
	m.versions[v.ConfigID] = append(m.versions[v.ConfigID], &clone)
	return nil
}

func (m *mockStore) DeactivateVersions(_ context.Context, configID, userID string, now time.Time) error {
	for _, v := range m.versions[configID] {
		if v.Status == model.StatusActive {
			v.Status = model.StatusInactive
			v.Touch(userID, now)
		}
	}
	return nil
}

func (m *mockStore) GetVersionsByConfigID(_ context.Context, configID string) ([]*model.ConfigVersion, error) {
	return m.versions[configID], nil
}

func (m *mockStore) GetActiveVersion(_ context.Context, configID string) (*model.ConfigVersion, error) {
	for _, v := range m.versions[configID] {
		if v.Status == model.StatusActive {
			return v, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) SaveEntry(_ context.Context, e *model.Entry) error {
	clone := *e
	m.entries[e.ID] = &clone
	return nil
}

func (m *mockStore) UpdateEntry(_ context.Context, e *model.Entry, expectedRevision int) error {
	current, ok := m.entries[e.ID]
	if !ok || current.Revision != expectedRevision {
		return sql.ErrNoRows
	}
	clone := *e
	m.entries[e.ID] = &clone
	return nil
}

func (m *mockStore) SearchEntries(_ context.Context, criteria model.EntryCriteria) ([]*model.Entry, int, error) {
	var result []*model.Entry
	for _, e := range m.entries {
		if len(criteria.IDs) > 0 && !contains(criteria.IDs, e.ID) {
			continue
		}
		if criteria.Code != "" && e.Code != criteria.Code {
			continue
		}
		if criteria.Module != "" && e.Module != criteria.Module {
			continue
		}
		if criteria.EventType != "" && e.EventType != criteria.EventType {
			continue
		}
		if criteria.Channel != "" && e.Channel != criteria.Channel {
			continue
		}
		if criteria.TenantID != "" && e.TenantID != criteria.TenantID {
			continue
		}
		if criteria.Locale != "" && e.Locale != criteria.Locale {
			continue
		}
		if criteria.Enabled != nil && e.IsEnabled() != *criteria.Enabled {
			continue
		}
		clone := *e
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) ResolveEntry(_ context.Context, code, module string, tenantChain, localeChain []string) (*model.Entry, error) {
	var best *model.Entry
	bestTenant, bestLocale := len(tenantChain), len(localeChain)+1
	for _, e := range m.entries {
		if !e.IsEnabled() || e.Code != code {
			continue
		}
		if module != "" && e.Module != module {
			continue
		}
		ti := indexOf(tenantChain, e.TenantID)
		if ti < 0 {
			continue
		}
		li := len(localeChain)
		if e.Locale != "" {
			li = indexOf(localeChain, e.Locale)
			if li < 0 {
				continue
			}
		}
		if ti < bestTenant || (ti == bestTenant && li < bestLocale) {
			best, bestTenant, bestLocale = e, ti, li
		}
	}
	if best == nil {
		return nil, sql.ErrNoRows
	}
	return best, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

func contains(items []string, s string) bool {
	return indexOf(items, s) >= 0
}

func indexOf(items []string, s string) int {
	for i, v := range items {
		if v == s {
			return i
		}
	}
	return -1
}

// fakeValidator is a ContentValidator with scripted failures per schema ref.
type fakeValidator struct {
	errs       map[string]error
	evicted    []string
	evictedAll bool
}

func (f *fakeValidator) Validate(_ context.Context, _, ref string, _ json.RawMessage) error {
	if f.errs == nil {
		return nil
	}
	return f.errs[ref]
}

func (f *fakeValidator) Evict(ref string) { f.evicted = append(f.evicted, ref) }

func (f *fakeValidator) EvictAll() { f.evictedAll = true }
