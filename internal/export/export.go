package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version        string    `json:"version"`
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
	ConfigSetCount int       `json:"config_set_count"`
	ConfigCount    int       `json:"config_count"`
	EntryCount     int       `json:"entry_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all config sets, configs (with their full version
// history), and entries from the store as JSONL to w, sorted by ID for
// stable diffs between snapshots.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	sets, _, err := s.SearchConfigSets(ctx, model.ConfigSetCriteria{})
	if err != nil {
		return fmt.Errorf("list config sets: %w", err)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })

	configs, _, err := s.SearchConfigs(ctx, model.ConfigCriteria{})
	if err != nil {
		return fmt.Errorf("list configs: %w", err)
	}
	for _, c := range configs {
		versions, err := s.GetVersionsByConfigID(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("get versions for %s: %w", c.ID, err)
		}
		c.Versions = versions
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })

	entries, _, err := s.SearchEntries(ctx, model.EntryCriteria{})
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:        "1",
		Type:           "header",
		Timestamp:      time.Now().UTC(),
		ConfigSetCount: len(sets),
		ConfigCount:    len(configs),
		EntryCount:     len(entries),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, cs := range sets {
		if err := enc.Encode(record{Type: "config_set", Data: cs}); err != nil {
			return fmt.Errorf("encode config set %s: %w", cs.ID, err)
		}
	}

	for _, c := range configs {
		if err := enc.Encode(record{Type: "config", Data: c}); err != nil {
			return fmt.Errorf("encode config %s: %w", c.ID, err)
		}
	}

	for _, e := range entries {
		if err := enc.Encode(record{Type: "entry", Data: e}); err != nil {
			return fmt.Errorf("encode entry %s: %w", e.ID, err)
		}
	}

	return nil
}
