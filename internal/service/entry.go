package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egovernments/digit-config-service/internal/events"
	"github.com/egovernments/digit-config-service/internal/fallback"
	"github.com/egovernments/digit-config-service/internal/idgen"
	"github.com/egovernments/digit-config-service/internal/model"
)

// ResolvedEntry is the outcome of an entry resolution: the winning entry
// plus where in the fallback chains it was found.
type ResolvedEntry struct {
	Entry         *model.Entry `json:"entry"`
	MatchedTenant string       `json:"matched_tenant"`
	MatchedLocale string       `json:"matched_locale,omitempty"`
}

// CreateEntry persists a new flat config entry. Revision starts at 1 and
// enabled defaults to true.
func (s *Service) CreateEntry(ctx context.Context, e *model.Entry, userID string) (*model.Entry, error) {
	if e == nil {
		return nil, model.NewError(model.CodeInvalidRequest, "entry object is required")
	}

	fieldErrors := make(map[string]string)
	if e.Code == "" {
		fieldErrors["MISSING_CONFIG_CODE"] = "Config code is required"
	}
	if e.TenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if len(e.Value) == 0 {
		fieldErrors["MISSING_VALUE"] = "Value is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}

	if err := s.schemas.Validate(ctx, e.TenantID, e.Code, e.Value); err != nil {
		return nil, err
	}

	id, err := idgen.Generate(idgen.PrefixEntry)
	if err != nil {
		return nil, err
	}
	e.ID = id
	e.Revision = 1
	if e.Enabled == nil {
		enabled := true
		e.Enabled = &enabled
	}
	e.AuditDetails = model.NewAudit(userOrSystem(userID), s.now())

	if err := s.store.SaveEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}

	s.logger.Info("entry created", "id", e.ID, "code", e.Code, "tenant", e.TenantID)
	s.publish(ctx, events.TopicEntryCreated, events.EntryCreated{Entry: e})
	return e, nil
}

// UpdateEntry applies a partial update to an entry under optimistic
// concurrency. A caller-supplied revision that disagrees with the stored one
// fails with REVISION_MISMATCH before any write; the store-level revision
// guard catches racers that slip between the read and the write.
func (s *Service) UpdateEntry(ctx context.Context, patch *model.EntryPatch, userID string) (*model.Entry, error) {
	if patch == nil {
		return nil, model.NewError(model.CodeInvalidRequest, "entry object is required")
	}
	if patch.ID == "" {
		return nil, model.NewFieldErrors(map[string]string{
			"MISSING_ID": "id is required for update",
		})
	}

	existing, _, err := s.store.SearchEntries(ctx, model.EntryCriteria{
		IDs: []string{patch.ID}, Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("load entry: %w", err)
	}
	if len(existing) == 0 {
		return nil, model.NewError(model.CodeEntryNotFound,
			fmt.Sprintf("No config entry found with id=%s", patch.ID))
	}
	current := existing[0]

	if patch.Revision != nil && *patch.Revision != current.Revision {
		return nil, model.NewError(model.CodeRevisionMismatch,
			fmt.Sprintf("Expected revision %d but current is %d", *patch.Revision, current.Revision))
	}

	expectedRevision := current.Revision

	// Merge: unset patch fields keep their stored values.
	if patch.EventType != nil {
		current.EventType = *patch.EventType
	}
	if patch.Channel != nil {
		current.Channel = *patch.Channel
	}
	if patch.Enabled != nil {
		enabled := *patch.Enabled
		current.Enabled = &enabled
	}
	if len(patch.Value) > 0 {
		if err := s.schemas.Validate(ctx, current.TenantID, current.Code, patch.Value); err != nil {
			return nil, err
		}
		current.Value = patch.Value
	}

	current.Revision = expectedRevision + 1
	current.Touch(userOrSystem(userID), s.now())

	if err := s.store.UpdateEntry(ctx, current, expectedRevision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewError(model.CodeRevisionMismatch,
				fmt.Sprintf("Entry %s was modified concurrently", current.ID))
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}

	s.logger.Info("entry updated", "id", current.ID, "revision", current.Revision)
	s.publish(ctx, events.TopicEntryUpdated, events.EntryUpdated{Entry: current})
	return current, nil
}

// SearchEntries lists entries matching the criteria with pagination.
func (s *Service) SearchEntries(ctx context.Context, criteria model.EntryCriteria) ([]*model.Entry, model.Pagination, error) {
	if criteria.Limit <= 0 {
		criteria.Limit = s.defaultLimit
	}
	if criteria.Offset < 0 {
		criteria.Offset = s.defaultOffset
	}

	entries, total, err := s.store.SearchEntries(ctx, criteria)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("search entries: %w", err)
	}
	return entries, model.Pagination{Total: total, Limit: criteria.Limit, Offset: criteria.Offset}, nil
}

// ResolveEntry finds the closest enabled entry for (code, module) walking
// the tenant chain (wildcard included) and locale chain most specific
// first. The returned metadata reports which chain links matched.
func (s *Service) ResolveEntry(ctx context.Context, code, module, tenantID, locale string) (*ResolvedEntry, error) {
	fieldErrors := make(map[string]string)
	if code == "" {
		fieldErrors["MISSING_CONFIG_CODE"] = "Config code is required"
	}
	if tenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}

	tenantChain := fallback.TenantChain(tenantID)
	localeChain := fallback.LocaleChain(locale)

	entry, err := s.store.ResolveEntry(ctx, code, module, tenantChain, localeChain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewError(model.CodeConfigNotResolved,
				fmt.Sprintf("No config entry found for configCode=%s tenantId=%s", code, tenantID))
		}
		return nil, fmt.Errorf("resolve entry: %w", err)
	}

	s.logger.Info("entry resolved",
		"code", code, "tenant", tenantID, "matched_tenant", entry.TenantID, "matched_locale", entry.Locale)
	return &ResolvedEntry{
		Entry:         entry,
		MatchedTenant: entry.TenantID,
		MatchedLocale: entry.Locale,
	}, nil
}
