package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egovernments/digit-config-service/internal/events"
	"github.com/egovernments/digit-config-service/internal/idgen"
	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/store"
)

// CreateConfigSet persists a new config set. Sets are created INACTIVE
// unless the caller says otherwise; the ACTIVE transition happens only
// through ActivateConfigSet.
func (s *Service) CreateConfigSet(ctx context.Context, cs *model.ConfigSet, userID string) (*model.ConfigSet, error) {
	if cs == nil {
		return nil, model.NewError(model.CodeInvalidRequest, "config set object is required")
	}

	fieldErrors := make(map[string]string)
	if cs.TenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if cs.Name == "" {
		fieldErrors["MISSING_NAME"] = "Name is required"
	}
	if cs.Code == "" {
		fieldErrors["MISSING_CODE"] = "Code is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}

	existing, _, err := s.store.SearchConfigSets(ctx, model.ConfigSetCriteria{
		TenantID: cs.TenantID, Code: cs.Code,
	})
	if err != nil {
		return nil, fmt.Errorf("check duplicate config set: %w", err)
	}
	if len(existing) > 0 {
		return nil, model.NewError(model.CodeDuplicateConfigSet,
			fmt.Sprintf("Config set with code '%s' already exists for this tenant", cs.Code))
	}

	cs.ID, err = idgen.Generate(idgen.PrefixConfigSet)
	if err != nil {
		return nil, err
	}
	if cs.Status == "" {
		cs.Status = model.StatusInactive
	}
	if !cs.Status.IsValid() {
		return nil, model.NewError(model.CodeInvalidRequest,
			fmt.Sprintf("unknown status %q", cs.Status))
	}

	userID = userOrSystem(userID)
	cs.AuditDetails = model.NewAudit(userID, s.now())

	if err := s.store.CreateConfigSet(ctx, cs); err != nil {
		return nil, fmt.Errorf("create config set: %w", err)
	}

	s.logger.Info("config set created", "id", cs.ID, "tenant", cs.TenantID, "code", cs.Code)
	s.publish(ctx, events.TopicConfigSetCreated, events.ConfigSetCreated{ConfigSet: cs})
	return cs, nil
}

// UpdateConfigSet updates mutable config set fields (name, description,
// status). Code and tenant are fixed at creation.
func (s *Service) UpdateConfigSet(ctx context.Context, cs *model.ConfigSet, userID string) (*model.ConfigSet, error) {
	if cs == nil {
		return nil, model.NewError(model.CodeInvalidRequest, "config set object is required")
	}

	fieldErrors := make(map[string]string)
	if cs.ID == "" {
		fieldErrors["MISSING_ID"] = "Config set ID is required for update"
	}
	if cs.TenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}
	if cs.Status != "" && !cs.Status.IsValid() {
		return nil, model.NewError(model.CodeInvalidRequest,
			fmt.Sprintf("unknown status %q", cs.Status))
	}

	cs.Touch(userOrSystem(userID), s.now())

	if err := s.store.UpdateConfigSet(ctx, cs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewError(model.CodeConfigSetNotFound,
				fmt.Sprintf("Config set with id '%s' not found", cs.ID))
		}
		return nil, fmt.Errorf("update config set: %w", err)
	}

	s.logger.Info("config set updated", "id", cs.ID)
	s.publish(ctx, events.TopicConfigSetUpdated, events.ConfigSetUpdated{ConfigSet: cs})
	return cs, nil
}

// ActivateConfigSet makes the given set the single ACTIVE set for its
// tenant. Any previously active set is deactivated in the same transaction,
// so a concurrent reader never observes two active sets. Re-activating the
// already-active set is a recorded no-op.
func (s *Service) ActivateConfigSet(ctx context.Context, setID, tenantID, userID string) (*model.ConfigSetActivation, error) {
	fieldErrors := make(map[string]string)
	if tenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if setID == "" {
		fieldErrors["MISSING_CONFIG_SET_ID"] = "Config set ID is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}

	sets, _, err := s.store.SearchConfigSets(ctx, model.ConfigSetCriteria{TenantID: tenantID})
	if err != nil {
		return nil, fmt.Errorf("search config sets: %w", err)
	}
	var target *model.ConfigSet
	for _, cs := range sets {
		if cs.ID == setID {
			target = cs
			break
		}
	}
	if target == nil {
		return nil, model.NewError(model.CodeConfigSetNotFound,
			fmt.Sprintf("Config set with id '%s' not found", setID))
	}

	userID = userOrSystem(userID)
	now := s.now()

	previousActiveSetID, err := s.store.FindActiveSetID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("find active config set: %w", err)
	}

	activationID, err := idgen.Generate(idgen.PrefixActivation)
	if err != nil {
		return nil, err
	}
	activation := &model.ConfigSetActivation{
		ID:                  activationID,
		ConfigSetID:         setID,
		TenantID:            tenantID,
		ActivatedBy:         userID,
		ActivatedAt:         now,
		PreviousActiveSetID: previousActiveSetID,
	}

	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.DeactivateOtherSets(ctx, setID, tenantID, userID, now); err != nil {
			return fmt.Errorf("deactivate previous sets: %w", err)
		}
		if err := tx.ActivateConfigSet(ctx, setID, userID, now); err != nil {
			return fmt.Errorf("activate config set: %w", err)
		}
		return tx.RecordActivation(ctx, activation)
	})
	if err != nil {
		return nil, err
	}

	target.Status = model.StatusActive
	target.Touch(userID, now)

	s.logger.Info("config set activated",
		"id", setID, "tenant", tenantID, "previous_active", previousActiveSetID)
	s.publish(ctx, events.TopicConfigSetActivated, events.ConfigSetActivated{
		ConfigSet:           target,
		PreviousActiveSetID: previousActiveSetID,
	})
	return activation, nil
}

// SearchConfigSets lists config sets matching the criteria with pagination.
func (s *Service) SearchConfigSets(ctx context.Context, criteria model.ConfigSetCriteria) ([]*model.ConfigSet, model.Pagination, error) {
	s.applySetDefaults(&criteria)

	sets, total, err := s.store.SearchConfigSets(ctx, criteria)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("search config sets: %w", err)
	}
	return sets, model.Pagination{Total: total, Limit: criteria.Limit, Offset: criteria.Offset}, nil
}

func (s *Service) applySetDefaults(criteria *model.ConfigSetCriteria) {
	if criteria.Limit <= 0 {
		criteria.Limit = s.defaultLimit
	}
	if criteria.Offset < 0 {
		criteria.Offset = s.defaultOffset
	}
}
