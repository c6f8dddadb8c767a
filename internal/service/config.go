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

// CreateConfig persists a new config identity together with any initial
// versions. The (tenant, namespace, code) triple must be unique; adding
// content to an existing config goes through UpdateConfig instead.
func (s *Service) CreateConfig(ctx context.Context, c *model.Config, userID string) (*model.Config, error) {
	if c == nil {
		return nil, model.NewError(model.CodeInvalidRequest, "config object is required")
	}
	if err := validateConfigFields(c); err != nil {
		return nil, err
	}

	existing, _, err := s.store.SearchConfigs(ctx, model.ConfigCriteria{
		TenantID: c.TenantID, Namespace: c.Namespace, Code: c.Code,
	})
	if err != nil {
		return nil, fmt.Errorf("check duplicate config: %w", err)
	}
	if len(existing) > 0 {
		return nil, model.NewError(model.CodeDuplicateConfig,
			"Config with same tenantId, namespace and configCode already exists. Use update to add a new version.")
	}

	userID = userOrSystem(userID)
	now := s.now()

	c.ID, err = idgen.Generate(idgen.PrefixConfig)
	if err != nil {
		return nil, err
	}
	if c.Status == "" {
		c.Status = model.StatusActive.String()
	}
	c.AuditDetails = model.NewAudit(userID, now)

	for _, v := range c.Versions {
		if err := s.enrichVersion(v, c.ID, userID); err != nil {
			return nil, err
		}
		if err := s.schemas.Validate(ctx, c.TenantID, v.SchemaRef, v.Content); err != nil {
			return nil, err
		}
	}

	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.CreateConfig(ctx, c); err != nil {
			return fmt.Errorf("create config: %w", err)
		}
		for _, v := range c.Versions {
			if err := tx.CreateVersion(ctx, v); err != nil {
				return fmt.Errorf("create version: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("config created", "id", c.ID, "tenant", c.TenantID, "code", c.Code)
	s.publish(ctx, events.TopicConfigCreated, events.ConfigCreated{Config: c})
	return c, nil
}

// UpdateConfig updates config metadata and rotates the active version when
// the caller supplies a version without an id: all currently ACTIVE versions
// are deactivated and the new one inserted ACTIVE, in one transaction, so a
// resolver never observes a config with versions but none active.
func (s *Service) UpdateConfig(ctx context.Context, c *model.Config, userID string) (*model.Config, error) {
	if c == nil {
		return nil, model.NewError(model.CodeInvalidRequest, "config object is required")
	}
	if c.ID == "" {
		return nil, model.NewFieldErrors(map[string]string{
			"MISSING_ID": "Config id is required for update",
		})
	}
	if err := validateConfigFields(c); err != nil {
		return nil, err
	}

	userID = userOrSystem(userID)
	now := s.now()
	if c.Status == "" {
		c.Status = model.StatusActive.String()
	}
	c.Touch(userID, now)

	var newVersions []*model.ConfigVersion
	for _, v := range c.Versions {
		if v.ID != "" {
			continue
		}
		if err := s.enrichVersion(v, c.ID, userID); err != nil {
			return nil, err
		}
		if err := s.schemas.Validate(ctx, c.TenantID, v.SchemaRef, v.Content); err != nil {
			return nil, err
		}
		newVersions = append(newVersions, v)
	}

	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateConfig(ctx, c); err != nil {
			return err
		}
		for _, v := range newVersions {
			if err := tx.DeactivateVersions(ctx, c.ID, userID, now); err != nil {
				return fmt.Errorf("deactivate versions: %w", err)
			}
			if err := tx.CreateVersion(ctx, v); err != nil {
				return fmt.Errorf("create version: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewError(model.CodeConfigNotFound,
				fmt.Sprintf("Config with id '%s' not found", c.ID))
		}
		return nil, fmt.Errorf("update config: %w", err)
	}

	var rotated *model.ConfigVersion
	if len(newVersions) > 0 {
		rotated = newVersions[len(newVersions)-1]
	}

	s.logger.Info("config updated", "id", c.ID, "new_versions", len(newVersions))
	s.publish(ctx, events.TopicConfigUpdated, events.ConfigUpdated{Config: c, NewVersion: rotated})
	return c, nil
}

// SearchConfigs lists configs matching the criteria. Unless IncludeContent
// is explicitly false, each result carries its full version history.
func (s *Service) SearchConfigs(ctx context.Context, criteria model.ConfigCriteria) ([]*model.Config, model.Pagination, error) {
	if criteria.Limit <= 0 {
		criteria.Limit = s.defaultLimit
	}
	if criteria.Offset < 0 {
		criteria.Offset = s.defaultOffset
	}

	configs, total, err := s.store.SearchConfigs(ctx, criteria)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("search configs: %w", err)
	}

	includeContent := criteria.IncludeContent == nil || *criteria.IncludeContent
	if includeContent {
		for _, c := range configs {
			versions, err := s.store.GetVersionsByConfigID(ctx, c.ID)
			if err != nil {
				return nil, model.Pagination{}, fmt.Errorf("load versions for %s: %w", c.ID, err)
			}
			c.Versions = versions
		}
	}

	return configs, model.Pagination{Total: total, Limit: criteria.Limit, Offset: criteria.Offset}, nil
}

// GetVersions returns the full version history of a config, newest first.
func (s *Service) GetVersions(ctx context.Context, configID string) ([]*model.ConfigVersion, error) {
	if configID == "" {
		return nil, model.NewFieldErrors(map[string]string{
			"MISSING_ID": "Config id is required",
		})
	}
	versions, err := s.store.GetVersionsByConfigID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("load versions: %w", err)
	}
	return versions, nil
}

// enrichVersion assigns identity, parent linkage, default status, and audit
// metadata to a caller-supplied version.
func (s *Service) enrichVersion(v *model.ConfigVersion, configID, userID string) error {
	id, err := idgen.Generate(idgen.PrefixVersion)
	if err != nil {
		return err
	}
	v.ID = id
	v.ConfigID = configID
	if v.Status == "" {
		v.Status = model.StatusActive
	}
	v.AuditDetails = model.NewAudit(userID, s.now())
	return nil
}

func validateConfigFields(c *model.Config) error {
	fieldErrors := make(map[string]string)
	if c.TenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if c.Namespace == "" {
		fieldErrors["MISSING_NAMESPACE"] = "Namespace is required"
	}
	if c.Name == "" {
		fieldErrors["MISSING_CONFIG_NAME"] = "Config name is required"
	}
	if c.Code == "" {
		fieldErrors["MISSING_CONFIG_CODE"] = "Config code is required"
	}
	if len(fieldErrors) > 0 {
		return model.NewFieldErrors(fieldErrors)
	}
	return nil
}
