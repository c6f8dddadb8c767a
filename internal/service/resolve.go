package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/egovernments/digit-config-service/internal/fallback"
	"github.com/egovernments/digit-config-service/internal/model"
)

// ResolveRequest asks for the effective content of a namespaced config as
// seen from a tenant. Context carries free-form hints used to disambiguate
// when several configs match at the same tenant level.
type ResolveRequest struct {
	TenantID    string            `json:"tenant_id"`
	Namespace   string            `json:"namespace"`
	ConfigCode  string            `json:"config_code"`
	Environment string            `json:"environment,omitempty"`
	Context     map[string]string `json:"context,omitempty"`
}

// ResolveResponse reports the winning version content and the tenant level
// it was found at.
type ResolveResponse struct {
	TenantID     string          `json:"tenant_id"`
	Namespace    string          `json:"namespace"`
	ConfigCode   string          `json:"config_code"`
	Version      string          `json:"version"`
	Content      json.RawMessage `json:"content,omitempty"`
	ResolvedFrom string          `json:"resolved_from"`
}

// ResolveConfig walks the tenant ancestry most specific first and returns
// the active version content of the first ACTIVE config carrying an active
// version. Levels that match a config but have no active version are
// skipped rather than terminating the walk.
func (s *Service) ResolveConfig(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	fieldErrors := make(map[string]string)
	if req.TenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if req.Namespace == "" {
		fieldErrors["MISSING_NAMESPACE"] = "Namespace is required"
	}
	if req.ConfigCode == "" {
		fieldErrors["MISSING_CONFIG_CODE"] = "Config code is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}

	for _, tenant := range fallback.TenantAncestry(req.TenantID) {
		criteria := model.ConfigCriteria{
			TenantID:  tenant,
			Namespace: req.Namespace,
			Code:      req.ConfigCode,
			Status:    model.StatusActive.String(),
		}
		if req.Environment != "" {
			criteria.Environment = req.Environment
		}
		includeContent := false
		criteria.IncludeContent = &includeContent

		configs, _, err := s.store.SearchConfigs(ctx, criteria)
		if err != nil {
			return nil, fmt.Errorf("search configs at %s: %w", tenant, err)
		}
		if len(configs) == 0 {
			continue
		}

		matched := selectBestMatch(configs, req.Context)

		version, err := s.store.GetActiveVersion(ctx, matched.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("load active version: %w", err)
		}

		s.logger.Info("config resolved",
			"tenant", req.TenantID, "namespace", req.Namespace, "code", req.ConfigCode,
			"version", version.Version, "resolved_from", tenant)

		return &ResolveResponse{
			TenantID:     req.TenantID,
			Namespace:    req.Namespace,
			ConfigCode:   req.ConfigCode,
			Version:      version.Version,
			Content:      version.Content,
			ResolvedFrom: tenant,
		}, nil
	}

	return nil, model.NewError(model.CodeConfigNotResolved,
		fmt.Sprintf("No active config found for tenantId=%s, namespace=%s, configCode=%s",
			req.TenantID, req.Namespace, req.ConfigCode))
}

// selectBestMatch picks one config from candidates at the same tenant
// level. Scoring: +10 for an exact environment match against
// context["environment"], +1 per context value appearing (case-insensitive)
// in the description. Ties keep the earliest candidate, preserving list
// order as the tie-break.
func selectBestMatch(configs []*model.Config, context map[string]string) *model.Config {
	if len(context) == 0 || len(configs) == 1 {
		return configs[0]
	}

	best := configs[0]
	bestScore := -1
	for _, c := range configs {
		score := contextScore(c, context)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func contextScore(c *model.Config, context map[string]string) int {
	score := 0
	if c.Environment != "" && c.Environment == context["environment"] {
		score += 10
	}
	if c.Description != "" {
		desc := strings.ToLower(c.Description)
		for _, v := range context {
			if strings.Contains(desc, strings.ToLower(v)) {
				score++
			}
		}
	}
	return score
}
