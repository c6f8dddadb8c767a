package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/egovernments/digit-config-service/internal/model"
)

// handleCreateConfig handles POST /v1/configs.
func (s *ConfigServer) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var in model.Config
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := s.svc.CreateConfig(r.Context(), &in, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// handleUpdateConfig handles PATCH /v1/configs/{id}.
func (s *ConfigServer) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var in model.Config
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in.ID = r.PathValue("id")

	c, err := s.svc.UpdateConfig(r.Context(), &in, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// handleSearchConfigs handles GET /v1/configs.
func (s *ConfigServer) handleSearchConfigs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := model.ConfigCriteria{
		TenantID:    q.Get("tenant_id"),
		Namespace:   q.Get("namespace"),
		Name:        q.Get("name"),
		Code:        q.Get("code"),
		Environment: q.Get("environment"),
		Status:      q.Get("status"),
		Version:     q.Get("version"),
	}
	if v := q.Get("include_content"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			criteria.IncludeContent = &b
		}
	}
	criteria.Limit, criteria.Offset = pageParams(q.Get("limit"), q.Get("offset"))

	configs, page, err := s.svc.SearchConfigs(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if configs == nil {
		configs = []*model.Config{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"configs":    configs,
		"pagination": page,
	})
}

// handleGetVersions handles GET /v1/configs/{id}/versions.
func (s *ConfigServer) handleGetVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.svc.GetVersions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if versions == nil {
		versions = []*model.ConfigVersion{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}
