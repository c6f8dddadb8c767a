package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/egovernments/digit-config-service/internal/model"
)

// handleCreateConfigSet handles POST /v1/configsets.
func (s *ConfigServer) handleCreateConfigSet(w http.ResponseWriter, r *http.Request) {
	var in model.ConfigSet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cs, err := s.svc.CreateConfigSet(r.Context(), &in, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cs)
}

// handleUpdateConfigSet handles PATCH /v1/configsets/{id}.
func (s *ConfigServer) handleUpdateConfigSet(w http.ResponseWriter, r *http.Request) {
	var in model.ConfigSet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in.ID = r.PathValue("id")

	cs, err := s.svc.UpdateConfigSet(r.Context(), &in, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cs)
}

// handleActivateConfigSet handles POST /v1/configsets/{id}/activate.
func (s *ConfigServer) handleActivateConfigSet(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TenantID string `json:"tenant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	activation, err := s.svc.ActivateConfigSet(r.Context(), r.PathValue("id"), in.TenantID, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activation)
}

// handleSearchConfigSets handles GET /v1/configsets.
func (s *ConfigServer) handleSearchConfigSets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := model.ConfigSetCriteria{
		TenantID: q.Get("tenant_id"),
		Name:     q.Get("name"),
		Code:     q.Get("code"),
		Status:   q.Get("status"),
	}
	criteria.Limit, criteria.Offset = pageParams(q.Get("limit"), q.Get("offset"))

	sets, page, err := s.svc.SearchConfigSets(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sets == nil {
		sets = []*model.ConfigSet{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"config_sets": sets,
		"pagination":  page,
	})
}

// pageParams parses limit/offset query values, leaving zero for the service
// defaults when absent or malformed.
func pageParams(limit, offset string) (int, int) {
	l, o := 0, 0
	if v, err := strconv.Atoi(limit); err == nil {
		l = v
	}
	if v, err := strconv.Atoi(offset); err == nil {
		o = v
	}
	return l, o
}
