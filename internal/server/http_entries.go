package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/egovernments/digit-config-service/internal/model"
)

// handleCreateEntry handles POST /v1/entries.
func (s *ConfigServer) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var in model.Entry
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	e, err := s.svc.CreateEntry(r.Context(), &in, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

// handleUpdateEntry handles PATCH /v1/entries/{id}.
func (s *ConfigServer) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var in model.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in.ID = r.PathValue("id")

	e, err := s.svc.UpdateEntry(r.Context(), &in, requestUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// handleSearchEntries handles GET /v1/entries.
func (s *ConfigServer) handleSearchEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := model.EntryCriteria{
		Code:      q.Get("code"),
		Module:    q.Get("module"),
		EventType: q.Get("event_type"),
		Channel:   q.Get("channel"),
		TenantID:  q.Get("tenant_id"),
		Locale:    q.Get("locale"),
	}
	if v := q.Get("ids"); v != "" {
		criteria.IDs = strings.Split(v, ",")
	}
	if v := q.Get("enabled"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			criteria.Enabled = &b
		}
	}
	criteria.Limit, criteria.Offset = pageParams(q.Get("limit"), q.Get("offset"))

	entries, page, err := s.svc.SearchEntries(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*model.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries":    entries,
		"pagination": page,
	})
}
