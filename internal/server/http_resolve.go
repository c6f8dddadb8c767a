package server

import (
	"encoding/json"
	"net/http"

	"github.com/egovernments/digit-config-service/internal/service"
)

// handleResolveConfig handles POST /v1/resolve/config.
func (s *ConfigServer) handleResolveConfig(w http.ResponseWriter, r *http.Request) {
	var req service.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.svc.ResolveConfig(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// resolveEntryRequest is the POST /v1/resolve/entry body.
type resolveEntryRequest struct {
	ConfigCode string `json:"config_code"`
	Module     string `json:"module,omitempty"`
	TenantID   string `json:"tenant_id"`
	Locale     string `json:"locale,omitempty"`
}

// handleResolveEntry handles POST /v1/resolve/entry.
func (s *ConfigServer) handleResolveEntry(w http.ResponseWriter, r *http.Request) {
	var req resolveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.svc.ResolveEntry(r.Context(), req.ConfigCode, req.Module, req.TenantID, req.Locale)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handlePreviewTemplate handles POST /v1/templates/preview.
func (s *ConfigServer) handlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	var req service.TemplatePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.svc.PreviewTemplate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
