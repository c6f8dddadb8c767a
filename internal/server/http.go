package server

import (
	"encoding/json"
	"net/http"

	"github.com/egovernments/digit-config-service/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *ConfigServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/configsets", s.handleCreateConfigSet)
	mux.HandleFunc("GET /v1/configsets", s.handleSearchConfigSets)
	mux.HandleFunc("PATCH /v1/configsets/{id}", s.handleUpdateConfigSet)
	mux.HandleFunc("POST /v1/configsets/{id}/activate", s.handleActivateConfigSet)
	mux.HandleFunc("POST /v1/configs", s.handleCreateConfig)
	mux.HandleFunc("GET /v1/configs", s.handleSearchConfigs)
	mux.HandleFunc("PATCH /v1/configs/{id}", s.handleUpdateConfig)
	mux.HandleFunc("GET /v1/configs/{id}/versions", s.handleGetVersions)
	mux.HandleFunc("POST /v1/entries", s.handleCreateEntry)
	mux.HandleFunc("GET /v1/entries", s.handleSearchEntries)
	mux.HandleFunc("PATCH /v1/entries/{id}", s.handleUpdateEntry)
	mux.HandleFunc("POST /v1/resolve/config", s.handleResolveConfig)
	mux.HandleFunc("POST /v1/resolve/entry", s.handleResolveEntry)
	mux.HandleFunc("POST /v1/templates/preview", s.handlePreviewTemplate)
	mux.HandleFunc("DELETE /v1/schemas/cache/{ref}", s.handleEvictSchema)
	mux.HandleFunc("DELETE /v1/schemas/cache", s.handleEvictAllSchemas)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *ConfigServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEvictSchema handles DELETE /v1/schemas/cache/{ref}.
func (s *ConfigServer) handleEvictSchema(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "schema ref is required")
		return
	}
	s.svc.EvictSchema(ref)
	writeJSON(w, http.StatusOK, map[string]string{"evicted": ref})
}

// handleEvictAllSchemas handles DELETE /v1/schemas/cache.
func (s *ConfigServer) handleEvictAllSchemas(w http.ResponseWriter, _ *http.Request) {
	s.svc.EvictAllSchemas()
	writeJSON(w, http.StatusOK, map[string]string{"evicted": "all"})
}

// requestUser extracts the acting user from the X-User-Id header. A blank
// header falls through to the service-level system default.
func requestUser(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps a service failure onto an HTTP status. Domain
// errors carry their code and field map through to the body; anything else
// is an internal failure.
func writeServiceError(w http.ResponseWriter, err error) {
	de := model.AsDomainError(err)
	if de == nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, statusForCode(de.Code), de)
}

func statusForCode(code string) int {
	switch code {
	case model.CodeConfigNotFound, model.CodeConfigSetNotFound,
		model.CodeEntryNotFound, model.CodeTemplateNotFound,
		model.CodeConfigNotResolved:
		return http.StatusNotFound
	case model.CodeRevisionMismatch:
		return http.StatusConflict
	case model.CodeDuplicateConfig, model.CodeDuplicateConfigSet,
		model.CodeValidationError, model.CodeInvalidRequest,
		model.CodeInvalidContent, model.CodeTemplateContentEmpty:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
