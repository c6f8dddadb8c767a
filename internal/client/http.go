package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/service"
)

// HTTPClient implements ConfigClient using the HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request; userID populates X-User-Id for audit
// attribution.
func NewHTTPClient(baseURL, token, userID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userID:     userID,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Config sets ---

func (c *HTTPClient) CreateConfigSet(ctx context.Context, cs *model.ConfigSet) (*model.ConfigSet, error) {
	var out model.ConfigSet
	if err := c.doJSON(ctx, http.MethodPost, "/v1/configsets", cs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateConfigSet(ctx context.Context, cs *model.ConfigSet) (*model.ConfigSet, error) {
	var out model.ConfigSet
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/configsets/"+url.PathEscape(cs.ID), cs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SearchConfigSets(ctx context.Context, criteria model.ConfigSetCriteria) (*ConfigSetSearchResponse, error) {
	q := url.Values{}
	setIfNotEmpty(q, "tenant_id", criteria.TenantID)
	setIfNotEmpty(q, "name", criteria.Name)
	setIfNotEmpty(q, "code", criteria.Code)
	setIfNotEmpty(q, "status", criteria.Status)
	setPage(q, criteria.Limit, criteria.Offset)

	var resp ConfigSetSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/configsets", q), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ActivateConfigSet(ctx context.Context, setID, tenantID string) (*model.ConfigSetActivation, error) {
	body := map[string]string{"tenant_id": tenantID}
	var out model.ConfigSetActivation
	if err := c.doJSON(ctx, http.MethodPost, "/v1/configsets/"+url.PathEscape(setID)+"/activate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Configs ---

func (c *HTTPClient) CreateConfig(ctx context.Context, cfg *model.Config) (*model.Config, error) {
	var out model.Config
	if err := c.doJSON(ctx, http.MethodPost, "/v1/configs", cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateConfig(ctx context.Context, cfg *model.Config) (*model.Config, error) {
	var out model.Config
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/configs/"+url.PathEscape(cfg.ID), cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SearchConfigs(ctx context.Context, criteria model.ConfigCriteria) (*ConfigSearchResponse, error) {
	q := url.Values{}
	setIfNotEmpty(q, "tenant_id", criteria.TenantID)
	setIfNotEmpty(q, "namespace", criteria.Namespace)
	setIfNotEmpty(q, "name", criteria.Name)
	setIfNotEmpty(q, "code", criteria.Code)
	setIfNotEmpty(q, "environment", criteria.Environment)
	setIfNotEmpty(q, "status", criteria.Status)
	setIfNotEmpty(q, "version", criteria.Version)
	if criteria.IncludeContent != nil {
		q.Set("include_content", strconv.FormatBool(*criteria.IncludeContent))
	}
	setPage(q, criteria.Limit, criteria.Offset)

	var resp ConfigSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/configs", q), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetVersions(ctx context.Context, configID string) ([]*model.ConfigVersion, error) {
	var resp struct {
		Versions []*model.ConfigVersion `json:"versions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/configs/"+url.PathEscape(configID)+"/versions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Versions, nil
}

// --- Entries ---

func (c *HTTPClient) CreateEntry(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	var out model.Entry
	if err := c.doJSON(ctx, http.MethodPost, "/v1/entries", e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, patch *model.EntryPatch) (*model.Entry, error) {
	var out model.Entry
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/entries/"+url.PathEscape(patch.ID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SearchEntries(ctx context.Context, criteria model.EntryCriteria) (*EntrySearchResponse, error) {
	q := url.Values{}
	if len(criteria.IDs) > 0 {
		q.Set("ids", strings.Join(criteria.IDs, ","))
	}
	setIfNotEmpty(q, "code", criteria.Code)
	setIfNotEmpty(q, "module", criteria.Module)
	setIfNotEmpty(q, "event_type", criteria.EventType)
	setIfNotEmpty(q, "channel", criteria.Channel)
	setIfNotEmpty(q, "tenant_id", criteria.TenantID)
	setIfNotEmpty(q, "locale", criteria.Locale)
	if criteria.Enabled != nil {
		q.Set("enabled", strconv.FormatBool(*criteria.Enabled))
	}
	setPage(q, criteria.Limit, criteria.Offset)

	var resp EntrySearchResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/entries", q), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Resolution ---

func (c *HTTPClient) ResolveConfig(ctx context.Context, req service.ResolveRequest) (*service.ResolveResponse, error) {
	var resp service.ResolveResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/resolve/config", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResolveEntry(ctx context.Context, configCode, module, tenantID, locale string) (*service.ResolvedEntry, error) {
	body := map[string]string{
		"config_code": configCode,
		"module":      module,
		"tenant_id":   tenantID,
		"locale":      locale,
	}
	var resp service.ResolvedEntry
	if err := c.doJSON(ctx, http.MethodPost, "/v1/resolve/entry", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Templates ---

func (c *HTTPClient) PreviewTemplate(ctx context.Context, req service.TemplatePreviewRequest) (*service.TemplatePreviewResponse, error) {
	var resp service.TemplatePreviewResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/templates/preview", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Schema cache ---

func (c *HTTPClient) EvictSchema(ctx context.Context, ref string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/schemas/cache/"+url.PathEscape(ref), nil, nil)
}

func (c *HTTPClient) EvictAllSchemas(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/schemas/cache", nil, nil)
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server. For domain
// failures the code and field map from the server body are carried along.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server returned %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the
// JSON response into result (when non-nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userID != "" {
		req.Header.Set("X-User-Id", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var de model.DomainError
		if json.Unmarshal(respBody, &de) == nil && de.Code != "" {
			return &APIError{StatusCode: resp.StatusCode, Code: de.Code, Message: de.Message, Fields: de.Fields}
		}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
