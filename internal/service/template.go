package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/egovernments/digit-config-service/internal/model"
)

// placeholderPattern matches {{key}} placeholders with optional inner
// whitespace. Keys are word characters only.
var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// TemplateRef names the config holding template content.
type TemplateRef struct {
	Namespace  string `json:"namespace"`
	ConfigName string `json:"config_name,omitempty"`
	ConfigCode string `json:"config_code"`
}

// TemplatePreviewRequest renders a stored template against sample data.
type TemplatePreviewRequest struct {
	TenantID string         `json:"tenant_id"`
	Template TemplateRef    `json:"template"`
	Locale   string         `json:"locale,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// TemplatePreviewResponse carries the rendered text.
type TemplatePreviewResponse struct {
	Rendered string `json:"rendered"`
	Locale   string `json:"locale"`
}

// PreviewTemplate looks up the referenced config's active version, extracts
// its template text, and substitutes {{key}} placeholders from the supplied
// data. Unknown placeholders stay literal.
func (s *Service) PreviewTemplate(ctx context.Context, req TemplatePreviewRequest) (*TemplatePreviewResponse, error) {
	fieldErrors := make(map[string]string)
	if req.TenantID == "" {
		fieldErrors["MISSING_TENANT_ID"] = "Tenant ID is required"
	}
	if req.Template.ConfigCode == "" && req.Template.ConfigName == "" {
		fieldErrors["MISSING_TEMPLATE"] = "Template reference is required"
	}
	if len(fieldErrors) > 0 {
		return nil, model.NewFieldErrors(fieldErrors)
	}

	includeContent := false
	configs, _, err := s.store.SearchConfigs(ctx, model.ConfigCriteria{
		TenantID:       req.TenantID,
		Namespace:      req.Template.Namespace,
		Name:           req.Template.ConfigName,
		Code:           req.Template.ConfigCode,
		IncludeContent: &includeContent,
	})
	if err != nil {
		return nil, fmt.Errorf("search template config: %w", err)
	}
	if len(configs) == 0 {
		return nil, model.NewError(model.CodeTemplateNotFound,
			"No template config found for the given reference")
	}

	version, err := s.store.GetActiveVersion(ctx, configs[0].ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewError(model.CodeTemplateContentEmpty,
				"Template config has no active version with content")
		}
		return nil, fmt.Errorf("load template version: %w", err)
	}
	if len(version.Content) == 0 {
		return nil, model.NewError(model.CodeTemplateContentEmpty,
			"Template config has no active version with content")
	}

	doc, err := model.ParseDocument(version.Content)
	if err != nil {
		return nil, model.NewError(model.CodeInvalidContent, err.Error())
	}

	locale := req.Locale
	if locale == "" {
		locale = "en_IN"
	}

	rendered := RenderTemplate(templateText(doc), req.Data)

	s.logger.Info("template preview rendered",
		"code", req.Template.ConfigCode, "locale", locale)
	return &TemplatePreviewResponse{Rendered: rendered, Locale: locale}, nil
}

// templateText extracts the template string from content: the "template"
// field, falling back to "body", falling back to the whole document.
func templateText(doc *model.Document) string {
	if field, ok := doc.Field("template"); ok {
		return field.Text()
	}
	if field, ok := doc.Field("body"); ok {
		return field.Text()
	}
	return doc.Text()
}

// RenderTemplate substitutes {{key}} placeholders from data. A key absent
// from data leaves the placeholder untouched.
func RenderTemplate(template string, data map[string]any) string {
	if len(data) == 0 {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := data[key]
		if !ok || value == nil {
			return match
		}
		return fmt.Sprint(value)
	})
}
