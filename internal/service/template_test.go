package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/egovernments/digit-config-service/internal/model"
)

func seedTemplateConfig(t *testing.T, svc *Service, content string) {
	t.Helper()
	_, err := svc.CreateConfig(context.Background(), &model.Config{
		TenantID: "pb", Namespace: "notification", Name: "OTP SMS", Code: "OTP_SMS",
		Versions: []*model.ConfigVersion{
			{Version: "v1", Content: json.RawMessage(content)},
		},
	}, "")
	if err != nil {
		t.Fatalf("seed template config: %v", err)
	}
}

func TestPreviewTemplate(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedTemplateConfig(t, svc, `{"template":"Dear {{name}}, your OTP is {{otp}}."}`)

	res, err := svc.PreviewTemplate(context.Background(), TemplatePreviewRequest{
		TenantID: "pb",
		Template: TemplateRef{Namespace: "notification", ConfigCode: "OTP_SMS"},
		Data:     map[string]any{"name": "Asha", "otp": 482913},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if res.Rendered != "Dear Asha, your OTP is 482913." {
		t.Errorf("Rendered = %q", res.Rendered)
	}
	if res.Locale != "en_IN" {
		t.Errorf("Locale = %q, want en_IN default", res.Locale)
	}
}

func TestPreviewTemplate_BodyFallback(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedTemplateConfig(t, svc, `{"body":"Hello {{name}}"}`)

	res, err := svc.PreviewTemplate(context.Background(), TemplatePreviewRequest{
		TenantID: "pb",
		Template: TemplateRef{Namespace: "notification", ConfigCode: "OTP_SMS"},
		Locale:   "hi_IN",
		Data:     map[string]any{"name": "Asha"},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if res.Rendered != "Hello Asha" {
		t.Errorf("Rendered = %q", res.Rendered)
	}
	if res.Locale != "hi_IN" {
		t.Errorf("Locale = %q", res.Locale)
	}
}

func TestPreviewTemplate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.PreviewTemplate(context.Background(), TemplatePreviewRequest{
		TenantID: "pb",
		Template: TemplateRef{Namespace: "notification", ConfigCode: "NOPE"},
	})
	if !model.HasCode(err, model.CodeTemplateNotFound) {
		t.Fatalf("expected TEMPLATE_NOT_FOUND, got %v", err)
	}
}

func TestPreviewTemplate_NoActiveVersion(t *testing.T) {
	svc, st, _ := newTestService(t)
	seedTemplateConfig(t, svc, `{"template":"x"}`)
	for _, versions := range st.versions {
		for _, v := range versions {
			v.Status = model.StatusInactive
		}
	}

	_, err := svc.PreviewTemplate(context.Background(), TemplatePreviewRequest{
		TenantID: "pb",
		Template: TemplateRef{Namespace: "notification", ConfigCode: "OTP_SMS"},
	})
	if !model.HasCode(err, model.CodeTemplateContentEmpty) {
		t.Fatalf("expected TEMPLATE_CONTENT_EMPTY, got %v", err)
	}
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{"simple", "Hi {{name}}", map[string]any{"name": "Asha"}, "Hi Asha"},
		{"inner whitespace", "Hi {{ name }}", map[string]any{"name": "Asha"}, "Hi Asha"},
		{"unknown key stays literal", "Hi {{name}}, ref {{id}}", map[string]any{"name": "Asha"}, "Hi Asha, ref {{id}}"},
		{"nil value stays literal", "Hi {{name}}", map[string]any{"name": nil}, "Hi {{name}}"},
		{"numeric value", "OTP {{otp}}", map[string]any{"otp": 1234}, "OTP 1234"},
		{"no data", "Hi {{name}}", nil, "Hi {{name}}"},
		{"repeated key", "{{x}} and {{x}}", map[string]any{"x": "y"}, "y and y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.template, tt.data); got != tt.want {
				t.Errorf("RenderTemplate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}
