package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jellydator/ttlcache/v3"

	"github.com/egovernments/digit-config-service/internal/model"
)

// fetcher abstracts the registry for testing.
type fetcher interface {
	Fetch(ctx context.Context, tenantID, ref string) (*Definition, error)
}

// Validator validates content payloads against cached schema definitions.
// Definitions are cached on first successful fetch and held until evicted;
// failed fetches are never cached, so a registry outage does not poison
// later validations.
type Validator struct {
	registry fetcher
	cache    *ttlcache.Cache[string, *Definition]
	logger   *slog.Logger
}

// NewValidator creates a validator backed by the given registry.
func NewValidator(registry *Registry, logger *slog.Logger) *Validator {
	return newValidator(registry, logger)
}

func newValidator(registry fetcher, logger *slog.Logger) *Validator {
	return &Validator{
		registry: registry,
		cache:    ttlcache.New[string, *Definition](),
		logger:   logger,
	}
}

// Validate checks content against the schema named by schemaRef. A blank
// ref or empty content is a no-op. A schema that cannot be fetched skips
// validation with a warning. Constraint violations are aggregated into a
// single VALIDATION_ERROR carrying one field code per failure.
func (v *Validator) Validate(ctx context.Context, tenantID, schemaRef string, content json.RawMessage) error {
	if schemaRef == "" || len(content) == 0 {
		return nil
	}

	def := v.definition(ctx, tenantID, schemaRef)
	if def == nil {
		v.logger.Warn("schema not available, skipping validation", "schema_ref", schemaRef)
		return nil
	}

	doc, err := model.ParseDocument(content)
	if err != nil {
		return model.NewError(model.CodeInvalidContent, err.Error())
	}

	fieldErrors := make(map[string]string)
	for _, name := range def.Required {
		child, ok := doc.Field(name)
		if !ok || child.IsNull() {
			fieldErrors["SCHEMA_VALIDATION_"+name] =
				fmt.Sprintf("Required field '%s' is missing", name)
		}
	}

	for name, fs := range def.Properties {
		child, ok := doc.Field(name)
		if !ok || child.IsNull() {
			continue
		}
		validateField(name, child, fs, fieldErrors)
	}

	if len(fieldErrors) > 0 {
		return model.NewFieldErrors(fieldErrors)
	}
	return nil
}

func validateField(name string, value *model.Document, fs FieldSchema, fieldErrors map[string]string) {
	valid := true
	switch fs.Type {
	case "string":
		valid = value.Kind() == model.KindString
	case "integer":
		valid = value.IsInteger()
	case "number":
		valid = value.Kind() == model.KindNumber
	case "boolean":
		valid = value.Kind() == model.KindBool
	case "array":
		valid = value.Kind() == model.KindArray
	case "object":
		valid = value.Kind() == model.KindObject
	}
	if !valid {
		fieldErrors["SCHEMA_VALIDATION_TYPE_"+name] =
			fmt.Sprintf("Field '%s' expected type '%s' but got '%s'", name, fs.Type, value.Kind())
		return
	}

	if fs.Type == "string" {
		text, _ := value.StringValue()
		if fs.MaxLength > 0 && len([]rune(text)) > fs.MaxLength {
			fieldErrors["SCHEMA_VALIDATION_MAXLEN_"+name] =
				fmt.Sprintf("Field '%s' exceeds maxLength %d", name, fs.MaxLength)
		}
		if len([]rune(text)) < fs.MinLength {
			fieldErrors["SCHEMA_VALIDATION_MINLEN_"+name] =
				fmt.Sprintf("Field '%s' is shorter than minLength %d", name, fs.MinLength)
		}
	}
}

// definition returns the cached definition for ref, fetching it on a miss.
// Only successful fetches are cached.
func (v *Validator) definition(ctx context.Context, tenantID, ref string) *Definition {
	loader := ttlcache.LoaderFunc[string, *Definition](
		func(cache *ttlcache.Cache[string, *Definition], key string) *ttlcache.Item[string, *Definition] {
			def, err := v.registry.Fetch(ctx, tenantID, key)
			if err != nil {
				v.logger.Warn("schema fetch failed", "schema_ref", key, "error", err)
				return nil
			}
			return cache.Set(key, def, ttlcache.NoTTL)
		},
	)
	item := v.cache.Get(ref, ttlcache.WithLoader[string, *Definition](loader))
	if item == nil {
		return nil
	}
	return item.Value()
}

// Evict removes one schema from the cache; the next validation refetches it.
func (v *Validator) Evict(ref string) {
	v.cache.Delete(ref)
}

// EvictAll clears the schema cache.
func (v *Validator) EvictAll() {
	v.cache.DeleteAll()
}
