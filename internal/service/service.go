// Package service implements the configuration domain operations: config
// set lifecycle and activation, config create/update with version rotation,
// flat entry CRUD with optimistic concurrency, hierarchical resolution, and
// template preview.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/egovernments/digit-config-service/internal/events"
	"github.com/egovernments/digit-config-service/internal/store"
)

// SystemUser stamps audit fields when no caller identity is supplied.
const SystemUser = "system"

// ContentValidator checks version content against its schema reference.
// Satisfied by schema.Validator.
type ContentValidator interface {
	Validate(ctx context.Context, tenantID, schemaRef string, content json.RawMessage) error
	Evict(ref string)
	EvictAll()
}

// Service carries the domain operations over a Store.
type Service struct {
	store     store.Store
	schemas   ContentValidator
	publisher events.Publisher
	logger    *slog.Logger

	defaultLimit  int
	defaultOffset int

	now func() time.Time
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithSearchDefaults overrides the limit and offset applied to searches
// that don't specify a window.
func WithSearchDefaults(limit, offset int) Option {
	return func(s *Service) {
		s.defaultLimit = limit
		s.defaultOffset = offset
	}
}

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service. A nil publisher disables event emission.
func New(st store.Store, schemas ContentValidator, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Service {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	s := &Service{
		store:         st,
		schemas:       schemas,
		publisher:     publisher,
		logger:        logger,
		defaultLimit:  10,
		defaultOffset: 0,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EvictSchema drops one schema from the validation cache.
func (s *Service) EvictSchema(ref string) {
	s.schemas.Evict(ref)
	s.logger.Info("schema cache evicted", "schema_ref", ref)
}

// EvictAllSchemas clears the schema validation cache.
func (s *Service) EvictAllSchemas() {
	s.schemas.EvictAll()
	s.logger.Info("schema cache cleared")
}

// userOrSystem substitutes the system identity for a blank user id.
func userOrSystem(userID string) string {
	if userID == "" {
		return SystemUser
	}
	return userID
}

// publish emits an event best-effort; failures are logged, never returned.
func (s *Service) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
