package events

import (
	"context"

	"github.com/egovernments/digit-config-service/internal/model"
)

// Event topic constants
const (
	TopicConfigCreated = "config.config.created"
	TopicConfigUpdated = "config.config.updated"

	TopicConfigSetCreated   = "config.configset.created"
	TopicConfigSetUpdated   = "config.configset.updated"
	TopicConfigSetActivated = "config.configset.activated"

	TopicEntryCreated = "config.entry.created"
	TopicEntryUpdated = "config.entry.updated"
)

// Event types

type ConfigCreated struct {
	Config *model.Config `json:"config"`
}

type ConfigUpdated struct {
	Config *model.Config `json:"config"`
	// NewVersion is set when the update rotated the active content version.
	NewVersion *model.ConfigVersion `json:"new_version,omitempty"`
}

type ConfigSetCreated struct {
	ConfigSet *model.ConfigSet `json:"config_set"`
}

type ConfigSetUpdated struct {
	ConfigSet *model.ConfigSet `json:"config_set"`
}

type ConfigSetActivated struct {
	ConfigSet           *model.ConfigSet `json:"config_set"`
	PreviousActiveSetID string           `json:"previous_active_set_id,omitempty"`
}

type EntryCreated struct {
	Entry *model.Entry `json:"entry"`
}

type EntryUpdated struct {
	Entry *model.Entry `json:"entry"`
}

// Publisher emits domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives raw event payloads from the bus. The cancel
// function returned by Subscribe unsubscribes and closes the channel.
type Subscriber interface {
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}

// NoopPublisher discards every event. The service falls back to it when
// no broker URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
