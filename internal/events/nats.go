package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// subscribeBuffer is the per-subscription channel depth. When a consumer
// falls behind by more than this, newer messages are dropped rather than
// stalling the NATS client callback.
const subscribeBuffer = 64

// NATSPublisher emits JSON-encoded domain events to NATS subjects.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("digit-config-service"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling %s event: %w", topic, err)
	}
	return p.conn.Publish(topic, payload)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NATSSubscriber receives domain events from NATS subjects.
type NATSSubscriber struct {
	conn *nats.Conn
}

// NewNATSSubscriber connects with unlimited reconnects so that downstream
// consumers survive broker restarts. Extra nats.Option values (for example
// disconnect handlers) can be appended.
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	base := []nats.Option{
		nats.Name("digit-config-subscriber"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSSubscriber{conn: nc}, nil
}

// Subscribe delivers raw payloads for the given subject, which may use NATS
// wildcards such as "config.>". The cancel function unsubscribes and closes
// the channel; it is safe to call more than once.
func (s *NATSSubscriber) Subscribe(subject string) (<-chan []byte, func(), error) {
	out := make(chan []byte, subscribeBuffer)

	// The mutex orders the handler's send against cancel's close: once
	// stopped is set under the lock, no handler will touch out again.
	var (
		mu      sync.Mutex
		stopped bool
		once    sync.Once
	)

	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		select {
		case out <- msg.Data:
		default:
		}
	})
	if err != nil {
		close(out)
		return nil, nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	// Round-trip to the server so the subscription is routable before we
	// return; otherwise publishes on other connections can race past it.
	if err := s.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		close(out)
		return nil, nil, fmt.Errorf("flushing subscription for %s: %w", subject, err)
	}

	cancel := func() {
		once.Do(func() {
			_ = sub.Unsubscribe()
			mu.Lock()
			stopped = true
			mu.Unlock()
			drainAndClose(out)
		})
	}
	return out, cancel, nil
}

func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}

// drainAndClose empties any buffered payloads and closes the channel.
func drainAndClose(ch chan []byte) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}
