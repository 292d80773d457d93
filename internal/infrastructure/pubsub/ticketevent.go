package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/goroutine"
	"crmdesk/internal/shared/logger"
)

const ticketEventChannel = "crmdesk:ticket:events"

// TicketEventType represents the type of ticket event relayed across instances.
type TicketEventType string

const (
	TicketEventCreated         TicketEventType = "ticket_created"
	TicketEventStatusChanged   TicketEventType = "status_changed"
	TicketEventPriorityChanged TicketEventType = "priority_changed"
	TicketEventCategoryChanged TicketEventType = "category_changed"
	TicketEventMessagePosted   TicketEventType = "message_posted"
	TicketEventPurged          TicketEventType = "ticket_purged"
)

// TicketEvent is the cross-instance payload. Board views on other instances
// use it to refresh without polling.
type TicketEvent struct {
	Type       TicketEventType `json:"type"`
	TicketID   uint            `json:"ticket_id"`
	Number     string          `json:"number,omitempty"`
	ActorID    uint            `json:"actor_id"`
	OldStatus  string          `json:"old_status,omitempty"`
	NewStatus  string          `json:"new_status,omitempty"`
	Timestamp  int64           `json:"timestamp"`
	InstanceID string          `json:"instance_id,omitempty"` // Source instance ID to avoid self-delivery
}

// TicketEventPublisher defines the interface for publishing ticket events across instances.
type TicketEventPublisher interface {
	Publish(ctx context.Context, event TicketEvent) error
}

// TicketEventSubscriber defines the interface for subscribing to ticket events.
type TicketEventSubscriber interface {
	Subscribe(ctx context.Context, handler func(event TicketEvent)) error
}

// TicketEventBus combines publisher and subscriber interfaces.
type TicketEventBus interface {
	TicketEventPublisher
	TicketEventSubscriber
}

// RedisTicketEventBus implements TicketEventBus using Redis Pub/Sub.
type RedisTicketEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string // Unique ID for this instance to avoid self-delivery
}

// NewRedisTicketEventBus creates a new Redis-based ticket event bus.
func NewRedisTicketEventBus(client *redis.Client, logger logger.Interface) *RedisTicketEventBus {
	return &RedisTicketEventBus{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// InstanceID returns the unique identifier of this bus instance. The sweep
// reuses it as the holder ID of its Redis lease.
func (b *RedisTicketEventBus) InstanceID() string {
	return b.instanceID
}

// Publish publishes a ticket event to Redis for cross-instance delivery.
// The instance ID is automatically set to avoid self-delivery.
func (b *RedisTicketEventBus) Publish(ctx context.Context, event TicketEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = biztime.NowUTC().Unix()
	}
	event.InstanceID = b.instanceID

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	if err := b.client.Publish(ctx, ticketEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket event",
			"event_type", event.Type,
			"ticket_id", event.TicketID,
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket event: %w", err)
	}

	b.logger.Debugw("ticket event published to Redis",
		"event_type", event.Type,
		"ticket_id", event.TicketID,
	)
	return nil
}

// Subscribe subscribes to ticket events from Redis. Events published by this
// instance are automatically filtered out.
func (b *RedisTicketEventBus) Subscribe(ctx context.Context, handler func(event TicketEvent)) error {
	return b.subscribeWithReconnect(ctx, ticketEventChannel, func(payload string) {
		var event TicketEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			b.logger.Warnw("failed to unmarshal ticket event",
				"payload", payload,
				"error", err,
			)
			return
		}

		// Skip events from own instance to avoid duplicate local broadcasts
		if event.InstanceID == b.instanceID {
			return
		}

		handler(event)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisTicketEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("ticket event subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

// subscribe is a generic Redis Pub/Sub subscriber.
func (b *RedisTicketEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := b.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to ticket event channel",
		"channel", channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("ticket event subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket event channel closed",
					"channel", channel,
				)
				return nil
			}

			goroutine.SafeGo(b.logger, "ticket-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
