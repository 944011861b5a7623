// Package notifications publishes domain events about users, posts and
// comments onto a Redis pub/sub channel.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "inkwell:events"

// Event types.
const (
	UserCreated    = "user.created"
	UserUpdated    = "user.updated"
	UserDeleted    = "user.deleted"
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
	CommentUpdated = "comment.updated"
	CommentDeleted = "comment.deleted"
)

// Cascade lists the descendants removed together with a deleted entity.
type Cascade struct {
	Posts    []uint `json:"posts,omitempty"`
	Comments []uint `json:"comments,omitempty"`
}

// Event is the payload published for every committed mutation.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Entity   string    `json:"entity"`
	EntityID uint      `json:"entityId"`
	Cascade  *Cascade  `json:"cascade,omitempty"`
	At       time.Time `json:"at"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType, entity string, id uint) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	}
}

// Publisher sends domain events. Implementations must tolerate being
// unavailable; callers treat publishing as best-effort.
type Publisher interface {
	PublishEvent(ctx context.Context, ev Event) error
}

// Notifier publishes events into a Redis channel. A nil Redis client turns
// every call into a no-op.
type Notifier struct {
	rdb     *redis.Client
	channel string
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client, channel string) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{rdb: rdb, channel: channel}
}

// Channel returns the pub/sub channel events are published to.
func (n *Notifier) Channel() string {
	return n.channel
}

// PublishEvent marshals ev and publishes it.
func (n *Notifier) PublishEvent(ctx context.Context, ev Event) (err error) {
	if n == nil || n.rdb == nil {
		return nil
	}
	ctx, span := observability.StartRedisSpan(ctx, "publish", n.channel)
	defer func() { observability.EndSpan(span, err) }()

	payload, err := json.Marshal(ev)
	if err != nil {
		observability.EventPublishFailures.WithLabelValues(ev.Type).Inc()
		return fmt.Errorf("marshal event: %w", err)
	}
	if err = n.rdb.Publish(ctx, n.channel, payload).Err(); err != nil {
		observability.EventPublishFailures.WithLabelValues(ev.Type).Inc()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Subscribe listens on the event channel until ctx is cancelled and calls
// onEvent for every decodable message. It returns once the subscription is
// confirmed.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, n.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", n.channel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					middleware.Logger.Warn("Dropping undecodable event",
						slog.String("channel", msg.Channel),
						slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("PANIC in event subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
