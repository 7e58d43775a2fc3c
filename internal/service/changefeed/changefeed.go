// Package changefeed publishes record-change events over Redis pub/sub so
// clients can refresh their transfer and notification screens without
// polling. The core never depends on it for correctness; publishing is
// best-effort and a nil client disables it entirely.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	EventVehicleUpdated      EventType = "vehicle.updated"
	EventTransferUpdated     EventType = "transfer.updated"
	EventNotificationCreated EventType = "notification.created"
)

type Event struct {
	Type     EventType `json:"type"`
	RecordID uuid.UUID `json:"record_id"`
	At       time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, identity string, event Event)
}

type Feed struct {
	redis *redis.Client
}

func New(redisClient *redis.Client) *Feed {
	return &Feed{redis: redisClient}
}

func channelFor(identity string) string {
	return fmt.Sprintf("feed:%s", identity)
}

func (f *Feed) Publish(ctx context.Context, identity string, event Event) {
	if f == nil || f.redis == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	_ = f.redis.Publish(ctx, channelFor(identity), payload).Err()
}

// Subscribe streams an identity's change events until ctx is cancelled.
// Consumed by the client-facing gateway, not by the core itself.
func (f *Feed) Subscribe(ctx context.Context, identity string) (<-chan Event, error) {
	if f == nil || f.redis == nil {
		return nil, fmt.Errorf("change feed disabled: no redis client")
	}

	sub := f.redis.Subscribe(ctx, channelFor(identity))
	events := make(chan Event)

	go func() {
		defer close(events)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
