package cache

import (
	"context"
	"time"

	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

// EventMarker keeps processed webhook event ids for ttl. The payment row
// status remains the authority; markers only short-circuit redeliveries.
type EventMarker struct {
	client *Client
	ttl    time.Duration
}

func NewEventMarker(c *Client, ttl time.Duration) *EventMarker {
	return &EventMarker{client: c, ttl: ttl}
}

func (m *EventMarker) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := m.client.rdb.Exists(ctx, m.client.key("webhook:event:", eventID)).Result()
	if err != nil {
		return false, errs.Wrapf(err, "redis: check event %s", eventID)
	}
	return n > 0, nil
}

func (m *EventMarker) Mark(ctx context.Context, eventID string) error {
	if err := m.client.rdb.Set(ctx, m.client.key("webhook:event:", eventID), 1, m.ttl).Err(); err != nil {
		return errs.Wrapf(err, "redis: mark event %s", eventID)
	}
	return nil
}

// NoopEventMarker is used when Redis is disabled.
type NoopEventMarker struct{}

func (NoopEventMarker) Seen(context.Context, string) (bool, error) { return false, nil }
func (NoopEventMarker) Mark(context.Context, string) error         { return nil }

var (
	_ commands.EventMarker = (*EventMarker)(nil)
	_ commands.EventMarker = NoopEventMarker{}
)
