package services

import (
	"context"
	"log/slog"
)

// Routing keys published on the events exchange.
const (
	EventBookingRecorded  = "booking.recorded"
	EventPaymentFinalized = "payment.finalized"
	EventSlotDeleted      = "slot.deleted"
)

// EventPublisher is satisfied by events.Publisher. A nil publisher disables
// event emission.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// publish is fire-and-forget: a broker outage never fails the operation
// that produced the event.
func publish(ctx context.Context, pub EventPublisher, key string, v any) {
	if pub == nil {
		return
	}
	if err := pub.PublishJSON(ctx, key, v); err != nil {
		slog.Error("failed to publish event", "action", key, "error", err)
	}
}
