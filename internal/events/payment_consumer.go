package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// KeyPaymentSucceeded is published by the payment bridge once the processor
// confirms a charge.
const KeyPaymentSucceeded = "payment.succeeded"

type PaymentSucceeded struct {
	Event   string `json:"event"`
	Version int    `json:"version"`
	Data    struct {
		BookingID   string `json:"booking_id"`
		ProviderRef string `json:"provider_ref"`
	} `json:"data"`
}

type Finalizer interface {
	Finalize(ctx context.Context, bookingID uuid.UUID) (*services.FinalizeResult, error)
}

// PaymentConsumer finalizes bookings from payment.succeeded messages.
type PaymentConsumer struct {
	finalizer Finalizer
	cons      *Consumer
}

func NewPaymentConsumer(finalizer Finalizer, cons *Consumer) *PaymentConsumer {
	return &PaymentConsumer{finalizer: finalizer, cons: cons}
}

func (pc *PaymentConsumer) Run(ctx context.Context) error {
	msgs, err := pc.cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			pc.Handle(ctx, d)
		}
	}()
	return nil
}

// Handle processes one delivery. Malformed messages are dropped, already
// finalized bookings are acknowledged, and store failures are requeued.
func (pc *PaymentConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	if d.RoutingKey != KeyPaymentSucceeded {
		_ = d.Ack(false)
		return
	}

	var evt PaymentSucceeded
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		slog.Warn("payment consumer: unmarshal failed", "error", err)
		_ = d.Nack(false, false)
		return
	}
	bookingID, err := uuid.Parse(evt.Data.BookingID)
	if err != nil {
		slog.Warn("payment consumer: invalid booking id", "booking_id", evt.Data.BookingID)
		_ = d.Nack(false, false)
		return
	}

	result, err := pc.finalizer.Finalize(ctx, bookingID)
	switch {
	case err == nil:
		slog.Info("payment consumer: booking finalized",
			"booking_id", bookingID.String(),
			"payment_id", result.PaymentID.String(),
			"provider_ref", evt.Data.ProviderRef,
		)
		_ = d.Ack(false)
	case errors.Is(err, services.ErrNotFound):
		// Redelivery or a booking finalized through another path.
		_ = d.Ack(false)
	default:
		slog.Error("payment consumer: finalize failed",
			"action", "finalize",
			"booking_id", bookingID.String(),
			"error", err,
		)
		_ = d.Nack(false, true)
	}
}
