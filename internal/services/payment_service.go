package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/payments"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, bookingID uuid.UUID) (*payments.Intent, error)
	// HandleNotification finalizes the booking named by a verified processor
	// notification. It returns a nil result for non-settled statuses.
	HandleNotification(ctx context.Context, n payments.Notification) (*FinalizeResult, error)
}

type paymentService struct {
	users      repository.UserRepository
	bookings   repository.BookingRepository
	processor  payments.Processor
	reconciler Reconciler
}

// NewPaymentService accepts a nil processor; intents then fail with
// ErrPaymentsUnavailable.
func NewPaymentService(
	users repository.UserRepository,
	bookings repository.BookingRepository,
	processor payments.Processor,
	reconciler Reconciler,
) PaymentService {
	return &paymentService{
		users:      users,
		bookings:   bookings,
		processor:  processor,
		reconciler: reconciler,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, bookingID uuid.UUID) (*payments.Intent, error) {
	if s.processor == nil {
		return nil, ErrPaymentsUnavailable
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return nil, ErrBookingAlreadyPaid
	}
	amount, err := ParsePrice(booking.Price)
	if err != nil {
		return nil, err
	}
	member, err := s.users.FindByID(ctx, booking.MemberID)
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}

	intent, err := s.processor.CreateIntent(ctx, payments.IntentRequest{
		OrderID:       booking.ID.String(),
		Amount:        amount,
		CustomerName:  member.Name,
		CustomerEmail: member.Email,
		Description:   booking.Slot.Day + " " + booking.Slot.Time + " session",
	})
	if err != nil {
		slog.Error("payment intent failed", "booking_id", booking.ID.String(), "error", err)
		return nil, ErrPaymentIntentFailed
	}
	return intent, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, n payments.Notification) (*FinalizeResult, error) {
	if s.processor == nil {
		return nil, ErrPaymentsUnavailable
	}

	status, err := s.processor.VerifyNotification(ctx, n)
	if err != nil {
		slog.Warn("payment notification rejected", "order_id", n.OrderID, "error", err)
		return nil, ErrInvalidNotification
	}
	if !status.Settled {
		slog.Info("payment notification ignored", "order_id", status.OrderID, "status", status.Status)
		return nil, nil
	}

	bookingID, err := uuid.Parse(status.OrderID)
	if err != nil {
		return nil, newError(ErrInvalidInput, "order id is not a booking id")
	}
	return s.reconciler.Finalize(ctx, bookingID)
}
