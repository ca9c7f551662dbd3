package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecentTransactionsLimit caps the recent list of the payment summary.
const RecentTransactionsLimit = 6

type FinalizeResult struct {
	PaymentID          uuid.UUID `json:"payment_id"`
	BookingID          uuid.UUID `json:"booking_id"`
	BookedSlotRecorded bool      `json:"booked_slot_recorded"`
	Enrolled           bool      `json:"enrolled"`
	Warnings           []string  `json:"warnings,omitempty"`
}

type PaymentSummary struct {
	TotalPaid          decimal.Decimal
	RecentTransactions []models.Payment
}

// Reconciler turns pending bookings into paid ones and fans the result out
// to the trainer, the payments ledger and the class roster.
type Reconciler interface {
	Finalize(ctx context.Context, bookingID uuid.UUID) (*FinalizeResult, error)
	PaymentSummary(ctx context.Context) (*PaymentSummary, error)
	ReconcileOrphans(ctx context.Context, limit int) (int, error)
}

type reconciler struct {
	users       repository.UserRepository
	bookings    repository.BookingRepository
	bookedSlots repository.BookedSlotRepository
	payments    repository.PaymentRepository
	classes     repository.ClassRepository
	events      EventPublisher
	now         func() time.Time
}

func NewReconciler(
	users repository.UserRepository,
	bookings repository.BookingRepository,
	bookedSlots repository.BookedSlotRepository,
	payments repository.PaymentRepository,
	classes repository.ClassRepository,
	events EventPublisher,
) Reconciler {
	return &reconciler{
		users:       users,
		bookings:    bookings,
		bookedSlots: bookedSlots,
		payments:    payments,
		classes:     classes,
		events:      events,
		now:         time.Now,
	}
}

// Finalize flips a pending booking to paid and copies it out. Only the
// status flip is conditional; the later steps are separate writes and a
// failure among them does not undo the flip. ReconcileOrphans repairs
// bookings whose ledger insert never landed.
func (r *reconciler) Finalize(ctx context.Context, bookingID uuid.UUID) (*FinalizeResult, error) {
	flipped, err := r.bookings.MarkPaid(ctx, bookingID, r.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}
	if !flipped {
		return nil, ErrBookingNotPending
	}

	booking, err := r.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	return r.fanOut(ctx, booking)
}

func (r *reconciler) fanOut(ctx context.Context, booking *models.Booking) (*FinalizeResult, error) {
	member, err := r.users.FindByID(ctx, booking.MemberID)
	if err != nil {
		return nil, fmt.Errorf("load member %s: %w", booking.MemberID, err)
	}

	fb := models.NewFinalizedBooking(booking, member)
	result := &FinalizeResult{BookingID: booking.ID}

	if err := r.bookedSlots.Append(ctx, fb); err != nil {
		slog.Error("failed to append trainer booked slot",
			"action", "finalize",
			"booking_id", booking.ID.String(),
			"error", err,
		)
		result.Warnings = append(result.Warnings, "trainer booked slots not updated")
	} else {
		result.BookedSlotRecorded = true
	}

	payment, err := r.payments.Insert(ctx, fb)
	if err != nil {
		slog.Error("failed to insert payments ledger entry",
			"action", "finalize",
			"booking_id", booking.ID.String(),
			"error", err,
		)
		return nil, fmt.Errorf("insert ledger entry: %w", err)
	}
	result.PaymentID = payment.ID

	if booking.ClassID != nil {
		if _, err := r.classes.AddMember(ctx, *booking.ClassID, member.ID); err != nil {
			slog.Error("failed to enroll member in class",
				"action", "finalize",
				"booking_id", booking.ID.String(),
				"user_id", member.ID.String(),
				"error", err,
			)
			result.Warnings = append(result.Warnings, "class enrollment not updated")
		} else {
			result.Enrolled = true
		}
	}

	publish(ctx, r.events, EventPaymentFinalized, payment)
	slog.Info("booking finalized", "booking_id", booking.ID.String(), "payment_id", payment.ID.String())
	return result, nil
}

func (r *reconciler) PaymentSummary(ctx context.Context) (*PaymentSummary, error) {
	paid, err := r.payments.ListByStatus(ctx, models.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("list paid payments: %w", err)
	}

	total := decimal.Zero
	for _, p := range paid {
		amount, err := ParsePrice(p.Price)
		if err != nil {
			slog.Warn("skipping unparseable price", "booking_id", p.BookingID.String(), "price", p.Price)
			continue
		}
		total = total.Add(amount)
	}

	recent, err := r.payments.Recent(ctx, models.PaymentPaid, RecentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent payments: %w", err)
	}

	return &PaymentSummary{TotalPaid: total, RecentTransactions: recent}, nil
}

// ReconcileOrphans re-runs the fan-out for paid bookings that have no ledger
// entry. Every fan-out write is idempotent per booking, so repeated sweeps
// are safe.
func (r *reconciler) ReconcileOrphans(ctx context.Context, limit int) (int, error) {
	orphans, err := r.bookings.ListPaidWithoutLedger(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list orphaned bookings: %w", err)
	}

	repaired := 0
	for i := range orphans {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		if _, err := r.fanOut(ctx, &orphans[i]); err != nil {
			slog.Error("reconcile failed",
				"action", "reconcile",
				"booking_id", orphans[i].ID.String(),
				"error", err,
			)
			continue
		}
		repaired++
	}
	if repaired > 0 {
		slog.Info("orphaned bookings reconciled", "repaired", repaired, "found", len(orphans))
	}
	return repaired, nil
}
