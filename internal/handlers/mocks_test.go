package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/payments"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type mockSlotService struct {
	listSlotsFn       func(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error)
	addSlotsFn        func(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error)
	deleteSlotFn      func(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int, error)
	deleteBookingFn   func(ctx context.Context, trainerID, bookingID, userID uuid.UUID) error
	listBookedSlotsFn func(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error)
}

func (m *mockSlotService) ListSlots(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error) {
	if m.listSlotsFn != nil {
		return m.listSlotsFn(ctx, trainerID)
	}
	return nil, nil
}
func (m *mockSlotService) AddSlots(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error) {
	if m.addSlotsFn != nil {
		return m.addSlotsFn(ctx, trainerID, slots)
	}
	return int64(len(slots)), nil
}
func (m *mockSlotService) DeleteSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int, error) {
	if m.deleteSlotFn != nil {
		return m.deleteSlotFn(ctx, trainerID, slot)
	}
	return 0, nil
}
func (m *mockSlotService) DeleteBooking(ctx context.Context, trainerID, bookingID, userID uuid.UUID) error {
	if m.deleteBookingFn != nil {
		return m.deleteBookingFn(ctx, trainerID, bookingID, userID)
	}
	return nil
}
func (m *mockSlotService) ListBookedSlots(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error) {
	if m.listBookedSlotsFn != nil {
		return m.listBookedSlotsFn(ctx, trainerID)
	}
	return nil, nil
}

type mockBookingService struct {
	recordPendingFn func(ctx context.Context, memberEmail string, in services.BookingInput) (*models.Booking, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*services.BookingLookup, error)
	listHistoryFn   func(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error)
}

func (m *mockBookingService) RecordPending(ctx context.Context, memberEmail string, in services.BookingInput) (*models.Booking, error) {
	if m.recordPendingFn != nil {
		return m.recordPendingFn(ctx, memberEmail, in)
	}
	return &models.Booking{ID: uuid.New(), PaymentStatus: models.PaymentPending}, nil
}
func (m *mockBookingService) GetByID(ctx context.Context, id uuid.UUID) (*services.BookingLookup, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, services.ErrPaymentNotFound
}
func (m *mockBookingService) ListHistory(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error) {
	if m.listHistoryFn != nil {
		return m.listHistoryFn(ctx, memberID)
	}
	return nil, nil
}

type mockReconciler struct {
	finalizeFn         func(ctx context.Context, bookingID uuid.UUID) (*services.FinalizeResult, error)
	paymentSummaryFn   func(ctx context.Context) (*services.PaymentSummary, error)
	reconcileOrphansFn func(ctx context.Context, limit int) (int, error)
}

func (m *mockReconciler) Finalize(ctx context.Context, bookingID uuid.UUID) (*services.FinalizeResult, error) {
	if m.finalizeFn != nil {
		return m.finalizeFn(ctx, bookingID)
	}
	return &services.FinalizeResult{BookingID: bookingID, PaymentID: uuid.New()}, nil
}
func (m *mockReconciler) PaymentSummary(ctx context.Context) (*services.PaymentSummary, error) {
	if m.paymentSummaryFn != nil {
		return m.paymentSummaryFn(ctx)
	}
	return &services.PaymentSummary{}, nil
}
func (m *mockReconciler) ReconcileOrphans(ctx context.Context, limit int) (int, error) {
	if m.reconcileOrphansFn != nil {
		return m.reconcileOrphansFn(ctx, limit)
	}
	return 0, nil
}

type mockPaymentService struct {
	createIntentFn       func(ctx context.Context, bookingID uuid.UUID) (*payments.Intent, error)
	handleNotificationFn func(ctx context.Context, n payments.Notification) (*services.FinalizeResult, error)
}

func (m *mockPaymentService) CreateIntent(ctx context.Context, bookingID uuid.UUID) (*payments.Intent, error) {
	if m.createIntentFn != nil {
		return m.createIntentFn(ctx, bookingID)
	}
	return &payments.Intent{OrderID: bookingID.String()}, nil
}
func (m *mockPaymentService) HandleNotification(ctx context.Context, n payments.Notification) (*services.FinalizeResult, error) {
	if m.handleNotificationFn != nil {
		return m.handleNotificationFn(ctx, n)
	}
	return nil, nil
}

// asUser stands in for the JWT middleware by storing a token with the
// given claims.
func asUser(id uuid.UUID, email string, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   id.String(),
			"email": email,
			"role":  string(role),
		}))
		return c.Next()
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

var (
	trainerID = uuid.MustParse("7d1c6a44-1f6e-4c47-9d1e-5b1f0b6b1a01")
	memberID  = uuid.MustParse("3b7f2f0a-4b9c-4f0e-8a3e-2d5c9e7a1b02")
	adminID   = uuid.MustParse("9e2d4c1b-6a7f-4d3e-b5c8-1f0a2b3c4d03")
)

func trainerCaller() fiber.Handler { return asUser(trainerID, "coach@example.com", models.RoleTrainer) }
func memberCaller() fiber.Handler  { return asUser(memberID, "alice@example.com", models.RoleMember) }
func adminCaller() fiber.Handler   { return asUser(adminID, "boss@example.com", models.RoleAdmin) }
