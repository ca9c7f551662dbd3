package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/payments"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberBooking(id uuid.UUID) *mockBookingService {
	return &mockBookingService{
		getByIDFn: func(ctx context.Context, bookingID uuid.UUID) (*services.BookingLookup, error) {
			if bookingID != id {
				return nil, services.ErrPaymentNotFound
			}
			return &services.BookingLookup{
				Name:  "Alice",
				Email: "alice@example.com",
				Booking: models.Booking{
					ID:            id,
					MemberID:      memberID,
					TrainerID:     trainerID,
					PaymentStatus: models.PaymentPending,
				},
			}, nil
		},
	}
}

func paymentApp(bookings services.BookingService, pay services.PaymentService, rec services.Reconciler, who fiber.Handler) *fiber.App {
	h := NewPaymentHandler(bookings, pay, rec)
	app := fiber.New()
	if who != nil {
		app.Use(who)
	}
	app.Patch("/users/payment-status/:paymentId", h.Finalize)
	app.Post("/create-payment-intent", h.CreateIntent)
	return app
}

func TestFinalize_Owner(t *testing.T) {
	bookingID := uuid.New()
	rec := &mockReconciler{
		finalizeFn: func(ctx context.Context, id uuid.UUID) (*services.FinalizeResult, error) {
			return &services.FinalizeResult{BookingID: id, PaymentID: uuid.New(), BookedSlotRecorded: true}, nil
		},
	}

	status, env := doJSON(t, paymentApp(memberBooking(bookingID), &mockPaymentService{}, rec, memberCaller()),
		http.MethodPatch, "/users/payment-status/"+bookingID.String(), "")

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Payment status updated", env.Message)
	var result services.FinalizeResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, bookingID, result.BookingID)
	assert.True(t, result.BookedSlotRecorded)
}

func TestFinalize_Rejections(t *testing.T) {
	bookingID := uuid.New()
	alreadyPaid := &mockReconciler{
		finalizeFn: func(ctx context.Context, id uuid.UUID) (*services.FinalizeResult, error) {
			return nil, services.ErrBookingNotPending
		},
	}

	tests := []struct {
		name string
		who  fiber.Handler
		path string
		rec  services.Reconciler
		want int
	}{
		{"bad id", memberCaller(), "/users/payment-status/abc", &mockReconciler{}, fiber.StatusBadRequest},
		{"unknown booking", memberCaller(), "/users/payment-status/" + uuid.NewString(), &mockReconciler{}, fiber.StatusNotFound},
		{"someone else's booking", trainerCaller(), "/users/payment-status/" + bookingID.String(), &mockReconciler{}, fiber.StatusForbidden},
		{"already paid", memberCaller(), "/users/payment-status/" + bookingID.String(), alreadyPaid, fiber.StatusNotFound},
		{"admin may finalize", adminCaller(), "/users/payment-status/" + bookingID.String(), &mockReconciler{}, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := paymentApp(memberBooking(bookingID), &mockPaymentService{}, tt.rec, tt.who)
			status, _ := doJSON(t, app, http.MethodPatch, tt.path, "")
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestCreateIntent_OwnerOnly(t *testing.T) {
	bookingID := uuid.New()
	pay := &mockPaymentService{
		createIntentFn: func(ctx context.Context, id uuid.UUID) (*payments.Intent, error) {
			return &payments.Intent{OrderID: id.String(), ClientSecret: "snap-token"}, nil
		},
	}
	body := `{"bookingId":"` + bookingID.String() + `"}`

	status, env := doJSON(t, paymentApp(memberBooking(bookingID), pay, &mockReconciler{}, memberCaller()),
		http.MethodPost, "/create-payment-intent", body)
	require.Equal(t, fiber.StatusOK, status)
	var intent payments.Intent
	require.NoError(t, json.Unmarshal(env.Data, &intent))
	assert.Equal(t, "snap-token", intent.ClientSecret)

	status, _ = doJSON(t, paymentApp(memberBooking(bookingID), pay, &mockReconciler{}, adminCaller()),
		http.MethodPost, "/create-payment-intent", body)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCreateIntent_ProcessorUnavailable(t *testing.T) {
	bookingID := uuid.New()
	pay := &mockPaymentService{
		createIntentFn: func(ctx context.Context, id uuid.UUID) (*payments.Intent, error) {
			return nil, services.ErrPaymentsUnavailable
		},
	}

	status, env := doJSON(t, paymentApp(memberBooking(bookingID), pay, &mockReconciler{}, memberCaller()),
		http.MethodPost, "/create-payment-intent", `{"bookingId":"`+bookingID.String()+`"}`)

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "payment processor is not configured", env.Message)
}
