package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	bookingService services.BookingService
	paymentService services.PaymentService
	reconciler     services.Reconciler
}

func NewPaymentHandler(bookingService services.BookingService, paymentService services.PaymentService, reconciler services.Reconciler) *PaymentHandler {
	return &PaymentHandler{
		bookingService: bookingService,
		paymentService: paymentService,
		reconciler:     reconciler,
	}
}

// Finalize handles PATCH /users/payment-status/:paymentId.
func (h *PaymentHandler) Finalize(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	bookingID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid payment id format")
	}

	lookup, err := h.bookingService.GetByID(c.UserContext(), bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	if !who.CanActFor(lookup.Booking.MemberID) {
		return forbidden(c)
	}

	result, err := h.reconciler.Finalize(c.UserContext(), bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Payment status updated", result)
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid booking id format")
	}

	lookup, err := h.bookingService.GetByID(c.UserContext(), bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	if lookup.Booking.MemberID != who.ID {
		return forbidden(c)
	}

	intent, err := h.paymentService.CreateIntent(c.UserContext(), bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Payment intent created", intent)
}
