package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RecordPending handles PATCH /users/activity/:email.
func (h *BookingHandler) RecordPending(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	email := c.Params("email")
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "email is required")
	}
	if !who.CanActForEmail(email) {
		return forbidden(c)
	}

	var req dto.RecordBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	var extra map[string]any
	if err := c.BodyParser(&extra); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	for _, k := range dto.RecordBookingKeys {
		delete(extra, k)
	}

	in := services.BookingInput{Price: req.Price, Extra: extra}
	if req.TrainerID != "" {
		id, err := uuid.Parse(req.TrainerID)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid trainer id format")
		}
		in.TrainerID = id
	}
	if req.Slot != nil {
		in.Slot = *req.Slot
	}
	if req.ClassID != "" {
		id, err := uuid.Parse(req.ClassID)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid class id format")
		}
		in.ClassID = &id
	}

	booking, err := h.bookingService.RecordPending(c.UserContext(), email, in)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Booking recorded", dto.RecordBookingResponse{
		BookingID: booking.ID,
		Booking:   *booking,
	})
}

// PaymentData handles GET /users/paymentData/:id.
func (h *BookingHandler) PaymentData(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid payment id format")
	}

	lookup, err := h.bookingService.GetByID(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if !who.CanActFor(lookup.Booking.MemberID) {
		return forbidden(c)
	}
	return success(c, fiber.StatusOK, "Payment data retrieved", lookup)
}
