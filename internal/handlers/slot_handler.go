package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SlotHandler struct {
	slotService services.SlotService
}

func NewSlotHandler(slotService services.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

// AddSlots handles PATCH /trainers/add-slots.
func (h *SlotHandler) AddSlots(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.AddSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}
	trainerID, err := uuid.Parse(req.TrainerID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid trainer id format")
	}
	if !who.CanActFor(trainerID) {
		return forbidden(c)
	}

	added, err := h.slotService.AddSlots(c.UserContext(), trainerID, req.Slots)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Slots added successfully", dto.AddSlotsResponse{AddedCount: added})
}

// DeleteSlot handles DELETE /delete-slot. With a slot in the body the whole
// slot is removed; with bookingId and userId only that booking is removed.
func (h *SlotHandler) DeleteSlot(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.DeleteSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	trainerID, err := uuid.Parse(req.TrainerID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid trainer id format")
	}
	if !who.CanActFor(trainerID) {
		return forbidden(c)
	}

	if req.BookingID != "" || req.UserID != "" {
		bookingID, err := uuid.Parse(req.BookingID)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid booking id format")
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid user id format")
		}
		if err := h.slotService.DeleteBooking(c.UserContext(), trainerID, bookingID, userID); err != nil {
			return serviceError(c, err)
		}
		return success(c, fiber.StatusOK, "Booking deleted successfully", nil)
	}

	if req.Slot == nil {
		return fail(c, fiber.StatusBadRequest, "slot or bookingId is required")
	}
	deleted, err := h.slotService.DeleteSlot(c.UserContext(), trainerID, *req.Slot)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Slot deleted successfully", dto.DeleteSlotResponse{DeletedBookingCount: deleted})
}

func (h *SlotHandler) ListSlots(c *fiber.Ctx) error {
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid trainer id format")
	}
	slots, err := h.slotService.ListSlots(c.UserContext(), trainerID)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Slots retrieved", slots)
}

func (h *SlotHandler) BookedSlots(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid trainer id format")
	}
	if !who.CanActFor(trainerID) {
		return forbidden(c)
	}
	booked, err := h.slotService.ListBookedSlots(c.UserContext(), trainerID)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Booked slots retrieved", booked)
}
