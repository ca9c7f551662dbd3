package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService    services.UserService
	bookingService services.BookingService
}

func NewUserHandler(userService services.UserService, bookingService services.BookingService) *UserHandler {
	return &UserHandler{userService: userService, bookingService: bookingService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	profile, err := h.userService.Profile(c.UserContext(), who.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Profile retrieved", profile)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), who.ID, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Profile updated", user)
}

// PaymentHistory lists the caller's bookings, oldest first.
func (h *UserHandler) PaymentHistory(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	history, err := h.bookingService.ListHistory(c.UserContext(), who.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Payment history retrieved", history)
}
