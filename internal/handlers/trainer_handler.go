package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TrainerHandler struct {
	trainerService services.TrainerService
}

func NewTrainerHandler(trainerService services.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// Apply handles POST /trainers/apply for the signed-in member.
func (h *TrainerHandler) Apply(c *fiber.Ctx) error {
	who, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.ApplyTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	app, err := h.trainerService.Apply(c.UserContext(), who.ID, services.ApplicationInput{
		Skills:         req.Skills,
		Certifications: req.Certifications,
		Experience:     req.Experience,
		Slots:          req.Slots,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "Application submitted", app)
}

func (h *TrainerHandler) ListTrainers(c *fiber.Ctx) error {
	trainers, err := h.trainerService.ListTrainers(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(trainers))
	for i := range trainers {
		out = append(out, services.ToUserResponse(&trainers[i]))
	}
	return success(c, fiber.StatusOK, "Trainers retrieved", out)
}
