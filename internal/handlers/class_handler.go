package handlers

import (
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ClassHandler struct {
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List returns the active classes with their enrollment counts.
func (h *ClassHandler) List(c *fiber.Ctx) error {
	classes, err := h.classService.ListActive(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]dto.ClassResponse, 0, len(classes))
	for _, class := range classes {
		members, err := h.classService.Members(c.UserContext(), class.ID)
		if err != nil {
			return serviceError(c, err)
		}
		out = append(out, dto.ClassResponse{Class: class, MembersEnrolled: len(members)})
	}
	return success(c, fiber.StatusOK, "Classes retrieved", out)
}

// Members is admin-only: it exposes member ids.
func (h *ClassHandler) Members(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid class id format")
	}
	members, err := h.classService.Members(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Class members retrieved", members)
}
