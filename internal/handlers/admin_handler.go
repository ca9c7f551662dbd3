package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxReconcileBatch = 1000

// AdminHandler serves the back-office routes. Callers are already vetted by
// middleware.AdminRequired.
type AdminHandler struct {
	reconciler     services.Reconciler
	trainerService services.TrainerService
	classService   services.ClassService
	reconcileBatch int
}

func NewAdminHandler(
	reconciler services.Reconciler,
	trainerService services.TrainerService,
	classService services.ClassService,
	reconcileBatch int,
) *AdminHandler {
	return &AdminHandler{
		reconciler:     reconciler,
		trainerService: trainerService,
		classService:   classService,
		reconcileBatch: reconcileBatch,
	}
}

// PaymentSummary handles GET /admin/payment-summary.
func (h *AdminHandler) PaymentSummary(c *fiber.Ctx) error {
	summary, err := h.reconciler.PaymentSummary(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Payment summary retrieved", dto.PaymentSummaryResponse{
		TotalPaid:          json.Number(summary.TotalPaid.String()),
		RecentTransactions: summary.RecentTransactions,
	})
}

// Reconcile re-runs the fan-out for paid bookings that never reached the
// ledger. ?limit= caps the batch.
func (h *AdminHandler) Reconcile(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(h.reconcileBatch)))
	if err != nil || limit <= 0 {
		return fail(c, fiber.StatusBadRequest, "limit must be a positive integer")
	}
	if limit > maxReconcileBatch {
		limit = maxReconcileBatch
	}

	repaired, err := h.reconciler.ReconcileOrphans(c.UserContext(), limit)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Reconciliation complete", dto.ReconcileResponse{Repaired: repaired})
}

func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	status := models.ApplicationStatus(c.Query("status", string(models.ApplicationPending)))
	switch status {
	case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
	default:
		return fail(c, fiber.StatusBadRequest, "status must be pending, approved or rejected")
	}

	apps, err := h.trainerService.ListApplications(c.UserContext(), status)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Applications retrieved", apps)
}

func (h *AdminHandler) ApproveApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid application id format")
	}
	app, err := h.trainerService.Approve(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Application approved", app)
}

func (h *AdminHandler) RejectApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid application id format")
	}
	var req dto.RejectApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	app, err := h.trainerService.Reject(c.UserContext(), id, req.Feedback)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Application rejected", app)
}

func (h *AdminHandler) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	class, err := h.classService.Create(c.UserContext(), services.ClassInput{
		ClassName:       req.ClassName,
		Description:     req.Description,
		Skills:          req.Skills,
		DifficultyLevel: req.DifficultyLevel,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "Class created", dto.ClassResponse{Class: *class})
}
