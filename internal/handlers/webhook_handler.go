package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/payments"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	paymentService services.PaymentService
}

func NewWebhookHandler(paymentService services.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// HandlePaymentNotification receives the processor's status callback. The
// processor retries on non-2xx, so bookings that are already paid answer 200.
func (h *WebhookHandler) HandlePaymentNotification(c *fiber.Ctx) error {
	var n payments.Notification
	if err := c.BodyParser(&n); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}
	if n.OrderID == "" || n.SignatureKey == "" {
		return fail(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}

	result, err := h.paymentService.HandleNotification(c.UserContext(), n)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNotFound):
		slog.Info("webhook for booking already finalized", "order_id", n.OrderID)
		return success(c, fiber.StatusOK, "Already processed", nil)
	default:
		if !errors.Is(err, services.ErrInvalidInput) && !errors.Is(err, services.ErrUnauthorized) {
			slog.Error("webhook processing failed", "order_id", n.OrderID, "error", err)
		}
		return serviceError(c, err)
	}

	if result == nil {
		return success(c, fiber.StatusOK, "Notification received", nil)
	}
	slog.Info("webhook processed", "order_id", n.OrderID, "payment_id", result.PaymentID.String())
	return success(c, fiber.StatusOK, "Payment finalized", result)
}
