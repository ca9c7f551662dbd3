package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// BrokerStatus is satisfied by events.Publisher.
type BrokerStatus interface {
	Healthy() bool
}

type HealthHandler struct {
	ping     func(ctx context.Context) error
	broker   BrokerStatus
	payments bool
}

// NewHealthHandler takes the database ping, an optional broker and whether a
// payment processor is configured.
func NewHealthHandler(ping func(ctx context.Context) error, broker BrokerStatus, paymentsConfigured bool) *HealthHandler {
	return &HealthHandler{ping: ping, broker: broker, payments: paymentsConfigured}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if err := h.ping(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	brokerStatus := "disabled"
	if h.broker != nil {
		brokerStatus = "ok"
		if !h.broker.Healthy() {
			brokerStatus = "unhealthy"
			status = "degraded"
		}
	}

	paymentStatus := "disabled"
	if h.payments {
		paymentStatus = "ok"
	}

	code := fiber.StatusOK
	if dbStatus != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Broker:    brokerStatus,
		Payments:  paymentStatus,
	})
}
