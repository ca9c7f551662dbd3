package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	User    *handlers.UserHandler
	Slot    *handlers.SlotHandler
	Booking *handlers.BookingHandler
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
	Trainer *handlers.TrainerHandler
	Class   *handlers.ClassHandler
	Admin   *handlers.AdminHandler
}

func Setup(app *fiber.App, cfg *config.Config, users middleware.UserLookup, h Handlers) {
	api := app.Group("/api", middleware.RequestTimeout(cfg.RequestTimeout))

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/google", h.Auth.GoogleSignIn)

	// JWT is applied per route so public routes stay public.
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, h.Auth.Logout)

	// Public browsing
	api.Get("/trainers", h.Trainer.ListTrainers)
	api.Get("/trainers/:id/slots", h.Slot.ListSlots)
	api.Get("/classes", h.Class.List)

	// Slot registry
	api.Patch("/trainers/add-slots", jwt, h.Slot.AddSlots)
	api.Delete("/delete-slot", jwt, h.Slot.DeleteSlot)
	api.Get("/trainers/:id/booked-slots", jwt, h.Slot.BookedSlots)
	api.Post("/trainers/apply", jwt, h.Trainer.Apply)

	// Member profile and booking ledger
	api.Get("/users/me", jwt, h.User.Me)
	api.Patch("/users/me", jwt, h.User.UpdateMe)
	api.Get("/users/me/payment-history", jwt, h.User.PaymentHistory)
	api.Patch("/users/activity/:email", jwt, h.Booking.RecordPending)
	api.Get("/users/paymentData/:id", jwt, h.Booking.PaymentData)

	// Payments
	api.Patch("/users/payment-status/:paymentId", jwt, h.Payment.Finalize)
	api.Post("/create-payment-intent", jwt, h.Payment.CreateIntent)

	// Processor callbacks are verified against the processor, no JWT.
	webhooks := api.Group("/webhooks")
	webhooks.Post("/payments", h.Webhook.HandlePaymentNotification)

	admin := api.Group("/admin", jwt, middleware.AdminRequired(users, cfg))
	admin.Get("/payment-summary", h.Admin.PaymentSummary)
	admin.Post("/reconcile", h.Admin.Reconcile)
	admin.Get("/trainer-applications", h.Admin.ListApplications)
	admin.Post("/trainer-applications/:id/approve", h.Admin.ApproveApplication)
	admin.Post("/trainer-applications/:id/reject", h.Admin.RejectApplication)
	admin.Post("/classes", h.Admin.CreateClass)
	admin.Get("/classes/:id/members", h.Class.Members)
}
