package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/jobs"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/payments"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(cfg.AppEnv),
		pgLogHandler,
	)))

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	tokenRepo := repository.NewRefreshTokenRepository(database.DB)
	slotRepo := repository.NewSlotRepository(database.DB)
	bookingRepo := repository.NewBookingRepository(database.DB)
	bookedSlotRepo := repository.NewBookedSlotRepository(database.DB)
	paymentRepo := repository.NewPaymentRepository(database.DB)
	classRepo := repository.NewClassRepository(database.DB)
	applicationRepo := repository.NewApplicationRepository(database.DB)

	// Message broker (optional)
	var (
		publisher    *events.Publisher
		eventSink    services.EventPublisher
		brokerStatus handlers.BrokerStatus
	)
	if cfg.RabbitURL != "" {
		p, err := events.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			slog.Error("event publisher unavailable, continuing without events", "error", err)
		} else {
			publisher = p
			eventSink = p
			brokerStatus = p
		}
	}

	// Payment processor (optional)
	var processor payments.Processor
	if cfg.MidtransServerKey != "" {
		processor = payments.NewMidtransProcessor(cfg.MidtransServerKey, cfg.MidtransProduction())
		slog.Info("payment processor configured", "provider", "midtrans", "env", cfg.MidtransEnv)
	}

	var google services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = services.NewGoogleVerifier(cfg.GoogleClientID)
	}

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, cfg, google)
	slotService := services.NewSlotService(userRepo, slotRepo, bookingRepo, bookedSlotRepo, eventSink)
	bookingService := services.NewBookingService(userRepo, slotRepo, bookingRepo, classRepo, eventSink)
	reconciler := services.NewReconciler(userRepo, bookingRepo, bookedSlotRepo, paymentRepo, classRepo, eventSink)
	paymentService := services.NewPaymentService(userRepo, bookingRepo, processor, reconciler)
	trainerService := services.NewTrainerService(userRepo, applicationRepo, slotRepo)
	classService := services.NewClassService(classRepo)
	userService := services.NewUserService(userRepo, bookingRepo, bookedSlotRepo, applicationRepo)

	// Broker consumer: payment.succeeded -> Finalize
	rootCtx, stopConsumers := context.WithCancel(context.Background())
	var consumer *events.Consumer
	if cfg.RabbitURL != "" {
		c, err := events.NewConsumer(cfg.RabbitURL, cfg.EventsExchange, cfg.PaymentQueue, []string{events.KeyPaymentSucceeded})
		if err != nil {
			slog.Error("payment consumer unavailable", "error", err)
		} else {
			consumer = c
			if err := events.NewPaymentConsumer(reconciler, c).Run(rootCtx); err != nil {
				slog.Error("payment consumer failed to start", "error", err)
			}
		}
	}

	// Scheduled jobs
	scheduler := jobs.NewScheduler()
	for _, job := range []jobs.Job{
		jobs.ReconcileSweep(cfg.ReconcileCron, reconciler, cfg.ReconcileBatch),
		jobs.LogPurge(cfg.LogCleanupCron, database.DB, cfg.LogRetentionDays),
	} {
		if err := scheduler.Add(job); err != nil {
			slog.Error("job not scheduled", "error", err)
		}
	}
	scheduler.Start()

	// Handlers
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Health:  handlers.NewHealthHandler(database.Ping, brokerStatus, processor != nil),
		User:    handlers.NewUserHandler(userService, bookingService),
		Slot:    handlers.NewSlotHandler(slotService),
		Booking: handlers.NewBookingHandler(bookingService),
		Payment: handlers.NewPaymentHandler(bookingService, paymentService, reconciler),
		Webhook: handlers.NewWebhookHandler(paymentService),
		Trainer: handlers.NewTrainerHandler(trainerService),
		Class:   handlers.NewClassHandler(classService),
		Admin:   handlers.NewAdminHandler(reconciler, trainerService, classService, cfg.ReconcileBatch),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, userRepo, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stopConsumers()
	if consumer != nil {
		_ = consumer.Close()
	}
	if publisher != nil {
		_ = publisher.Close()
	}

	jobsCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	scheduler.Stop(jobsCtx)
	cancel()

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Envelope{Success: false, Message: message})
}
