package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTrainerService struct {
	listApplicationsFn func(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error)
	rejectFn           func(ctx context.Context, id uuid.UUID, feedback string) (*models.TrainerApplication, error)
}

func (m *mockTrainerService) Apply(ctx context.Context, userID uuid.UUID, in services.ApplicationInput) (*models.TrainerApplication, error) {
	return &models.TrainerApplication{ID: uuid.New(), UserID: userID, Status: models.ApplicationPending}, nil
}
func (m *mockTrainerService) ListApplications(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error) {
	if m.listApplicationsFn != nil {
		return m.listApplicationsFn(ctx, status)
	}
	return nil, nil
}
func (m *mockTrainerService) Approve(ctx context.Context, id uuid.UUID) (*models.TrainerApplication, error) {
	return nil, services.ErrApplicationProcessed
}
func (m *mockTrainerService) Reject(ctx context.Context, id uuid.UUID, feedback string) (*models.TrainerApplication, error) {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, id, feedback)
	}
	return &models.TrainerApplication{ID: id, Status: models.ApplicationRejected, Feedback: feedback}, nil
}
func (m *mockTrainerService) ListTrainers(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

type mockClassService struct {
	createFn func(ctx context.Context, in services.ClassInput) (*models.Class, error)
}

func (m *mockClassService) Create(ctx context.Context, in services.ClassInput) (*models.Class, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &models.Class{ID: uuid.New(), ClassName: in.ClassName, Status: models.ClassActive}, nil
}
func (m *mockClassService) ListActive(ctx context.Context) ([]models.Class, error) { return nil, nil }
func (m *mockClassService) Members(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	return nil, services.ErrClassNotFound
}

func adminApp(rec services.Reconciler, trainers services.TrainerService, classes services.ClassService) *fiber.App {
	h := NewAdminHandler(rec, trainers, classes, 100)
	app := fiber.New()
	app.Use(adminCaller())
	app.Get("/admin/payment-summary", h.PaymentSummary)
	app.Post("/admin/reconcile", h.Reconcile)
	app.Get("/admin/trainer-applications", h.ListApplications)
	app.Post("/admin/trainer-applications/:id/approve", h.ApproveApplication)
	app.Post("/admin/trainer-applications/:id/reject", h.RejectApplication)
	app.Post("/admin/classes", h.CreateClass)
	return app
}

func TestPaymentSummary(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  json.Number
	}{
		{"small sum", "35.50", "35.5"},
		{"beyond float64 precision", "12345678901234567.89", "12345678901234567.89"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &mockReconciler{
				paymentSummaryFn: func(ctx context.Context) (*services.PaymentSummary, error) {
					return &services.PaymentSummary{
						TotalPaid:          decimal.RequireFromString(tt.total),
						RecentTransactions: []models.Payment{{FinalizedBooking: models.FinalizedBooking{BookingID: uuid.New(), Price: "$10.00"}}},
					}, nil
				},
			}

			status, env := doJSON(t, adminApp(rec, &mockTrainerService{}, &mockClassService{}), http.MethodGet, "/admin/payment-summary", "")

			require.Equal(t, fiber.StatusOK, status)
			assert.Contains(t, string(env.Data), `"total_paid":`+tt.want.String())
			var data dto.PaymentSummaryResponse
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tt.want, data.TotalPaid)
			assert.Len(t, data.RecentTransactions, 1)
		})
	}
}

func TestReconcile_Limit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default batch", "", 100},
		{"explicit", "?limit=5", 5},
		{"capped", "?limit=50000", maxReconcileBatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var limit int
			rec := &mockReconciler{
				reconcileOrphansFn: func(ctx context.Context, l int) (int, error) {
					limit = l
					return 2, nil
				},
			}
			status, env := doJSON(t, adminApp(rec, &mockTrainerService{}, &mockClassService{}), http.MethodPost, "/admin/reconcile"+tt.query, "")

			require.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, tt.want, limit)
			assert.JSONEq(t, `{"repaired":2}`, string(env.Data))
		})
	}

	status, _ := doJSON(t, adminApp(&mockReconciler{}, &mockTrainerService{}, &mockClassService{}), http.MethodPost, "/admin/reconcile?limit=-1", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListApplications_Status(t *testing.T) {
	var asked models.ApplicationStatus
	trainers := &mockTrainerService{
		listApplicationsFn: func(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error) {
			asked = status
			return []models.TrainerApplication{}, nil
		},
	}
	app := adminApp(&mockReconciler{}, trainers, &mockClassService{})

	status, _ := doJSON(t, app, http.MethodGet, "/admin/trainer-applications", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.ApplicationPending, asked)

	status, _ = doJSON(t, app, http.MethodGet, "/admin/trainer-applications?status=rejected", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.ApplicationRejected, asked)

	status, _ = doJSON(t, app, http.MethodGet, "/admin/trainer-applications?status=archived", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestReviewApplications(t *testing.T) {
	app := adminApp(&mockReconciler{}, &mockTrainerService{}, &mockClassService{})

	status, env := doJSON(t, app, http.MethodPost, "/admin/trainer-applications/"+uuid.NewString()+"/approve", "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "application already processed", env.Message)

	status, env = doJSON(t, app, http.MethodPost, "/admin/trainer-applications/"+uuid.NewString()+"/reject", `{"feedback":"needs certification"}`)
	require.Equal(t, fiber.StatusOK, status)
	var rejected models.TrainerApplication
	require.NoError(t, json.Unmarshal(env.Data, &rejected))
	assert.Equal(t, models.ApplicationRejected, rejected.Status)
	assert.Equal(t, "needs certification", rejected.Feedback)

	status, _ = doJSON(t, app, http.MethodPost, "/admin/trainer-applications/not-a-uuid/approve", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateClass_Handler(t *testing.T) {
	app := adminApp(&mockReconciler{}, &mockTrainerService{}, &mockClassService{})

	status, env := doJSON(t, app, http.MethodPost, "/admin/classes", `{"class_name":"Morning HIIT","skills":["cardio"]}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Class created", env.Message)

	failing := &mockClassService{
		createFn: func(ctx context.Context, in services.ClassInput) (*models.Class, error) {
			return nil, errors.New("duplicate key")
		},
	}
	status, _ = doJSON(t, adminApp(&mockReconciler{}, &mockTrainerService{}, failing), http.MethodPost, "/admin/classes", `{"class_name":"Morning HIIT"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
}
