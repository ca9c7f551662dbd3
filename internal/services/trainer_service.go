package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationInput struct {
	Skills         []string
	Certifications []string
	Experience     string
	Slots          []models.Slot
}

// TrainerService handles the member-to-trainer application workflow.
type TrainerService interface {
	Apply(ctx context.Context, userID uuid.UUID, in ApplicationInput) (*models.TrainerApplication, error)
	ListApplications(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error)
	Approve(ctx context.Context, applicationID uuid.UUID) (*models.TrainerApplication, error)
	Reject(ctx context.Context, applicationID uuid.UUID, feedback string) (*models.TrainerApplication, error)
	ListTrainers(ctx context.Context) ([]models.User, error)
}

type trainerService struct {
	users        repository.UserRepository
	applications repository.ApplicationRepository
	slots        repository.SlotRepository
	now          func() time.Time
}

func NewTrainerService(
	users repository.UserRepository,
	applications repository.ApplicationRepository,
	slots repository.SlotRepository,
) TrainerService {
	return &trainerService{
		users:        users,
		applications: applications,
		slots:        slots,
		now:          time.Now,
	}
}

func (s *trainerService) Apply(ctx context.Context, userID uuid.UUID, in ApplicationInput) (*models.TrainerApplication, error) {
	skills := cleanList(in.Skills)
	if len(skills) == 0 {
		return nil, ErrSkillsRequired
	}
	for _, slot := range in.Slots {
		if !slot.Valid() {
			return nil, ErrInvalidSlot
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Role != models.RoleMember {
		return nil, ErrAlreadyTrainer
	}

	app, err := s.applications.FindByUser(ctx, userID)
	switch {
	case err == nil:
		switch app.Status {
		case models.ApplicationPending:
			return nil, ErrApplicationPending
		case models.ApplicationApproved:
			return nil, ErrAlreadyTrainer
		}
		// Rejected applicants start over on the same row.
		app.Feedback = ""
		app.ReviewedAt = nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		app = &models.TrainerApplication{ID: uuid.New(), UserID: userID}
	default:
		return nil, fmt.Errorf("find application: %w", err)
	}

	app.Status = models.ApplicationPending
	app.Skills = skills
	app.Certifications = cleanList(in.Certifications)
	app.Experience = strings.TrimSpace(in.Experience)
	if err := app.SetProposedSlots(SlotDifference(nil, in.Slots)); err != nil {
		return nil, fmt.Errorf("encode slots: %w", err)
	}
	if err := s.applications.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	slog.Info("trainer application submitted", "user_id", userID.String())
	return app, nil
}

func (s *trainerService) ListApplications(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error) {
	return s.applications.ListByStatus(ctx, status)
}

// Approve promotes the applicant to trainer and publishes the slots they
// proposed. Promotion and slot insertion are separate writes.
func (s *trainerService) Approve(ctx context.Context, applicationID uuid.UUID) (*models.TrainerApplication, error) {
	app, err := s.review(ctx, applicationID, models.ApplicationApproved, "")
	if err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, app.UserID, map[string]interface{}{"role": models.RoleTrainer}); err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}

	slots, err := app.Slots()
	if err != nil {
		slog.Error("failed to decode proposed slots", "user_id", app.UserID.String(), "error", err)
	} else if len(slots) > 0 {
		if _, err := s.slots.InsertIfAbsent(ctx, app.UserID, slots); err != nil {
			slog.Error("failed to publish proposed slots", "user_id", app.UserID.String(), "error", err)
		}
	}

	app.User.Role = models.RoleTrainer
	return app, nil
}

func (s *trainerService) Reject(ctx context.Context, applicationID uuid.UUID, feedback string) (*models.TrainerApplication, error) {
	return s.review(ctx, applicationID, models.ApplicationRejected, strings.TrimSpace(feedback))
}

func (s *trainerService) review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback string) (*models.TrainerApplication, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}

	at := s.now().UTC()
	ok, err := s.applications.Review(ctx, id, status, feedback, at)
	if err != nil {
		return nil, fmt.Errorf("review application: %w", err)
	}
	if !ok {
		return nil, ErrApplicationProcessed
	}

	app.Status = status
	app.Feedback = feedback
	app.ReviewedAt = &at
	slog.Info("trainer application reviewed", "user_id", app.UserID.String(), "status", string(status))
	return app, nil
}

func (s *trainerService) ListTrainers(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleTrainer)
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
