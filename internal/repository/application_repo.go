package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.TrainerApplication, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.TrainerApplication, error)
	ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error)
	Save(ctx context.Context, app *models.TrainerApplication) error
	// Review moves a pending application to approved or rejected. It
	// reports false when the application was not pending.
	Review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback string, at time.Time) (bool, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TrainerApplication, error) {
	var app models.TrainerApplication
	if err := r.db.WithContext(ctx).Preload("User").First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.TrainerApplication, error) {
	var app models.TrainerApplication
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error) {
	var apps []models.TrainerApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) Save(ctx context.Context, app *models.TrainerApplication) error {
	return r.db.WithContext(ctx).Omit("User").Save(app).Error
}

func (r *applicationRepository) Review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.TrainerApplication{}).
		Where("id = ? AND status = ?", id, models.ApplicationPending).
		Updates(map[string]interface{}{
			"status":      status,
			"feedback":    feedback,
			"reviewed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
