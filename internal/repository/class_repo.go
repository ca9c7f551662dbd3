package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Class, error)
	ListActive(ctx context.Context) ([]models.Class, error)
	// AddMember reports whether the member was newly enrolled.
	AddMember(ctx context.Context, classID, userID uuid.UUID) (bool, error)
	Members(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) ListActive(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ClassActive).
		Order("class_name ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) AddMember(ctx context.Context, classID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ClassEnrollment{ClassID: classID, UserID: userID})
	return res.RowsAffected == 1, res.Error
}

func (r *classRepository) Members(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.ClassEnrollment{}).
		Where("class_id = ?", classID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
