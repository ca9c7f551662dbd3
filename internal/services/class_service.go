package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassInput struct {
	ClassName       string
	Description     string
	Skills          []string
	DifficultyLevel string
}

type ClassService interface {
	Create(ctx context.Context, in ClassInput) (*models.Class, error)
	ListActive(ctx context.Context) ([]models.Class, error)
	Members(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)
}

type classService struct {
	classes repository.ClassRepository
}

func NewClassService(classes repository.ClassRepository) ClassService {
	return &classService{classes: classes}
}

func (s *classService) Create(ctx context.Context, in ClassInput) (*models.Class, error) {
	name := strings.TrimSpace(in.ClassName)
	if name == "" {
		return nil, ErrClassNameRequired
	}
	class := &models.Class{
		ID:              uuid.New(),
		ClassName:       name,
		Description:     strings.TrimSpace(in.Description),
		Skills:          cleanList(in.Skills),
		DifficultyLevel: in.DifficultyLevel,
		Status:          models.ClassActive,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return class, nil
}

func (s *classService) ListActive(ctx context.Context) ([]models.Class, error) {
	return s.classes.ListActive(ctx)
}

func (s *classService) Members(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return s.classes.Members(ctx, classID)
}
