package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClass(t *testing.T) {
	var stored *models.Class
	classes := &mockClassRepo{
		createFn: func(ctx context.Context, class *models.Class) error {
			stored = class
			return nil
		},
	}
	svc := NewClassService(classes)

	class, err := svc.Create(context.Background(), ClassInput{
		ClassName: "  Morning HIIT ",
		Skills:    []string{"cardio", " "},
	})

	require.NoError(t, err)
	assert.Same(t, stored, class)
	assert.Equal(t, "Morning HIIT", class.ClassName)
	assert.Equal(t, models.ClassActive, class.Status)
}

func TestCreateClass_NameRequired(t *testing.T) {
	svc := NewClassService(&mockClassRepo{})

	_, err := svc.Create(context.Background(), ClassInput{ClassName: "   "})

	assert.ErrorIs(t, err, ErrClassNameRequired)
}

func TestClassMembers(t *testing.T) {
	classID := uuid.New()
	memberA, memberB := uuid.New(), uuid.New()
	classes := &mockClassRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Class, error) {
			return &models.Class{ID: id}, nil
		},
		membersFn: func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{memberA, memberB}, nil
		},
	}

	members, err := NewClassService(classes).Members(context.Background(), classID)

	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{memberA, memberB}, members)
}

func TestClassMembers_UnknownClass(t *testing.T) {
	_, err := NewClassService(&mockClassRepo{}).Members(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrClassNotFound)
}
