package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotRepository interface {
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error)
	// InsertIfAbsent stores the slots the trainer does not offer yet and
	// returns how many rows were actually inserted.
	InsertIfAbsent(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error)
	Delete(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error) {
	var slots []models.TrainerSlot
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) InsertIfAbsent(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	rows := make([]models.TrainerSlot, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, models.TrainerSlot{
			ID:        uuid.New(),
			TrainerID: trainerID,
			Day:       s.Day,
			Time:      s.Time,
		})
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trainer_id"}, {Name: "slot_day"}, {Name: "slot_time"}},
			DoNothing: true,
		}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

func (r *slotRepository) Delete(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("trainer_id = ? AND slot_day = ? AND slot_time = ?", trainerID, slot.Day, slot.Time).
		Delete(&models.TrainerSlot{})
	return res.RowsAffected, res.Error
}
