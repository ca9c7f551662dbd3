package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookedSlotRepository owns the trainers' copies of finalized bookings.
type BookedSlotRepository interface {
	// Append is a no-op when the booking is already recorded.
	Append(ctx context.Context, fb models.FinalizedBooking) error
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error)
	ListByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.BookedSlot, error)
	DeleteByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error)
	DeleteByBooking(ctx context.Context, trainerID, bookingID uuid.UUID) (int64, error)
}

type bookedSlotRepository struct {
	db *gorm.DB
}

func NewBookedSlotRepository(db *gorm.DB) BookedSlotRepository {
	return &bookedSlotRepository{db: db}
}

func (r *bookedSlotRepository) Append(ctx context.Context, fb models.FinalizedBooking) error {
	row := models.BookedSlot{ID: uuid.New(), FinalizedBooking: fb}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "booking_id"}}, DoNothing: true}).
		Create(&row).Error
}

func (r *bookedSlotRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error) {
	var rows []models.BookedSlot
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("paid_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *bookedSlotRepository) ListByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.BookedSlot, error) {
	var rows []models.BookedSlot
	err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND slot_day = ? AND slot_time = ?", trainerID, slot.Day, slot.Time).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *bookedSlotRepository) DeleteByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("trainer_id = ? AND slot_day = ? AND slot_time = ?", trainerID, slot.Day, slot.Time).
		Delete(&models.BookedSlot{})
	return res.RowsAffected, res.Error
}

func (r *bookedSlotRepository) DeleteByBooking(ctx context.Context, trainerID, bookingID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("trainer_id = ? AND booking_id = ?", trainerID, bookingID).
		Delete(&models.BookedSlot{})
	return res.RowsAffected, res.Error
}
