package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRepository owns the members' payment history rows.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error)
	ListByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.Booking, error)
	// MarkPaid flips a pending booking to paid. It reports false when no
	// pending booking with that id exists.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)
	DeleteForMember(ctx context.Context, memberID, id uuid.UUID) (int64, error)
	// ListPaidWithoutLedger returns paid bookings that never reached the
	// payments ledger.
	ListPaidWithoutLedger(ctx context.Context, limit int) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND slot_day = ? AND slot_time = ?", trainerID, slot.Day, slot.Time).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"paid_at":        paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *bookingRepository) DeleteForMember(ctx context.Context, memberID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND member_id = ?", id, memberID).
		Delete(&models.Booking{})
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) ListPaidWithoutLedger(ctx context.Context, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", models.PaymentPaid).
		Where("NOT EXISTS (SELECT 1 FROM payments p WHERE p.booking_id = bookings.id)").
		Order("paid_at ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
