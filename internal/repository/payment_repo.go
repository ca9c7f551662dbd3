package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository is the global payments ledger.
type PaymentRepository interface {
	// Insert records a finalized booking. A second insert for the same
	// booking returns the existing ledger row.
	Insert(ctx context.Context, fb models.FinalizedBooking) (*models.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	Recent(ctx context.Context, status models.PaymentStatus, limit int) ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Insert(ctx context.Context, fb models.FinalizedBooking) (*models.Payment, error) {
	row := models.Payment{ID: uuid.New(), FinalizedBooking: fb}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "booking_id"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return r.FindByBookingID(ctx, fb.BookingID)
	}
	return &row, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	var rows []models.Payment
	if err := r.db.WithContext(ctx).Where("payment_status = ?", status).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *paymentRepository) Recent(ctx context.Context, status models.PaymentStatus, limit int) ([]models.Payment, error) {
	var rows []models.Payment
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", status).
		Order("paid_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
