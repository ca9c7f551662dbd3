package dto

import (
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/google/uuid"
)

// Request bodies of the booking endpoints keep the camelCase keys the web
// client already sends.

type AddSlotsRequest struct {
	TrainerID string        `json:"trainerId" validate:"required,uuid"`
	Slots     []models.Slot `json:"slots" validate:"required,min=1,dive"`
}

// DeleteSlotRequest removes either a whole slot (TrainerID + Slot) or a
// single booking (TrainerID + BookingID + UserID).
type DeleteSlotRequest struct {
	TrainerID string       `json:"trainerId" validate:"required"`
	Slot      *models.Slot `json:"slot"`
	BookingID string       `json:"bookingId"`
	UserID    string       `json:"userId"`
}

// RecordBookingRequest holds the known booking keys. Any other key in the
// body is kept as an extra field on the booking.
type RecordBookingRequest struct {
	TrainerID string       `json:"trainerId"`
	Slot      *models.Slot `json:"slot"`
	ClassID   string       `json:"classId"`
	Price     string       `json:"price"`
}

var RecordBookingKeys = []string{"trainerId", "slot", "classId", "price", "bookingId", "paymentStatus"}

type CreatePaymentIntentRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid"`
}

type AddSlotsResponse struct {
	AddedCount int64 `json:"added_count"`
}

type DeleteSlotResponse struct {
	DeletedBookingCount int `json:"deleted_booking_count"`
}

type RecordBookingResponse struct {
	BookingID uuid.UUID      `json:"booking_id"`
	Booking   models.Booking `json:"booking"`
}

// PaymentSummaryResponse reports TotalPaid as the exact decimal sum, encoded
// as a JSON number.
type PaymentSummaryResponse struct {
	TotalPaid          json.Number      `json:"total_paid"`
	RecentTransactions []models.Payment `json:"recent_transactions"`
}

type ReconcileResponse struct {
	Repaired int `json:"repaired"`
}

type ActivityLog struct {
	CreatedAt      time.Time           `json:"created_at"`
	LastLogin      *time.Time          `json:"last_login,omitempty"`
	PaymentHistory []models.Booking    `json:"payment_history"`
	BookedSlots    []models.BookedSlot `json:"booked_slots,omitempty"`
}

type ProfileResponse struct {
	User        UserResponse               `json:"user"`
	ActivityLog ActivityLog                `json:"activity_log"`
	Application *models.TrainerApplication `json:"trainer_application,omitempty"`
}
