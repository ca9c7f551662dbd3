package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking is one entry of a member's payment history. It stays pending
// until the payment step completes and is flipped to paid exactly once.
type Booking struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"member_id"`
	TrainerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"trainer_id"`
	ClassID       *uuid.UUID     `gorm:"type:uuid" json:"class_id,omitempty"`
	Slot          Slot           `gorm:"embedded" json:"slot"`
	Price         string         `gorm:"size:32" json:"price"`
	PaymentStatus PaymentStatus  `gorm:"size:20;not null;default:'pending';index" json:"payment_status"`
	Extra         datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra,omitempty"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// FinalizedBooking is the paid copy of a Booking enriched with the member's
// identity. It is shared by the trainer's booked slots and the payments ledger.
type FinalizedBooking struct {
	BookingID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	TrainerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"trainer_id"`
	ClassID       *uuid.UUID     `gorm:"type:uuid" json:"class_id,omitempty"`
	Slot          Slot           `gorm:"embedded" json:"slot"`
	Price         string         `gorm:"size:32" json:"price"`
	PaymentStatus PaymentStatus  `gorm:"size:20;not null;index" json:"payment_status"`
	Extra         datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra,omitempty"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail     string         `gorm:"size:255" json:"user_email"`
	UserName      string         `gorm:"size:120" json:"user_name"`
	PaidAt        time.Time      `gorm:"not null;index" json:"paid_at"`
}

// NewFinalizedBooking copies a paid booking and stamps the member identity.
func NewFinalizedBooking(b *Booking, member *User) FinalizedBooking {
	paidAt := time.Now().UTC()
	if b.PaidAt != nil {
		paidAt = *b.PaidAt
	}
	return FinalizedBooking{
		BookingID:     b.ID,
		TrainerID:     b.TrainerID,
		ClassID:       b.ClassID,
		Slot:          b.Slot,
		Price:         b.Price,
		PaymentStatus: PaymentPaid,
		Extra:         b.Extra,
		UserID:        member.ID,
		UserEmail:     member.Email,
		UserName:      member.Name,
		PaidAt:        paidAt,
	}
}

// BookedSlot is a finalized booking as seen from the trainer's side.
type BookedSlot struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FinalizedBooking `gorm:"embedded"`
	CreatedAt        time.Time `json:"created_at"`
}

// Payment is a row of the global payments ledger. Its ID is the canonical
// payment record id returned to clients.
type Payment struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FinalizedBooking `gorm:"embedded"`
	CreatedAt        time.Time `json:"created_at"`
}
