package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// TrainerApplication is a member's request to become a trainer. One row per
// user; a rejected applicant re-applies by resetting the same row.
type TrainerApplication struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Status         ApplicationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Skills         pq.StringArray    `gorm:"type:text[]" json:"skills"`
	Certifications pq.StringArray    `gorm:"type:text[]" json:"certifications"`
	Experience     string            `gorm:"type:text" json:"experience"`
	ProposedSlots  datatypes.JSON    `gorm:"type:jsonb;default:'[]'" json:"proposed_slots"`
	Feedback       string            `gorm:"type:text" json:"feedback,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	User           User              `gorm:"foreignKey:UserID" json:"user"`
}

func (a *TrainerApplication) SetProposedSlots(slots []Slot) error {
	b, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	a.ProposedSlots = datatypes.JSON(b)
	return nil
}

func (a *TrainerApplication) Slots() ([]Slot, error) {
	if len(a.ProposedSlots) == 0 {
		return nil, nil
	}
	var slots []Slot
	if err := json.Unmarshal(a.ProposedSlots, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
