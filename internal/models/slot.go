package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Slot is a (day, time) pair a trainer offers, e.g. ("Mon", "10am").
type Slot struct {
	Day  string `gorm:"column:slot_day;size:20;not null" json:"day" validate:"required"`
	Time string `gorm:"column:slot_time;size:20;not null" json:"time" validate:"required"`
}

// Key is the composite identity used for set difference and uniqueness.
func (s Slot) Key() string {
	return strings.TrimSpace(s.Day) + "|" + strings.TrimSpace(s.Time)
}

func (s Slot) Normalize() Slot {
	return Slot{Day: strings.TrimSpace(s.Day), Time: strings.TrimSpace(s.Time)}
}

func (s Slot) Valid() bool {
	n := s.Normalize()
	return n.Day != "" && n.Time != ""
}

// TrainerSlot is one stored slot. The unique index guarantees no trainer
// offers the same (day, time) twice, even under concurrent adds.
type TrainerSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TrainerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trainer_slot,priority:1" json:"trainer_id"`
	Day       string    `gorm:"column:slot_day;size:20;not null;uniqueIndex:idx_trainer_slot,priority:2" json:"day"`
	Time      string    `gorm:"column:slot_time;size:20;not null;uniqueIndex:idx_trainer_slot,priority:3" json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

func (TrainerSlot) TableName() string { return "trainer_slots" }

func (t TrainerSlot) Slot() Slot { return Slot{Day: t.Day, Time: t.Time} }
