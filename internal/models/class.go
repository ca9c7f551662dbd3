package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ClassStatus string

const (
	ClassActive   ClassStatus = "active"
	ClassArchived ClassStatus = "archived"
)

type Class struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassName       string         `gorm:"size:150;not null" json:"class_name"`
	Description     string         `gorm:"type:text" json:"description"`
	Skills          pq.StringArray `gorm:"type:text[]" json:"skills"`
	DifficultyLevel string         `gorm:"size:30" json:"difficulty_level"`
	Status          ClassStatus    `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ClassEnrollment is one member of a class's membersEnrolled set. The
// composite primary key makes enrollment idempotent.
type ClassEnrollment struct {
	ClassID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"class_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
