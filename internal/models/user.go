package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

// User is a marketplace account. Accounts are soft-deleted only.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string         `gorm:"size:120" json:"name"`
	PhotoURL     string         `gorm:"size:500" json:"photo_url"`
	Password     string         `gorm:"not null;default:''" json:"-"`
	Role         Role           `gorm:"size:20;not null;default:'member';index" json:"role"`
	GoogleID     *string        `gorm:"size:255;uniqueIndex" json:"-"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"auth_provider"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsTrainer() bool { return u.Role == RoleTrainer }
