package dto

import "github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"

type ApplyTrainerRequest struct {
	Skills         []string      `json:"skills" validate:"required,min=1,dive,required"`
	Certifications []string      `json:"certifications" validate:"dive,required"`
	Experience     string        `json:"experience" validate:"max=2000"`
	Slots          []models.Slot `json:"slots" validate:"dive"`
}

type RejectApplicationRequest struct {
	Feedback string `json:"feedback" validate:"required,max=2000"`
}

type CreateClassRequest struct {
	ClassName       string   `json:"class_name" validate:"required,max=150"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills" validate:"dive,required"`
	DifficultyLevel string   `json:"difficulty_level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type ClassResponse struct {
	models.Class
	MembersEnrolled int `json:"members_enrolled"`
}
