package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService assembles the profile and activity log of an account.
type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	users        repository.UserRepository
	bookings     repository.BookingRepository
	bookedSlots  repository.BookedSlotRepository
	applications repository.ApplicationRepository
}

func NewUserService(
	users repository.UserRepository,
	bookings repository.BookingRepository,
	bookedSlots repository.BookedSlotRepository,
	applications repository.ApplicationRepository,
) UserService {
	return &userService{
		users:        users,
		bookings:     bookings,
		bookedSlots:  bookedSlots,
		applications: applications,
	}
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.bookings.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payment history: %w", err)
	}
	resp := &dto.ProfileResponse{
		User: ToUserResponse(user),
		ActivityLog: dto.ActivityLog{
			CreatedAt:      user.CreatedAt,
			LastLogin:      user.LastLoginAt,
			PaymentHistory: history,
		},
	}

	if user.IsTrainer() {
		booked, err := s.bookedSlots.ListByTrainer(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list booked slots: %w", err)
		}
		resp.ActivityLog.BookedSlots = booked
	}

	app, err := s.applications.FindByUser(ctx, userID)
	if err == nil {
		resp.Application = app
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find application: %w", err)
	}
	return resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, newError(ErrInvalidInput, "name cannot be empty")
		}
		fields["name"] = name
	}
	if req.PhotoURL != nil {
		fields["photo_url"] = strings.TrimSpace(*req.PhotoURL)
	}
	if len(fields) > 0 {
		if err := s.users.Update(ctx, userID, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
