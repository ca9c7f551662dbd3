package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingInput carries the client fields of a pending booking. Extra holds
// any additional keys the client sent; they are stored verbatim.
type BookingInput struct {
	TrainerID uuid.UUID
	Slot      models.Slot
	ClassID   *uuid.UUID
	Price     string
	Extra     map[string]any
}

// BookingLookup is a booking together with the member who owns it.
type BookingLookup struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Booking models.Booking `json:"booking"`
}

type BookingService interface {
	RecordPending(ctx context.Context, memberEmail string, in BookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingLookup, error)
	ListHistory(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error)
}

type bookingService struct {
	users    repository.UserRepository
	slots    repository.SlotRepository
	bookings repository.BookingRepository
	classes  repository.ClassRepository
	events   EventPublisher
}

func NewBookingService(
	users repository.UserRepository,
	slots repository.SlotRepository,
	bookings repository.BookingRepository,
	classes repository.ClassRepository,
	events EventPublisher,
) BookingService {
	return &bookingService{
		users:    users,
		slots:    slots,
		bookings: bookings,
		classes:  classes,
		events:   events,
	}
}

func (s *bookingService) RecordPending(ctx context.Context, memberEmail string, in BookingInput) (*models.Booking, error) {
	if in.TrainerID == uuid.Nil {
		return nil, ErrTrainerRequired
	}
	if !in.Slot.Valid() {
		return nil, ErrSlotRequired
	}
	slot := in.Slot.Normalize()
	if in.Price != "" {
		if _, err := ParsePrice(in.Price); err != nil {
			return nil, err
		}
	}

	member, err := s.users.FindByEmail(ctx, normalizeEmail(memberEmail))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}

	if err := s.ensureSlotOffered(ctx, in.TrainerID, slot); err != nil {
		return nil, err
	}
	if in.ClassID != nil {
		if _, err := s.classes.FindByID(ctx, *in.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, fmt.Errorf("find class: %w", err)
		}
	}

	extra := datatypes.JSON("{}")
	if len(in.Extra) > 0 {
		b, err := json.Marshal(in.Extra)
		if err != nil {
			return nil, newError(ErrInvalidInput, "booking fields must be valid JSON")
		}
		extra = datatypes.JSON(b)
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		MemberID:      member.ID,
		TrainerID:     in.TrainerID,
		ClassID:       in.ClassID,
		Slot:          slot,
		Price:         strings.TrimSpace(in.Price),
		PaymentStatus: models.PaymentPending,
		Extra:         extra,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	slog.Info("pending booking recorded", "booking_id", booking.ID.String(), "user_id", member.ID.String())
	publish(ctx, s.events, EventBookingRecorded, booking)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*BookingLookup, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	member, err := s.users.FindByID(ctx, booking.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return &BookingLookup{Name: member.Name, Email: member.Email, Booking: *booking}, nil
}

func (s *bookingService) ListHistory(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListByMember(ctx, memberID)
}

func (s *bookingService) ensureSlotOffered(ctx context.Context, trainerID uuid.UUID, slot models.Slot) error {
	trainer, err := s.users.FindByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainerNotFound
		}
		return fmt.Errorf("find trainer: %w", err)
	}
	if !trainer.IsTrainer() {
		return ErrTrainerNotFound
	}

	offered, err := s.slots.ListByTrainer(ctx, trainerID)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	for _, o := range offered {
		if o.Slot().Key() == slot.Key() {
			return nil
		}
	}
	return ErrSlotNotOffered
}
