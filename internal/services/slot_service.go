package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotService interface {
	ListSlots(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error)
	AddSlots(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error)
	DeleteSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int, error)
	DeleteBooking(ctx context.Context, trainerID, bookingID, userID uuid.UUID) error
	ListBookedSlots(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error)
}

type slotService struct {
	users       repository.UserRepository
	slots       repository.SlotRepository
	bookings    repository.BookingRepository
	bookedSlots repository.BookedSlotRepository
	events      EventPublisher
}

func NewSlotService(
	users repository.UserRepository,
	slots repository.SlotRepository,
	bookings repository.BookingRepository,
	bookedSlots repository.BookedSlotRepository,
	events EventPublisher,
) SlotService {
	return &slotService{
		users:       users,
		slots:       slots,
		bookings:    bookings,
		bookedSlots: bookedSlots,
		events:      events,
	}
}

func (s *slotService) ListSlots(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error) {
	if _, err := s.findTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.slots.ListByTrainer(ctx, trainerID)
}

func (s *slotService) AddSlots(ctx context.Context, trainerID uuid.UUID, proposed []models.Slot) (int64, error) {
	if len(proposed) == 0 {
		return 0, ErrNoSlots
	}
	for _, p := range proposed {
		if !p.Valid() {
			return 0, ErrInvalidSlot
		}
	}
	if _, err := s.findTrainer(ctx, trainerID); err != nil {
		return 0, err
	}

	stored, err := s.slots.ListByTrainer(ctx, trainerID)
	if err != nil {
		return 0, fmt.Errorf("list slots: %w", err)
	}
	existing := make([]models.Slot, 0, len(stored))
	for _, ts := range stored {
		existing = append(existing, ts.Slot())
	}

	fresh := SlotDifference(existing, proposed)
	if len(fresh) == 0 {
		return 0, ErrSlotsAlreadyExist
	}

	added, err := s.slots.InsertIfAbsent(ctx, trainerID, fresh)
	if err != nil {
		return 0, fmt.Errorf("insert slots: %w", err)
	}
	// A concurrent add may have stored the same slots between the read and
	// the insert; the unique index drops them.
	if added == 0 {
		return 0, ErrSlotsAlreadyExist
	}

	slog.Info("slots added", "user_id", trainerID.String(), "added", added)
	return added, nil
}

// DeleteSlot removes a slot and every booking that references it, on the
// trainer side and in each affected member's payment history. The steps are
// independent writes: a failure part-way leaves earlier removals in place, and
// calling again with the same slot finishes the cascade even though the slot
// row is already gone. The count covers bookings actually removed.
func (s *slotService) DeleteSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int, error) {
	if !slot.Valid() {
		return 0, ErrInvalidSlot
	}
	slot = slot.Normalize()
	if _, err := s.findTrainer(ctx, trainerID); err != nil {
		return 0, err
	}

	booked, err := s.bookedSlots.ListByTrainerSlot(ctx, trainerID, slot)
	if err != nil {
		return 0, fmt.Errorf("list booked slots: %w", err)
	}
	history, err := s.bookings.ListByTrainerSlot(ctx, trainerID, slot)
	if err != nil {
		return 0, fmt.Errorf("list bookings for slot: %w", err)
	}

	removed, err := s.slots.Delete(ctx, trainerID, slot)
	if err != nil {
		return 0, fmt.Errorf("delete slot: %w", err)
	}
	if removed == 0 && len(booked) == 0 && len(history) == 0 {
		return 0, ErrSlotNotFound
	}

	// booking id -> owning member
	affected := make(map[uuid.UUID]uuid.UUID, len(booked)+len(history))
	onTrainerSide := make(map[uuid.UUID]bool, len(booked))
	for _, b := range booked {
		affected[b.BookingID] = b.UserID
		onTrainerSide[b.BookingID] = true
	}
	for _, b := range history {
		affected[b.ID] = b.MemberID
	}

	deleted := 0
	var leftBehind []string
	for bookingID, memberID := range affected {
		n, err := s.bookings.DeleteForMember(ctx, memberID, bookingID)
		if err != nil {
			leftBehind = append(leftBehind, bookingID.String())
			slog.Error("failed to remove booking from member history",
				"action", "delete_slot",
				"booking_id", bookingID.String(),
				"user_id", memberID.String(),
				"error", err,
			)
			continue
		}
		if n > 0 || onTrainerSide[bookingID] {
			deleted++
		}
	}

	if len(booked) > 0 {
		if _, err := s.bookedSlots.DeleteByTrainerSlot(ctx, trainerID, slot); err != nil {
			return 0, fmt.Errorf("delete booked slots: %w", err)
		}
	}
	if len(leftBehind) > 0 {
		slog.Warn("slot deleted with bookings left in member history",
			"action", "delete_slot",
			"user_id", trainerID.String(),
			"remaining", leftBehind,
		)
	}

	publish(ctx, s.events, EventSlotDeleted, map[string]any{
		"trainer_id":       trainerID,
		"slot":             slot,
		"deleted_bookings": deleted,
	})
	return deleted, nil
}

func (s *slotService) DeleteBooking(ctx context.Context, trainerID, bookingID, userID uuid.UUID) error {
	trainerRemoved, err := s.bookedSlots.DeleteByBooking(ctx, trainerID, bookingID)
	if err != nil {
		return fmt.Errorf("delete trainer booking: %w", err)
	}
	userRemoved, err := s.bookings.DeleteForMember(ctx, userID, bookingID)
	if err != nil {
		return fmt.Errorf("delete member booking: %w", err)
	}

	switch {
	case trainerRemoved == 0 && userRemoved == 0:
		return ErrBookingNotFound
	case trainerRemoved == 0:
		return ErrBookingNotFoundForTrainer
	case userRemoved == 0:
		return ErrBookingNotFoundForUser
	}
	return nil
}

func (s *slotService) ListBookedSlots(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error) {
	if _, err := s.findTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.bookedSlots.ListByTrainer(ctx, trainerID)
}

func (s *slotService) findTrainer(ctx context.Context, trainerID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("find trainer: %w", err)
	}
	if !user.IsTrainer() {
		return nil, ErrTrainerNotFound
	}
	return user, nil
}

// SlotDifference returns the proposed slots not already in existing, in
// proposal order and without duplicates. Slots are compared by day and time.
func SlotDifference(existing, proposed []models.Slot) []models.Slot {
	seen := make(map[string]struct{}, len(existing)+len(proposed))
	for _, e := range existing {
		seen[e.Key()] = struct{}{}
	}
	out := make([]models.Slot, 0, len(proposed))
	for _, p := range proposed {
		key := p.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.Normalize())
	}
	return out
}
