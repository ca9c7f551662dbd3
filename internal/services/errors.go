package services

import "errors"

// Error kinds. Every sentinel below wraps exactly one of them so the HTTP
// layer can map with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("unavailable")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Auth
var (
	ErrEmailTaken          = newError(ErrConflict, "email already registered")
	ErrWeakPassword        = newError(ErrInvalidInput, "password must be at least 8 characters")
	ErrInvalidCredentials  = newError(ErrUnauthorized, "invalid email or password")
	ErrInvalidToken        = newError(ErrUnauthorized, "invalid or expired refresh token")
	ErrInvalidGoogleToken  = newError(ErrUnauthorized, "invalid Google ID token")
	ErrGoogleNotConfigured = newError(ErrUnavailable, "Google sign-in is not configured")
	ErrUserNotFound        = newError(ErrNotFound, "user not found")
)

// Slot registry
var (
	ErrNoSlots                   = newError(ErrInvalidInput, "at least one slot is required")
	ErrInvalidSlot               = newError(ErrInvalidInput, "slot day and time are required")
	ErrTrainerNotFound           = newError(ErrNotFound, "trainer not found")
	ErrSlotsAlreadyExist         = newError(ErrInvalidInput, "all selected slots already exist")
	ErrSlotNotFound              = newError(ErrNotFound, "slot not found")
	ErrBookingNotFound           = newError(ErrNotFound, "booking not found for trainer or user")
	ErrBookingNotFoundForTrainer = newError(ErrNotFound, "booking not found in trainer's booked slots")
	ErrBookingNotFoundForUser    = newError(ErrNotFound, "booking not found in user's payment history")
)

// Booking ledger and reconciler
var (
	ErrMemberNotFound     = newError(ErrNotFound, "member not found")
	ErrTrainerRequired    = newError(ErrInvalidInput, "trainerId is required")
	ErrSlotRequired       = newError(ErrInvalidInput, "slot with day and time is required")
	ErrSlotNotOffered     = newError(ErrInvalidInput, "trainer does not offer this slot")
	ErrClassNotFound      = newError(ErrNotFound, "class not found")
	ErrInvalidPrice       = newError(ErrInvalidInput, "price must be a currency symbol followed by an amount")
	ErrPaymentNotFound    = newError(ErrNotFound, "payment record not found")
	ErrBookingNotPending  = newError(ErrNotFound, "booking not found or already updated")
	ErrBookingAlreadyPaid = newError(ErrConflict, "booking is already paid")
)

// Payments
var (
	ErrPaymentsUnavailable = newError(ErrUnavailable, "payment processor is not configured")
	ErrInvalidNotification = newError(ErrUnauthorized, "payment notification could not be verified")
	ErrPaymentIntentFailed = newError(ErrUnavailable, "payment processor rejected the request")
)

// Trainer applications and classes
var (
	ErrAlreadyTrainer       = newError(ErrConflict, "user is already a trainer")
	ErrApplicationPending   = newError(ErrConflict, "an application is already pending review")
	ErrApplicationNotFound  = newError(ErrNotFound, "application not found")
	ErrApplicationProcessed = newError(ErrConflict, "application already processed")
	ErrSkillsRequired       = newError(ErrInvalidInput, "at least one skill is required")
	ErrClassNameRequired    = newError(ErrInvalidInput, "class name is required")
)
