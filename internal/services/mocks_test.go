package services

import (
	"context"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/payments"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unset funcs fall back to "nothing stored": finders return
// gorm.ErrRecordNotFound, writes succeed.

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn         func(ctx context.Context, user *models.User) error
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	findByGoogleIDFn func(ctx context.Context, googleID string) (*models.User, error)
	listByRoleFn     func(ctx context.Context, role models.Role) ([]models.User, error)
	updateFn         func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	if m.findByGoogleIDFn != nil {
		return m.findByGoogleIDFn(ctx, googleID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	if m.listByRoleFn != nil {
		return m.listByRoleFn(ctx, role)
	}
	return nil, nil
}
func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil
}

// usersByID serves FindByID from a fixed set of accounts.
func usersByID(users ...*models.User) func(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return func(ctx context.Context, id uuid.UUID) (*models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}
}

// --- Mock RefreshTokenRepository ---

type mockTokenRepo struct {
	createFn     func(ctx context.Context, token *models.RefreshToken) error
	findActiveFn func(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	revokeFn     func(ctx context.Context, tokenHash string) error
}

func (m *mockTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}
func (m *mockTokenRepo) FindActive(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, tokenHash)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, tokenHash)
	}
	return nil
}

// --- Mock SlotRepository ---

type mockSlotRepo struct {
	listByTrainerFn  func(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error)
	insertIfAbsentFn func(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error)
	deleteFn         func(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error)
}

func (m *mockSlotRepo) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.TrainerSlot, error) {
	if m.listByTrainerFn != nil {
		return m.listByTrainerFn(ctx, trainerID)
	}
	return nil, nil
}
func (m *mockSlotRepo) InsertIfAbsent(ctx context.Context, trainerID uuid.UUID, slots []models.Slot) (int64, error) {
	if m.insertIfAbsentFn != nil {
		return m.insertIfAbsentFn(ctx, trainerID, slots)
	}
	return int64(len(slots)), nil
}
func (m *mockSlotRepo) Delete(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, trainerID, slot)
	}
	return 0, nil
}

func offering(trainerID uuid.UUID, slots ...models.Slot) func(ctx context.Context, id uuid.UUID) ([]models.TrainerSlot, error) {
	return func(ctx context.Context, id uuid.UUID) ([]models.TrainerSlot, error) {
		out := make([]models.TrainerSlot, 0, len(slots))
		for _, s := range slots {
			out = append(out, models.TrainerSlot{ID: uuid.New(), TrainerID: trainerID, Day: s.Day, Time: s.Time})
		}
		return out, nil
	}
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn                func(ctx context.Context, booking *models.Booking) error
	findByIDFn              func(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	listByMemberFn          func(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error)
	listByTrainerSlotFn     func(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.Booking, error)
	markPaidFn              func(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)
	deleteForMemberFn       func(ctx context.Context, memberID, id uuid.UUID) (int64, error)
	listPaidWithoutLedgerFn func(ctx context.Context, limit int) ([]models.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, memberID)
	}
	return nil, nil
}
func (m *mockBookingRepo) ListByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.Booking, error) {
	if m.listByTrainerSlotFn != nil {
		return m.listByTrainerSlotFn(ctx, trainerID, slot)
	}
	return nil, nil
}
func (m *mockBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, id, paidAt)
	}
	return false, nil
}
func (m *mockBookingRepo) DeleteForMember(ctx context.Context, memberID, id uuid.UUID) (int64, error) {
	if m.deleteForMemberFn != nil {
		return m.deleteForMemberFn(ctx, memberID, id)
	}
	return 0, nil
}
func (m *mockBookingRepo) ListPaidWithoutLedger(ctx context.Context, limit int) ([]models.Booking, error) {
	if m.listPaidWithoutLedgerFn != nil {
		return m.listPaidWithoutLedgerFn(ctx, limit)
	}
	return nil, nil
}

// --- Mock BookedSlotRepository ---

type mockBookedSlotRepo struct {
	appendFn              func(ctx context.Context, fb models.FinalizedBooking) error
	listByTrainerFn       func(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error)
	listByTrainerSlotFn   func(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.BookedSlot, error)
	deleteByTrainerSlotFn func(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error)
	deleteByBookingFn     func(ctx context.Context, trainerID, bookingID uuid.UUID) (int64, error)
}

func (m *mockBookedSlotRepo) Append(ctx context.Context, fb models.FinalizedBooking) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, fb)
	}
	return nil
}
func (m *mockBookedSlotRepo) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.BookedSlot, error) {
	if m.listByTrainerFn != nil {
		return m.listByTrainerFn(ctx, trainerID)
	}
	return nil, nil
}
func (m *mockBookedSlotRepo) ListByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) ([]models.BookedSlot, error) {
	if m.listByTrainerSlotFn != nil {
		return m.listByTrainerSlotFn(ctx, trainerID, slot)
	}
	return nil, nil
}
func (m *mockBookedSlotRepo) DeleteByTrainerSlot(ctx context.Context, trainerID uuid.UUID, slot models.Slot) (int64, error) {
	if m.deleteByTrainerSlotFn != nil {
		return m.deleteByTrainerSlotFn(ctx, trainerID, slot)
	}
	return 0, nil
}
func (m *mockBookedSlotRepo) DeleteByBooking(ctx context.Context, trainerID, bookingID uuid.UUID) (int64, error) {
	if m.deleteByBookingFn != nil {
		return m.deleteByBookingFn(ctx, trainerID, bookingID)
	}
	return 0, nil
}

// --- Mock PaymentRepository ---

type mockPaymentRepo struct {
	insertFn          func(ctx context.Context, fb models.FinalizedBooking) (*models.Payment, error)
	findByBookingIDFn func(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	listByStatusFn    func(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	recentFn          func(ctx context.Context, status models.PaymentStatus, limit int) ([]models.Payment, error)
}

func (m *mockPaymentRepo) Insert(ctx context.Context, fb models.FinalizedBooking) (*models.Payment, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, fb)
	}
	return &models.Payment{ID: uuid.New(), FinalizedBooking: fb}, nil
}
func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	if m.findByBookingIDFn != nil {
		return m.findByBookingIDFn(ctx, bookingID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPaymentRepo) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status)
	}
	return nil, nil
}
func (m *mockPaymentRepo) Recent(ctx context.Context, status models.PaymentStatus, limit int) ([]models.Payment, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, status, limit)
	}
	return nil, nil
}

// --- Mock ClassRepository ---

type mockClassRepo struct {
	createFn     func(ctx context.Context, class *models.Class) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Class, error)
	listActiveFn func(ctx context.Context) ([]models.Class, error)
	addMemberFn  func(ctx context.Context, classID, userID uuid.UUID) (bool, error)
	membersFn    func(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	if m.createFn != nil {
		return m.createFn(ctx, class)
	}
	return nil
}
func (m *mockClassRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockClassRepo) ListActive(ctx context.Context) ([]models.Class, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}
func (m *mockClassRepo) AddMember(ctx context.Context, classID, userID uuid.UUID) (bool, error) {
	if m.addMemberFn != nil {
		return m.addMemberFn(ctx, classID, userID)
	}
	return true, nil
}
func (m *mockClassRepo) Members(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	if m.membersFn != nil {
		return m.membersFn(ctx, classID)
	}
	return nil, nil
}

// --- Mock ApplicationRepository ---

type mockApplicationRepo struct {
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.TrainerApplication, error)
	findByUserFn   func(ctx context.Context, userID uuid.UUID) (*models.TrainerApplication, error)
	listByStatusFn func(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error)
	saveFn         func(ctx context.Context, app *models.TrainerApplication) error
	reviewFn       func(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback string, at time.Time) (bool, error)
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.TrainerApplication, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockApplicationRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.TrainerApplication, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockApplicationRepo) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.TrainerApplication, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status)
	}
	return nil, nil
}
func (m *mockApplicationRepo) Save(ctx context.Context, app *models.TrainerApplication) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, app)
	}
	return nil
}
func (m *mockApplicationRepo) Review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback string, at time.Time) (bool, error) {
	if m.reviewFn != nil {
		return m.reviewFn(ctx, id, status, feedback, at)
	}
	return true, nil
}

// --- Mock EventPublisher ---

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// --- Mock payments.Processor ---

type mockProcessor struct {
	createIntentFn func(ctx context.Context, req payments.IntentRequest) (*payments.Intent, error)
	verifyFn       func(ctx context.Context, n payments.Notification) (*payments.TransactionStatus, error)
}

func (m *mockProcessor) CreateIntent(ctx context.Context, req payments.IntentRequest) (*payments.Intent, error) {
	return m.createIntentFn(ctx, req)
}
func (m *mockProcessor) VerifyNotification(ctx context.Context, n payments.Notification) (*payments.TransactionStatus, error) {
	return m.verifyFn(ctx, n)
}

// --- Mock Reconciler ---

type mockReconciler struct {
	finalizeFn         func(ctx context.Context, bookingID uuid.UUID) (*FinalizeResult, error)
	paymentSummaryFn   func(ctx context.Context) (*PaymentSummary, error)
	reconcileOrphansFn func(ctx context.Context, limit int) (int, error)
}

func (m *mockReconciler) Finalize(ctx context.Context, bookingID uuid.UUID) (*FinalizeResult, error) {
	return m.finalizeFn(ctx, bookingID)
}
func (m *mockReconciler) PaymentSummary(ctx context.Context) (*PaymentSummary, error) {
	return m.paymentSummaryFn(ctx)
}
func (m *mockReconciler) ReconcileOrphans(ctx context.Context, limit int) (int, error) {
	return m.reconcileOrphansFn(ctx, limit)
}

// --- Mock GoogleVerifier ---

type mockGoogle struct {
	verifyFn func(idToken string) (*GoogleIdentity, error)
}

func (m *mockGoogle) Verify(idToken string) (*GoogleIdentity, error) {
	return m.verifyFn(idToken)
}

// --- Fixtures ---

func sampleTrainer() *models.User {
	return &models.User{ID: uuid.New(), Email: "coach@example.com", Name: "Coach Kim", Role: models.RoleTrainer}
}

func sampleMember() *models.User {
	return &models.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice", Role: models.RoleMember}
}

var (
	monday10  = models.Slot{Day: "Mon", Time: "10am"}
	tuesday9  = models.Slot{Day: "Tue", Time: "9am"}
	wednesday = models.Slot{Day: "Wed", Time: "8am"}
)
