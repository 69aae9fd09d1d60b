package service

import (
	"context"
	"testing"
	"time"

	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Reservation, error)
	findAllFn  func(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	return nil
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReservationRepo) FindAll(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return m.findAllFn(ctx, filter)
}
func (m *mockReservationRepo) FindOverlappingActive(ctx context.Context, tx *gorm.DB, slotID uint, start, end time.Time, excludeID uint) (*models.Reservation, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReservationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	return nil
}
func (m *mockReservationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	return nil
}
func (m *mockReservationRepo) CountByStatus(ctx context.Context, status *models.ReservationStatus) (int64, error) {
	return 0, nil
}
func (m *mockReservationRepo) ActiveCountByZone(ctx context.Context) ([]repository.ZoneReservationCount, error) {
	return nil, nil
}
func (m *mockReservationRepo) GetDB() *gorm.DB { return nil }

// --- Mock SlotRepository ---

type mockSlotRepo struct{}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.ParkingSlot) error { return nil }
func (m *mockSlotRepo) FindByID(ctx context.Context, id uint) (*models.ParkingSlot, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSlotRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ParkingSlot, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSlotRepo) FindAll(ctx context.Context, filter repository.SlotFilter) ([]models.ParkingSlot, error) {
	return nil, nil
}
func (m *mockSlotRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, slotID uint, status models.SlotStatus) error {
	return nil
}
func (m *mockSlotRepo) CountByZone(ctx context.Context, zoneID uint) (int64, error) {
	return 0, nil
}
func (m *mockSlotRepo) CountByStatus(ctx context.Context, s *models.SlotStatus) (int64, error) {
	return 0, nil
}

func newTestService(resRepo repository.ReservationRepository) ReservationService {
	svc := NewReservationService(resRepo, &mockSlotRepo{}, nil).(*reservationService)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func validInput() CreateReservationInput {
	return CreateReservationInput{
		SlotID:          1,
		ReservationDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		VehicleNumber:   "KA-01-1234",
	}
}

// --- Window validation ---

func TestCreateReservation_MissingSlot(t *testing.T) {
	svc := newTestService(&mockReservationRepo{})
	in := validInput()
	in.SlotID = 0

	_, err := svc.CreateReservation(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateReservation_MissingTimes(t *testing.T) {
	svc := newTestService(&mockReservationRepo{})
	in := validInput()
	in.StartTime = time.Time{}

	_, err := svc.CreateReservation(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateReservation_StartInPast(t *testing.T) {
	svc := newTestService(&mockReservationRepo{})
	in := validInput()
	in.StartTime = time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestCreateReservation_EndBeforeStart(t *testing.T) {
	svc := newTestService(&mockReservationRepo{})
	in := validInput()
	in.EndTime = in.StartTime.Add(-30 * time.Minute)

	_, err := svc.CreateReservation(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestCreateReservation_ZeroLengthWindow(t *testing.T) {
	svc := newTestService(&mockReservationRepo{})
	in := validInput()
	in.EndTime = in.StartTime

	_, err := svc.CreateReservation(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

// --- Cancellation ---

func TestCancelReservation_NotFound(t *testing.T) {
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.CancelReservation(context.Background(), 99, 1, models.RoleUser)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelReservation_NotOwner(t *testing.T) {
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return &models.Reservation{ID: id, UserID: 7, Status: models.StatusActive}, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.CancelReservation(context.Background(), 1, 2, models.RoleUser)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancelReservation_AdminCanCancelAny(t *testing.T) {
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			// Already cancelled so the idempotent path returns without a transaction.
			return &models.Reservation{ID: id, UserID: 7, Status: models.StatusCancelled}, nil
		},
	}
	svc := newTestService(repo)

	reservation, err := svc.CancelReservation(context.Background(), 1, 2, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, reservation.Status)
}

func TestCancelReservation_Idempotent(t *testing.T) {
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return &models.Reservation{ID: id, UserID: 1, Status: models.StatusCancelled}, nil
		},
	}
	svc := newTestService(repo)

	reservation, err := svc.CancelReservation(context.Background(), 1, 1, models.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, reservation.Status)
}

// --- Ownership scoping ---

func TestGetReservation_UserCannotSeeForeign(t *testing.T) {
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return &models.Reservation{ID: id, UserID: 7}, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetReservation(context.Background(), 1, 2, models.RoleUser)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestListReservations_UserScopedToOwn(t *testing.T) {
	var captured repository.ReservationFilter
	repo := &mockReservationRepo{
		findAllFn: func(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
			captured = filter
			return nil, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.ListReservations(context.Background(), 42, models.RoleUser, nil)
	assert.NoError(t, err)
	assert.NotNil(t, captured.UserID)
	assert.Equal(t, uint(42), *captured.UserID)
}

func TestListReservations_AdminSeesAll(t *testing.T) {
	var captured repository.ReservationFilter
	repo := &mockReservationRepo{
		findAllFn: func(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
			captured = filter
			return nil, nil
		},
	}
	svc := newTestService(repo)

	status := models.StatusActive
	_, err := svc.ListReservations(context.Background(), 42, models.RoleAdmin, &status)
	assert.NoError(t, err)
	assert.Nil(t, captured.UserID)
	assert.Equal(t, models.StatusActive, *captured.Status)
}

// --- Update authorization ---

func TestUpdateReservation_NotOwner(t *testing.T) {
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return &models.Reservation{ID: id, UserID: 7, Status: models.StatusActive}, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.UpdateReservation(context.Background(), 1, 2, models.RoleUser, UpdateReservationInput{})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateReservation_InvertedWindow(t *testing.T) {
	existing := &models.Reservation{
		ID:        1,
		UserID:    1,
		SlotID:    1,
		Status:    models.StatusActive,
		StartTime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}
	repo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	badEnd := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.UpdateReservation(context.Background(), 1, 1, models.RoleUser, UpdateReservationInput{
		EndTime: &badEnd,
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}
