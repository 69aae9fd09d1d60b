package service

import (
	"context"
	"errors"
	"time"

	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/repository"
	"github.com/smartpark/smartpark/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrMissingFields       = errors.New("slotId, reservationDate, startTime and endTime are required")
	ErrStartInPast         = errors.New("reservation cannot be in the past")
	ErrEndBeforeStart      = errors.New("end time must be after start time")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrTimeConflict        = errors.New("Time conflict — this slot already has an active reservation overlapping with your requested time.")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("not authorized")
)

type CreateReservationInput struct {
	SlotID          uint
	ReservationDate time.Time
	StartTime       time.Time
	EndTime         time.Time
	VehicleNumber   string
}

type UpdateReservationInput struct {
	SlotID          *uint
	ReservationDate *time.Time
	StartTime       *time.Time
	EndTime         *time.Time
	VehicleNumber   *string
}

type ReservationService interface {
	CreateReservation(ctx context.Context, userID uint, in CreateReservationInput) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id, requesterID uint, role models.Role) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id, requesterID uint, role models.Role, in UpdateReservationInput) (*models.Reservation, error)
	GetReservation(ctx context.Context, id, requesterID uint, role models.Role) (*models.Reservation, error)
	ListReservations(ctx context.Context, requesterID uint, role models.Role, status *models.ReservationStatus) ([]models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	slotRepo        repository.SlotRepository
	publisher       *rabbitmq.Publisher
	now             func() time.Time
}

func NewReservationService(reservationRepo repository.ReservationRepository, slotRepo repository.SlotRepository, publisher *rabbitmq.Publisher) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

// validateWindow enforces the admission preconditions: all fields present,
// start not in the past, end strictly after start.
func validateWindow(reservationDate, start, end, now time.Time) error {
	if reservationDate.IsZero() || start.IsZero() || end.IsZero() {
		return ErrMissingFields
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	return nil
}

func (s *reservationService) CreateReservation(ctx context.Context, userID uint, in CreateReservationInput) (*models.Reservation, error) {
	if in.SlotID == 0 {
		return nil, ErrMissingFields
	}
	if err := validateWindow(in.ReservationDate, in.StartTime, in.EndTime, s.now()); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		UserID:          userID,
		SlotID:          in.SlotID,
		ReservationDate: in.ReservationDate,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Status:          models.StatusActive,
		VehicleNumber:   in.VehicleNumber,
	}

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the slot row — serializes concurrent requests for this slot,
		//    so two racing clients cannot both pass the overlap check.
		if _, err := s.slotRepo.FindByIDForUpdate(ctx, tx, in.SlotID); err != nil {
			return ErrSlotNotFound
		}

		// 2. Half-open overlap check: conflict iff an active reservation on the
		//    slot has start_time < end AND end_time > start. Back-to-back
		//    windows sharing a boundary instant are admissible.
		_, err := s.reservationRepo.FindOverlappingActive(ctx, tx, in.SlotID, in.StartTime, in.EndTime, 0)
		if err == nil {
			return ErrTimeConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 3. Admit: persist the reservation and mark the slot occupied,
		//    both inside the same transaction.
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}
		return s.slotRepo.UpdateStatus(ctx, tx, in.SlotID, models.SlotOccupied)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.reservationRepo.FindByID(ctx, reservation.ID)
	if err != nil {
		return reservation, nil
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("reservation.created", created)
	}
	return created, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id, requesterID uint, role models.Role) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrReservationNotFound
	}

	if role != models.RoleAdmin && reservation.UserID != requesterID {
		return nil, ErrNotOwner
	}

	// Idempotent: a second cancel leaves status cancelled and the slot
	// available, which is already the end state of the first call.
	if reservation.Status == models.StatusCancelled {
		return reservation, nil
	}

	err = s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reservationRepo.UpdateStatus(ctx, tx, id, models.StatusCancelled); err != nil {
			return err
		}
		// The slot is freed unconditionally; occupancy is a status cache the
		// scheduler maintains, not a value derived from remaining reservations.
		return s.slotRepo.UpdateStatus(ctx, tx, reservation.SlotID, models.SlotAvailable)
	})
	if err != nil {
		return nil, err
	}

	reservation.Status = models.StatusCancelled
	if reservation.Slot != nil {
		reservation.Slot.Status = models.SlotAvailable
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("reservation.cancelled", reservation)
	}
	return reservation, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id, requesterID uint, role models.Role, in UpdateReservationInput) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrReservationNotFound
	}

	if role != models.RoleAdmin && reservation.UserID != requesterID {
		return nil, ErrNotOwner
	}

	slotID := reservation.SlotID
	start := reservation.StartTime
	end := reservation.EndTime
	if in.SlotID != nil {
		slotID = *in.SlotID
	}
	if in.StartTime != nil {
		start = *in.StartTime
	}
	if in.EndTime != nil {
		end = *in.EndTime
	}
	if !end.After(start) {
		return nil, ErrEndBeforeStart
	}

	rescheduled := slotID != reservation.SlotID ||
		!start.Equal(reservation.StartTime) || !end.Equal(reservation.EndTime)

	fields := map[string]any{}
	if in.SlotID != nil {
		fields["slot_id"] = *in.SlotID
	}
	if in.ReservationDate != nil {
		fields["reservation_date"] = *in.ReservationDate
	}
	if in.StartTime != nil {
		fields["start_time"] = *in.StartTime
	}
	if in.EndTime != nil {
		fields["end_time"] = *in.EndTime
	}
	if in.VehicleNumber != nil {
		fields["vehicle_number"] = *in.VehicleNumber
	}

	err = s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-run the admission check whenever the slot or the window changes,
		// so an update can never introduce an overlap the create path forbids.
		if rescheduled && reservation.Status == models.StatusActive {
			if _, err := s.slotRepo.FindByIDForUpdate(ctx, tx, slotID); err != nil {
				return ErrSlotNotFound
			}
			_, err := s.reservationRepo.FindOverlappingActive(ctx, tx, slotID, start, end, reservation.ID)
			if err == nil {
				return ErrTimeConflict
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if len(fields) > 0 {
			if err := s.reservationRepo.UpdateFields(ctx, tx, id, fields); err != nil {
				return err
			}
		}

		// Moving an active reservation to another slot re-syncs both caches.
		if reservation.Status == models.StatusActive && slotID != reservation.SlotID {
			if err := s.slotRepo.UpdateStatus(ctx, tx, reservation.SlotID, models.SlotAvailable); err != nil {
				return err
			}
			return s.slotRepo.UpdateStatus(ctx, tx, slotID, models.SlotOccupied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reservationRepo.FindByID(ctx, id)
}

func (s *reservationService) GetReservation(ctx context.Context, id, requesterID uint, role models.Role) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrReservationNotFound
	}
	if role == models.RoleUser && reservation.UserID != requesterID {
		return nil, ErrNotOwner
	}
	return reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context, requesterID uint, role models.Role, status *models.ReservationStatus) ([]models.Reservation, error) {
	filter := repository.ReservationFilter{Status: status}
	// Plain users only ever see their own reservations.
	if role == models.RoleUser {
		filter.UserID = &requesterID
	}
	return s.reservationRepo.FindAll(ctx, filter)
}
