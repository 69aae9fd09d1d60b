package repository

import (
	"context"
	"time"

	"github.com/smartpark/smartpark/internal/models"
	"gorm.io/gorm"
)

type ReservationFilter struct {
	UserID *uint
	Status *models.ReservationStatus
	Limit  int
}

type ZoneReservationCount struct {
	ZoneName string `json:"zoneName"`
	Count    int64  `json:"count"`
}

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindAll(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error)
	FindOverlappingActive(ctx context.Context, tx *gorm.DB, slotID uint, start, end time.Time, excludeID uint) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, reservationID uint, status models.ReservationStatus) error
	UpdateFields(ctx context.Context, tx *gorm.DB, reservationID uint, fields map[string]any) error
	CountByStatus(ctx context.Context, status *models.ReservationStatus) (int64, error)
	ActiveCountByZone(ctx context.Context) ([]ZoneReservationCount, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slot").
		Preload("Slot.Zone").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindAll(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slot").
		Preload("Slot.Zone")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindOverlappingActive returns an active reservation on the slot whose
// half-open window [start_time, end_time) intersects [start, end).
// excludeID, when non-zero, skips that reservation (used when rescheduling).
func (r *reservationRepository) FindOverlappingActive(ctx context.Context, tx *gorm.DB, slotID uint, start, end time.Time, excludeID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	q := tx.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, models.StatusActive).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, reservationID uint, status models.ReservationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Update("status", status).Error
}

func (r *reservationRepository) UpdateFields(ctx context.Context, tx *gorm.DB, reservationID uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Updates(fields).Error
}

func (r *reservationRepository) CountByStatus(ctx context.Context, status *models.ReservationStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Reservation{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *reservationRepository) ActiveCountByZone(ctx context.Context) ([]ZoneReservationCount, error) {
	var counts []ZoneReservationCount
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("parking_zones.zone_name AS zone_name, COUNT(*) AS count").
		Joins("JOIN parking_slots ON parking_slots.id = reservations.slot_id").
		Joins("JOIN parking_zones ON parking_zones.id = parking_slots.zone_id").
		Where("reservations.status = ?", models.StatusActive).
		Group("parking_zones.zone_name").
		Scan(&counts).Error
	return counts, err
}
