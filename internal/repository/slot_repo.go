package repository

import (
	"context"

	"github.com/smartpark/smartpark/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotFilter struct {
	ZoneID *uint
	Status *models.SlotStatus
}

type SlotRepository interface {
	Create(ctx context.Context, slot *models.ParkingSlot) error
	FindByID(ctx context.Context, id uint) (*models.ParkingSlot, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ParkingSlot, error)
	FindAll(ctx context.Context, filter SlotFilter) ([]models.ParkingSlot, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, slotID uint, status models.SlotStatus) error
	CountByZone(ctx context.Context, zoneID uint) (int64, error)
	CountByStatus(ctx context.Context, status *models.SlotStatus) (int64, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, slot *models.ParkingSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepository) FindByID(ctx context.Context, id uint) (*models.ParkingSlot, error) {
	var slot models.ParkingSlot
	if err := r.db.WithContext(ctx).Preload("Zone").First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindByIDForUpdate acquires a row-level lock on the slot within the given
// transaction, serializing concurrent reservation attempts on the same slot.
func (r *slotRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ParkingSlot, error) {
	var slot models.ParkingSlot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindAll(ctx context.Context, filter SlotFilter) ([]models.ParkingSlot, error) {
	var slots []models.ParkingSlot
	q := r.db.WithContext(ctx).Preload("Zone")
	if filter.ZoneID != nil {
		q = q.Where("zone_id = ?", *filter.ZoneID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if err := q.Order("slot_number ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, slotID uint, status models.SlotStatus) error {
	return tx.WithContext(ctx).
		Model(&models.ParkingSlot{}).
		Where("id = ?", slotID).
		Update("status", status).Error
}

func (r *slotRepository) CountByZone(ctx context.Context, zoneID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ParkingSlot{}).
		Where("zone_id = ?", zoneID).
		Count(&count).Error
	return count, err
}

func (r *slotRepository) CountByStatus(ctx context.Context, status *models.SlotStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.ParkingSlot{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Count(&count).Error
	return count, err
}
