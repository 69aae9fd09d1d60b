package repository

import (
	"context"

	"github.com/smartpark/smartpark/internal/models"
	"gorm.io/gorm"
)

type ZoneRepository interface {
	Create(ctx context.Context, zone *models.ParkingZone) error
	FindByID(ctx context.Context, id uint) (*models.ParkingZone, error)
	FindAll(ctx context.Context) ([]models.ParkingZone, error)
	Count(ctx context.Context) (int64, error)
}

type zoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) ZoneRepository {
	return &zoneRepository{db: db}
}

func (r *zoneRepository) Create(ctx context.Context, zone *models.ParkingZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *zoneRepository) FindByID(ctx context.Context, id uint) (*models.ParkingZone, error) {
	var zone models.ParkingZone
	if err := r.db.WithContext(ctx).First(&zone, id).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) FindAll(ctx context.Context) ([]models.ParkingZone, error) {
	var zones []models.ParkingZone
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *zoneRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ParkingZone{}).Count(&count).Error
	return count, err
}
