package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/repository"
	"gorm.io/gorm"
)

var ErrDuplicateZone = errors.New("a zone with this name already exists")

type ZoneService interface {
	CreateZone(ctx context.Context, zone *models.ParkingZone) error
	ListZones(ctx context.Context) ([]models.ParkingZone, error)
}

type zoneService struct {
	zoneRepo repository.ZoneRepository
}

func NewZoneService(zoneRepo repository.ZoneRepository) ZoneService {
	return &zoneService{zoneRepo: zoneRepo}
}

func (s *zoneService) CreateZone(ctx context.Context, zone *models.ParkingZone) error {
	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateZone
		}
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}

func (s *zoneService) ListZones(ctx context.Context) ([]models.ParkingZone, error) {
	return s.zoneRepo.FindAll(ctx)
}
