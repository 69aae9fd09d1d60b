package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrZoneNotFound  = errors.New("zone not found")
	ErrZoneFull      = errors.New("capacity reached for this zone")
	ErrDuplicateSlot = errors.New("this slot number already exists in the selected zone")
)

type SlotService interface {
	CreateSlot(ctx context.Context, slot *models.ParkingSlot) error
	ListSlots(ctx context.Context, filter repository.SlotFilter) ([]models.ParkingSlot, error)
}

type slotService struct {
	slotRepo repository.SlotRepository
	zoneRepo repository.ZoneRepository
}

func NewSlotService(slotRepo repository.SlotRepository, zoneRepo repository.ZoneRepository) SlotService {
	return &slotService{slotRepo: slotRepo, zoneRepo: zoneRepo}
}

func (s *slotService) CreateSlot(ctx context.Context, slot *models.ParkingSlot) error {
	zone, err := s.zoneRepo.FindByID(ctx, slot.ZoneID)
	if err != nil {
		return ErrZoneNotFound
	}

	// Capacity 0 means the zone accepts any number of slots.
	if zone.Capacity > 0 {
		count, err := s.slotRepo.CountByZone(ctx, slot.ZoneID)
		if err != nil {
			return fmt.Errorf("count zone slots: %w", err)
		}
		if count >= int64(zone.Capacity) {
			return ErrZoneFull
		}
	}

	if slot.Status == "" {
		slot.Status = models.SlotAvailable
	}
	if slot.SlotType == "" {
		slot.SlotType = "Standard"
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

func (s *slotService) ListSlots(ctx context.Context, filter repository.SlotFilter) ([]models.ParkingSlot, error) {
	return s.slotRepo.FindAll(ctx, filter)
}
