package service

import (
	"context"
	"fmt"
	"math"

	"github.com/smartpark/smartpark/internal/models"
	"github.com/smartpark/smartpark/internal/repository"
)

type DashboardStats struct {
	TotalZones            int64 `json:"totalZones"`
	TotalSlots            int64 `json:"totalSlots"`
	OccupiedSlots         int64 `json:"occupiedSlots"`
	AvailableSlots        int64 `json:"availableSlots"`
	MaintenanceSlots      int64 `json:"maintenanceSlots"`
	ActiveReservations    int64 `json:"activeReservations"`
	TotalReservations     int64 `json:"totalReservations"`
	CancelledReservations int64 `json:"cancelledReservations"`
	OccupancyRate         int   `json:"occupancyRate"`
}

type DashboardReport struct {
	Stats              DashboardStats                    `json:"stats"`
	ReservationsByZone []repository.ZoneReservationCount `json:"reservationsByZone"`
	RecentReservations []models.Reservation              `json:"recentReservations"`
}

type DashboardService interface {
	GetReport(ctx context.Context) (*DashboardReport, error)
}

type dashboardService struct {
	zoneRepo        repository.ZoneRepository
	slotRepo        repository.SlotRepository
	reservationRepo repository.ReservationRepository
}

func NewDashboardService(zoneRepo repository.ZoneRepository, slotRepo repository.SlotRepository, reservationRepo repository.ReservationRepository) DashboardService {
	return &dashboardService{
		zoneRepo:        zoneRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
	}
}

func (s *dashboardService) GetReport(ctx context.Context) (*DashboardReport, error) {
	var (
		stats DashboardStats
		err   error
	)

	if stats.TotalZones, err = s.zoneRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count zones: %w", err)
	}
	if stats.TotalSlots, err = s.slotRepo.CountByStatus(ctx, nil); err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}

	occupied := models.SlotOccupied
	available := models.SlotAvailable
	maintenance := models.SlotMaintenance
	if stats.OccupiedSlots, err = s.slotRepo.CountByStatus(ctx, &occupied); err != nil {
		return nil, fmt.Errorf("count occupied slots: %w", err)
	}
	if stats.AvailableSlots, err = s.slotRepo.CountByStatus(ctx, &available); err != nil {
		return nil, fmt.Errorf("count available slots: %w", err)
	}
	if stats.MaintenanceSlots, err = s.slotRepo.CountByStatus(ctx, &maintenance); err != nil {
		return nil, fmt.Errorf("count maintenance slots: %w", err)
	}

	active := models.StatusActive
	cancelled := models.StatusCancelled
	if stats.ActiveReservations, err = s.reservationRepo.CountByStatus(ctx, &active); err != nil {
		return nil, fmt.Errorf("count active reservations: %w", err)
	}
	if stats.TotalReservations, err = s.reservationRepo.CountByStatus(ctx, nil); err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	if stats.CancelledReservations, err = s.reservationRepo.CountByStatus(ctx, &cancelled); err != nil {
		return nil, fmt.Errorf("count cancelled reservations: %w", err)
	}

	if stats.TotalSlots > 0 {
		stats.OccupancyRate = int(math.Round(float64(stats.OccupiedSlots) / float64(stats.TotalSlots) * 100))
	}

	byZone, err := s.reservationRepo.ActiveCountByZone(ctx)
	if err != nil {
		return nil, fmt.Errorf("reservations by zone: %w", err)
	}

	recent, err := s.reservationRepo.FindAll(ctx, repository.ReservationFilter{Limit: 10})
	if err != nil {
		return nil, fmt.Errorf("recent reservations: %w", err)
	}

	return &DashboardReport{
		Stats:              stats,
		ReservationsByZone: byZone,
		RecentReservations: recent,
	}, nil
}
