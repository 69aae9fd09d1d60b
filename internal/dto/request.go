package dto

import (
	"time"

	"github.com/smartpark/smartpark/internal/models"
)

type RegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateReservationRequest struct {
	SlotID          uint      `json:"slotId"`
	ReservationDate time.Time `json:"reservationDate"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	VehicleNumber   string    `json:"vehicleNumber"`
}

type UpdateReservationRequest struct {
	SlotID          *uint      `json:"slotId"`
	ReservationDate *time.Time `json:"reservationDate"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	VehicleNumber   *string    `json:"vehicleNumber"`
}

type CreateZoneRequest struct {
	ZoneName    string `json:"zoneName"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
}

type CreateSlotRequest struct {
	SlotNumber string            `json:"slotNumber"`
	ZoneID     uint              `json:"zoneId"`
	Status     models.SlotStatus `json:"status"`
	SlotType   string            `json:"slotType"`
}
