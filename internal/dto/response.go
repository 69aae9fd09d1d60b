package dto

import (
	"time"

	"github.com/smartpark/smartpark/internal/models"
)

type ZoneSummary struct {
	ZoneName string `json:"zoneName"`
	Location string `json:"location"`
}

type SlotSummary struct {
	ID         uint              `json:"id"`
	SlotNumber string            `json:"slotNumber"`
	Status     models.SlotStatus `json:"status"`
	Zone       *ZoneSummary      `json:"zone,omitempty"`
}

type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReservationResponse struct {
	ID              uint                     `json:"id"`
	UserID          uint                     `json:"userId"`
	SlotID          uint                     `json:"slotId"`
	ReservationDate time.Time                `json:"reservationDate"`
	StartTime       time.Time                `json:"startTime"`
	EndTime         time.Time                `json:"endTime"`
	Status          models.ReservationStatus `json:"status"`
	VehicleNumber   string                   `json:"vehicleNumber,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	User            *UserSummary             `json:"user,omitempty"`
	Slot            *SlotSummary             `json:"slot,omitempty"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		SlotID:          r.SlotID,
		ReservationDate: r.ReservationDate,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Status:          r.Status,
		VehicleNumber:   r.VehicleNumber,
		CreatedAt:       r.CreatedAt,
	}
	if r.User != nil {
		resp.User = &UserSummary{Name: r.User.Name, Email: r.User.Email}
	}
	if r.Slot != nil {
		resp.Slot = &SlotSummary{
			ID:         r.Slot.ID,
			SlotNumber: r.Slot.SlotNumber,
			Status:     r.Slot.Status,
		}
		if r.Slot.Zone != nil {
			resp.Slot.Zone = &ZoneSummary{
				ZoneName: r.Slot.Zone.ZoneName,
				Location: r.Slot.Zone.Location,
			}
		}
	}
	return resp
}
