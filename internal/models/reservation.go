package models

import "time"

type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          uint              `gorm:"not null;index" json:"userId"`
	SlotID          uint              `gorm:"not null;index" json:"slotId"`
	ReservationDate time.Time         `gorm:"not null" json:"reservationDate"`
	StartTime       time.Time         `gorm:"not null;index" json:"startTime"`
	EndTime         time.Time         `gorm:"not null" json:"endTime"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	VehicleNumber   string            `json:"vehicleNumber,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	User *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Slot *ParkingSlot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

// Overlaps reports whether the reservation's window shares any instant with
// [start, end). Windows are half-open, so back-to-back bookings where one
// ends exactly when the other starts do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
