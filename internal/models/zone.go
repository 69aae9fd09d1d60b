package models

import "time"

// ParkingZone groups slots administratively (a building, a lot).
// Capacity 0 means unlimited.
type ParkingZone struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ZoneName    string    `gorm:"uniqueIndex;not null" json:"zoneName"`
	Location    string    `gorm:"not null" json:"location"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `gorm:"not null;default:0" json:"capacity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
