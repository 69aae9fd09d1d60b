package models

import "time"

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotOccupied    SlotStatus = "occupied"
	SlotMaintenance SlotStatus = "maintenance"
)

type ParkingSlot struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SlotNumber string     `gorm:"not null;uniqueIndex:idx_zone_slot_number" json:"slotNumber"`
	ZoneID     uint       `gorm:"not null;uniqueIndex:idx_zone_slot_number" json:"zoneId"`
	Status     SlotStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	SlotType   string     `gorm:"not null;default:'Standard'" json:"slotType"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Zone *ParkingZone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}
