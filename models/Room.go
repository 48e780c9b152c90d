package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
	RoomCleaning    RoomStatus = "Cleaning"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}

type Room struct {
	gorm.Model
	RoomNumber         string          `json:"roomNumber" gorm:"size:16;not null"`
	RoomType           string          `json:"roomType" gorm:"size:32;not null;index"` // Single, Double, Suite
	PricePerNight      decimal.Decimal `json:"pricePerNight" gorm:"type:numeric(12,2);not null"`
	Capacity           int             `json:"capacity" gorm:"not null;default:1"`
	Description        string          `json:"description" gorm:"type:text"`
	HasBalcony         bool            `json:"hasBalcony"`
	HasWifi            bool            `json:"hasWifi"`
	HasTV              bool            `json:"hasTV"`
	HasAirConditioning bool            `json:"hasAirConditioning"`
	ImageURL           string          `json:"imageUrl"`
	Status             RoomStatus      `json:"status" gorm:"size:16;not null;default:'Available';index"`
}
