package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"userId" gorm:"index;not null"`
	Action     string         `json:"action" gorm:"size:64;index"` // booking.create, booking.status_update, room.update, ...
	EntityType string         `json:"entityType" gorm:"size:32;index"`
	EntityID   uint           `json:"entityId" gorm:"index"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"createdAt"`
}
