package models

import (
	"gorm.io/gorm"
)

// User mirrors the profile held by the identity service. Accounts are created
// and authenticated there; this service only reads them.
type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Role      Role   `json:"role" gorm:"size:16;default:'Customer'"`
	IsActive  bool   `json:"isActive" gorm:"default:true"`
}
