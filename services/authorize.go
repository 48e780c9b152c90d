package services

import (
	"hotel-server/models"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Roles  []models.Role
}

func (a Actor) Has(role models.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsStaff() bool {
	for _, r := range a.Roles {
		if r.IsStaff() {
			return true
		}
	}
	return false
}

// Identified reports whether the caller carries a user id.
func (a Actor) Identified() bool {
	return a.UserID != 0
}

func (a Actor) Owns(b *models.Booking) bool {
	return b != nil && a.UserID != 0 && b.UserID == a.UserID
}

func CanViewBooking(a Actor, b *models.Booking) bool {
	return a.IsStaff() || a.Owns(b)
}

func CanCancelBooking(a Actor, b *models.Booking) bool {
	return a.IsStaff() || a.Owns(b)
}

// CanAdvanceBooking covers every transition except cancellation.
func CanAdvanceBooking(a Actor) bool {
	return a.IsStaff()
}

func CanCreateBooking(a Actor) bool {
	return a.Identified() && (a.Has(models.RoleCustomer) || a.Has(models.RoleReceptionist) || a.Has(models.RoleManager))
}

func CanBookOnBehalf(a Actor) bool {
	return a.Has(models.RoleReceptionist) || a.Has(models.RoleManager)
}

func CanRecordPayment(a Actor, b *models.Booking) bool {
	if !a.Identified() {
		return false
	}
	if !a.Has(models.RoleCustomer) && !a.Has(models.RoleReceptionist) && !a.Has(models.RoleManager) {
		return false
	}
	return a.IsStaff() || a.Owns(b)
}

func CanViewPayment(a Actor, p *models.Payment) bool {
	return a.IsStaff() || (p != nil && a.UserID != 0 && p.UserID == a.UserID)
}

func CanManageRooms(a Actor) bool {
	return a.Has(models.RoleReceptionist) || a.Has(models.RoleManager)
}

func CanDeleteRooms(a Actor) bool {
	return a.Has(models.RoleManager)
}

func CanSetRoomStatus(a Actor) bool {
	return a.IsStaff()
}
