package models

type Role string

const (
	RoleCustomer      Role = "Customer"
	RoleReceptionist  Role = "Receptionist"
	RoleRoomAttendant Role = "RoomAttendant"
	RoleManager       Role = "Manager"
)

var knownRoles = map[Role]bool{
	RoleCustomer:      true,
	RoleReceptionist:  true,
	RoleRoomAttendant: true,
	RoleManager:       true,
}

// ParseRole returns false for any string outside the closed role set.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, knownRoles[r]
}

// IsStaff reports whether the role belongs to hotel staff.
func (r Role) IsStaff() bool {
	return r == RoleReceptionist || r == RoleRoomAttendant || r == RoleManager
}
