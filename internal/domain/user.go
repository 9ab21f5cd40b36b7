package domain

import "time"

// Role is the closed set of caller profiles.
type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleTechnician Role = "TECHNICIAN"
)

// ParseRole maps a stored or submitted role name to a Role.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleTechnician:
		return RoleTechnician, true
	default:
		return "", false
	}
}

// User is an authenticated principal that opens or handles tickets.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Caller is the resolved identity of whoever issues a request.
type Caller struct {
	ID   string
	Role Role
}
