// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: may read and mutate any segment
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// IsValid reports whether r is a recognised [UserRole] value.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Identity

// Identity is the resolved caller of a request, attached to the request
// context by the authentication middleware.
//
// A nil *Identity means the request is anonymous.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   UserRole
}

// IsAdmin reports whether the identity carries the admin role.
// It is nil-safe so handlers can call it on anonymous requests.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Is reports whether the identity belongs to the given user ID.
// It is nil-safe so handlers can call it on anonymous requests.
func (i *Identity) Is(userID string) bool {
	return i != nil && i.UserID == userID
}
