package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleUser  UserRole = "User"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

// User is an account visible in the admin screens. Users are never hard
// deleted; deactivation is one-way (Active to Inactive).
//
// DepartmentName is a read-time join of the referenced department's display
// name and is not stored on the user row.
type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           UserRole   `json:"role"`
	DepartmentID   string     `json:"departmentId"`
	DepartmentName string     `json:"department"`
	LastLogin      time.Time  `json:"lastLogin"`
	Status         UserStatus `json:"status"`
}
