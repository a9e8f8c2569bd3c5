package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleHOD     UserRole = "HOD"
	RoleFaculty UserRole = "faculty"
	RoleStudent UserRole = "student"
)

// IsAdmin reports whether the role may query every student's records.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleHOD
}

// User represents an application user stored in the users table.
type User struct {
	ID           int64     `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	ContactNo    *string   `db:"contact_no" json:"contact_no,omitempty"`
	Role         UserRole  `db:"role" json:"role"`
	Active       bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
