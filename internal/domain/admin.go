package domain

import (
	"time"

	"github.com/google/uuid"
)

// PanchayatAdmin resolves issues for one village. Provisioned by the
// super admin, logs in with username/password.
type PanchayatAdmin struct {
	ID           uuid.UUID `json:"id" db:"admin_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type SuperAdmin struct {
	ID           uuid.UUID `json:"id" db:"super_admin_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type AdminLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Role identifies which of the three account variants a token belongs
// to. Exactly one role is active per session.
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
