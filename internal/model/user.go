package model

import (
	"time"

	"github.com/google/uuid"
)

// Role names form a fixed set; role membership drives every authorization
// decision.
const (
	RoleAdmin        = "Admin"
	RoleDoctor       = "Doctor"
	RoleNurse        = "Nurse"
	RoleReceptionist = "Receptionist"
	RolePatient      = "Patient"
)

// AllRoles lists every role the system knows about.
var AllRoles = []string{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RolePatient}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"full_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Roles        []string  `db:"-" json:"roles"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type DoctorProfile struct {
	ID             int64     `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Specialization string    `db:"specialization" json:"specialization"`
	ShiftStart     string    `db:"shift_start" json:"shift_start"`
	ShiftEnd       string    `db:"shift_end" json:"shift_end"`
}

type CreateStaffRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,max=150"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=Admin Doctor Nurse Receptionist Patient"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenClaims is the verified identity extracted from a bearer token.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}
