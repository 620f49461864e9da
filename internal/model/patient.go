package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender      string    `db:"gender" json:"gender"`
	Contact     string    `db:"contact" json:"contact"`
	Address     string    `db:"address" json:"address"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	FullName    string    `json:"full_name" binding:"required,max=150"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Gender      string    `json:"gender" binding:"max=20"`
	Contact     string    `json:"contact" binding:"max=50"`
	Address     string    `json:"address" binding:"max=250"`
}

// UpdatePatientRequest carries the complete mutable field set. Updates are a
// full overwrite; partial updates are not supported.
type UpdatePatientRequest struct {
	FullName    string    `json:"full_name" binding:"required,max=150"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Gender      string    `json:"gender" binding:"max=20"`
	Contact     string    `json:"contact" binding:"max=50"`
	Address     string    `json:"address" binding:"max=250"`
}
