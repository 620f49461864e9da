package model

import (
	"time"

	"github.com/google/uuid"
)

type MedicalRecord struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorUserID  string    `db:"doctor_user_id" json:"doctor_user_id"`
	VisitDate     time.Time `db:"visit_date" json:"visit_date"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	Prescription  string    `db:"prescription" json:"prescription"`
	TreatmentPlan string    `db:"treatment_plan" json:"treatment_plan"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
}

type CreateMedicalRecordRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	DoctorUserID  string     `json:"doctor_user_id" binding:"required"`
	VisitDate     *time.Time `json:"visit_date"`
	Diagnosis     string     `json:"diagnosis"`
	Prescription  string     `json:"prescription"`
	TreatmentPlan string     `json:"treatment_plan"`
	Notes         *string    `json:"notes"`
}
