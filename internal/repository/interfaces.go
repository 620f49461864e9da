package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms-api/internal/model"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint would be violated.
var ErrDuplicate = errors.New("duplicate value")

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	// Get returns (nil, nil) when the patient does not exist; absence is a
	// normal outcome, not an error.
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Search(ctx context.Context, query string) ([]*model.Patient, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) error
	ListForDoctor(ctx context.Context, doctorUserID string, day *time.Time) ([]*model.Appointment, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User, role string) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	ListRoles(ctx context.Context) ([]string, error)
	ListDoctorProfiles(ctx context.Context) ([]*model.DoctorProfile, error)
	CreateDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error
}

type DashboardRepository interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
	MonthlyVisits(ctx context.Context, year int) ([]*model.MonthlyVisits, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	FetchUnprocessed(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id int64) error
}
