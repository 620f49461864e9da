package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
)

const defaultPassword = "Passw0rd!"

// Run populates roles and, on an empty database, demo users and patients.
// It is idempotent: existing rows are left alone.
func Run(ctx context.Context, db *sqlx.DB, users repository.UserRepository, patients repository.PatientRepository) error {
	if err := ensureRoles(ctx, db); err != nil {
		return err
	}

	doctor, err := ensureUser(ctx, users, "drsmith", "Dr. John Smith", model.RoleDoctor)
	if err != nil {
		return err
	}
	for _, u := range []struct{ username, fullName, role string }{
		{"admin", "System Admin", model.RoleAdmin},
		{"nurseamy", "Nurse Amy", model.RoleNurse},
		{"reception1", "Reception One", model.RoleReceptionist},
	} {
		if _, err := ensureUser(ctx, users, u.username, u.fullName, u.role); err != nil {
			return err
		}
	}

	return seedClinicalData(ctx, db, patients, doctor)
}

func ensureRoles(ctx context.Context, db *sqlx.DB) error {
	for _, role := range model.AllRoles {
		_, err := db.ExecContext(ctx, `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role)
		if err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role, err)
		}
	}
	return nil
}

func ensureUser(ctx context.Context, users repository.UserRepository, username, fullName, role string) (*model.User, error) {
	existing, err := users.GetByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@hms.local",
		FullName:     fullName,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, user, role); err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", username, err)
	}
	return user, nil
}

func seedClinicalData(ctx context.Context, db *sqlx.DB, patients repository.PatientRepository, doctor *model.User) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return fmt.Errorf("failed to count patients: %w", err)
	}
	if count > 0 {
		return nil
	}

	p1 := &model.Patient{
		ID:          uuid.New(),
		FullName:    "Jane Doe",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
		Contact:     "555-0001",
		Address:     "123 Main St",
	}
	p2 := &model.Patient{
		ID:          uuid.New(),
		FullName:    "Mark Lee",
		DateOfBirth: time.Date(1985, 7, 20, 0, 0, 0, 0, time.UTC),
		Gender:      "Male",
		Contact:     "555-0002",
		Address:     "456 Park Ave",
	}
	for _, p := range []*model.Patient{p1, p2} {
		if err := patients.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed patient: %w", err)
		}
	}

	today := time.Now().Truncate(24 * time.Hour)
	reason := "Checkup"
	_, err := db.ExecContext(ctx, `
		INSERT INTO appointments (patient_id, doctor_user_id, start_time, end_time, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p1.ID, doctor.ID.String(), today.Add(10*time.Hour), today.Add(10*time.Hour+30*time.Minute), model.AppointmentStatusBooked, reason)
	if err != nil {
		return fmt.Errorf("failed to seed appointment: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO medical_records (patient_id, doctor_user_id, diagnosis, prescription, treatment_plan)
		VALUES ($1, $2, $3, $4, $5)
	`, p1.ID, doctor.ID.String(), "Hypertension", "Medication A", "Monitor BP")
	if err != nil {
		return fmt.Errorf("failed to seed medical record: %w", err)
	}
	return nil
}
