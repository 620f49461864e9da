package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

type userRow struct {
	ID           uuid.UUID      `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	PasswordHash string         `db:"password_hash"`
	Roles        pq.StringArray `db:"roles"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		Roles:        []string(r.Roles),
		CreatedAt:    r.CreatedAt,
	}
}

const userSelect = `
	SELECT u.id, u.username, u.email, u.full_name, u.password_hash, u.created_at,
	       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}') AS roles
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
`

// Create inserts the user and its role membership in a single transaction.
func (r *userRepository) Create(ctx context.Context, user *model.User, role string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user.CreatedAt = time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, username, email, full_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Username, user.Email, user.FullName, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
	`, user.ID, role)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("role %q: %w", role, repository.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	user.Roles = []string{role}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, userSelect+` WHERE u.id = $1 GROUP BY u.id`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.toModel(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, userSelect+` WHERE u.username = $1 GROUP BY u.id`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return row.toModel(), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	rows := []userRow{}
	err := r.db.SelectContext(ctx, &rows, userSelect+` GROUP BY u.id ORDER BY u.username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *userRepository) ListRoles(ctx context.Context) ([]string, error) {
	roles := []string{}
	if err := r.db.SelectContext(ctx, &roles, `SELECT name FROM roles ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (r *userRepository) ListDoctorProfiles(ctx context.Context) ([]*model.DoctorProfile, error) {
	profiles := []*model.DoctorProfile{}
	err := r.db.SelectContext(ctx, &profiles, `
		SELECT id, user_id, specialization, shift_start, shift_end
		FROM doctor_profiles
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor profiles: %w", err)
	}
	return profiles, nil
}

func (r *userRepository) CreateDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO doctor_profiles (user_id, specialization, shift_start, shift_end)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, profile.UserID, profile.Specialization, profile.ShiftStart, profile.ShiftEnd).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to create doctor profile: %w", err)
	}
	return nil
}
