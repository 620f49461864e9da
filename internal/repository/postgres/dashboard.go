package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
)

type dashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

// Summary counts patients, registered users and appointments whose start
// date equals today in the store's clock.
func (r *dashboardRepository) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM patients) AS total_patients,
			(SELECT COUNT(*) FROM users) AS total_staff,
			(SELECT COUNT(*) FROM appointments WHERE start_time::date = CURRENT_DATE) AS appointments_today
	`
	var summary model.DashboardSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("failed to get dashboard summary: %w", err)
	}
	return &summary, nil
}

// MonthlyVisits groups medical records by calendar month within the year.
// Months without visits are omitted.
func (r *dashboardRepository) MonthlyVisits(ctx context.Context, year int) ([]*model.MonthlyVisits, error) {
	query := `
		SELECT EXTRACT(MONTH FROM visit_date)::int AS month, COUNT(*) AS visits
		FROM medical_records
		WHERE EXTRACT(YEAR FROM visit_date) = $1
		GROUP BY month
		ORDER BY month ASC
	`
	visits := []*model.MonthlyVisits{}
	if err := r.db.SelectContext(ctx, &visits, query, year); err != nil {
		return nil, fmt.Errorf("failed to get monthly visits: %w", err)
	}
	return visits, nil
}
