package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms/hms-api/internal/model"
)

type fakeDashboardRepo struct {
	summaryCalls int
	summary      *model.DashboardSummary
	visits       []*model.MonthlyVisits
}

func (r *fakeDashboardRepo) Summary(_ context.Context) (*model.DashboardSummary, error) {
	r.summaryCalls++
	return r.summary, nil
}

func (r *fakeDashboardRepo) MonthlyVisits(_ context.Context, year int) ([]*model.MonthlyVisits, error) {
	return r.visits, nil
}

func TestSummaryIsCached(t *testing.T) {
	repo := &fakeDashboardRepo{
		summary: &model.DashboardSummary{TotalPatients: 2, TotalStaff: 4, AppointmentsToday: 1},
	}
	svc := NewService(repo)

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.summaryCalls)
}

// Months without visits are omitted; the result must never carry a zero
// count.
func TestMonthlyVisitsIsSparse(t *testing.T) {
	repo := &fakeDashboardRepo{
		visits: []*model.MonthlyVisits{
			{Month: 2, Visits: 3},
			{Month: 7, Visits: 1},
		},
	}
	svc := NewService(repo)

	visits, err := svc.MonthlyVisits(context.Background(), 2024)
	require.NoError(t, err)

	require.Len(t, visits, 2)
	for _, v := range visits {
		assert.NotZero(t, v.Visits)
	}
	assert.Equal(t, 2, visits[0].Month)
	assert.Equal(t, 7, visits[1].Month)
}
