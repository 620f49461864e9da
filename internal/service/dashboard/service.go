package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
)

const summaryCacheKey = "dashboard:summary"

type Service interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
	MonthlyVisits(ctx context.Context, year int) ([]*model.MonthlyVisits, error)
}

type service struct {
	repo  repository.DashboardRepository
	cache *cache.Cache
}

func NewService(repo repository.DashboardRepository) Service {
	return &service{
		repo:  repo,
		cache: cache.New(30*time.Second, time.Minute),
	}
}

// Summary serves a short-TTL cached snapshot; the counts behind it are pure
// reads and the dashboard is the hottest endpoint.
func (s *service) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	if cached, ok := s.cache.Get(summaryCacheKey); ok {
		return cached.(*model.DashboardSummary), nil
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	s.cache.Set(summaryCacheKey, summary, cache.DefaultExpiration)
	return summary, nil
}

// MonthlyVisits returns sparse per-month counts; months without visits are
// omitted rather than zero-filled.
func (s *service) MonthlyVisits(ctx context.Context, year int) ([]*model.MonthlyVisits, error) {
	visits, err := s.repo.MonthlyVisits(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly visits: %w", err)
	}
	return visits, nil
}
