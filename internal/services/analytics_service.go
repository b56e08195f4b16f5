package services

import (
	"context"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/repositories"
)

// AnalyticsService exposes read-only aggregates over the offer data.
type AnalyticsService interface {
	Overview(ctx context.Context) (*repositories.PlatformOverview, error)
	CompanyStats(ctx context.Context, limit int) ([]repositories.CompanyStats, error)
}

type AnalyticsServiceImpl struct {
	repo repositories.AnalyticsRepository
}

func NewAnalyticsService(repo repositories.AnalyticsRepository) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{repo: repo}
}

func (s *AnalyticsServiceImpl) Overview(ctx context.Context) (*repositories.PlatformOverview, error) {
	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return overview, nil
}

func (s *AnalyticsServiceImpl) CompanyStats(ctx context.Context, limit int) ([]repositories.CompanyStats, error) {
	stats, err := s.repo.GetCompanyStats(limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
