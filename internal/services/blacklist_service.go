package services

import (
	"context"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/logger"
	"goosedoor_backend/internal/models"
	"goosedoor_backend/internal/repositories"
	"goosedoor_backend/internal/services/dto"
)

// BlacklistService manages the Hall of Shame: community reports of
// companies with unacceptable practices.
type BlacklistService interface {
	Report(ctx context.Context, req *dto.ReportCompanyRequest, reporterID *string) (*dto.BlacklistedCompanyResponse, error)
	List(ctx context.Context) ([]*dto.BlacklistedCompanyResponse, error)
}

type BlacklistServiceImpl struct {
	repo repositories.BlacklistRepository
}

func NewBlacklistService(repo repositories.BlacklistRepository) *BlacklistServiceImpl {
	return &BlacklistServiceImpl{repo: repo}
}

func (s *BlacklistServiceImpl) Report(ctx context.Context, req *dto.ReportCompanyRequest, reporterID *string) (*dto.BlacklistedCompanyResponse, error) {
	entry := &models.BlacklistedCompany{
		CompanyName: req.CompanyName,
		Reason:      req.Reason,
		ReportedBy:  reporterID,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "company reported", "company", entry.CompanyName)
	return dto.BlacklistToResponse(entry), nil
}

func (s *BlacklistServiceImpl) List(ctx context.Context) ([]*dto.BlacklistedCompanyResponse, error) {
	entries, err := s.repo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]*dto.BlacklistedCompanyResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, dto.BlacklistToResponse(&entries[i]))
	}
	return resp, nil
}
