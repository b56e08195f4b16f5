package services

import (
	"context"
	"time"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/guard"
	"goosedoor_backend/internal/logger"
	"goosedoor_backend/internal/models"
	"goosedoor_backend/internal/ratelimit"
	"goosedoor_backend/internal/repositories"
	"goosedoor_backend/internal/services/dto"
)

const sentimentTimeout = 60 * time.Second

// OfferService owns the submission pipeline and offer CRUD. Create
// runs rate limiter then guard before anything touches the store, so a
// rejected submission consumes limiter allowance but has no other side
// effects.
type OfferService interface {
	Create(ctx context.Context, req *dto.CreateOfferRequest, fingerprint string, lastSubmission *time.Time, userID *string) (*dto.CreateOfferResponse, error)
	List(ctx context.Context, query *dto.OfferListQuery) (*dto.OfferListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OfferResponse, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error)
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*dto.OfferResponse, error)
}

type OfferServiceImpl struct {
	offerRepo       repositories.OfferRepository
	limiter         ratelimit.Limiter
	guard           *guard.Guard
	verificationSvc VerificationService
	summarySvc      SummaryService
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	limiter ratelimit.Limiter,
	g *guard.Guard,
	verificationSvc VerificationService,
	summarySvc SummaryService,
) *OfferServiceImpl {
	return &OfferServiceImpl{
		offerRepo:       offerRepo,
		limiter:         limiter,
		guard:           g,
		verificationSvc: verificationSvc,
		summarySvc:      summarySvc,
	}
}

func (s *OfferServiceImpl) Create(
	ctx context.Context,
	req *dto.CreateOfferRequest,
	fingerprint string,
	lastSubmission *time.Time,
	userID *string,
) (*dto.CreateOfferResponse, error) {
	// Rate limiter first. A denied caller learns nothing about whether
	// their content would have passed the guard.
	result, err := s.limiter.Check(ctx, fingerprint)
	if err != nil {
		if err == ratelimit.ErrMissingFingerprint {
			return nil, apperrors.ErrMissingFingerprint
		}
		// Backend failure (e.g. Redis outage) fails open: losing a few
		// rate checks is preferable to blocking all submissions.
		logger.CtxWithError(ctx, "rate limiter check failed, allowing submission", err)
	} else if !result.Allowed {
		return nil, apperrors.RateLimited(result.RetryAfter)
	}

	sub := guard.Submission{
		CompanyName:    req.CompanyName,
		RoleTitle:      req.RoleTitle,
		Location:       req.Location,
		SalaryHourly:   req.SalaryHourly,
		ReviewText:     req.ReviewText,
		Program:        req.Program,
		University:     req.University,
		Term:           req.Term,
		JobType:        req.JobType,
		Level:          req.Level,
		WorkType:       req.WorkType,
		Honeypot:       req.Website,
		FormRenderedAt: formRenderedAt(req.FormRenderedAt),
	}
	if rej := s.guard.Check(sub, lastSubmission); rej != nil {
		if rej.Silent {
			// The bland public message hides which tripwire fired.
			logger.CtxWarn(ctx, "submission rejected by guard",
				"signal", rej.Signal, "company", req.CompanyName)
			return nil, apperrors.ErrSubmissionRejected
		}
		return nil, apperrors.NewBadRequestError(rej.Message)
	}

	offer := &models.Offer{
		CompanyName:      req.CompanyName,
		RoleTitle:        req.RoleTitle,
		Location:         req.Location,
		SalaryHourly:     req.SalaryHourly,
		Currency:         req.Currency,
		TechStack:        req.TechStack,
		ExperienceRating: req.ExperienceRating,
		Program:          req.Program,
		YearOfStudy:      req.YearOfStudy,
		University:       req.University,
		Term:             req.Term,
		JobType:          req.JobType,
		Level:            req.Level,
		WorkType:         req.WorkType,
		UserID:           userID,
	}
	if req.ReviewText != "" {
		offer.ReviewText = &req.ReviewText
	}
	if req.VerificationEmail != "" {
		// Kept server-side only (never serialized) so a resend does
		// not depend on the submitter retyping the address.
		offer.ContactEmail = &req.VerificationEmail
	}
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "offer created", "offer_id", offer.ID, "company", offer.CompanyName)

	resp := &dto.CreateOfferResponse{Offer: dto.OfferToResponse(offer)}

	// The offer is already stored; a verification failure downgrades
	// to a warning on the 201 rather than failing the whole request.
	if req.VerificationEmail != "" {
		if err := s.verificationSvc.RequestVerification(ctx, offer.ID, req.VerificationEmail); err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				resp.Warning = appErr.Message
			} else {
				resp.Warning = "Verification email could not be sent"
			}
		} else {
			resp.VerificationEmailSent = true
		}
	}

	if offer.ReviewText != nil {
		// Detached from the request context so a fast client
		// disconnect does not cancel the classification.
		go func(offerID, review string) {
			tagCtx, cancel := context.WithTimeout(context.Background(), sentimentTimeout)
			defer cancel()
			s.summarySvc.TagSentiment(tagCtx, offerID, review)
		}(offer.ID, *offer.ReviewText)
	}

	return resp, nil
}

func formRenderedAt(unixMillis int64) time.Time {
	if unixMillis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(unixMillis)
}

func (s *OfferServiceImpl) List(ctx context.Context, query *dto.OfferListQuery) (*dto.OfferListResponse, error) {
	filter := repositories.OfferFilter{
		Search:     query.Search,
		Verified:   query.Verified,
		JobTypes:   query.JobTypes,
		WorkTypes:  query.WorkTypes,
		Levels:     query.Levels,
		University: query.University,
		MinSalary:  query.MinSalary,
		MaxSalary:  query.MaxSalary,
		Sort:       query.Sort,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	offers, total, err := s.offerRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	resp := &dto.OfferListResponse{
		Offers:     make([]*dto.OfferResponse, 0, len(offers)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
	for i := range offers {
		resp.Offers = append(resp.Offers, dto.OfferToResponse(&offers[i]))
	}
	return resp, nil
}

func (s *OfferServiceImpl) GetByID(ctx context.Context, id string) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrOfferNotFound {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.OfferToResponse(offer), nil
}

func (s *OfferServiceImpl) Update(ctx context.Context, id, userID string, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	offer, err := s.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	// Edits satisfy the same content bounds as fresh submissions.
	sub := guard.Submission{
		CompanyName:  req.CompanyName,
		RoleTitle:    req.RoleTitle,
		Location:     req.Location,
		SalaryHourly: req.SalaryHourly,
		ReviewText:   req.ReviewText,
		Program:      req.Program,
		University:   req.University,
		Term:         req.Term,
		JobType:      req.JobType,
		Level:        req.Level,
		WorkType:     req.WorkType,
	}
	if rej := s.guard.CheckContent(sub); rej != nil {
		return nil, apperrors.NewBadRequestError(rej.Message)
	}

	offer.CompanyName = req.CompanyName
	offer.RoleTitle = req.RoleTitle
	offer.Location = req.Location
	offer.SalaryHourly = req.SalaryHourly
	offer.Currency = req.Currency
	offer.TechStack = req.TechStack
	offer.ExperienceRating = req.ExperienceRating
	offer.Program = req.Program
	offer.YearOfStudy = req.YearOfStudy
	offer.University = req.University
	offer.Term = req.Term
	offer.JobType = req.JobType
	offer.Level = req.Level
	offer.WorkType = req.WorkType
	if req.ReviewText != "" {
		offer.ReviewText = &req.ReviewText
	} else {
		offer.ReviewText = nil
		offer.Sentiment = nil
	}

	if err := s.offerRepo.Update(offer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "offer updated", "offer_id", offer.ID)

	if offer.ReviewText != nil {
		go func(offerID, review string) {
			tagCtx, cancel := context.WithTimeout(context.Background(), sentimentTimeout)
			defer cancel()
			s.summarySvc.TagSentiment(tagCtx, offerID, review)
		}(offer.ID, *offer.ReviewText)
	}

	return dto.OfferToResponse(offer), nil
}

func (s *OfferServiceImpl) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.findOwned(id, userID); err != nil {
		return err
	}
	if err := s.offerRepo.Delete(id); err != nil {
		if err == repositories.ErrOfferNotFound {
			return apperrors.ErrOfferNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "offer deleted", "offer_id", id)
	return nil
}

func (s *OfferServiceImpl) ListByUser(ctx context.Context, userID string) ([]*dto.OfferResponse, error) {
	offers, err := s.offerRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]*dto.OfferResponse, 0, len(offers))
	for i := range offers {
		resp = append(resp, dto.OfferToResponse(&offers[i]))
	}
	return resp, nil
}

// findOwned loads the offer and checks the caller owns it. Anonymous
// offers have no owner and cannot be edited by anyone.
func (s *OfferServiceImpl) findOwned(id, userID string) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrOfferNotFound {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if offer.UserID == nil || *offer.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return offer, nil
}
