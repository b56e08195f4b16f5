package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"goosedoor_backend/internal/ai"
	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/logger"
	"goosedoor_backend/internal/models"
	"goosedoor_backend/internal/repositories"
	"goosedoor_backend/internal/services/dto"
)

const (
	summaryCacheTTL   = time.Hour
	maxSummaryReviews = 20
)

// SummaryService produces AI-generated company review digests and
// per-review sentiment tags. Both are best-effort extras: nothing in
// the submission path depends on them succeeding.
type SummaryService interface {
	// CompanySummary condenses the company's review texts into a short
	// digest. Results are cached per company for an hour.
	CompanySummary(ctx context.Context, companyName string) (*dto.CompanySummaryResponse, error)

	// TagSentiment classifies a review and stores the label on the
	// offer. Errors are logged and swallowed; callers fire and forget.
	TagSentiment(ctx context.Context, offerID, reviewText string)
}

type cachedSummary struct {
	response  *dto.CompanySummaryResponse
	expiresAt time.Time
}

type SummaryServiceImpl struct {
	offerRepo repositories.OfferRepository
	client    *ai.Client

	mu    sync.Mutex
	cache map[string]cachedSummary
}

func NewSummaryService(offerRepo repositories.OfferRepository, client *ai.Client) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		offerRepo: offerRepo,
		client:    client,
		cache:     make(map[string]cachedSummary),
	}
}

func (s *SummaryServiceImpl) CompanySummary(ctx context.Context, companyName string) (*dto.CompanySummaryResponse, error) {
	if !s.client.Enabled() {
		return nil, apperrors.NewNotFoundError("Company summaries are not available")
	}

	key := strings.ToLower(companyName)

	s.mu.Lock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.Unlock()
		return cached.response, nil
	}
	s.mu.Unlock()

	offers, err := s.offerRepo.FindReviewsByCompany(companyName)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var (
		reviews     []string
		totalRating int
		totalSalary float64
	)
	for _, offer := range offers {
		if offer.ReviewText == nil || *offer.ReviewText == "" {
			continue
		}
		totalRating += offer.ExperienceRating
		totalSalary += offer.SalaryHourly
		reviews = append(reviews, *offer.ReviewText)
		if len(reviews) >= maxSummaryReviews {
			break
		}
	}
	if len(reviews) == 0 {
		return nil, apperrors.NewNotFoundError("No reviews available for this company yet.")
	}

	n := float64(len(reviews))
	prompt := fmt.Sprintf(
		"Company: %s\nAverage rating: %.1f/5\nAverage hourly salary: $%.2f\n\nReviews:\n- %s",
		companyName, float64(totalRating)/n, totalSalary/n, strings.Join(reviews, "\n- "),
	)
	summary, err := s.client.Complete(ctx,
		"You summarize co-op work term reviews. Write 2-3 sentences capturing the overall experience students report at this company. Be neutral and specific.",
		prompt, 200,
	)
	if err != nil {
		logger.CtxWithError(ctx, "company summary generation failed", err, "company", companyName)
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CompanySummaryResponse{
		CompanyName: companyName,
		Summary:     summary,
		ReviewCount: len(reviews),
	}

	s.mu.Lock()
	s.cache[key] = cachedSummary{response: resp, expiresAt: time.Now().Add(summaryCacheTTL)}
	s.mu.Unlock()

	return resp, nil
}

func (s *SummaryServiceImpl) TagSentiment(ctx context.Context, offerID, reviewText string) {
	if !s.client.Enabled() || reviewText == "" {
		return
	}

	label, err := s.client.Complete(ctx,
		"Classify the sentiment of this co-op work review. Respond with exactly one word: positive, neutral, or negative.",
		reviewText, 5,
	)
	if err != nil {
		logger.CtxWithError(ctx, "sentiment tagging failed", err, "offer_id", offerID)
		return
	}

	sentiment := models.Sentiment(strings.ToLower(strings.TrimSpace(label)))
	switch sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		logger.CtxWarn(ctx, "sentiment classifier returned unexpected label", "offer_id", offerID, "label", label)
		return
	}

	if err := s.offerRepo.UpdateSentiment(offerID, sentiment); err != nil {
		logger.CtxWithError(ctx, "failed to store sentiment", err, "offer_id", offerID)
	}
}
