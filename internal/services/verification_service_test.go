package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/email"
	"goosedoor_backend/internal/models"
	"goosedoor_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOfferRepo is an in-memory OfferRepository. The verification
// transitions replicate the conditional-update semantics of the real
// store, including the at-most-one-winner guarantee.
type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*models.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]*models.Offer)}
}

func (r *fakeOfferRepo) Create(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	offer.CreatedAt = time.Now()
	if offer.VerificationStatus == "" {
		offer.VerificationStatus = models.VerificationUnverified
	}
	clone := *offer
	r.offers[offer.ID] = &clone
	return nil
}

func (r *fakeOfferRepo) FindByID(id string) (*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[id]
	if !ok {
		return nil, repositories.ErrOfferNotFound
	}
	clone := *offer
	return &clone, nil
}

func (r *fakeOfferRepo) FindWithFilter(filter repositories.OfferFilter) ([]models.Offer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Offer
	for _, offer := range r.offers {
		out = append(out, *offer)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOfferRepo) FindByUser(userID string) ([]models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Offer
	for _, offer := range r.offers {
		if offer.UserID != nil && *offer.UserID == userID {
			out = append(out, *offer)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) Update(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *offer
	r.offers[offer.ID] = &clone
	return nil
}

func (r *fakeOfferRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[id]; !ok {
		return repositories.ErrOfferNotFound
	}
	delete(r.offers, id)
	return nil
}

func (r *fakeOfferRepo) SetVerificationToken(offerID, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[offerID]
	if !ok || offer.VerificationStatus == models.VerificationVerified {
		return 0, nil
	}
	offer.VerificationStatus = models.VerificationPending
	offer.VerificationToken = &token
	return 1, nil
}

func (r *fakeOfferRepo) MarkVerified(offerID, token string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[offerID]
	if !ok ||
		offer.VerificationStatus != models.VerificationPending ||
		offer.VerificationToken == nil ||
		*offer.VerificationToken != token {
		return 0, nil
	}
	offer.VerificationStatus = models.VerificationVerified
	offer.VerificationToken = nil
	offer.VerifiedAt = &at
	return 1, nil
}

func (r *fakeOfferRepo) UpdateSentiment(offerID string, sentiment models.Sentiment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offer, ok := r.offers[offerID]; ok {
		offer.Sentiment = &sentiment
	}
	return nil
}

func (r *fakeOfferRepo) FindReviewsByCompany(companyName string) ([]models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Offer
	for _, offer := range r.offers {
		if offer.CompanyName == companyName && offer.ReviewText != nil {
			out = append(out, *offer)
		}
	}
	return out, nil
}

// token reads the stored token directly, bypassing the repository API.
func (r *fakeOfferRepo) token(offerID string) *string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offer, ok := r.offers[offerID]; ok {
		return offer.VerificationToken
	}
	return nil
}

// fakeEmailProvider records sends and can be told to fail.
type fakeEmailProvider struct {
	mu       sync.Mutex
	sent     []string // verify URLs, in order
	sentTo   []string
	failWith error
}

func (p *fakeEmailProvider) Send(ctx context.Context, msg *email.Message) error {
	return nil
}

func (p *fakeEmailProvider) SendOfferVerification(ctx context.Context, to, verifyURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.sent = append(p.sent, verifyURL)
	p.sentTo = append(p.sentTo, to)
	return nil
}

func newVerificationFixture(t *testing.T) (*VerificationServiceImpl, *fakeOfferRepo, *fakeEmailProvider, string) {
	t.Helper()

	repo := newFakeOfferRepo()
	provider := &fakeEmailProvider{}
	svc := NewVerificationService(repo, provider, "uwaterloo.ca", "http://localhost:8080")

	offer := &models.Offer{CompanyName: "Shopify"}
	require.NoError(t, repo.Create(offer))

	return svc, repo, provider, offer.ID
}

func TestRequestVerification_HappyPath(t *testing.T) {
	t.Parallel()

	svc, repo, provider, offerID := newVerificationFixture(t)

	err := svc.RequestVerification(context.Background(), offerID, "student@uwaterloo.ca")
	require.NoError(t, err)

	offer, err := repo.FindByID(offerID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, offer.VerificationStatus)
	require.NotNil(t, repo.token(offerID))

	require.Len(t, provider.sent, 1)
	assert.Contains(t, provider.sent[0], "http://localhost:8080/verify?token=")
	assert.Contains(t, provider.sent[0], "&id="+offerID)
	assert.Equal(t, []string{"student@uwaterloo.ca"}, provider.sentTo)
}

func TestRequestVerification_RejectsWrongDomain(t *testing.T) {
	t.Parallel()

	svc, repo, provider, offerID := newVerificationFixture(t)

	err := svc.RequestVerification(context.Background(), offerID, "student@gmail.com")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeEmailDomainNotAllowed, appErr.Code)

	// No side effects: still unverified, no token, nothing sent.
	offer, findErr := repo.FindByID(offerID)
	require.NoError(t, findErr)
	assert.Equal(t, models.VerificationUnverified, offer.VerificationStatus)
	assert.Nil(t, repo.token(offerID))
	assert.Empty(t, provider.sent)
}

func TestRequestVerification_DomainCheckIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc, _, provider, offerID := newVerificationFixture(t)

	err := svc.RequestVerification(context.Background(), offerID, "Student@UWaterloo.CA")
	require.NoError(t, err)
	assert.Len(t, provider.sent, 1)
}

func TestRequestVerification_DispatchFailureKeepsTokenPending(t *testing.T) {
	t.Parallel()

	svc, repo, provider, offerID := newVerificationFixture(t)
	provider.failWith = errors.New("smtp connection refused")

	err := svc.RequestVerification(context.Background(), offerID, "student@uwaterloo.ca")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDispatchFailed, appErr.Code)

	// The offer stays pending with its token so a resend can follow.
	offer, findErr := repo.FindByID(offerID)
	require.NoError(t, findErr)
	assert.Equal(t, models.VerificationPending, offer.VerificationStatus)
	assert.NotNil(t, repo.token(offerID))
}

func TestRequestVerification_ResendInvalidatesOldToken(t *testing.T) {
	t.Parallel()

	svc, repo, provider, offerID := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))
	first := *repo.token(offerID)

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))
	second := *repo.token(offerID)

	require.NotEqual(t, first, second)
	require.Len(t, provider.sent, 2)

	// The superseded token no longer redeems.
	err := svc.Redeem(ctx, first, offerID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidVerificationToken, appErr.Code)

	// The fresh one does.
	require.NoError(t, svc.Redeem(ctx, second, offerID))
}

func TestRequestVerification_OfferNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newVerificationFixture(t)

	err := svc.RequestVerification(context.Background(), uuid.NewString(), "student@uwaterloo.ca")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeOfferNotFound, appErr.Code)
}

func TestRequestVerification_AlreadyVerified(t *testing.T) {
	t.Parallel()

	svc, repo, _, offerID := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))
	token := *repo.token(offerID)
	require.NoError(t, svc.Redeem(ctx, token, offerID))

	err := svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyVerified, appErr.Code)
}

func TestRedeem_HappyPath(t *testing.T) {
	t.Parallel()

	svc, repo, _, offerID := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))
	token := *repo.token(offerID)

	require.NoError(t, svc.Redeem(ctx, token, offerID))

	offer, err := repo.FindByID(offerID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, offer.VerificationStatus)
	assert.Nil(t, offer.VerificationToken)
	assert.NotNil(t, offer.VerifiedAt)
}

func TestRedeem_SecondClickReportsAlreadyVerified(t *testing.T) {
	t.Parallel()

	svc, repo, _, offerID := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))
	token := *repo.token(offerID)
	require.NoError(t, svc.Redeem(ctx, token, offerID))

	err := svc.Redeem(ctx, token, offerID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyVerified, appErr.Code)
}

func TestRedeem_WrongToken(t *testing.T) {
	t.Parallel()

	svc, _, _, offerID := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))

	err := svc.Redeem(ctx, uuid.NewString(), offerID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidVerificationToken, appErr.Code)
}

func TestRedeem_EmptyParams(t *testing.T) {
	t.Parallel()

	svc, _, _, offerID := newVerificationFixture(t)
	ctx := context.Background()

	for _, tc := range []struct{ token, id string }{
		{"", offerID},
		{"some-token", ""},
		{"", ""},
	} {
		err := svc.Redeem(ctx, tc.token, tc.id)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidVerificationLink, appErr.Code)
	}
}

func TestRedeem_UnknownOffer(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newVerificationFixture(t)

	err := svc.Redeem(context.Background(), uuid.NewString(), uuid.NewString())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeOfferNotFound, appErr.Code)
}

func TestRedeem_ConcurrentSingleWinner(t *testing.T) {
	t.Parallel()

	svc, repo, _, offerID := newVerificationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestVerification(ctx, offerID, "student@uwaterloo.ca"))
	token := *repo.token(offerID)

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Redeem(ctx, token, offerID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeAlreadyVerified, appErr.Code)
	}
	assert.Equal(t, 1, winners)

	offer, err := repo.FindByID(offerID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, offer.VerificationStatus)
}
