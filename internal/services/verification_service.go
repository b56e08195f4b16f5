package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/email"
	"goosedoor_backend/internal/logger"
	"goosedoor_backend/internal/repositories"

	"github.com/google/uuid"
)

// VerificationService binds a single-use token to an offer and gates
// the one-way unverified -> pending -> verified transition on
// presentation of that exact token. Redemption needs no session: the
// token alone is the credential, since the verifying party may not be
// logged in.
type VerificationService interface {
	// RequestVerification mints a token for the offer and emails the
	// verification link to the claimed institutional address. Calling
	// it again while the offer is pending reissues a fresh token and
	// silently invalidates the previous one; this is also the resend
	// path. If the email dispatch fails the token stays persisted and
	// the offer stays pending.
	RequestVerification(ctx context.Context, offerID, emailAddr string) error

	// Redeem validates token+offer and flips the offer to verified
	// exactly once. Subsequent attempts report AlreadyVerified.
	Redeem(ctx context.Context, token, offerID string) error
}

type VerificationServiceImpl struct {
	offerRepo     repositories.OfferRepository
	emailProvider email.Provider
	allowedDomain string
	linkBaseURL   string
	now           func() time.Time
}

func NewVerificationService(
	offerRepo repositories.OfferRepository,
	emailProvider email.Provider,
	allowedDomain string,
	linkBaseURL string,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		offerRepo:     offerRepo,
		emailProvider: emailProvider,
		allowedDomain: allowedDomain,
		linkBaseURL:   strings.TrimRight(linkBaseURL, "/"),
		now:           time.Now,
	}
}

func (s *VerificationServiceImpl) RequestVerification(ctx context.Context, offerID, emailAddr string) error {
	// Domain check first: a bad address causes no side effects.
	if !strings.HasSuffix(strings.ToLower(emailAddr), "@"+s.allowedDomain) {
		return apperrors.ErrEmailDomainNotAllowed.WithMessage(
			fmt.Sprintf("Only @%s emails are allowed", s.allowedDomain),
		)
	}

	token := uuid.NewString()

	rows, err := s.offerRepo.SetVerificationToken(offerID, token)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if rows == 0 {
		// Either the offer is gone or it is already verified.
		offer, err := s.offerRepo.FindByID(offerID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrOfferNotFound) {
				return apperrors.ErrOfferNotFound
			}
			return apperrors.InternalError(err)
		}
		if offer.IsVerified() {
			return apperrors.ErrAlreadyVerified
		}
		return apperrors.InternalError(fmt.Errorf("verification token not stored for offer %s", offerID))
	}

	verifyURL := fmt.Sprintf("%s/verify?token=%s&id=%s", s.linkBaseURL, token, offerID)

	// The address is only used for dispatch; it is never stored with
	// the offer.
	if err := s.emailProvider.SendOfferVerification(ctx, emailAddr, verifyURL); err != nil {
		// The token is already persisted; the offer stays pending and
		// the undelivered link is unusable. No rollback and no retry;
		// the caller is told the email did not arrive and may resend.
		logger.CtxWithError(ctx, "verification email dispatch failed", err, "offer_id", offerID)
		return apperrors.ErrDispatchFailed
	}

	logger.CtxInfo(ctx, "verification email sent", "offer_id", offerID)
	return nil
}

func (s *VerificationServiceImpl) Redeem(ctx context.Context, token, offerID string) error {
	if token == "" || offerID == "" {
		return apperrors.ErrInvalidVerificationLink
	}

	rows, err := s.offerRepo.MarkVerified(offerID, token, s.now())
	if err != nil {
		return apperrors.InternalError(err)
	}
	if rows == 1 {
		logger.CtxInfo(ctx, "offer verified", "offer_id", offerID)
		return nil
	}

	// The conditional update matched nothing; classify why.
	offer, err := s.offerRepo.FindByID(offerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOfferNotFound) {
			return apperrors.ErrOfferNotFound
		}
		return apperrors.InternalError(err)
	}
	if offer.IsVerified() {
		// Covers both a genuine second click and the loser of a
		// concurrent redemption race.
		return apperrors.ErrAlreadyVerified
	}
	return apperrors.ErrInvalidVerificationToken
}
