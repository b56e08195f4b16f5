package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// scriptedVerificationService returns preset errors per call.
type scriptedVerificationService struct {
	requestErr error
	redeemErr  error

	gotToken   string
	gotOfferID string
	gotEmail   string
}

func (s *scriptedVerificationService) RequestVerification(ctx context.Context, offerID, email string) error {
	s.gotOfferID = offerID
	s.gotEmail = email
	return s.requestErr
}

func (s *scriptedVerificationService) Redeem(ctx context.Context, token, offerID string) error {
	s.gotToken = token
	s.gotOfferID = offerID
	return s.redeemErr
}

func newVerificationRouter(svc *scriptedVerificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewVerificationHandler(NewBaseHandler(validator.New()), svc)

	router := gin.New()
	router.GET("/verify", h.Redeem)
	router.POST("/api/v1/offers/:id/verification", h.Request)
	return router
}

func TestVerifyEndpoint_Success(t *testing.T) {
	t.Parallel()

	svc := &scriptedVerificationService{}
	router := newVerificationRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/verify?token=tok-123&id=offer-456", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, "tok-123", svc.gotToken)
	assert.Equal(t, "offer-456", svc.gotOfferID)
}

func TestVerifyEndpoint_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing params", apperrors.ErrInvalidVerificationLink, http.StatusBadRequest, "INVALID_REQUEST"},
		{"wrong token", apperrors.ErrInvalidVerificationToken, http.StatusBadRequest, "INVALID_VERIFICATION_TOKEN"},
		{"already verified", apperrors.ErrAlreadyVerified, http.StatusConflict, "ALREADY_VERIFIED"},
		{"unknown offer", apperrors.ErrOfferNotFound, http.StatusNotFound, "OFFER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newVerificationRouter(&scriptedVerificationService{redeemErr: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/verify?token=x&id=y", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestRequestVerification_Endpoint(t *testing.T) {
	t.Parallel()

	svc := &scriptedVerificationService{}
	router := newVerificationRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/offer-1/verification",
		strings.NewReader(`{"email":"student@uwaterloo.ca"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Verification email sent")
	assert.Equal(t, "offer-1", svc.gotOfferID)
	assert.Equal(t, "student@uwaterloo.ca", svc.gotEmail)
}

func TestRequestVerification_DispatchFailureIs502(t *testing.T) {
	t.Parallel()

	router := newVerificationRouter(&scriptedVerificationService{requestErr: apperrors.ErrDispatchFailed})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/offer-1/verification",
		strings.NewReader(`{"email":"student@uwaterloo.ca"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "VERIFICATION_EMAIL_FAILED")
}

func TestRequestVerification_InvalidEmailRejected(t *testing.T) {
	t.Parallel()

	router := newVerificationRouter(&scriptedVerificationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/offer-1/verification",
		strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}
