package handlers

import (
	"net/http"

	"goosedoor_backend/internal/apperrors"
	"goosedoor_backend/internal/ratelimit"
	"goosedoor_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RateLimitHandler struct {
	BaseHandler
	limiter ratelimit.Limiter
}

func NewRateLimitHandler(base BaseHandler, limiter ratelimit.Limiter) *RateLimitHandler {
	return &RateLimitHandler{BaseHandler: base, limiter: limiter}
}

// Check handles POST /rate-limit/check. The call both consults and
// consumes allowance, so clients invoke it once per real submission
// attempt. The fingerprint comes from the body, falling back to the
// header the submission endpoint uses.
func (h *RateLimitHandler) Check(c *gin.Context) {
	var req dto.RateLimitCheckRequest
	// Body is optional; header-only callers send no JSON at all.
	_ = c.ShouldBindJSON(&req)
	if req.Fingerprint == "" {
		req.Fingerprint = c.GetHeader(FingerprintHeader)
	}

	result, err := h.limiter.Check(c.Request.Context(), req.Fingerprint)
	if err != nil {
		if err == ratelimit.ErrMissingFingerprint {
			apperrors.HandleError(c, apperrors.ErrMissingFingerprint)
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	resp := dto.RateLimitCheckResponse{
		Allowed:    result.Allowed,
		Reason:     result.Reason,
		RetryAfter: result.RetryAfter,
		Remaining:  result.Remaining,
	}
	if !result.Allowed {
		c.JSON(http.StatusTooManyRequests, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
