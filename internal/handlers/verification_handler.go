package handlers

import (
	"net/http"

	"goosedoor_backend/internal/services"
	"goosedoor_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	BaseHandler
	verificationSvc services.VerificationService
}

func NewVerificationHandler(base BaseHandler, verificationSvc services.VerificationService) *VerificationHandler {
	return &VerificationHandler{BaseHandler: base, verificationSvc: verificationSvc}
}

// Request handles POST /offers/:id/verification. The caller supplies
// the institutional address to send the link to.
func (h *VerificationHandler) Request(c *gin.Context) {
	var req dto.RequestVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.verificationSvc.RequestVerification(c.Request.Context(), c.Param("id"), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerificationResultResponse{
		Success: true,
		Message: "Verification email sent",
	})
}

// Resend handles POST /offers/:id/verification/resend. A fresh token
// is minted and the previous link stops working.
func (h *VerificationHandler) Resend(c *gin.Context) {
	h.Request(c)
}

// Redeem handles GET /verify?token=...&id=... clicked from the email.
func (h *VerificationHandler) Redeem(c *gin.Context) {
	token := c.Query("token")
	offerID := c.Query("id")

	if err := h.verificationSvc.Redeem(c.Request.Context(), token, offerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerificationResultResponse{
		Success: true,
		Message: "Offer verified successfully",
	})
}
