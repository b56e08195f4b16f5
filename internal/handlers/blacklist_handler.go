package handlers

import (
	"net/http"

	"goosedoor_backend/internal/services"
	"goosedoor_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BlacklistHandler struct {
	BaseHandler
	blacklistSvc services.BlacklistService
}

func NewBlacklistHandler(base BaseHandler, blacklistSvc services.BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{BaseHandler: base, blacklistSvc: blacklistSvc}
}

// Report handles POST /blacklist. Requires authentication; the
// reporter is recorded with the entry.
func (h *BlacklistHandler) Report(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.ReportCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.blacklistSvc.Report(c.Request.Context(), &req, &userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /blacklist.
func (h *BlacklistHandler) List(c *gin.Context) {
	resp, err := h.blacklistSvc.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": resp})
}
