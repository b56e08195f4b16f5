package handlers

import (
	"net/http"
	"strconv"
	"time"

	"goosedoor_backend/internal/guard"
	"goosedoor_backend/internal/services"
	"goosedoor_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const (
	// FingerprintHeader carries the client-generated browser fingerprint.
	FingerprintHeader = "X-Client-Fingerprint"

	// cooldownCookie records the browser's last accepted submission as
	// unix seconds. Advisory only; clearing it just retries against
	// the server-side rate limiter.
	cooldownCookie = "gd_last_submit"
)

type OfferHandler struct {
	BaseHandler
	offerSvc services.OfferService
}

func NewOfferHandler(base BaseHandler, offerSvc services.OfferService) *OfferHandler {
	return &OfferHandler{BaseHandler: base, offerSvc: offerSvc}
}

// Create handles POST /offers.
func (h *OfferHandler) Create(c *gin.Context) {
	var req dto.CreateOfferRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	fingerprint := c.GetHeader(FingerprintHeader)
	lastSubmission := readCooldownCookie(c)
	userID := h.OptionalUserID(c)

	resp, err := h.offerSvc.Create(c.Request.Context(), &req, fingerprint, lastSubmission, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	setCooldownCookie(c)
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /offers.
func (h *OfferHandler) List(c *gin.Context) {
	var query dto.OfferListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.offerSvc.List(c.Request.Context(), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID handles GET /offers/:id.
func (h *OfferHandler) GetByID(c *gin.Context) {
	resp, err := h.offerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /offers/:id. Owner only.
func (h *OfferHandler) Update(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.offerSvc.Update(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /offers/:id. Owner only.
func (h *OfferHandler) Delete(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.offerSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyOffers handles GET /my/offers.
func (h *OfferHandler) MyOffers(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.offerSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": resp})
}

func readCooldownCookie(c *gin.Context) *time.Time {
	raw, err := c.Cookie(cooldownCookie)
	if err != nil {
		return nil
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || unix <= 0 {
		return nil
	}
	t := time.Unix(unix, 0)
	return &t
}

func setCooldownCookie(c *gin.Context) {
	c.SetCookie(
		cooldownCookie,
		strconv.FormatInt(time.Now().Unix(), 10),
		int(guard.Cooldown.Seconds()),
		"/", "", false, true,
	)
}
