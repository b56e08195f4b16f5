package handlers

import (
	"net/http"
	"strconv"

	"goosedoor_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsSvc services.AnalyticsService
	summarySvc   services.SummaryService
}

func NewAnalyticsHandler(base BaseHandler, analyticsSvc services.AnalyticsService, summarySvc services.SummaryService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:  base,
		analyticsSvc: analyticsSvc,
		summarySvc:   summarySvc,
	}
}

// Overview handles GET /analytics/overview.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsSvc.Overview(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// CompanyStats handles GET /analytics/companies.
func (h *AnalyticsHandler) CompanyStats(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	stats, err := h.analyticsSvc.CompanyStats(c.Request.Context(), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": stats})
}

// CompanySummary handles GET /companies/:name/summary.
func (h *AnalyticsHandler) CompanySummary(c *gin.Context) {
	summary, err := h.summarySvc.CompanySummary(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
