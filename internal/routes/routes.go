package routes

import (
	"goosedoor_backend/internal/handlers"
	"goosedoor_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every HTTP route.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	// Verification redemption lives at the root: the emailed link is
	// /verify?token=...&id=... and needs no session.
	router.GET("/verify", h.Verification.Redeem)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.POST("/logout-all", middleware.AuthMiddleware(), h.Auth.LogoutAll)
			auth.DELETE("/account", middleware.AuthMiddleware(), h.Auth.DeleteAccount)
		}

		offers := api.Group("/offers")
		{
			offers.GET("", h.Offer.List)
			offers.POST("", middleware.OptionalAuthMiddleware(), h.Offer.Create)
			offers.GET("/:id", h.Offer.GetByID)
			offers.PUT("/:id", middleware.AuthMiddleware(), h.Offer.Update)
			offers.DELETE("/:id", middleware.AuthMiddleware(), h.Offer.Delete)

			offers.POST("/:id/verification", h.Verification.Request)
			offers.POST("/:id/verification/resend", h.Verification.Resend)
		}

		api.GET("/my/offers", middleware.AuthMiddleware(), h.Offer.MyOffers)

		api.POST("/rate-limit/check", h.RateLimit.Check)

		blacklist := api.Group("/blacklist")
		{
			blacklist.GET("", h.Blacklist.List)
			blacklist.POST("", middleware.AuthMiddleware(), h.Blacklist.Report)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/overview", h.Analytics.Overview)
			analytics.GET("/companies", h.Analytics.CompanyStats)
		}

		api.GET("/companies/:name/summary", h.Analytics.CompanySummary)
	}
}
