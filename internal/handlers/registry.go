package handlers

import (
	"goosedoor_backend/internal/services"
	"goosedoor_backend/internal/validator"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Offer        *OfferHandler
	Verification *VerificationHandler
	RateLimit    *RateLimitHandler
	Blacklist    *BlacklistHandler
	Analytics    *AnalyticsHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svc.Auth),
		Offer:        NewOfferHandler(base, svc.Offer),
		Verification: NewVerificationHandler(base, svc.Verification),
		RateLimit:    NewRateLimitHandler(base, svc.Limiter),
		Blacklist:    NewBlacklistHandler(base, svc.Blacklist),
		Analytics:    NewAnalyticsHandler(base, svc.Analytics, svc.Summary),
	}
}
