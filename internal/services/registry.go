package services

import (
	"time"

	"goosedoor_backend/internal/ai"
	"goosedoor_backend/internal/config"
	"goosedoor_backend/internal/email"
	"goosedoor_backend/internal/guard"
	"goosedoor_backend/internal/ratelimit"
	"goosedoor_backend/internal/repositories"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ServiceContainer wires every service with its dependencies.
type ServiceContainer struct {
	Auth         AuthService
	Offer        OfferService
	Verification VerificationService
	Blacklist    BlacklistService
	Analytics    AnalyticsService
	Summary      SummaryService
	Limiter      ratelimit.Limiter
}

func NewServiceContainer(db *gorm.DB, limiter ratelimit.Limiter, emailProvider email.Provider) *ServiceContainer {
	cfg := config.GetConfig()

	offerRepo := repositories.NewOfferRepository(db)
	userRepo := repositories.NewUserRepository(db)
	blacklistRepo := repositories.NewBlacklistRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	summarySvc := NewSummaryService(offerRepo, aiClient)

	verificationSvc := NewVerificationService(
		offerRepo,
		emailProvider,
		cfg.Verification.AllowedDomain,
		cfg.Verification.LinkBaseURL,
	)

	offerSvc := NewOfferService(offerRepo, limiter, guard.New(), verificationSvc, summarySvc)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo),
		Offer:        offerSvc,
		Verification: verificationSvc,
		Blacklist:    NewBlacklistService(blacklistRepo),
		Analytics:    NewAnalyticsService(analyticsRepo),
		Summary:      summarySvc,
		Limiter:      limiter,
	}
}

// NewLimiter builds the configured rate limiter backend.
func NewLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	max := cfg.RateLimit.MaxSubmissions

	if cfg.RateLimit.Backend == "redis" {
		opts, err := redis.ParseURL(cfg.RateLimit.RedisURL)
		if err != nil {
			return nil, err
		}
		return ratelimit.NewRedisLimiter(redis.NewClient(opts), window, max), nil
	}
	return ratelimit.NewMemoryLimiter(window, max), nil
}
