package app

import (
	"fmt"
	"time"

	"goosedoor_backend/database"
	"goosedoor_backend/internal/config"
	"goosedoor_backend/internal/email"
	"goosedoor_backend/internal/handlers"
	"goosedoor_backend/internal/logger"
	"goosedoor_backend/internal/middleware"
	"goosedoor_backend/internal/repositories"
	"goosedoor_backend/internal/routes"
	"goosedoor_backend/internal/services"
	"goosedoor_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole server: config, logger, database, migrations,
// services, router.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	go cleanExpiredTokensLoop(repositories.NewUserRepository(gormDB))

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires services, handlers and routes into a gin engine.
// Split out of Run so tests can build a router against fakes.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	limiter, err := services.NewLimiter(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize rate limiter", "error", err)
	}
	logger.Info("Rate limiter initialized", "backend", cfg.RateLimit.Backend)

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUsername,
			Password:    cfg.Email.SMTPPassword,
			FromEmail:   cfg.Email.FromEmail,
			FromName:    cfg.Email.FromName,
			SendTimeout: time.Duration(cfg.Email.SendTimeout) * time.Second,
		})
	} else {
		logger.Warn("SMTP not configured, verification emails will only be logged")
		emailProvider = email.NewLogProvider()
	}

	serviceContainer := services.NewServiceContainer(gormDB, limiter, emailProvider)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	router := initializeGinRouter(cfg)
	routes.RegisterRoutes(router, appHandlers)
	return router
}

// cleanExpiredTokensLoop prunes expired refresh tokens hourly so
// logged-out-by-expiry sessions do not accumulate forever.
func cleanExpiredTokensLoop(userRepo repositories.UserRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := userRepo.CleanExpiredRefreshTokens(); err != nil {
			logger.Error("refresh token cleanup failed", "error", err)
		}
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)
	return router
}
