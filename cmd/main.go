package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/yungbote/carelog-backend/internal/db"
	"github.com/yungbote/carelog-backend/internal/handlers"
	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/middleware"
	"github.com/yungbote/carelog-backend/internal/observability"
	"github.com/yungbote/carelog-backend/internal/pdf"
	"github.com/yungbote/carelog-backend/internal/ratelimit"
	"github.com/yungbote/carelog-backend/internal/repos"
	"github.com/yungbote/carelog-backend/internal/server"
	"github.com/yungbote/carelog-backend/internal/services"
	"github.com/yungbote/carelog-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "carelog-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
	if jwtSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	patientRepo := repos.NewPatientRepo(theDB, log)
	noteRepo := repos.NewNoteRepo(theDB, log)
	medicationRepo := repos.NewMedicationRepo(theDB, log)

	// PDF style
	style := pdf.DefaultStyle()
	if stylePath := utils.GetEnv("PDF_STYLE_PATH", "", log); stylePath != "" {
		loaded, sErr := pdf.LoadStyle(stylePath)
		if sErr != nil {
			log.Warn("Could not load PDF style override, using defaults", "path", stylePath, "error", sErr)
		} else {
			style = loaded
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	aiClient, err := services.NewAIClient(log)
	if err != nil {
		log.Warn("AI client not configured, summary generation disabled", "error", err)
		aiClient = nil
	}
	avatarService := services.NewAvatarService(log)
	authService := services.NewAuthService(theDB, log, userRepo, userTokenRepo, jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(theDB, log, userRepo)
	patientService := services.NewPatientService(theDB, log, patientRepo, avatarService)
	noteService := services.NewNoteService(theDB, log, patientRepo, noteRepo)
	medicationService := services.NewMedicationService(theDB, log, patientRepo, medicationRepo)
	summaryService := services.NewSummaryService(theDB, log, patientRepo, noteRepo, aiClient)
	exportService := services.NewExportService(theDB, log, patientRepo, noteRepo, medicationRepo, style)

	// Middleware
	limiterRPS := utils.GetEnvAsInt("RATE_LIMIT_RPS", 10, log)
	limiterBurst := utils.GetEnvAsInt("RATE_LIMIT_BURST", 20, log)
	limiter := ratelimit.NewKeyedLimiter(rate.Limit(limiterRPS), limiterBurst, 10*time.Minute)
	defer limiter.Stop()
	m := server.Middleware{
		Auth:      middleware.NewAuthMiddleware(log, authService),
		RateLimit: middleware.NewRateLimitMiddleware(log, limiter),
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	h := server.Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(userService),
		Patient:     handlers.NewPatientHandler(patientService),
		Note:        handlers.NewNoteHandler(noteService),
		Medication:  handlers.NewMedicationHandler(medicationService),
		Summary:     handlers.NewSummaryHandler(summaryService),
		Export:      handlers.NewExportHandler(exportService),
	}

	router := server.NewRouter(h, m)

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
