package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/whisperrid/backend/internal/config"
	"github.com/whisperrid/backend/internal/handlers"
	"github.com/whisperrid/backend/internal/middleware"
	"github.com/whisperrid/backend/internal/routes"
	"github.com/whisperrid/backend/internal/services/dashboard"
	"github.com/whisperrid/backend/internal/services/risk"
	"github.com/whisperrid/backend/internal/services/settings"
	"github.com/whisperrid/backend/internal/services/simulator"
	"github.com/whisperrid/backend/internal/services/verification"
	"github.com/whisperrid/backend/internal/storage"
	"github.com/whisperrid/backend/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	// Seed the in-memory case store
	caseStore, err := storage.NewCaseStore(storage.SeedCases())
	if err != nil {
		log.Fatalf("Failed to seed case store: %v", err)
	}
	auditLogger := utils.NewAuditLogger(cfg.Dashboard.ActivityLogLimit)

	// Live risk score updates
	liveUpdates := simulator.NewLiveUpdateSimulator(caseStore, auditLogger, simulator.Config{
		Interval:          cfg.Simulator.Interval(),
		HighlightDuration: cfg.Simulator.Highlight(),
		MaxDelta:          cfg.Simulator.MaxDelta,
	})
	if cfg.Simulator.Enabled {
		if err := liveUpdates.Start(); err != nil {
			log.Fatalf("Failed to start live updates: %v", err)
		}
	}

	// AI risk assessment; without a key every call returns the fallback text
	var generator risk.Generator
	gemini, err := risk.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Printf("AI risk assessment disabled: %v", err)
	} else {
		generator = gemini
		log.Printf("AI risk assessment using model %s", gemini.Model())
	}

	verificationService := verification.NewVerificationService(caseStore)
	assessmentService := risk.NewAssessmentService(generator, auditLogger, cfg.Gemini.Timeout())
	dashboardService := dashboard.NewDashboardService(caseStore, liveUpdates, cfg.Dashboard.RecentLimit)
	settingsService := settings.NewSettingsService()

	aiLimiter := middleware.NewRateLimiter(
		cfg.Security.AIRateLimit,
		cfg.Security.AIRateBurst,
		time.Duration(cfg.Security.RateLimitCleanupMin)*time.Minute,
	)

	router := routes.NewRouter(cfg)
	routes.RegisterRoutes(router, routes.Handlers{
		Health:       handlers.NewHealthHandler(liveUpdates),
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
		Verification: handlers.NewVerificationHandler(verificationService),
		Case:         handlers.NewCaseHandler(verificationService, assessmentService, auditLogger, cfg.Dashboard.ActivityLogLimit),
		Assistant:    handlers.NewAssistantHandler(assessmentService),
		Settings:     handlers.NewSettingsHandler(settingsService),
	}, aiLimiter)

	srv := startServer(router, cfg.Server)

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	liveUpdates.Stop()
	aiLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// startServer starts the HTTP server
func startServer(router *gin.Engine, cfg config.ServerConfig) *http.Server {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Port)
	return srv
}
