package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	apphttp "leadscore_backend/internal/http"
	"leadscore_backend/internal/http/router"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/internal/scoring/intent"
	"leadscore_backend/platform/config"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	if !strings.EqualFold(cfg.Env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shared validator instance for dependency injection
	val := validator.New()

	// Intent classification strategy, selected once at startup: Gemini when
	// a credential is present, deterministic fallback otherwise.
	classifier := newClassifier(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	scoringModule := scoring.NewModule(classifier, cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(cfg, log, []apphttp.Module{scoringModule})

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newClassifier(ctx context.Context, cfg config.AIConfig, log *logger.Logger) intent.Classifier {
	if !cfg.IsAIEnabled() {
		log.Warn("GEMINI_API_KEY not set; intent classification uses fallback reasoning")
		return intent.NewFallback()
	}

	classifier, err := intent.NewGemini(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel(), cfg.GetAITemperature(), log)
	if err != nil {
		// A bad AI setup must not keep the service from scoring.
		log.Error("failed to initialize gemini classifier; using fallback", "error", err)
		return intent.NewFallback()
	}

	log.Info("gemini classifier initialized", "model", cfg.GetGeminiModel())
	return classifier
}
