package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/cms"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/logging"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/router"
	"portfolio-backend/internal/services"
	"portfolio-backend/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ Configuration failed: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("✗ Logger initialization failed: %v", err)
	}
	defer logger.Sync()

	logger.Info("🚀 Starting portfolio backend...")
	logger.Info("✓ Environment variables loaded", zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Load Profile ────
	owner, err := resume.Load(cfg.ResumePath)
	if err != nil {
		logger.Fatal("✗ Profile load failed", zap.Error(err))
	}
	logger.Info("✓ Profile loaded", zap.String("name", owner.Name))

	// ──── Step 3: Shared Cache and Rate Window ────
	shared := chat.Shared{
		Cache:   chat.NewMemoryCache(),
		Limiter: chat.NewRateWindow(cfg.RequestsPerMin, chat.DefaultRateWindow),
	}
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("✗ Redis connection failed, using in-memory cache", zap.Error(err))
		} else {
			defer rdb.Close()
			shared.Cache = chat.NewRedisCache(rdb, logger)
			shared.Limiter = chat.NewRedisRateWindow(rdb, cfg.RequestsPerMin, chat.DefaultRateWindow, logger)
			logger.Info("✓ Redis connected")
		}
	}

	// ──── Step 4: Initialize Chat Backend ────
	var backend chat.Backend
	switch {
	case cfg.ChatCredential() == "":
		logger.Warn("✗ No chat credential configured, assistant runs in contact mode", zap.String("provider", cfg.ChatProvider))
	case cfg.ChatProvider == "openai":
		backend = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.MaxConcurrent, logger)
		logger.Info("✓ OpenAI-compatible client initialized", zap.String("model", cfg.PrimaryModel))
	default:
		gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.MaxConcurrent, logger)
		if err != nil {
			logger.Warn("✗ Gemini client initialization failed, assistant runs in contact mode", zap.Error(err))
			break
		}
		defer gemini.Close()
		backend = gemini
		logger.Info("✓ Gemini client initialized", zap.String("model", cfg.PrimaryModel))
	}

	registry := chat.NewRegistry(backend, resume.ChatProfile(owner, cfg.SiteURL), chat.Options{
		PrimaryModel:    cfg.PrimaryModel,
		FallbackModel:   cfg.FallbackModel,
		MaxPairs:        cfg.MaxPairs,
		RetryBackoff:    cfg.RetryBackoff,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
	}, shared, cfg.SessionIdleTimeout, logger)
	go registry.Run(ctx)
	logger.Info("✓ Chat session registry started", zap.Duration("idle_timeout", cfg.SessionIdleTimeout))

	// ──── Step 5: Initialize Content Backend ────
	blogHandler := handlers.NewBlogHandler(nil, logger)
	if cfg.SanityProjectID != "" {
		client, err := cms.NewClient(cms.Config{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			UseCDN:     cfg.SanityUseCDN,
		}, nil, logger)
		if err != nil {
			logger.Warn("✗ Sanity client initialization failed", zap.Error(err))
		} else {
			blogHandler = handlers.NewBlogHandler(client, logger)
			logger.Info("✓ Sanity client initialized", zap.String("dataset", cfg.SanityDataset))
		}
	} else {
		logger.Warn("✗ SANITY_PROJECT_ID not set, blog endpoints disabled")
	}

	// ──── Step 6: Start HTTP Server ────
	chatLimiter := middleware.NewRateLimiter(cfg.ClientRPM, time.Minute)
	go chatLimiter.Run(ctx)

	r := router.New(
		handlers.NewChatHandler(registry),
		blogHandler,
		handlers.NewResumeHandler(owner, resume.DefaultImages),
		websocket.NewChatSocket(registry, cfg.FrontendURL, logger),
		chatLimiter,
		cfg.FrontendURL,
		logger,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info(fmt.Sprintf("✓ Portfolio backend ready on http://localhost:%s", cfg.Port))
	logger.Info(fmt.Sprintf("  API: http://localhost:%s/api/v1", cfg.Port))
	logger.Info(fmt.Sprintf("  WS:  ws://localhost:%s/api/v1/chat/ws", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}
}
