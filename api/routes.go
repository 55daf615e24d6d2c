package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	authapi "github.com/scribeworks/transcriber-api/api/auth"
	"github.com/scribeworks/transcriber-api/api/health"
	"github.com/scribeworks/transcriber-api/api/transcribe"
	"github.com/scribeworks/transcriber-api/api/types"
	"github.com/scribeworks/transcriber-api/api/version"
	_ "github.com/scribeworks/transcriber-api/docs/swagger"
	"github.com/scribeworks/transcriber-api/internal/services/analysis"
	authservice "github.com/scribeworks/transcriber-api/internal/services/auth"
	"github.com/scribeworks/transcriber-api/internal/services/gemini"
	"github.com/scribeworks/transcriber-api/internal/services/transcription"
	"github.com/scribeworks/transcriber-api/internal/services/whisper"
	"github.com/scribeworks/transcriber-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.DB == nil || deps.DB.DB == nil {
		return fmt.Errorf("database is required before route registration")
	}

	if deps.AuthService == nil {
		deps.AuthService = authservice.NewService(
			authservice.NewRepository(deps.DB.DB),
			authservice.Config{
				JWTSecret:   cfg.Auth.JWTSecret,
				TokenTTL:    cfg.Auth.TokenTTL,
				Issuer:      cfg.Auth.Issuer,
				MinPassword: cfg.Auth.MinPassword,
			},
		)
	}

	if deps.TranscriptionService == nil {
		initializeTranscriptionService(deps, cfg)
	}

	if deps.MaxUploadBytes == 0 {
		deps.MaxUploadBytes = cfg.Server.MaxUploadBytes
	}
	if deps.TempDir == "" {
		deps.TempDir = cfg.Storage.TempDir
	}

	rps := cfg.Limits.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Limits.Burst
	if burst <= 0 {
		burst = 20
	}

	v1 := engine.Group("/api/v1")

	// Auth routes with tighter rate limiting to slow credential stuffing
	authGroup := v1.Group("/auth")
	authGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	authapi.RegisterRoutes(authGroup, authapi.NewHandler(deps.AuthService))

	// Transcription routes with general rate limiting
	transcribeGroup := v1.Group("/transcribe")
	transcribeGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
	transcribe.RegisterRoutes(transcribeGroup, deps)

	return nil
}

// initializeTranscriptionService wires the provider clients and the
// orchestrator from configuration
func initializeTranscriptionService(deps *types.Dependencies, cfg *config.Config) {
	repo := transcription.NewRepository(deps.DB.DB)
	limiter := transcription.NewSlidingWindowLimiter(repo, cfg.Limits.Window, cfg.Limits.MaxTranscriptions)

	pipeline := gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		UploadBaseURL:   cfg.Gemini.UploadBaseURL,
		GenerateURL:     cfg.Gemini.GenerateURL,
		PollInterval:    cfg.Gemini.PollInterval,
		MaxPollAttempts: cfg.Gemini.MaxPollAttempts,
		Timeout:         cfg.Gemini.Timeout,
	})

	transcriber := whisper.NewClient(cfg.OpenAI.APIKey, whisper.Config{
		Model:    cfg.OpenAI.WhisperModel,
		Language: cfg.OpenAI.Language,
	})

	summarizer := analysis.NewService(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel)

	deps.TranscriptionService = transcription.NewService(repo, limiter, pipeline, transcriber, summarizer)
}
