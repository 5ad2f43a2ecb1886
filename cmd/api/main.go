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

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/cache"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/database"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/events"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/providers/auth"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/providers/speech"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/storage"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/handlers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/routes"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/application/services"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/clients/gemini"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/clients/postgres"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/clients/redis"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/observability"
	"github.com/arogyamitra/SwasthyaSahayak/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - sessions still verify, live streams degrade
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for live report and conversation streams
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	reportAdapter := database.NewReportAdapter(pgClient)
	conversationAdapter := database.NewConversationAdapter(pgClient)

	storageProvider, err := storage.NewStorageProvider(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage provider: %v", err)
	}
	log.Printf("Storage provider initialized: %s", cfg.Storage.Provider)

	authProvider, err := auth.NewAuthProvider(cfg.Auth, cacheProvider)
	if err != nil {
		log.Fatalf("Failed to initialize auth provider: %v", err)
	}

	sessionManager := auth.NewJWTSessionManager(
		cfg.Auth.SessionSecret,
		time.Duration(cfg.Auth.SessionTTLMin)*time.Minute,
		cacheProvider,
	)

	geminiClient, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	speechProvider, err := speech.NewSpeechSynthesizer(cfg.Speech)
	if err != nil {
		log.Fatalf("Failed to initialize speech provider: %v", err)
	}
	log.Printf("Speech provider initialized: %s", cfg.Speech.Provider)

	// Initialize services

	authService := services.NewAuthService(authProvider, sessionManager)
	reportService := services.NewReportService(reportAdapter, storageProvider, eventBus)
	conversationService := services.NewConversationService(
		conversationAdapter,
		reportAdapter,
		geminiClient,
		speechProvider,
		eventBus,
	)

	// Initialize handlers

	authHandler := handlers.NewAuthHandler(authService)
	uploadHandler := handlers.NewUploadHandler(reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	conversationHandler := handlers.NewConversationHandler(conversationService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus, reportService, conversationService)
	}

	// Set up router

	router := routes.NewRouter(
		authHandler,
		uploadHandler,
		reportHandler,
		conversationHandler,
		sseHandler,
		authService,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server. WriteTimeout stays zero so SSE streams are not
	// cut off; per-call deadlines live in the outbound clients.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
