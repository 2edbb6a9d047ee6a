package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"bazaar/internal/auth"
	"bazaar/internal/billing"
	"bazaar/internal/config"
	"bazaar/internal/handler"
	"bazaar/internal/media"
	"bazaar/internal/middleware"
	"bazaar/internal/policy"
	"bazaar/internal/repository/postgres"
	"bazaar/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logDest := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logDest = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logDest, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	accountRepo := postgres.NewAccountRepository(repoConfig)
	listingRepo := postgres.NewListingRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	clickRepo := postgres.NewClickRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Initialize the policy engine
	capabilityRegistry, err := policy.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	gate := policy.NewAccountGate(capabilityRegistry)
	guard := policy.NewOwnershipGuard()
	stateMachine := policy.NewResourceStateMachine(guard)
	moderation := policy.NewModerationEngine(guard)
	logger.Info("capability registry initialized")

	// Create services
	accountService := service.NewAccountService(accountRepo, logger)
	listingService := service.NewListingService(listingRepo, txManager, gate, guard, stateMachine, logger)
	commentService := service.NewCommentService(commentRepo, listingRepo, gate, moderation, logger)
	clickService := service.NewClickService(clickRepo, listingRepo, guard, logger)

	// Media store for listing images
	mediaStore, err := media.NewStore(cfg.S3Region, cfg.S3Bucket, cfg.UploadExpiry)
	if err != nil {
		log.Fatalf("Failed to create media store: %v", err)
	}
	mediaService := media.NewService(mediaStore, listingRepo, guard, logger)

	// Create handlers
	accountHandler := handler.NewAccountHandler(accountService, logger)
	listingHandler := handler.NewListingHandler(listingService, accountService, logger)
	commentHandler := handler.NewCommentHandler(commentService, accountService, logger)
	clickHandler := handler.NewClickHandler(clickService, accountService, logger)
	mediaHandler := handler.NewMediaHandler(mediaService, accountService, logger)
	webhookHandler := billing.NewWebhookHandler(accountRepo, cfg.StripeWebhookSecret, logger)

	logger.Info("services initialized")

	// Per-route auth: public surfaces take an optional token so owners see
	// their own drafts; everything mutating requires one. The Stripe webhook
	// authenticates via its signature header instead.
	requireAuth := middleware.Auth(jwtVerifier)
	optionalAuth := middleware.OptionalAuth(jwtVerifier)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Account routes
	mux.Handle("GET /api/accounts/me", requireAuth(http.HandlerFunc(accountHandler.GetMe)))

	// Listing routes
	mux.Handle("GET /api/listings", optionalAuth(http.HandlerFunc(listingHandler.ListPublished)))
	mux.Handle("POST /api/listings", requireAuth(http.HandlerFunc(listingHandler.CreateListing)))
	mux.Handle("GET /api/listings/me", requireAuth(http.HandlerFunc(listingHandler.ListMine)))
	mux.Handle("GET /api/listings/{id}", optionalAuth(http.HandlerFunc(listingHandler.GetListing)))
	mux.Handle("PATCH /api/listings/{id}", requireAuth(http.HandlerFunc(listingHandler.UpdateListing)))
	mux.Handle("DELETE /api/listings/{id}", requireAuth(http.HandlerFunc(listingHandler.DeleteListing)))

	// Lifecycle routes
	mux.Handle("POST /api/listings/{id}/publish", requireAuth(http.HandlerFunc(listingHandler.Publish)))
	mux.Handle("POST /api/listings/{id}/suspend", requireAuth(http.HandlerFunc(listingHandler.Suspend)))
	mux.Handle("POST /api/listings/{id}/restore", requireAuth(http.HandlerFunc(listingHandler.Restore)))
	mux.Handle("POST /api/listings/{id}/feature", requireAuth(http.HandlerFunc(listingHandler.Feature)))

	// Comment routes
	mux.Handle("GET /api/listings/{id}/comments", optionalAuth(http.HandlerFunc(commentHandler.ListComments)))
	mux.Handle("POST /api/listings/{id}/comments", requireAuth(http.HandlerFunc(commentHandler.CreateComment)))
	mux.Handle("DELETE /api/comments/{id}", requireAuth(http.HandlerFunc(commentHandler.DeleteComment)))
	mux.Handle("POST /api/comments/{id}/like", requireAuth(http.HandlerFunc(commentHandler.ToggleLike)))

	// Contact click routes (recording is open to anonymous visitors)
	mux.Handle("POST /api/listings/{id}/clicks", optionalAuth(http.HandlerFunc(clickHandler.RecordClick)))
	mux.Handle("GET /api/listings/{id}/clicks", requireAuth(http.HandlerFunc(clickHandler.CountClicks)))

	// Media routes
	mux.Handle("POST /api/listings/{id}/media", requireAuth(http.HandlerFunc(mediaHandler.PresignUpload)))

	// Billing webhook (Stripe signature is the credential)
	mux.HandleFunc("POST /api/webhooks/stripe", webhookHandler.HandleWebhook)

	// Build middleware chain
	var httpHandler http.Handler = mux
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
