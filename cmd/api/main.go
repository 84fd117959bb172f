package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lostfound_backend/internal/adapters"
	"lostfound_backend/internal/adapters/storage"
	"lostfound_backend/internal/email"
	"lostfound_backend/internal/events"
	apphttp "lostfound_backend/internal/http"
	"lostfound_backend/internal/http/router"
	"lostfound_backend/internal/inquiries"
	"lostfound_backend/internal/inventory"
	"lostfound_backend/internal/matches"
	matchrepo "lostfound_backend/internal/matches/repository"
	"lostfound_backend/internal/matching"
	"lostfound_backend/internal/notification"
	"lostfound_backend/internal/notification/sse"
	"lostfound_backend/internal/scheduler"
	"lostfound_backend/platform/ai/gateway"
	"lostfound_backend/platform/ai/geminiai"
	"lostfound_backend/platform/config"
	"lostfound_backend/platform/db"
	"lostfound_backend/platform/logger"
	"lostfound_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for item and inquiry images (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure item images bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketItemImages())
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketItemImages())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "itemImagesBucket", cfg.GetMinioBucketItemImages())

	// Background job client for dispatching match runs to the worker
	jobClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize job client", "error", err)
		panic("failed to initialize job client: " + err.Error())
	}
	defer func() { _ = jobClient.Close() }()

	sender := newEmailSender(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	uploader := adapters.NewImageUploaderAdapter(storageSvc, cfg.GetMinioBucketItemImages())

	inventoryModule := inventory.NewModule(pool, uploader, val, log)

	// The inquiries module reads confirmed matches through an adapter; the
	// repository is built here because the matches module depends on the
	// inquiries repository in turn.
	matchRepo := matchrepo.NewPostgresRepository(pool)
	matchStore := adapters.NewMatchStoreAdapter(matchRepo)
	inventoryRemover := adapters.NewInventoryAdapter(inventoryModule.Repository())

	inquiriesModule := inquiries.NewModule(
		pool,
		matchStore,
		inventoryRemover,
		inventoryRemover,
		uploader,
		jobClient,
		eventBus,
		val,
		log,
	)

	inquiryStore := adapters.NewInquiryStoreAdapter(inquiriesModule.Repository())
	matchesModule := matches.NewModule(pool, inquiryStore, eventBus, log)

	// AI matching pipeline (also enqueued by the worker; exposed here for
	// staff-triggered runs)
	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize AI matcher", "error", err)
		panic("failed to initialize AI matcher: " + err.Error())
	}
	matchingSvc := matching.New(
		adapters.NewMatchingInquiryAdapter(inquiriesModule.Repository()),
		adapters.NewMatchingInventoryAdapter(inventoryModule.Repository()),
		adapters.NewMatchingCandidateAdapter(matchRepo),
		completer,
		eventBus,
		log,
		cfg.GetMatchTimeout(),
	)
	matchingModule := matching.NewModule(matchingSvc)
	log.Info("AI matcher initialized", "provider", cfg.GetMatcherProvider(), "model", completer.Model())

	// Notification module fans domain events out over SSE and email
	sseService := sse.New(log)
	defer sseService.Close()
	notificationModule := notification.NewModule(sseService, sender, notification.NewProfileReader(pool), cfg.GetAppBaseURL(), log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			inquiriesModule,
			inventoryModule,
			matchesModule,
			matchingModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// newCompleter selects the AI provider from config. The gateway provider
// talks to any OpenAI-compatible endpoint; gemini uses the genai SDK.
func newCompleter(ctx context.Context, cfg *config.Config) (matching.Completer, error) {
	switch cfg.GetMatcherProvider() {
	case "gemini":
		return geminiai.New(ctx, geminiai.Config{
			APIKey: cfg.GetGeminiAPIKey(),
			Model:  cfg.GetGeminiModel(),
		})
	case "gateway":
		return gateway.New(gateway.Config{
			APIKey:  cfg.GetAIGatewayAPIKey(),
			BaseURL: cfg.GetAIGatewayURL(),
			Model:   cfg.GetAIGatewayModel(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown matcher provider %q", cfg.GetMatcherProvider())
	}
}

func newEmailSender(cfg config.EmailConfig, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("SMTP not configured; notification emails disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
