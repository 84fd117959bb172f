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
	"lostfound_backend/internal/email"
	"lostfound_backend/internal/events"
	inquiryrepo "lostfound_backend/internal/inquiries/repository"
	inventoryrepo "lostfound_backend/internal/inventory/repository"
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

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	// The worker has no SSE subscribers of its own but still emails on
	// matching outcomes through the shared notification handlers.
	sseService := sse.New(log)
	defer sseService.Close()
	sender := newEmailSender(cfg, log)
	notificationModule := notification.NewModule(sseService, sender, notification.NewProfileReader(pool), cfg.GetAppBaseURL(), log)
	notificationModule.RegisterHandlers(eventBus)

	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize AI matcher", "error", err)
		panic("failed to initialize AI matcher: " + err.Error())
	}
	log.Info("AI matcher initialized", "provider", cfg.GetMatcherProvider(), "model", completer.Model())

	matchingSvc := matching.New(
		adapters.NewMatchingInquiryAdapter(inquiryrepo.NewPostgresRepository(pool)),
		adapters.NewMatchingInventoryAdapter(inventoryrepo.NewPostgresRepository(pool)),
		adapters.NewMatchingCandidateAdapter(matchrepo.NewPostgresRepository(pool)),
		completer,
		eventBus,
		log,
		cfg.GetMatchTimeout(),
	)

	worker, err := scheduler.NewWorker(cfg, matchingSvc, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}

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
