package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"lostfound_backend/internal/matching"
	"lostfound_backend/platform/config"
	"lostfound_backend/platform/logger"
)

// MatchRunner runs the AI matching pipeline for one inquiry.
type MatchRunner interface {
	Run(ctx context.Context, inquiryID uuid.UUID) (matching.RunResult, error)
}

// Worker consumes background jobs from the Redis-backed queue.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	matcher MatchRunner
	log     *logger.Logger
}

// NewWorker creates the job worker.
func NewWorker(cfg config.SchedulerConfig, matcher MatchRunner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		matcher: matcher,
		log:     log,
	}

	mux.HandleFunc(TaskMatchInquiry, w.handleMatchInquiry)

	return w, nil
}

func (w *Worker) handleMatchInquiry(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMatchInquiryPayload(task)
	if err != nil {
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}

	inquiryID, err := uuid.Parse(payload.InquiryID)
	if err != nil {
		return fmt.Errorf("parse inquiry id: %v: %w", err, asynq.SkipRetry)
	}

	result, err := w.matcher.Run(ctx, inquiryID)
	if err != nil {
		w.log.Error("matching job failed",
			"inquiry_id", inquiryID.String(), "error", err.Error())
		return err
	}
	if result.Degraded {
		w.log.Warn("matching job degraded", "inquiry_id", inquiryID.String())
	}
	return nil
}

// Run serves jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
