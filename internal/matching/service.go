// Package matching runs the AI comparison between an inquiry and the
// unclaimed inventory, producing candidate matches for staff review.
package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lostfound_backend/internal/events"
	"lostfound_backend/platform/logger"
)

// Completer is a text completion backend. Both the OpenAI-compatible gateway
// client and the Gemini client satisfy it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// InquiryDetails is the slice of an inquiry the prompt needs.
type InquiryDetails struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Title                  string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationLost           *string
}

// InventoryItem is the slice of an inventory item the prompt needs.
type InventoryItem struct {
	ID                     uuid.UUID
	Name                   string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationFound          *string
}

// InquiryReader loads inquiries and maintains their candidate summary.
type InquiryReader interface {
	GetInquiryDetails(ctx context.Context, inquiryID uuid.UUID) (InquiryDetails, error)
	SetMatchSummary(ctx context.Context, inquiryID uuid.UUID, maxConfidence float64, count int) error
	ClearMatchSummary(ctx context.Context, inquiryID uuid.UUID) error
}

// InventoryReader lists items still eligible for matching.
type InventoryReader interface {
	ListUnclaimed(ctx context.Context) ([]InventoryItem, error)
}

// CandidateWriter persists a run's output.
type CandidateWriter interface {
	UpsertCandidates(ctx context.Context, inquiryID uuid.UUID, candidates []ParsedCandidate) error
}

// RunResult is the outcome of one matching run.
type RunResult struct {
	InquiryID  uuid.UUID
	MatchCount int
	Matches    []ParsedCandidate
	Degraded   bool
}

// Service runs the AI matching pipeline.
type Service struct {
	inquiries  InquiryReader
	inventory  InventoryReader
	candidates CandidateWriter
	completer  Completer
	bus        events.Bus
	log        *logger.Logger
	timeout    time.Duration
}

// New creates the matching service. The timeout bounds the AI call only, not
// the surrounding database work.
func New(
	inquiries InquiryReader,
	inventory InventoryReader,
	candidates CandidateWriter,
	completer Completer,
	bus events.Bus,
	log *logger.Logger,
	timeout time.Duration,
) *Service {
	return &Service{
		inquiries:  inquiries,
		inventory:  inventory,
		candidates: candidates,
		completer:  completer,
		bus:        bus,
		log:        log,
		timeout:    timeout,
	}
}

// Run matches one inquiry against the unclaimed inventory. A slow or
// unreachable model degrades to zero candidates rather than failing the run;
// the inquiry stays reviewable by hand. Database failures do fail the run so
// the job is retried.
func (s *Service) Run(ctx context.Context, inquiryID uuid.UUID) (RunResult, error) {
	started := time.Now()

	inquiry, err := s.inquiries.GetInquiryDetails(ctx, inquiryID)
	if err != nil {
		return RunResult{}, fmt.Errorf("load inquiry: %w", err)
	}

	items, err := s.inventory.ListUnclaimed(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("load inventory: %w", err)
	}

	result := RunResult{InquiryID: inquiryID, Matches: []ParsedCandidate{}}

	if len(items) == 0 {
		// Nothing to compare against. Clear any summary left by an earlier
		// run against a fuller inventory.
		if err := s.inquiries.ClearMatchSummary(ctx, inquiryID); err != nil {
			return RunResult{}, fmt.Errorf("clear match summary: %w", err)
		}
		s.finish(ctx, inquiry, result, started)
		return result, nil
	}

	parsed, degraded, err := s.complete(ctx, inquiry, items)
	if err != nil {
		return RunResult{}, err
	}
	result.Matches = parsed
	result.MatchCount = len(parsed)
	result.Degraded = degraded

	if len(parsed) > 0 {
		if err := s.candidates.UpsertCandidates(ctx, inquiryID, parsed); err != nil {
			return RunResult{}, fmt.Errorf("store candidates: %w", err)
		}
		maxConfidence := parsed[0].Confidence
		for _, cand := range parsed[1:] {
			if cand.Confidence > maxConfidence {
				maxConfidence = cand.Confidence
			}
		}
		if err := s.inquiries.SetMatchSummary(ctx, inquiryID, maxConfidence, len(parsed)); err != nil {
			return RunResult{}, fmt.Errorf("set match summary: %w", err)
		}
	} else {
		if err := s.inquiries.ClearMatchSummary(ctx, inquiryID); err != nil {
			return RunResult{}, fmt.Errorf("clear match summary: %w", err)
		}
	}

	s.finish(ctx, inquiry, result, started)
	return result, nil
}

func (s *Service) complete(ctx context.Context, inquiry InquiryDetails, items []InventoryItem) ([]ParsedCandidate, bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.completer.Complete(callCtx, systemPrompt, buildUserPrompt(inquiry, items))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			s.log.Warn("matching degraded, model timed out",
				"inquiry_id", inquiry.ID.String(),
				"model", s.completer.Model(),
				"timeout", s.timeout.String())
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("model completion: %w", err)
	}

	known := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		known[item.ID] = struct{}{}
	}
	return parseCandidates(content, known), false, nil
}

func (s *Service) finish(ctx context.Context, inquiry InquiryDetails, result RunResult, started time.Time) {
	s.log.MatchingRun(inquiry.ID.String(), result.MatchCount,
		float64(time.Since(started).Milliseconds()))
	s.bus.Publish(ctx, events.MatchingCompleted{
		BaseEvent:   events.NewBaseEvent(),
		InquiryID:   inquiry.ID,
		SubmitterID: inquiry.UserID,
		MatchCount:  result.MatchCount,
	})
}
