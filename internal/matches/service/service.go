// Package service implements the staff review workflow: approving an AI
// candidate into a confirmed match, or closing an inquiry without one.
package service

import (
	"context"

	"github.com/google/uuid"

	"lostfound_backend/internal/events"
	"lostfound_backend/internal/matches/repository"
	"lostfound_backend/platform/apperr"
	"lostfound_backend/platform/logger"
)

// Statuses the review queue operates on. These mirror the inquiry module's
// lifecycle states.
const (
	statusSubmitted   = "submitted"
	statusUnderReview = "under_review"
	statusMatched     = "matched"
	statusRejected    = "rejected"
)

// Service orchestrates match review operations.
type Service struct {
	repo      repository.Repository
	inquiries InquiryStore
	bus       events.Bus
	log       *logger.Logger
}

// New creates the match review service.
func New(repo repository.Repository, inquiries InquiryStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, inquiries: inquiries, bus: bus, log: log}
}

// ListReviewQueue returns inquiries with pending candidates, strongest first.
func (s *Service) ListReviewQueue(ctx context.Context) ([]repository.ReviewQueueEntry, error) {
	return s.repo.ListReviewQueue(ctx)
}

// CandidatesForInquiry returns an inquiry's pending candidates joined with
// their inventory items.
func (s *Service) CandidatesForInquiry(ctx context.Context, inquiryID uuid.UUID) ([]repository.CandidateWithItem, error) {
	return s.repo.ListCandidatesWithItems(ctx, inquiryID)
}

// Approve turns a pending candidate into the inquiry's confirmed match. The
// match row is written before the status flips, so a matched inquiry always
// has its match in place. Competing approvals for the same inquiry collapse
// onto the unique match constraint: the second approver gets a conflict unless
// they picked the same item, which is treated as a retry.
func (s *Service) Approve(ctx context.Context, staffID, candidateID uuid.UUID) error {
	candidate, err := s.repo.GetCandidate(ctx, candidateID)
	if err != nil {
		return err
	}

	inquiry, err := s.inquiries.GetInquiry(ctx, candidate.InquiryID)
	if err != nil {
		return err
	}
	if inquiry.Status != statusSubmitted && inquiry.Status != statusUnderReview {
		return apperr.Conflict("inquiry is no longer open for review")
	}

	// An inquiry stuck in submitted (e.g. the matching job never got
	// enqueued) enters review the moment staff act on it. Matching never
	// follows submitted directly.
	if inquiry.Status == statusSubmitted {
		advanced, err := s.inquiries.UpdateStatusIf(ctx, candidate.InquiryID,
			[]string{statusSubmitted}, statusUnderReview)
		if err != nil {
			return err
		}
		if advanced {
			s.log.StatusTransition(candidate.InquiryID.String(),
				statusSubmitted, statusUnderReview, staffID.String())
			inquiry.Status = statusUnderReview
		}
	}

	created := true
	_, err = s.repo.CreateConfirmedMatch(ctx, candidate.InquiryID, candidate.LostItemID, inquiry.UserID)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindConflict) {
			return err
		}
		existing, getErr := s.repo.GetConfirmedMatch(ctx, candidate.InquiryID)
		if getErr != nil || existing.LostItemID != candidate.LostItemID {
			return err
		}
		// Same item already confirmed, most likely our own earlier attempt
		// that failed after the insert. Continue as a retry.
		created = false
	}

	// Dependent rows settle before the status flips: once the inquiry reads
	// matched, no candidate rows may remain. A failure here aborts with the
	// inquiry still under review, and the retry converges through the
	// same-item path above.
	if err := s.repo.ClearCandidates(ctx, candidate.InquiryID); err != nil {
		return err
	}

	applied, err := s.inquiries.UpdateStatusIf(ctx, candidate.InquiryID,
		[]string{statusUnderReview}, statusMatched)
	if err != nil {
		return err
	}
	if !applied {
		current, getErr := s.inquiries.GetInquiry(ctx, candidate.InquiryID)
		if getErr == nil && current.Status == statusMatched {
			// A concurrent approval of the same item won the race.
			applied = false
		} else if created {
			// The inquiry moved somewhere else entirely. Undo our match so it
			// does not hold a claim on the item.
			if delErr := s.repo.DeleteConfirmedMatch(ctx, candidate.InquiryID); delErr != nil {
				s.log.Error("rollback confirmed match failed",
					"inquiry_id", candidate.InquiryID.String(), "error", delErr.Error())
			}
			return apperr.Conflict("inquiry status changed during approval")
		} else {
			return apperr.Conflict("inquiry status changed during approval")
		}
	}

	s.log.StatusTransition(candidate.InquiryID.String(), inquiry.Status, statusMatched, staffID.String())

	item, err := s.repo.GetConfirmedItem(ctx, candidate.InquiryID)
	itemName := ""
	if err == nil {
		itemName = item.Name
	}
	s.bus.Publish(context.Background(), events.InquiryMatched{
		BaseEvent:   events.NewBaseEvent(),
		InquiryID:   candidate.InquiryID,
		SubmitterID: inquiry.UserID,
		ItemID:      candidate.LostItemID,
		ItemName:    itemName,
	})
	s.bus.Publish(context.Background(), events.InquiryStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		InquiryID:   candidate.InquiryID,
		SubmitterID: inquiry.UserID,
		From:        inquiry.Status,
		To:          statusMatched,
	})
	return nil
}

// NoMatch closes an open inquiry without a match and discards its candidates.
// Rejecting an already rejected inquiry is a no-op so a retried request still
// succeeds.
func (s *Service) NoMatch(ctx context.Context, staffID, inquiryID uuid.UUID) error {
	inquiry, err := s.inquiries.GetInquiry(ctx, inquiryID)
	if err != nil {
		return err
	}

	switch inquiry.Status {
	case statusSubmitted, statusUnderReview, statusRejected:
	default:
		return apperr.Conflict("inquiry is not open for review")
	}

	// Candidate rows go first so a failure leaves the inquiry open and the
	// request retryable; the status write only lands on a clean slate.
	if err := s.repo.ClearCandidates(ctx, inquiryID); err != nil {
		return err
	}
	if err := s.inquiries.ClearMatchSummary(ctx, inquiryID); err != nil {
		s.log.Warn("clear match summary failed",
			"inquiry_id", inquiryID.String(), "error", err.Error())
	}

	if inquiry.Status == statusRejected {
		// Already closed; the cleanup above is all a retry needs.
		return nil
	}

	applied, err := s.inquiries.UpdateStatusIf(ctx, inquiryID,
		[]string{statusSubmitted, statusUnderReview}, statusRejected)
	if err != nil {
		return err
	}
	if !applied {
		current, getErr := s.inquiries.GetInquiry(ctx, inquiryID)
		if getErr != nil || current.Status != statusRejected {
			return apperr.Conflict("inquiry status changed during review")
		}
	}
	s.log.StatusTransition(inquiryID.String(), inquiry.Status, statusRejected, staffID.String())
	s.bus.Publish(context.Background(), events.InquiryStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		InquiryID:   inquiryID,
		SubmitterID: inquiry.UserID,
		From:        inquiry.Status,
		To:          statusRejected,
	})
	return nil
}
