// Package service implements the inquiry lifecycle: submission with image
// upload and matching handoff, the submitter's view of their inquiries, and
// the confirm/reject decisions on a matched item.
package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lostfound_backend/internal/events"
	"lostfound_backend/internal/inquiries/domain"
	"lostfound_backend/internal/inquiries/ports"
	"lostfound_backend/internal/inquiries/repository"
	"lostfound_backend/platform/apperr"
	"lostfound_backend/platform/logger"
	"lostfound_backend/platform/sanitize"
)

// MaxInquiryImages caps how many photos a submitter may attach.
const MaxInquiryImages = 5

// SubmitParams carries a new inquiry from the transport layer.
type SubmitParams struct {
	UserID                 uuid.UUID
	Title                  string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationLost           *string
	DateLost               *string
	Images                 []*multipart.FileHeader
}

// OverviewStats aggregates counts for the staff dashboard.
type OverviewStats struct {
	Inquiries      repository.StatusCounts
	TotalItems     int
	UnclaimedItems int
}

// Service orchestrates inquiry operations.
type Service struct {
	repo       repository.Repository
	matches    ports.MatchStore
	inventory  ports.InventoryRemover
	invCounts  ports.InventoryCounts
	uploader   ports.ImageUploader
	dispatcher ports.MatchDispatcher
	bus        events.Bus
	log        *logger.Logger
}

// New creates the inquiry service.
func New(
	repo repository.Repository,
	matches ports.MatchStore,
	inventory ports.InventoryRemover,
	invCounts ports.InventoryCounts,
	uploader ports.ImageUploader,
	dispatcher ports.MatchDispatcher,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		matches:    matches,
		inventory:  inventory,
		invCounts:  invCounts,
		uploader:   uploader,
		dispatcher: dispatcher,
		bus:        bus,
		log:        log,
	}
}

// Submit creates an inquiry, uploads its images, and hands it to the matching
// pipeline. The inquiry is created as submitted and moved to under_review only
// after the matching job is enqueued, so a failed enqueue leaves it visible in
// the staff queue instead of silently stuck.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (repository.Inquiry, error) {
	if len(params.Images) > MaxInquiryImages {
		return repository.Inquiry{}, apperr.Validation(
			fmt.Sprintf("at most %d images allowed", MaxInquiryImages))
	}

	imageURLs, err := s.uploadImages(ctx, params.UserID, params.Images)
	if err != nil {
		return repository.Inquiry{}, err
	}

	inquiry, err := s.repo.Create(ctx, repository.CreateParams{
		UserID:                 params.UserID,
		Title:                  sanitize.Text(params.Title),
		Description:            sanitize.Text(params.Description),
		Category:               sanitize.TextPtr(params.Category),
		Color:                  sanitize.TextPtr(params.Color),
		Brand:                  sanitize.TextPtr(params.Brand),
		DistinguishingFeatures: sanitize.TextPtr(params.DistinguishingFeatures),
		LocationLost:           sanitize.TextPtr(params.LocationLost),
		DateLost:               params.DateLost,
		ImageURLs:              imageURLs,
	})
	if err != nil {
		return repository.Inquiry{}, err
	}

	if err := s.dispatcher.EnqueueMatchInquiry(ctx, inquiry.ID); err != nil {
		// Submission already succeeded. Staff can still triage the inquiry
		// manually, so report success and leave it in submitted.
		s.log.Error("enqueue matching failed",
			"inquiry_id", inquiry.ID.String(), "error", err.Error())
		return inquiry, nil
	}

	applied, err := s.repo.UpdateStatusIf(ctx, inquiry.ID,
		[]domain.Status{domain.StatusSubmitted}, domain.StatusUnderReview)
	if err != nil {
		s.log.Error("advance to under_review failed",
			"inquiry_id", inquiry.ID.String(), "error", err.Error())
		return inquiry, nil
	}
	if applied {
		inquiry.Status = domain.StatusUnderReview
		s.log.StatusTransition(inquiry.ID.String(),
			domain.StatusSubmitted.String(), domain.StatusUnderReview.String(), "system")
		s.publishStatusChanged(inquiry.ID, inquiry.UserID,
			domain.StatusSubmitted, domain.StatusUnderReview)
	}

	return inquiry, nil
}

// uploadImages pushes each attachment to object storage in parallel. A failed
// upload is logged and skipped rather than failing the whole submission.
func (s *Service) uploadImages(ctx context.Context, userID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		g.Go(func() error {
			f, err := fh.Open()
			if err != nil {
				s.log.Warn("open upload failed", "filename", fh.Filename, "error", err.Error())
				return nil
			}
			defer f.Close()

			url, err := s.uploader.UploadInquiryImage(gctx, userID,
				f, fh.Size, fh.Filename, fh.Header.Get("Content-Type"))
			if err != nil {
				s.log.Warn("image upload failed", "filename", fh.Filename, "error", err.Error())
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	uploaded := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			uploaded = append(uploaded, u)
		}
	}
	return uploaded, nil
}

// ListMine returns the submitter's inquiries, newest first.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.Inquiry, error) {
	return s.repo.ListBySubmitter(ctx, userID)
}

// GetMine returns a single inquiry owned by the submitter.
func (s *Service) GetMine(ctx context.Context, userID, inquiryID uuid.UUID) (repository.Inquiry, error) {
	inquiry, err := s.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return repository.Inquiry{}, err
	}
	if inquiry.UserID != userID {
		// Hide the existence of other users' inquiries.
		return repository.Inquiry{}, apperr.NotFound("inquiry not found")
	}
	return inquiry, nil
}

// GetMatchedItem returns the item behind the inquiry's confirmed match. A
// missing item or match is reported as not found so the client can show an
// empty state instead of an error page.
func (s *Service) GetMatchedItem(ctx context.Context, userID, inquiryID uuid.UUID) (ports.MatchedItem, error) {
	inquiry, err := s.GetMine(ctx, userID, inquiryID)
	if err != nil {
		return ports.MatchedItem{}, err
	}
	if inquiry.Status != domain.StatusMatched {
		return ports.MatchedItem{}, apperr.NotFound("inquiry has no confirmed match")
	}
	return s.matches.GetConfirmedItem(ctx, inquiryID)
}

// ConfirmMatch is the submitter accepting the matched item as theirs. The item
// leaves the inventory entirely and the inquiry resolves. The match row is
// removed through the item's foreign key cascade, with an explicit delete as
// backstop.
func (s *Service) ConfirmMatch(ctx context.Context, userID, inquiryID uuid.UUID) error {
	inquiry, err := s.GetMine(ctx, userID, inquiryID)
	if err != nil {
		return err
	}
	if inquiry.Status != domain.StatusMatched {
		return apperr.Conflict("inquiry is not in matched status")
	}

	item, err := s.matches.GetConfirmedItem(ctx, inquiryID)
	if err != nil {
		return err
	}

	if err := s.inventory.DeleteForResolution(ctx, item.ItemID); err != nil {
		return fmt.Errorf("remove claimed item: %w", err)
	}

	if err := s.matches.DeleteConfirmedMatch(ctx, inquiryID); err != nil {
		// The item delete cascades to the match row, so a failure here most
		// likely means the row is already gone.
		s.log.Warn("delete confirmed match failed",
			"inquiry_id", inquiryID.String(), "error", err.Error())
	}

	applied, err := s.repo.UpdateStatusIf(ctx, inquiryID,
		[]domain.Status{domain.StatusMatched}, domain.StatusResolved)
	if err != nil {
		return err
	}
	if !applied {
		return apperr.Conflict("inquiry status changed during confirmation")
	}

	s.log.StatusTransition(inquiryID.String(),
		domain.StatusMatched.String(), domain.StatusResolved.String(), "submitter")
	s.publishStatusChanged(inquiryID, userID, domain.StatusMatched, domain.StatusResolved)
	s.bus.Publish(ctx, events.InquiryResolved{
		BaseEvent:    events.NewBaseEvent(),
		InquiryID:    inquiryID,
		SubmitterID:  userID,
		InquiryTitle: inquiry.Title,
	})
	return nil
}

// RejectMatch is the submitter declining the matched item. The match row is
// removed before the status flips so no rejected inquiry retains a claim on an
// inventory item.
func (s *Service) RejectMatch(ctx context.Context, userID, inquiryID uuid.UUID) error {
	inquiry, err := s.GetMine(ctx, userID, inquiryID)
	if err != nil {
		return err
	}
	if inquiry.Status != domain.StatusMatched {
		return apperr.Conflict("inquiry is not in matched status")
	}

	if err := s.matches.DeleteConfirmedMatch(ctx, inquiryID); err != nil {
		return fmt.Errorf("delete confirmed match: %w", err)
	}

	applied, err := s.repo.UpdateStatusIf(ctx, inquiryID,
		[]domain.Status{domain.StatusMatched}, domain.StatusRejected)
	if err != nil {
		return err
	}
	if !applied {
		return apperr.Conflict("inquiry status changed during rejection")
	}

	s.log.StatusTransition(inquiryID.String(),
		domain.StatusMatched.String(), domain.StatusRejected.String(), "submitter")
	s.publishStatusChanged(inquiryID, userID, domain.StatusMatched, domain.StatusRejected)
	return nil
}

// Overview aggregates inquiry and inventory counts for the staff dashboard.
func (s *Service) Overview(ctx context.Context) (OverviewStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return OverviewStats{}, err
	}
	total, unclaimed, err := s.invCounts.Counts(ctx)
	if err != nil {
		return OverviewStats{}, err
	}
	return OverviewStats{
		Inquiries:      counts,
		TotalItems:     total,
		UnclaimedItems: unclaimed,
	}, nil
}

func (s *Service) publishStatusChanged(inquiryID, submitterID uuid.UUID, from, to domain.Status) {
	s.bus.Publish(context.Background(), events.InquiryStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		InquiryID:   inquiryID,
		SubmitterID: submitterID,
		From:        from.String(),
		To:          to.String(),
	})
}
