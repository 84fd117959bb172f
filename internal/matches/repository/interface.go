package repository

import (
	"context"

	"github.com/google/uuid"
)

// Candidate is an AI-proposed pairing between an inquiry and an inventory
// item, awaiting staff review.
type Candidate struct {
	ID         uuid.UUID `db:"id"`
	InquiryID  uuid.UUID `db:"inquiry_id"`
	LostItemID uuid.UUID `db:"lost_item_id"`
	Confidence float64   `db:"confidence_score"`
	Reasons    []string  `db:"match_reasons"`
	CreatedAt  string    `db:"created_at"`
}

// CandidateWithItem joins a candidate with its inventory item for the review
// surface.
type CandidateWithItem struct {
	Candidate
	ItemName        string   `db:"item_name"`
	ItemDescription string   `db:"item_description"`
	ItemCategory    *string  `db:"item_category"`
	ItemColor       *string  `db:"item_color"`
	ItemLocation    *string  `db:"item_location"`
	ItemDateFound   *string  `db:"item_date_found"`
	ItemImageURLs   []string `db:"item_image_urls"`
}

// ConfirmedMatch is a staff-approved pairing. At most one exists per inquiry.
// UserID is the inquiry's submitter, denormalized so the match row identifies
// who is being offered the item.
type ConfirmedMatch struct {
	ID         uuid.UUID `db:"id"`
	InquiryID  uuid.UUID `db:"inquiry_id"`
	LostItemID uuid.UUID `db:"lost_item_id"`
	UserID     uuid.UUID `db:"user_id"`
	MatchDate  string    `db:"match_date"`
}

// ConfirmedItem is the inventory item joined through an inquiry's confirmed
// match.
type ConfirmedItem struct {
	MatchID       uuid.UUID
	ItemID        uuid.UUID
	Name          string
	Description   string
	Category      *string
	Color         *string
	Brand         *string
	LocationFound *string
	DateFound     *string
	ImageURLs     []string
}

// ReviewQueueEntry summarizes an inquiry awaiting staff review.
type ReviewQueueEntry struct {
	InquiryID      uuid.UUID
	InquiryTitle   string
	InquiryStatus  string
	SubmitterID    uuid.UUID
	CandidateCount int
	MaxConfidence  float64
	OldestPending  string
}

// Repository defines persistence for match candidates and confirmed matches.
type Repository interface {
	// UpsertCandidates writes a matching run's output. Re-proposed pairings
	// update the existing row's confidence and reasons in place.
	UpsertCandidates(ctx context.Context, candidates []Candidate) error

	// ListCandidates returns an inquiry's pending candidates, highest
	// confidence first.
	ListCandidates(ctx context.Context, inquiryID uuid.UUID) ([]Candidate, error)

	// ListCandidatesWithItems returns pending candidates joined with their
	// inventory items, highest confidence first.
	ListCandidatesWithItems(ctx context.Context, inquiryID uuid.UUID) ([]CandidateWithItem, error)

	// GetCandidate retrieves a single candidate row.
	GetCandidate(ctx context.Context, candidateID uuid.UUID) (Candidate, error)

	// ClearCandidates removes all of an inquiry's pending candidates.
	ClearCandidates(ctx context.Context, inquiryID uuid.UUID) error

	// CreateConfirmedMatch inserts the inquiry's confirmed match. A second
	// insert for the same inquiry fails with a conflict error.
	CreateConfirmedMatch(ctx context.Context, inquiryID, lostItemID, userID uuid.UUID) (ConfirmedMatch, error)

	// GetConfirmedMatch retrieves the inquiry's confirmed match.
	GetConfirmedMatch(ctx context.Context, inquiryID uuid.UUID) (ConfirmedMatch, error)

	// GetConfirmedItem retrieves the inventory item behind the inquiry's
	// confirmed match.
	GetConfirmedItem(ctx context.Context, inquiryID uuid.UUID) (ConfirmedItem, error)

	// DeleteConfirmedMatch removes the inquiry's confirmed match row.
	DeleteConfirmedMatch(ctx context.Context, inquiryID uuid.UUID) error

	// ListReviewQueue summarizes inquiries that have pending candidates.
	ListReviewQueue(ctx context.Context) ([]ReviewQueueEntry, error)
}
