package repository

import (
	"context"

	"github.com/google/uuid"

	"lostfound_backend/internal/inquiries/domain"
)

// Inquiry is a user's report of a lost item.
type Inquiry struct {
	ID                     uuid.UUID     `db:"id"`
	UserID                 uuid.UUID     `db:"user_id"`
	Title                  string        `db:"title"`
	Description            string        `db:"description"`
	Category               *string       `db:"category"`
	Color                  *string       `db:"color"`
	Brand                  *string       `db:"brand"`
	DistinguishingFeatures *string       `db:"distinguishing_features"`
	LocationLost           *string       `db:"location_lost"`
	DateLost               *string       `db:"date_lost"`
	ImageURLs              []string      `db:"image_urls"`
	Status                 domain.Status `db:"status"`
	AssignedAssistantID    *uuid.UUID    `db:"assigned_assistant_id"`
	// ConfidenceScore and NumberOfMatches mirror the match store after the
	// latest matching run. They are display summaries and may lag it.
	ConfidenceScore *float64 `db:"confidence_score"`
	NumberOfMatches int      `db:"number_of_matches"`
	CreatedAt       string   `db:"created_at"`
	UpdatedAt       string   `db:"updated_at"`
}

// CreateParams contains parameters for creating an inquiry.
type CreateParams struct {
	UserID                 uuid.UUID
	Title                  string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationLost           *string
	DateLost               *string
	ImageURLs              []string
}

// StatusCounts aggregates inquiries per lifecycle state for the staff overview.
type StatusCounts struct {
	Submitted   int
	UnderReview int
	Matched     int
	Resolved    int
	Rejected    int
}

// Repository defines persistence operations for inquiries.
type Repository interface {
	// Create inserts a new inquiry with status submitted.
	Create(ctx context.Context, params CreateParams) (Inquiry, error)

	// GetByID retrieves a single inquiry.
	GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error)

	// ListBySubmitter retrieves a user's inquiries, newest first.
	ListBySubmitter(ctx context.Context, userID uuid.UUID) ([]Inquiry, error)

	// UpdateStatusIf performs a compare-and-swap on status: the row is updated
	// to `to` only when its current status is one of `from`. Returns whether
	// the update was applied.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from []domain.Status, to domain.Status) (bool, error)

	// SetMatchSummary writes the post-run candidate summary fields.
	SetMatchSummary(ctx context.Context, id uuid.UUID, maxConfidence float64, count int) error

	// ClearMatchSummary resets confidence_score to NULL and number_of_matches
	// to zero, removing stale summaries from a prior run.
	ClearMatchSummary(ctx context.Context, id uuid.UUID) error

	// CountByStatus aggregates inquiry counts per status.
	CountByStatus(ctx context.Context) (StatusCounts, error)
}
