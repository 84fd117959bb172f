package repository

import (
	"context"

	"github.com/google/uuid"
)

// LostItem is a found item logged into the inventory by staff. IsClaimed is
// carried for data compatibility but never set: claimed items are deleted
// outright when the owner confirms a match.
type LostItem struct {
	ID                     uuid.UUID `db:"id"`
	Name                   string    `db:"name"`
	Description            string    `db:"description"`
	Category               *string   `db:"category"`
	Color                  *string   `db:"color"`
	Brand                  *string   `db:"brand"`
	DistinguishingFeatures *string   `db:"distinguishing_features"`
	LocationFound          *string   `db:"location_found"`
	DateFound              *string   `db:"date_found"`
	ImageURLs              []string  `db:"image_urls"`
	IsClaimed              bool      `db:"is_claimed"`
	AddedBy                uuid.UUID `db:"added_by"`
	CreatedAt              string    `db:"created_at"`
	UpdatedAt              string    `db:"updated_at"`
}

// CreateParams contains parameters for logging a found item.
type CreateParams struct {
	Name                   string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationFound          *string
	DateFound              *string
	ImageURLs              []string
	AddedBy                uuid.UUID
}

// UpdateParams contains the editable fields of an item.
type UpdateParams struct {
	Name                   string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationFound          *string
	DateFound              *string
}

// ListFilters narrows the inventory listing.
type ListFilters struct {
	Category *string
	Claimed  *bool
}

// Repository defines persistence operations for the inventory.
type Repository interface {
	// Create logs a new found item.
	Create(ctx context.Context, params CreateParams) (LostItem, error)

	// GetByID retrieves a single item.
	GetByID(ctx context.Context, id uuid.UUID) (LostItem, error)

	// List retrieves items, newest first, optionally filtered.
	List(ctx context.Context, filters ListFilters) ([]LostItem, error)

	// Update edits an item's fields.
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (LostItem, error)

	// AppendImages adds uploaded image URLs to an item.
	AppendImages(ctx context.Context, id uuid.UUID, urls []string) error

	// Delete removes an item unless a confirmed match references it, in
	// which case it fails with a conflict error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteForResolution removes an item unconditionally as part of match
	// confirmation. The confirmed match row goes with it via cascade.
	DeleteForResolution(ctx context.Context, id uuid.UUID) error

	// Counts returns the total and unclaimed item counts.
	Counts(ctx context.Context) (total int, unclaimed int, err error)
}
