// Package ports declares the narrow collaborator interfaces the inquiry
// service depends on. Concrete implementations live in other modules and are
// wired through adapters at startup.
package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// MatchedItem is the inventory item behind a confirmed match, as shown to the
// inquiry's submitter.
type MatchedItem struct {
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

// MatchStore exposes the confirmed-match operations the inquiry lifecycle
// needs when the submitter confirms or rejects a match.
type MatchStore interface {
	// GetConfirmedItem returns the item joined through the inquiry's
	// confirmed match, or a not-found error when no match exists.
	GetConfirmedItem(ctx context.Context, inquiryID uuid.UUID) (MatchedItem, error)

	// DeleteConfirmedMatch removes the inquiry's confirmed match row.
	DeleteConfirmedMatch(ctx context.Context, inquiryID uuid.UUID) error
}

// InventoryRemover deletes inventory items that were handed back to their
// owner during match confirmation.
type InventoryRemover interface {
	DeleteForResolution(ctx context.Context, itemID uuid.UUID) error
}

// InventoryCounts reports inventory totals for the staff overview.
type InventoryCounts interface {
	Counts(ctx context.Context) (total int, unclaimed int, err error)
}

// ImageUploader stores an uploaded image and returns its public URL. Inquiry
// uploads are namespaced by the submitting user.
type ImageUploader interface {
	UploadInquiryImage(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, filename, contentType string) (string, error)
}

// MatchDispatcher hands an inquiry off to the asynchronous matching pipeline.
type MatchDispatcher interface {
	EnqueueMatchInquiry(ctx context.Context, inquiryID uuid.UUID) error
}
