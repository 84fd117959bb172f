package service

import (
	"context"

	"github.com/google/uuid"
)

// InquiryView is the slice of an inquiry the review workflow needs.
type InquiryView struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Status string
}

// InquiryStore exposes the inquiry operations the review workflow performs.
// The inquiries module implements it through an adapter.
type InquiryStore interface {
	// GetInquiry loads the inquiry under review.
	GetInquiry(ctx context.Context, inquiryID uuid.UUID) (InquiryView, error)

	// UpdateStatusIf flips the inquiry's status only when the current status
	// is one of `from`. Returns whether the update was applied.
	UpdateStatusIf(ctx context.Context, inquiryID uuid.UUID, from []string, to string) (bool, error)

	// ClearMatchSummary resets the inquiry's candidate summary fields.
	ClearMatchSummary(ctx context.Context, inquiryID uuid.UUID) error
}
