package adapters

import (
	"context"

	"github.com/google/uuid"

	"lostfound_backend/internal/inquiries/domain"
	inquiryrepo "lostfound_backend/internal/inquiries/repository"
	matchsvc "lostfound_backend/internal/matches/service"
	"lostfound_backend/platform/apperr"
)

// InquiryStoreAdapter exposes the inquiry repository to the match review
// workflow. Status strings cross the boundary so the matches module stays
// decoupled from the inquiry domain types.
type InquiryStoreAdapter struct {
	repo inquiryrepo.Repository
}

func NewInquiryStoreAdapter(repo inquiryrepo.Repository) *InquiryStoreAdapter {
	return &InquiryStoreAdapter{repo: repo}
}

func (a *InquiryStoreAdapter) GetInquiry(ctx context.Context, inquiryID uuid.UUID) (matchsvc.InquiryView, error) {
	inquiry, err := a.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return matchsvc.InquiryView{}, err
	}
	return matchsvc.InquiryView{
		ID:     inquiry.ID,
		UserID: inquiry.UserID,
		Status: inquiry.Status.String(),
	}, nil
}

func (a *InquiryStoreAdapter) UpdateStatusIf(ctx context.Context, inquiryID uuid.UUID, from []string, to string) (bool, error) {
	fromStatuses := make([]domain.Status, 0, len(from))
	for _, s := range from {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return false, apperr.Validation("unknown inquiry status " + s)
		}
		fromStatuses = append(fromStatuses, status)
	}
	toStatus, err := domain.ParseStatus(to)
	if err != nil {
		return false, apperr.Validation("unknown inquiry status " + to)
	}
	return a.repo.UpdateStatusIf(ctx, inquiryID, fromStatuses, toStatus)
}

func (a *InquiryStoreAdapter) ClearMatchSummary(ctx context.Context, inquiryID uuid.UUID) error {
	return a.repo.ClearMatchSummary(ctx, inquiryID)
}

var _ matchsvc.InquiryStore = (*InquiryStoreAdapter)(nil)
