// Package adapters bridges the narrow ports each module declares to the
// services and repositories of other modules. All cross-module wiring happens
// here and in the composition root, never between modules directly.
package adapters

import (
	"context"

	"github.com/google/uuid"

	"lostfound_backend/internal/inquiries/ports"
	matchrepo "lostfound_backend/internal/matches/repository"
)

// MatchStoreAdapter exposes the match repository to the inquiries module.
type MatchStoreAdapter struct {
	repo matchrepo.Repository
}

func NewMatchStoreAdapter(repo matchrepo.Repository) *MatchStoreAdapter {
	return &MatchStoreAdapter{repo: repo}
}

func (a *MatchStoreAdapter) GetConfirmedItem(ctx context.Context, inquiryID uuid.UUID) (ports.MatchedItem, error) {
	item, err := a.repo.GetConfirmedItem(ctx, inquiryID)
	if err != nil {
		return ports.MatchedItem{}, err
	}
	return ports.MatchedItem{
		MatchID:       item.MatchID,
		ItemID:        item.ItemID,
		Name:          item.Name,
		Description:   item.Description,
		Category:      item.Category,
		Color:         item.Color,
		Brand:         item.Brand,
		LocationFound: item.LocationFound,
		DateFound:     item.DateFound,
		ImageURLs:     item.ImageURLs,
	}, nil
}

func (a *MatchStoreAdapter) DeleteConfirmedMatch(ctx context.Context, inquiryID uuid.UUID) error {
	return a.repo.DeleteConfirmedMatch(ctx, inquiryID)
}

var _ ports.MatchStore = (*MatchStoreAdapter)(nil)
