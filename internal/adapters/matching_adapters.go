package adapters

import (
	"context"

	"github.com/google/uuid"

	inquiryrepo "lostfound_backend/internal/inquiries/repository"
	inventoryrepo "lostfound_backend/internal/inventory/repository"
	matchrepo "lostfound_backend/internal/matches/repository"
	"lostfound_backend/internal/matching"
)

// MatchingInquiryAdapter feeds inquiry details and summary writes to the
// matching pipeline.
type MatchingInquiryAdapter struct {
	repo inquiryrepo.Repository
}

func NewMatchingInquiryAdapter(repo inquiryrepo.Repository) *MatchingInquiryAdapter {
	return &MatchingInquiryAdapter{repo: repo}
}

func (a *MatchingInquiryAdapter) GetInquiryDetails(ctx context.Context, inquiryID uuid.UUID) (matching.InquiryDetails, error) {
	inquiry, err := a.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return matching.InquiryDetails{}, err
	}
	return matching.InquiryDetails{
		ID:                     inquiry.ID,
		UserID:                 inquiry.UserID,
		Title:                  inquiry.Title,
		Description:            inquiry.Description,
		Category:               inquiry.Category,
		Color:                  inquiry.Color,
		Brand:                  inquiry.Brand,
		DistinguishingFeatures: inquiry.DistinguishingFeatures,
		LocationLost:           inquiry.LocationLost,
	}, nil
}

func (a *MatchingInquiryAdapter) SetMatchSummary(ctx context.Context, inquiryID uuid.UUID, maxConfidence float64, count int) error {
	return a.repo.SetMatchSummary(ctx, inquiryID, maxConfidence, count)
}

func (a *MatchingInquiryAdapter) ClearMatchSummary(ctx context.Context, inquiryID uuid.UUID) error {
	return a.repo.ClearMatchSummary(ctx, inquiryID)
}

// MatchingInventoryAdapter lists unclaimed items for the matching prompt.
type MatchingInventoryAdapter struct {
	repo inventoryrepo.Repository
}

func NewMatchingInventoryAdapter(repo inventoryrepo.Repository) *MatchingInventoryAdapter {
	return &MatchingInventoryAdapter{repo: repo}
}

func (a *MatchingInventoryAdapter) ListUnclaimed(ctx context.Context) ([]matching.InventoryItem, error) {
	unclaimed := false
	items, err := a.repo.List(ctx, inventoryrepo.ListFilters{Claimed: &unclaimed})
	if err != nil {
		return nil, err
	}
	out := make([]matching.InventoryItem, 0, len(items))
	for _, item := range items {
		out = append(out, matching.InventoryItem{
			ID:                     item.ID,
			Name:                   item.Name,
			Description:            item.Description,
			Category:               item.Category,
			Color:                  item.Color,
			Brand:                  item.Brand,
			DistinguishingFeatures: item.DistinguishingFeatures,
			LocationFound:          item.LocationFound,
		})
	}
	return out, nil
}

// MatchingCandidateAdapter persists matching run output through the match
// repository.
type MatchingCandidateAdapter struct {
	repo matchrepo.Repository
}

func NewMatchingCandidateAdapter(repo matchrepo.Repository) *MatchingCandidateAdapter {
	return &MatchingCandidateAdapter{repo: repo}
}

func (a *MatchingCandidateAdapter) UpsertCandidates(ctx context.Context, inquiryID uuid.UUID, parsed []matching.ParsedCandidate) error {
	candidates := make([]matchrepo.Candidate, 0, len(parsed))
	for _, p := range parsed {
		candidates = append(candidates, matchrepo.Candidate{
			InquiryID:  inquiryID,
			LostItemID: p.ItemID,
			Confidence: p.Confidence,
			Reasons:    p.Reasons,
		})
	}
	return a.repo.UpsertCandidates(ctx, candidates)
}

var (
	_ matching.InquiryReader   = (*MatchingInquiryAdapter)(nil)
	_ matching.InventoryReader = (*MatchingInventoryAdapter)(nil)
	_ matching.CandidateWriter = (*MatchingCandidateAdapter)(nil)
)
