// Package transport defines request and response DTOs for the match review API.
package transport

import (
	"github.com/google/uuid"

	"lostfound_backend/internal/matches/repository"
)

// ReviewQueueEntryResponse summarizes an inquiry awaiting review.
type ReviewQueueEntryResponse struct {
	InquiryID      uuid.UUID `json:"inquiryId"`
	InquiryTitle   string    `json:"inquiryTitle"`
	InquiryStatus  string    `json:"inquiryStatus"`
	CandidateCount int       `json:"candidateCount"`
	MaxConfidence  float64   `json:"maxConfidence"`
	OldestPending  string    `json:"oldestPending"`
}

// CandidateResponse is a pending candidate with its inventory item.
type CandidateResponse struct {
	ID            uuid.UUID `json:"id"`
	InquiryID     uuid.UUID `json:"inquiryId"`
	LostItemID    uuid.UUID `json:"lostItemId"`
	Confidence    float64   `json:"confidence"`
	Reasons       []string  `json:"reasons"`
	ItemName      string    `json:"itemName"`
	ItemDesc      string    `json:"itemDescription"`
	ItemCategory  *string   `json:"itemCategory,omitempty"`
	ItemColor     *string   `json:"itemColor,omitempty"`
	ItemLocation  *string   `json:"itemLocation,omitempty"`
	ItemDateFound *string   `json:"itemDateFound,omitempty"`
	ItemImageURLs []string  `json:"itemImageUrls"`
	CreatedAt     string    `json:"createdAt"`
}

// ToReviewQueueResponse maps review queue entries.
func ToReviewQueueResponse(entries []repository.ReviewQueueEntry) []ReviewQueueEntryResponse {
	out := make([]ReviewQueueEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ReviewQueueEntryResponse{
			InquiryID:      e.InquiryID,
			InquiryTitle:   e.InquiryTitle,
			InquiryStatus:  e.InquiryStatus,
			CandidateCount: e.CandidateCount,
			MaxConfidence:  e.MaxConfidence,
			OldestPending:  e.OldestPending,
		})
	}
	return out
}

// ToCandidateResponses maps joined candidates.
func ToCandidateResponses(candidates []repository.CandidateWithItem) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		reasons := c.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		imageURLs := c.ItemImageURLs
		if imageURLs == nil {
			imageURLs = []string{}
		}
		out = append(out, CandidateResponse{
			ID:            c.ID,
			InquiryID:     c.InquiryID,
			LostItemID:    c.LostItemID,
			Confidence:    c.Confidence,
			Reasons:       reasons,
			ItemName:      c.ItemName,
			ItemDesc:      c.ItemDescription,
			ItemCategory:  c.ItemCategory,
			ItemColor:     c.ItemColor,
			ItemLocation:  c.ItemLocation,
			ItemDateFound: c.ItemDateFound,
			ItemImageURLs: imageURLs,
			CreatedAt:     c.CreatedAt,
		})
	}
	return out
}
