// Package transport defines request and response DTOs for the inquiries API.
package transport

import (
	"github.com/google/uuid"

	"lostfound_backend/internal/inquiries/ports"
	"lostfound_backend/internal/inquiries/repository"
)

// SubmitInquiryRequest is the multipart form for a new inquiry. Images arrive
// as separate file parts under the "images" key.
type SubmitInquiryRequest struct {
	Title                  string  `form:"title" validate:"required,min=3,max=200"`
	Description            string  `form:"description" validate:"required,min=10,max=2000"`
	Category               *string `form:"category" validate:"omitempty,max=100"`
	Color                  *string `form:"color" validate:"omitempty,max=100"`
	Brand                  *string `form:"brand" validate:"omitempty,max=100"`
	DistinguishingFeatures *string `form:"distinguishingFeatures" validate:"omitempty,max=1000"`
	LocationLost           *string `form:"locationLost" validate:"omitempty,max=300"`
	DateLost               *string `form:"dateLost" validate:"omitempty,datetime=2006-01-02"`
}

// InquiryResponse is the API shape of an inquiry.
type InquiryResponse struct {
	ID                     uuid.UUID `json:"id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	Category               *string   `json:"category,omitempty"`
	Color                  *string   `json:"color,omitempty"`
	Brand                  *string   `json:"brand,omitempty"`
	DistinguishingFeatures *string   `json:"distinguishingFeatures,omitempty"`
	LocationLost           *string   `json:"locationLost,omitempty"`
	DateLost               *string   `json:"dateLost,omitempty"`
	ImageURLs              []string  `json:"imageUrls"`
	Status                 string    `json:"status"`
	ConfidenceScore        *float64  `json:"confidenceScore,omitempty"`
	NumberOfMatches        int       `json:"numberOfMatches"`
	CreatedAt              string    `json:"createdAt"`
	UpdatedAt              string    `json:"updatedAt"`
}

// MatchedItemResponse is the inventory item behind a confirmed match.
type MatchedItemResponse struct {
	MatchID       uuid.UUID `json:"matchId"`
	ItemID        uuid.UUID `json:"itemId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      *string   `json:"category,omitempty"`
	Color         *string   `json:"color,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	LocationFound *string   `json:"locationFound,omitempty"`
	DateFound     *string   `json:"dateFound,omitempty"`
	ImageURLs     []string  `json:"imageUrls"`
}

// OverviewResponse aggregates dashboard counters for staff.
type OverviewResponse struct {
	Submitted      int `json:"submitted"`
	UnderReview    int `json:"underReview"`
	Matched        int `json:"matched"`
	Resolved       int `json:"resolved"`
	Rejected       int `json:"rejected"`
	TotalItems     int `json:"totalItems"`
	UnclaimedItems int `json:"unclaimedItems"`
}

// ToInquiryResponse maps a repository inquiry to its API shape.
func ToInquiryResponse(inquiry repository.Inquiry) InquiryResponse {
	imageURLs := inquiry.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return InquiryResponse{
		ID:                     inquiry.ID,
		Title:                  inquiry.Title,
		Description:            inquiry.Description,
		Category:               inquiry.Category,
		Color:                  inquiry.Color,
		Brand:                  inquiry.Brand,
		DistinguishingFeatures: inquiry.DistinguishingFeatures,
		LocationLost:           inquiry.LocationLost,
		DateLost:               inquiry.DateLost,
		ImageURLs:              imageURLs,
		Status:                 inquiry.Status.String(),
		ConfidenceScore:        inquiry.ConfidenceScore,
		NumberOfMatches:        inquiry.NumberOfMatches,
		CreatedAt:              inquiry.CreatedAt,
		UpdatedAt:              inquiry.UpdatedAt,
	}
}

// ToInquiryResponses maps a slice of inquiries.
func ToInquiryResponses(inquiries []repository.Inquiry) []InquiryResponse {
	out := make([]InquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		out = append(out, ToInquiryResponse(inquiry))
	}
	return out
}

// ToMatchedItemResponse maps the matched item port type to its API shape.
func ToMatchedItemResponse(item ports.MatchedItem) MatchedItemResponse {
	imageURLs := item.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return MatchedItemResponse{
		MatchID:       item.MatchID,
		ItemID:        item.ItemID,
		Name:          item.Name,
		Description:   item.Description,
		Category:      item.Category,
		Color:         item.Color,
		Brand:         item.Brand,
		LocationFound: item.LocationFound,
		DateFound:     item.DateFound,
		ImageURLs:     imageURLs,
	}
}
