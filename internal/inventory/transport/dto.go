// Package transport defines request and response DTOs for the inventory API.
package transport

import (
	"github.com/google/uuid"

	"lostfound_backend/internal/inventory/repository"
)

// CreateItemRequest is the multipart form for logging a found item. Photos
// arrive as file parts under the "images" key.
type CreateItemRequest struct {
	Name                   string  `form:"name" validate:"required,min=2,max=200"`
	Description            string  `form:"description" validate:"required,min=2,max=2000"`
	Category               *string `form:"category" validate:"omitempty,max=100"`
	Color                  *string `form:"color" validate:"omitempty,max=100"`
	Brand                  *string `form:"brand" validate:"omitempty,max=100"`
	DistinguishingFeatures *string `form:"distinguishingFeatures" validate:"omitempty,max=1000"`
	LocationFound          *string `form:"locationFound" validate:"omitempty,max=300"`
	DateFound              *string `form:"dateFound" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateItemRequest edits an item.
type UpdateItemRequest struct {
	Name                   string  `json:"name" validate:"required,min=2,max=200"`
	Description            string  `json:"description" validate:"required,min=2,max=2000"`
	Category               *string `json:"category" validate:"omitempty,max=100"`
	Color                  *string `json:"color" validate:"omitempty,max=100"`
	Brand                  *string `json:"brand" validate:"omitempty,max=100"`
	DistinguishingFeatures *string `json:"distinguishingFeatures" validate:"omitempty,max=1000"`
	LocationFound          *string `json:"locationFound" validate:"omitempty,max=300"`
	DateFound              *string `json:"dateFound" validate:"omitempty,datetime=2006-01-02"`
}

// ListItemsQuery narrows the inventory listing.
type ListItemsQuery struct {
	Category *string `form:"category"`
	Claimed  *bool   `form:"claimed"`
}

// ItemResponse is the API shape of an inventory item.
type ItemResponse struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	Category               *string   `json:"category,omitempty"`
	Color                  *string   `json:"color,omitempty"`
	Brand                  *string   `json:"brand,omitempty"`
	DistinguishingFeatures *string   `json:"distinguishingFeatures,omitempty"`
	LocationFound          *string   `json:"locationFound,omitempty"`
	DateFound              *string   `json:"dateFound,omitempty"`
	ImageURLs              []string  `json:"imageUrls"`
	IsClaimed              bool      `json:"isClaimed"`
	CreatedAt              string    `json:"createdAt"`
	UpdatedAt              string    `json:"updatedAt"`
}

// ToItemResponse maps a repository item to its API shape.
func ToItemResponse(item repository.LostItem) ItemResponse {
	imageURLs := item.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return ItemResponse{
		ID:                     item.ID,
		Name:                   item.Name,
		Description:            item.Description,
		Category:               item.Category,
		Color:                  item.Color,
		Brand:                  item.Brand,
		DistinguishingFeatures: item.DistinguishingFeatures,
		LocationFound:          item.LocationFound,
		DateFound:              item.DateFound,
		ImageURLs:              imageURLs,
		IsClaimed:              item.IsClaimed,
		CreatedAt:              item.CreatedAt,
		UpdatedAt:              item.UpdatedAt,
	}
}

// ToItemResponses maps a slice of items.
func ToItemResponses(items []repository.LostItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToItemResponse(item))
	}
	return out
}
