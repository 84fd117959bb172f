// Package service implements inventory management: staff logging found items,
// editing them, and removing them when they leave the office.
package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lostfound_backend/internal/inventory/repository"
	"lostfound_backend/platform/apperr"
	"lostfound_backend/platform/logger"
	"lostfound_backend/platform/sanitize"
)

// MaxItemImages caps the number of photos per item.
const MaxItemImages = 5

// ImageUploader stores an item photo and returns its public URL.
type ImageUploader interface {
	UploadItemImage(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error)
}

// CreateParams carries a new item from the transport layer.
type CreateParams struct {
	Name                   string
	Description            string
	Category               *string
	Color                  *string
	Brand                  *string
	DistinguishingFeatures *string
	LocationFound          *string
	DateFound              *string
	AddedBy                uuid.UUID
	Images                 []*multipart.FileHeader
}

// UpdateParams carries item edits from the transport layer.
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

// Service orchestrates inventory operations.
type Service struct {
	repo     repository.Repository
	uploader ImageUploader
	log      *logger.Logger
}

// New creates the inventory service.
func New(repo repository.Repository, uploader ImageUploader, log *logger.Logger) *Service {
	return &Service{repo: repo, uploader: uploader, log: log}
}

// Create logs a found item, uploading any photos first.
func (s *Service) Create(ctx context.Context, params CreateParams) (repository.LostItem, error) {
	if len(params.Images) > MaxItemImages {
		return repository.LostItem{}, apperr.Validation(
			fmt.Sprintf("at most %d images allowed", MaxItemImages))
	}

	imageURLs, err := s.uploadImages(ctx, params.Images)
	if err != nil {
		return repository.LostItem{}, err
	}

	return s.repo.Create(ctx, repository.CreateParams{
		Name:                   sanitize.Text(params.Name),
		Description:            sanitize.Text(params.Description),
		Category:               sanitize.TextPtr(params.Category),
		Color:                  sanitize.TextPtr(params.Color),
		Brand:                  sanitize.TextPtr(params.Brand),
		DistinguishingFeatures: sanitize.TextPtr(params.DistinguishingFeatures),
		LocationFound:          sanitize.TextPtr(params.LocationFound),
		DateFound:              params.DateFound,
		ImageURLs:              imageURLs,
		AddedBy:                params.AddedBy,
	})
}

// Get retrieves a single item.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.LostItem, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves items, optionally filtered by category or claimed state.
func (s *Service) List(ctx context.Context, filters repository.ListFilters) ([]repository.LostItem, error) {
	return s.repo.List(ctx, filters)
}

// Update edits an item's fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (repository.LostItem, error) {
	return s.repo.Update(ctx, id, repository.UpdateParams{
		Name:                   sanitize.Text(params.Name),
		Description:            sanitize.Text(params.Description),
		Category:               sanitize.TextPtr(params.Category),
		Color:                  sanitize.TextPtr(params.Color),
		Brand:                  sanitize.TextPtr(params.Brand),
		DistinguishingFeatures: sanitize.TextPtr(params.DistinguishingFeatures),
		LocationFound:          sanitize.TextPtr(params.LocationFound),
		DateFound:              params.DateFound,
	})
}

// AddImages uploads additional photos onto an existing item.
func (s *Service) AddImages(ctx context.Context, id uuid.UUID, files []*multipart.FileHeader) error {
	if len(files) > MaxItemImages {
		return apperr.Validation(fmt.Sprintf("at most %d images allowed", MaxItemImages))
	}

	urls, err := s.uploadImages(ctx, files)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	return s.repo.AppendImages(ctx, id, urls)
}

// Delete removes an item from the inventory. Items referenced by a confirmed
// match are refused; the match must be settled or rejected first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		g.Go(func() error {
			f, err := fh.Open()
			if err != nil {
				s.log.Warn("open upload failed", "filename", fh.Filename, "error", err.Error())
				return nil
			}
			defer f.Close()

			url, err := s.uploader.UploadItemImage(gctx,
				f, fh.Size, fh.Filename, fh.Header.Get("Content-Type"))
			if err != nil {
				s.log.Warn("image upload failed", "filename", fh.Filename, "error", err.Error())
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	uploaded := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			uploaded = append(uploaded, u)
		}
	}
	return uploaded, nil
}
