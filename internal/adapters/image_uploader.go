package adapters

import (
	"context"
	"io"

	"lostfound_backend/internal/adapters/storage"
	"lostfound_backend/internal/inquiries/ports"
	inventorysvc "lostfound_backend/internal/inventory/service"

	"github.com/google/uuid"
)

// Folder prefixes inside the shared images bucket.
const (
	folderInquiries = "inquiries"
	folderInventory = "inventory"
)

// ImageUploaderAdapter uploads photos to object storage and hands back their
// public URLs. Inquiry and inventory photos share a bucket under different
// prefixes.
type ImageUploaderAdapter struct {
	store  storage.StorageService
	bucket string
}

func NewImageUploaderAdapter(store storage.StorageService, bucket string) *ImageUploaderAdapter {
	return &ImageUploaderAdapter{store: store, bucket: bucket}
}

func (a *ImageUploaderAdapter) UploadInquiryImage(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, filename, contentType string) (string, error) {
	return a.upload(ctx, folderInquiries+"/"+userID.String(), reader, size, filename, contentType)
}

func (a *ImageUploaderAdapter) UploadItemImage(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error) {
	return a.upload(ctx, folderInventory, reader, size, filename, contentType)
}

func (a *ImageUploaderAdapter) upload(ctx context.Context, folder string, reader io.Reader, size int64, filename, contentType string) (string, error) {
	fileKey, err := a.store.UploadFile(ctx, a.bucket, folder, filename, contentType, reader, size)
	if err != nil {
		return "", err
	}
	return a.store.PublicURL(a.bucket, fileKey), nil
}

var (
	_ ports.ImageUploader        = (*ImageUploaderAdapter)(nil)
	_ inventorysvc.ImageUploader = (*ImageUploaderAdapter)(nil)
)
