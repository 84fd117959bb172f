package service

import (
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"

	"lostfound_backend/internal/inventory/repository"
	"lostfound_backend/platform/apperr"
	"lostfound_backend/platform/logger"
)

type fakeRepo struct {
	created *repository.CreateParams
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.LostItem, error) {
	f.created = &params
	return repository.LostItem{
		ID:       uuid.New(),
		Name:     params.Name,
		Category: params.Category,
		AddedBy:  params.AddedBy,
	}, nil
}

func (f *fakeRepo) GetByID(context.Context, uuid.UUID) (repository.LostItem, error) {
	return repository.LostItem{}, apperr.NotFound("item not found")
}

func (f *fakeRepo) List(context.Context, repository.ListFilters) ([]repository.LostItem, error) {
	return nil, nil
}

func (f *fakeRepo) Update(context.Context, uuid.UUID, repository.UpdateParams) (repository.LostItem, error) {
	return repository.LostItem{}, nil
}

func (f *fakeRepo) AppendImages(context.Context, uuid.UUID, []string) error { return nil }
func (f *fakeRepo) Delete(context.Context, uuid.UUID) error                 { return nil }
func (f *fakeRepo) DeleteForResolution(context.Context, uuid.UUID) error    { return nil }
func (f *fakeRepo) Counts(context.Context) (int, int, error)                { return 0, 0, nil }

type fakeUploader struct{}

func (fakeUploader) UploadItemImage(_ context.Context, _ io.Reader, _ int64, _, _ string) (string, error) {
	return "https://example.test/item.jpg", nil
}

func newService(repo *fakeRepo) *Service {
	return New(repo, fakeUploader{}, logger.New("test"))
}

func TestCreateWithoutCategorySucceeds(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	item, err := svc.Create(context.Background(), CreateParams{
		Name:        "Black umbrella",
		Description: "Left at the front desk",
		AddedBy:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if item.Category != nil {
		t.Errorf("item category = %q, want nil", *item.Category)
	}
	if repo.created == nil {
		t.Fatal("repository never received the item")
	}
	if repo.created.Category != nil {
		t.Errorf("stored category = %q, want nil", *repo.created.Category)
	}
}

func TestCreateRejectsTooManyImages(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	files := make([]*multipart.FileHeader, MaxItemImages+1)
	_, err := svc.Create(context.Background(), CreateParams{
		Name:        "Backpack",
		Description: "Blue, many stickers",
		AddedBy:     uuid.New(),
		Images:      files,
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
	if repo.created != nil {
		t.Error("item was stored despite too many images")
	}
}

func TestAddImagesRejectsTooMany(t *testing.T) {
	svc := newService(&fakeRepo{})

	files := make([]*multipart.FileHeader, MaxItemImages+1)
	err := svc.AddImages(context.Background(), uuid.New(), files)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("AddImages() error = %v, want validation error", err)
	}
}
