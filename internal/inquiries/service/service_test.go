package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"

	"lostfound_backend/internal/events"
	"lostfound_backend/internal/inquiries/domain"
	"lostfound_backend/internal/inquiries/ports"
	"lostfound_backend/internal/inquiries/repository"
	"lostfound_backend/platform/apperr"
	"lostfound_backend/platform/logger"
)

type fakeRepo struct {
	inquiries map[uuid.UUID]repository.Inquiry
	created   []repository.CreateParams
	casCalls  []string
	casFail   bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{inquiries: make(map[uuid.UUID]repository.Inquiry)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Inquiry, error) {
	f.created = append(f.created, params)
	inquiry := repository.Inquiry{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		ImageURLs:   params.ImageURLs,
		Status:      domain.StatusSubmitted,
	}
	f.inquiries[inquiry.ID] = inquiry
	return inquiry, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Inquiry, error) {
	inquiry, ok := f.inquiries[id]
	if !ok {
		return repository.Inquiry{}, apperr.NotFound("inquiry not found")
	}
	return inquiry, nil
}

func (f *fakeRepo) ListBySubmitter(_ context.Context, userID uuid.UUID) ([]repository.Inquiry, error) {
	var out []repository.Inquiry
	for _, inq := range f.inquiries {
		if inq.UserID == userID {
			out = append(out, inq)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from []domain.Status, to domain.Status) (bool, error) {
	f.casCalls = append(f.casCalls, to.String())
	if f.casFail {
		return false, nil
	}
	inquiry, ok := f.inquiries[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if inquiry.Status == s {
			inquiry.Status = to
			f.inquiries[id] = inquiry
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) SetMatchSummary(context.Context, uuid.UUID, float64, int) error { return nil }
func (f *fakeRepo) ClearMatchSummary(context.Context, uuid.UUID) error             { return nil }
func (f *fakeRepo) CountByStatus(context.Context) (repository.StatusCounts, error) {
	return repository.StatusCounts{Submitted: 2, Matched: 1}, nil
}

type fakeMatchStore struct {
	item      ports.MatchedItem
	itemErr   error
	deleted   []uuid.UUID
	deleteErr error
}

func (f *fakeMatchStore) GetConfirmedItem(context.Context, uuid.UUID) (ports.MatchedItem, error) {
	return f.item, f.itemErr
}

func (f *fakeMatchStore) DeleteConfirmedMatch(_ context.Context, inquiryID uuid.UUID) error {
	f.deleted = append(f.deleted, inquiryID)
	return f.deleteErr
}

type fakeInventory struct {
	deleted   []uuid.UUID
	deleteErr error
}

func (f *fakeInventory) DeleteForResolution(_ context.Context, itemID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, itemID)
	return nil
}

type fakeCounts struct{}

func (fakeCounts) Counts(context.Context) (int, int, error) { return 7, 4, nil }

type fakeUploader struct {
	urls []string
	err  error
}

func (f *fakeUploader) UploadInquiryImage(context.Context, uuid.UUID, io.Reader, int64, string, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	url := "https://cdn.example.com/img.jpg"
	f.urls = append(f.urls, url)
	return url, nil
}

type fakeDispatcher struct {
	enqueued []uuid.UUID
	err      error
}

func (f *fakeDispatcher) EnqueueMatchInquiry(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, id)
	return nil
}

func newTestService(repo *fakeRepo, matches *fakeMatchStore, inv *fakeInventory, disp *fakeDispatcher) *Service {
	return New(repo, matches, inv, fakeCounts{}, &fakeUploader{}, disp,
		events.NewInMemoryBus(logger.New("test")), logger.New("test"))
}

func TestSubmitAdvancesToUnderReview(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{}
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, disp)

	userID := uuid.New()
	inquiry, err := svc.Submit(context.Background(), SubmitParams{
		UserID:      userID,
		Title:       "Black backpack",
		Description: "Lost near the library",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if inquiry.Status != domain.StatusUnderReview {
		t.Errorf("status = %s, want under_review", inquiry.Status)
	}
	if len(disp.enqueued) != 1 || disp.enqueued[0] != inquiry.ID {
		t.Errorf("matching job not enqueued for inquiry")
	}
}

func TestSubmitSanitizesInput(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, &fakeDispatcher{})

	_, err := svc.Submit(context.Background(), SubmitParams{
		UserID:      uuid.New(),
		Title:       "<script>alert(1)</script>Wallet",
		Description: "Brown <b>leather</b>",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got := repo.created[0].Title; got != "alert(1)Wallet" {
		t.Errorf("title = %q, want HTML stripped", got)
	}
	if got := repo.created[0].Description; got != "Brown leather" {
		t.Errorf("description = %q, want HTML stripped", got)
	}
}

func TestSubmitEnqueueFailureLeavesSubmitted(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{err: errors.New("redis down")}
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, disp)

	inquiry, err := svc.Submit(context.Background(), SubmitParams{
		UserID:      uuid.New(),
		Title:       "Umbrella",
		Description: "Red umbrella",
	})
	if err != nil {
		t.Fatalf("Submit should succeed despite enqueue failure: %v", err)
	}
	if inquiry.Status != domain.StatusSubmitted {
		t.Errorf("status = %s, want submitted when enqueue fails", inquiry.Status)
	}
	if len(repo.casCalls) != 0 {
		t.Errorf("status should not advance when enqueue fails")
	}
}

func TestGetMineHidesOtherUsersInquiries(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, &fakeDispatcher{})

	owner := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: owner, Title: "Keys"})

	_, err := svc.GetMine(context.Background(), uuid.New(), inquiry.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign inquiry, got %v", err)
	}

	got, err := svc.GetMine(context.Background(), owner, inquiry.ID)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.ID != inquiry.ID {
		t.Errorf("got wrong inquiry")
	}
}

func TestConfirmMatchRemovesItemAndResolves(t *testing.T) {
	repo := newFakeRepo()
	itemID := uuid.New()
	matches := &fakeMatchStore{item: ports.MatchedItem{ItemID: itemID, Name: "Backpack"}}
	inv := &fakeInventory{}
	svc := newTestService(repo, matches, inv, &fakeDispatcher{})

	userID := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: userID, Title: "Backpack"})
	setStatus(repo, inquiry.ID, domain.StatusMatched)

	if err := svc.ConfirmMatch(context.Background(), userID, inquiry.ID); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}
	if len(inv.deleted) != 1 || inv.deleted[0] != itemID {
		t.Errorf("claimed item was not removed from inventory")
	}
	if repo.inquiries[inquiry.ID].Status != domain.StatusResolved {
		t.Errorf("status = %s, want resolved", repo.inquiries[inquiry.ID].Status)
	}
}

func TestConfirmMatchRequiresMatchedStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, &fakeDispatcher{})

	userID := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: userID, Title: "Phone"})

	err := svc.ConfirmMatch(context.Background(), userID, inquiry.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for non-matched inquiry, got %v", err)
	}
}

func TestConfirmMatchAbortsWhenItemDeleteFails(t *testing.T) {
	repo := newFakeRepo()
	matches := &fakeMatchStore{item: ports.MatchedItem{ItemID: uuid.New()}}
	inv := &fakeInventory{deleteErr: errors.New("db down")}
	svc := newTestService(repo, matches, inv, &fakeDispatcher{})

	userID := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: userID, Title: "Watch"})
	setStatus(repo, inquiry.ID, domain.StatusMatched)

	if err := svc.ConfirmMatch(context.Background(), userID, inquiry.ID); err == nil {
		t.Fatal("expected error when item delete fails")
	}
	if repo.inquiries[inquiry.ID].Status != domain.StatusMatched {
		t.Errorf("status must stay matched when the item delete fails")
	}
}

func TestRejectMatchDeletesMatchBeforeStatus(t *testing.T) {
	repo := newFakeRepo()
	matches := &fakeMatchStore{}
	svc := newTestService(repo, matches, &fakeInventory{}, &fakeDispatcher{})

	userID := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: userID, Title: "Glasses"})
	setStatus(repo, inquiry.ID, domain.StatusMatched)

	if err := svc.RejectMatch(context.Background(), userID, inquiry.ID); err != nil {
		t.Fatalf("RejectMatch failed: %v", err)
	}
	if len(matches.deleted) != 1 {
		t.Errorf("confirmed match was not deleted")
	}
	if repo.inquiries[inquiry.ID].Status != domain.StatusRejected {
		t.Errorf("status = %s, want rejected", repo.inquiries[inquiry.ID].Status)
	}
}

func TestRejectMatchAbortsWhenMatchDeleteFails(t *testing.T) {
	repo := newFakeRepo()
	matches := &fakeMatchStore{deleteErr: errors.New("db down")}
	svc := newTestService(repo, matches, &fakeInventory{}, &fakeDispatcher{})

	userID := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: userID, Title: "Hat"})
	setStatus(repo, inquiry.ID, domain.StatusMatched)

	if err := svc.RejectMatch(context.Background(), userID, inquiry.ID); err == nil {
		t.Fatal("expected error when match delete fails")
	}
	if repo.inquiries[inquiry.ID].Status != domain.StatusMatched {
		t.Errorf("status must stay matched when the match delete fails")
	}
}

func TestGetMatchedItemRequiresMatchedStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, &fakeDispatcher{})

	userID := uuid.New()
	inquiry, _ := repo.Create(context.Background(), repository.CreateParams{UserID: userID, Title: "Scarf"})

	_, err := svc.GetMatchedItem(context.Background(), userID, inquiry.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unmatched inquiry, got %v", err)
	}
}

func TestOverviewAggregatesCounts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMatchStore{}, &fakeInventory{}, &fakeDispatcher{})

	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if stats.Inquiries.Submitted != 2 || stats.Inquiries.Matched != 1 {
		t.Errorf("inquiry counts = %+v", stats.Inquiries)
	}
	if stats.TotalItems != 7 || stats.UnclaimedItems != 4 {
		t.Errorf("item counts = %d/%d, want 7/4", stats.TotalItems, stats.UnclaimedItems)
	}
}

func setStatus(repo *fakeRepo, id uuid.UUID, status domain.Status) {
	inquiry := repo.inquiries[id]
	inquiry.Status = status
	repo.inquiries[id] = inquiry
}
