package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"lostfound_backend/internal/events"
	"lostfound_backend/internal/matches/repository"
	"lostfound_backend/platform/apperr"
	"lostfound_backend/platform/logger"
)

type fakeRepo struct {
	candidates map[uuid.UUID]repository.Candidate
	confirmed  map[uuid.UUID]repository.ConfirmedMatch // keyed by inquiry ID
	items      map[uuid.UUID]string                    // item ID -> name
	cleared    []uuid.UUID
	clearErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		candidates: make(map[uuid.UUID]repository.Candidate),
		confirmed:  make(map[uuid.UUID]repository.ConfirmedMatch),
		items:      make(map[uuid.UUID]string),
	}
}

func (f *fakeRepo) addCandidate(inquiryID, itemID uuid.UUID, confidence float64) repository.Candidate {
	cand := repository.Candidate{
		ID:         uuid.New(),
		InquiryID:  inquiryID,
		LostItemID: itemID,
		Confidence: confidence,
	}
	f.candidates[cand.ID] = cand
	return cand
}

func (f *fakeRepo) UpsertCandidates(_ context.Context, cands []repository.Candidate) error {
	for _, c := range cands {
		f.candidates[c.ID] = c
	}
	return nil
}

func (f *fakeRepo) ListCandidates(_ context.Context, inquiryID uuid.UUID) ([]repository.Candidate, error) {
	var out []repository.Candidate
	for _, c := range f.candidates {
		if c.InquiryID == inquiryID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCandidatesWithItems(context.Context, uuid.UUID) ([]repository.CandidateWithItem, error) {
	return nil, nil
}

func (f *fakeRepo) GetCandidate(_ context.Context, id uuid.UUID) (repository.Candidate, error) {
	cand, ok := f.candidates[id]
	if !ok {
		return repository.Candidate{}, apperr.NotFound("candidate not found")
	}
	return cand, nil
}

func (f *fakeRepo) ClearCandidates(_ context.Context, inquiryID uuid.UUID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, inquiryID)
	for id, c := range f.candidates {
		if c.InquiryID == inquiryID {
			delete(f.candidates, id)
		}
	}
	return nil
}

func (f *fakeRepo) CreateConfirmedMatch(_ context.Context, inquiryID, itemID, userID uuid.UUID) (repository.ConfirmedMatch, error) {
	if _, exists := f.confirmed[inquiryID]; exists {
		return repository.ConfirmedMatch{}, apperr.Conflict("inquiry already has a confirmed match")
	}
	match := repository.ConfirmedMatch{
		ID:         uuid.New(),
		InquiryID:  inquiryID,
		LostItemID: itemID,
		UserID:     userID,
	}
	f.confirmed[inquiryID] = match
	return match, nil
}

func (f *fakeRepo) GetConfirmedMatch(_ context.Context, inquiryID uuid.UUID) (repository.ConfirmedMatch, error) {
	match, ok := f.confirmed[inquiryID]
	if !ok {
		return repository.ConfirmedMatch{}, apperr.NotFound("no confirmed match for inquiry")
	}
	return match, nil
}

func (f *fakeRepo) GetConfirmedItem(_ context.Context, inquiryID uuid.UUID) (repository.ConfirmedItem, error) {
	match, ok := f.confirmed[inquiryID]
	if !ok {
		return repository.ConfirmedItem{}, apperr.NotFound("no matched item for inquiry")
	}
	return repository.ConfirmedItem{
		MatchID: match.ID,
		ItemID:  match.LostItemID,
		Name:    f.items[match.LostItemID],
	}, nil
}

func (f *fakeRepo) DeleteConfirmedMatch(_ context.Context, inquiryID uuid.UUID) error {
	delete(f.confirmed, inquiryID)
	return nil
}

func (f *fakeRepo) ListReviewQueue(context.Context) ([]repository.ReviewQueueEntry, error) {
	return nil, nil
}

type fakeInquiries struct {
	statuses  map[uuid.UUID]string
	userIDs   map[uuid.UUID]uuid.UUID
	casRefuse bool
	cleared   []uuid.UUID
}

func newFakeInquiries() *fakeInquiries {
	return &fakeInquiries{
		statuses: make(map[uuid.UUID]string),
		userIDs:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeInquiries) add(status string) uuid.UUID {
	id := uuid.New()
	f.statuses[id] = status
	f.userIDs[id] = uuid.New()
	return id
}

func (f *fakeInquiries) GetInquiry(_ context.Context, id uuid.UUID) (InquiryView, error) {
	status, ok := f.statuses[id]
	if !ok {
		return InquiryView{}, apperr.NotFound("inquiry not found")
	}
	return InquiryView{ID: id, UserID: f.userIDs[id], Status: status}, nil
}

func (f *fakeInquiries) UpdateStatusIf(_ context.Context, id uuid.UUID, from []string, to string) (bool, error) {
	if f.casRefuse {
		return false, nil
	}
	current, ok := f.statuses[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if current == s {
			f.statuses[id] = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInquiries) ClearMatchSummary(_ context.Context, id uuid.UUID) error {
	f.cleared = append(f.cleared, id)
	return nil
}

func newTestService(repo *fakeRepo, inquiries *fakeInquiries) *Service {
	log := logger.New("test")
	return New(repo, inquiries, events.NewInMemoryBus(log), log)
}

func TestApproveConfirmsMatchAndClearsCandidates(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	itemID := uuid.New()
	repo.items[itemID] = "Blue backpack"
	winner := repo.addCandidate(inquiryID, itemID, 85)
	repo.addCandidate(inquiryID, uuid.New(), 45)

	if err := svc.Approve(context.Background(), uuid.New(), winner.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if inquiries.statuses[inquiryID] != "matched" {
		t.Errorf("status = %s, want matched", inquiries.statuses[inquiryID])
	}
	match, ok := repo.confirmed[inquiryID]
	if !ok || match.LostItemID != itemID {
		t.Errorf("confirmed match missing or wrong item")
	}
	if match.UserID != inquiries.userIDs[inquiryID] {
		t.Errorf("confirmed match user = %s, want submitter %s", match.UserID, inquiries.userIDs[inquiryID])
	}
	if remaining, _ := repo.ListCandidates(context.Background(), inquiryID); len(remaining) != 0 {
		t.Errorf("candidates not cleared, %d remain", len(remaining))
	}
}

func TestApproveSubmittedInquiryEntersReviewFirst(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("submitted")
	itemID := uuid.New()
	repo.items[itemID] = "Silver watch"
	winner := repo.addCandidate(inquiryID, itemID, 70)

	if err := svc.Approve(context.Background(), uuid.New(), winner.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if inquiries.statuses[inquiryID] != "matched" {
		t.Errorf("status = %s, want matched", inquiries.statuses[inquiryID])
	}
	if _, ok := repo.confirmed[inquiryID]; !ok {
		t.Errorf("confirmed match missing")
	}
}

func TestApproveGoneCandidate(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeInquiries())

	err := svc.Approve(context.Background(), uuid.New(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for missing candidate, got %v", err)
	}
}

func TestApproveClosedInquiry(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("rejected")
	cand := repo.addCandidate(inquiryID, uuid.New(), 70)

	err := svc.Approve(context.Background(), uuid.New(), cand.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for closed inquiry, got %v", err)
	}
	if len(repo.confirmed) != 0 {
		t.Errorf("no match should be created for a closed inquiry")
	}
}

func TestApproveDifferentItemAlreadyConfirmed(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	otherItem := uuid.New()
	if _, err := repo.CreateConfirmedMatch(context.Background(), inquiryID, otherItem, inquiries.userIDs[inquiryID]); err != nil {
		t.Fatal(err)
	}
	cand := repo.addCandidate(inquiryID, uuid.New(), 60)

	err := svc.Approve(context.Background(), uuid.New(), cand.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict when another item is confirmed, got %v", err)
	}
	if repo.confirmed[inquiryID].LostItemID != otherItem {
		t.Errorf("existing match must be preserved")
	}
}

func TestApproveSameItemRetrySucceeds(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	itemID := uuid.New()
	// A prior attempt wrote the match but failed before the status flip.
	if _, err := repo.CreateConfirmedMatch(context.Background(), inquiryID, itemID, inquiries.userIDs[inquiryID]); err != nil {
		t.Fatal(err)
	}
	cand := repo.addCandidate(inquiryID, itemID, 85)

	if err := svc.Approve(context.Background(), uuid.New(), cand.ID); err != nil {
		t.Fatalf("retry with same item should succeed, got %v", err)
	}
	if inquiries.statuses[inquiryID] != "matched" {
		t.Errorf("status = %s, want matched", inquiries.statuses[inquiryID])
	}
}

func TestApproveRollsBackMatchOnStatusRace(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	cand := repo.addCandidate(inquiryID, uuid.New(), 75)
	// Another actor moves the inquiry between our status read and write.
	inquiries.casRefuse = true

	err := svc.Approve(context.Background(), uuid.New(), cand.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on status race, got %v", err)
	}
	if len(repo.confirmed) != 0 {
		t.Errorf("match must be rolled back when the status write loses")
	}
}

func TestApproveAbortsWhenCandidateClearFails(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	cand := repo.addCandidate(inquiryID, uuid.New(), 75)
	repo.clearErr = errors.New("connection reset")

	if err := svc.Approve(context.Background(), uuid.New(), cand.ID); err == nil {
		t.Fatal("expected error when candidate clear fails")
	}
	if inquiries.statuses[inquiryID] != "under_review" {
		t.Errorf("status = %s, want under_review left intact", inquiries.statuses[inquiryID])
	}
}

func TestNoMatchAbortsWhenCandidateClearFails(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	repo.addCandidate(inquiryID, uuid.New(), 50)
	repo.clearErr = errors.New("connection reset")

	if err := svc.NoMatch(context.Background(), uuid.New(), inquiryID); err == nil {
		t.Fatal("expected error when candidate clear fails")
	}
	if inquiries.statuses[inquiryID] != "under_review" {
		t.Errorf("status = %s, want under_review left intact", inquiries.statuses[inquiryID])
	}
}

func TestNoMatchRejectsAndClearsCandidates(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("under_review")
	repo.addCandidate(inquiryID, uuid.New(), 50)
	repo.addCandidate(inquiryID, uuid.New(), 42)

	if err := svc.NoMatch(context.Background(), uuid.New(), inquiryID); err != nil {
		t.Fatalf("NoMatch failed: %v", err)
	}
	if inquiries.statuses[inquiryID] != "rejected" {
		t.Errorf("status = %s, want rejected", inquiries.statuses[inquiryID])
	}
	if remaining, _ := repo.ListCandidates(context.Background(), inquiryID); len(remaining) != 0 {
		t.Errorf("candidates not cleared")
	}
	if len(inquiries.cleared) != 1 {
		t.Errorf("match summary not cleared")
	}
}

func TestNoMatchAlreadyRejectedIsNoop(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("rejected")
	repo.addCandidate(inquiryID, uuid.New(), 55)

	if err := svc.NoMatch(context.Background(), uuid.New(), inquiryID); err != nil {
		t.Fatalf("repeat NoMatch should succeed, got %v", err)
	}
	if remaining, _ := repo.ListCandidates(context.Background(), inquiryID); len(remaining) != 0 {
		t.Errorf("leftover candidates must still be cleared")
	}
}

func TestNoMatchOnMatchedInquiry(t *testing.T) {
	repo := newFakeRepo()
	inquiries := newFakeInquiries()
	svc := newTestService(repo, inquiries)

	inquiryID := inquiries.add("matched")

	err := svc.NoMatch(context.Background(), uuid.New(), inquiryID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for matched inquiry, got %v", err)
	}
}
