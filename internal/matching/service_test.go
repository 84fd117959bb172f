package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"lostfound_backend/internal/events"
	"lostfound_backend/platform/logger"
)

type fakeInquiryReader struct {
	inquiry    InquiryDetails
	summarySet *struct {
		confidence float64
		count      int
	}
	summaryCleared bool
}

func (f *fakeInquiryReader) GetInquiryDetails(context.Context, uuid.UUID) (InquiryDetails, error) {
	return f.inquiry, nil
}

func (f *fakeInquiryReader) SetMatchSummary(_ context.Context, _ uuid.UUID, confidence float64, count int) error {
	f.summarySet = &struct {
		confidence float64
		count      int
	}{confidence, count}
	return nil
}

func (f *fakeInquiryReader) ClearMatchSummary(context.Context, uuid.UUID) error {
	f.summaryCleared = true
	return nil
}

type fakeInventoryReader struct {
	items []InventoryItem
}

func (f *fakeInventoryReader) ListUnclaimed(context.Context) ([]InventoryItem, error) {
	return f.items, nil
}

type fakeCandidateWriter struct {
	stored []ParsedCandidate
	err    error
}

func (f *fakeCandidateWriter) UpsertCandidates(_ context.Context, _ uuid.UUID, cands []ParsedCandidate) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, cands...)
	return nil
}

type fakeCompleter struct {
	content string
	err     error
	prompt  string
	block   bool
}

func (f *fakeCompleter) Complete(ctx context.Context, _, userPrompt string) (string, error) {
	f.prompt = userPrompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.content, f.err
}

func (f *fakeCompleter) Model() string { return "test-model" }

func item(name string) InventoryItem {
	return InventoryItem{ID: uuid.New(), Name: name, Description: name + " description"}
}

func newTestService(inq *fakeInquiryReader, inv *fakeInventoryReader, w *fakeCandidateWriter, c *fakeCompleter, timeout time.Duration) *Service {
	log := logger.New("test")
	return New(inq, inv, w, c, events.NewInMemoryBus(log), log, timeout)
}

func TestRunStoresFilteredCandidatesAndSummary(t *testing.T) {
	strong := item("Blue backpack")
	weak := item("Red umbrella")
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost blue backpack", Description: "Nike backpack"}}
	inv := &fakeInventoryReader{items: []InventoryItem{strong, weak}}
	writer := &fakeCandidateWriter{}
	completer := &fakeCompleter{content: fmt.Sprintf(
		`[{"itemId":%q,"confidence":85,"reasons":["color and brand match"]},{"itemId":%q,"confidence":30,"reasons":["category only"]}]`,
		strong.ID, weak.ID)}

	svc := newTestService(inq, inv, writer, completer, time.Second)
	result, err := svc.Run(context.Background(), inq.inquiry.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.MatchCount != 1 {
		t.Errorf("matchCount = %d, want 1", result.MatchCount)
	}
	if len(writer.stored) != 1 || writer.stored[0].ItemID != strong.ID {
		t.Errorf("stored candidates = %+v, want only the strong item", writer.stored)
	}
	if inq.summarySet == nil || inq.summarySet.confidence != 85 || inq.summarySet.count != 1 {
		t.Errorf("summary = %+v, want confidence 85 count 1", inq.summarySet)
	}
}

func TestRunPromptIncludesInquiryAndInventory(t *testing.T) {
	it := item("Silver watch")
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost watch", Description: "Seiko with leather strap"}}
	inv := &fakeInventoryReader{items: []InventoryItem{it}}
	completer := &fakeCompleter{content: "[]"}

	svc := newTestService(inq, inv, &fakeCandidateWriter{}, completer, time.Second)
	if _, err := svc.Run(context.Background(), inq.inquiry.ID); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, want := range []string{"Lost watch", "Seiko with leather strap", "Silver watch", it.ID.String()} {
		if !strings.Contains(completer.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRunEmptyInventoryShortCircuits(t *testing.T) {
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost keys"}}
	completer := &fakeCompleter{content: `should not be called`}

	svc := newTestService(inq, &fakeInventoryReader{}, &fakeCandidateWriter{}, completer, time.Second)
	result, err := svc.Run(context.Background(), inq.inquiry.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.MatchCount != 0 {
		t.Errorf("matchCount = %d, want 0", result.MatchCount)
	}
	if completer.prompt != "" {
		t.Errorf("model must not be called with an empty inventory")
	}
	if !inq.summaryCleared {
		t.Errorf("stale summary must be cleared")
	}
}

func TestRunZeroMatchesClearsSummary(t *testing.T) {
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost hat"}}
	inv := &fakeInventoryReader{items: []InventoryItem{item("Gloves")}}

	svc := newTestService(inq, inv, &fakeCandidateWriter{}, &fakeCompleter{content: "[]"}, time.Second)
	result, err := svc.Run(context.Background(), inq.inquiry.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.MatchCount != 0 {
		t.Errorf("matchCount = %d, want 0", result.MatchCount)
	}
	if !inq.summaryCleared {
		t.Errorf("summary must be cleared when nothing matches")
	}
}

func TestRunModelTimeoutDegrades(t *testing.T) {
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost phone"}}
	inv := &fakeInventoryReader{items: []InventoryItem{item("Phone")}}

	svc := newTestService(inq, inv, &fakeCandidateWriter{}, &fakeCompleter{block: true}, 20*time.Millisecond)
	result, err := svc.Run(context.Background(), inq.inquiry.ID)
	if err != nil {
		t.Fatalf("timeout must degrade, not fail: %v", err)
	}
	if !result.Degraded {
		t.Errorf("result should be flagged degraded")
	}
	if result.MatchCount != 0 {
		t.Errorf("matchCount = %d, want 0", result.MatchCount)
	}
}

func TestRunModelErrorFailsRun(t *testing.T) {
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost wallet"}}
	inv := &fakeInventoryReader{items: []InventoryItem{item("Wallet")}}

	svc := newTestService(inq, inv, &fakeCandidateWriter{}, &fakeCompleter{err: errors.New("upstream 500")}, time.Second)
	if _, err := svc.Run(context.Background(), inq.inquiry.ID); err == nil {
		t.Fatal("non-timeout model error must fail the run")
	}
}

func TestRunStoreFailureFailsRun(t *testing.T) {
	it := item("Backpack")
	inq := &fakeInquiryReader{inquiry: InquiryDetails{ID: uuid.New(), Title: "Lost backpack"}}
	inv := &fakeInventoryReader{items: []InventoryItem{it}}
	writer := &fakeCandidateWriter{err: errors.New("db down")}
	completer := &fakeCompleter{content: fmt.Sprintf(`[{"itemId":%q,"confidence":70}]`, it.ID)}

	svc := newTestService(inq, inv, writer, completer, time.Second)
	if _, err := svc.Run(context.Background(), inq.inquiry.ID); err == nil {
		t.Fatal("candidate store failure must fail the run")
	}
}
