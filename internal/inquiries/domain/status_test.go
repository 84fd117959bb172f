package domain

import "testing"

func TestCanTransitionTo_LegalEdges(t *testing.T) {
	legal := []struct {
		from, to Status
	}{
		{StatusSubmitted, StatusUnderReview},
		{StatusSubmitted, StatusRejected},
		{StatusUnderReview, StatusMatched},
		{StatusUnderReview, StatusRejected},
		{StatusMatched, StatusResolved},
		{StatusMatched, StatusRejected},
	}

	for _, edge := range legal {
		if !edge.from.CanTransitionTo(edge.to) {
			t.Errorf("expected %s -> %s to be legal", edge.from, edge.to)
		}
	}
}

func TestCanTransitionTo_IllegalEdges(t *testing.T) {
	all := []Status{StatusSubmitted, StatusUnderReview, StatusMatched, StatusResolved, StatusRejected}

	// No direct submitted -> matched shortcut.
	if StatusSubmitted.CanTransitionTo(StatusMatched) {
		t.Error("submitted -> matched must not be legal")
	}

	// Terminal states never transition anywhere.
	for _, terminal := range []Status{StatusResolved, StatusRejected} {
		for _, to := range all {
			if terminal.CanTransitionTo(to) {
				t.Errorf("terminal %s must not transition to %s", terminal, to)
			}
		}
	}

	// Nothing re-enters submitted or under_review.
	for _, from := range all {
		if from.CanTransitionTo(StatusSubmitted) {
			t.Errorf("%s -> submitted must not be legal", from)
		}
		if from != StatusSubmitted && from.CanTransitionTo(StatusUnderReview) {
			t.Errorf("%s -> under_review must not be legal", from)
		}
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("under_review")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusUnderReview {
		t.Fatalf("expected under_review, got %s", status)
	}

	if _, err := ParseStatus("pending"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestTerminal(t *testing.T) {
	for status, want := range map[Status]bool{
		StatusSubmitted:   false,
		StatusUnderReview: false,
		StatusMatched:     false,
		StatusResolved:    true,
		StatusRejected:    true,
	} {
		if got := status.Terminal(); got != want {
			t.Errorf("Terminal(%s) = %v, want %v", status, got, want)
		}
	}
}
