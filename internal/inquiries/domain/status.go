// Package domain holds the inquiry lifecycle model: the status enum and the
// legal-transition table every mutation path must respect.
package domain

import "fmt"

// Status is the lifecycle state of an inquiry.
//
// submitted → under_review → {matched, rejected}
// matched → {resolved, rejected}
//
// resolved and rejected are terminal. Nothing re-enters submitted or
// under_review once left.
type Status string

const (
	// StatusSubmitted is the initial state right after the inquiry row is created.
	StatusSubmitted Status = "submitted"
	// StatusUnderReview is set as soon as the matching run is dispatched,
	// not when it completes.
	StatusUnderReview Status = "under_review"
	// StatusMatched means staff approved one candidate; the submitter must
	// confirm or reject it.
	StatusMatched Status = "matched"
	// StatusResolved means the submitter confirmed ownership and the item
	// left the inventory. Terminal.
	StatusResolved Status = "resolved"
	// StatusRejected means either staff found no match or the submitter
	// rejected the approved match. Terminal.
	StatusRejected Status = "rejected"
)

// ParseStatus converts a stored string into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown inquiry status %q", raw)
	}
	return status, nil
}

// Valid reports whether the status is one of the five lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusMatched, StatusResolved, StatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusResolved, StatusRejected:
		return true
	case StatusSubmitted, StatusUnderReview, StatusMatched:
		return false
	default:
		return false
	}
}

// CanTransitionTo reports whether the edge s → next exists in the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusSubmitted:
		return next == StatusUnderReview || next == StatusRejected
	case StatusUnderReview:
		return next == StatusMatched || next == StatusRejected
	case StatusMatched:
		return next == StatusResolved || next == StatusRejected
	case StatusResolved, StatusRejected:
		return false
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
