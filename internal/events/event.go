package events

import "github.com/google/uuid"

// InquiryStatusChanged fires on every inquiry lifecycle transition.
// Consumers use it as a refresh hint only; the row itself is authoritative.
type InquiryStatusChanged struct {
	BaseEvent
	InquiryID   uuid.UUID
	SubmitterID uuid.UUID
	From        string
	To          string
}

func (e InquiryStatusChanged) EventName() string { return "inquiries.status.changed" }

// MatchingCompleted fires when an AI matching run finishes for an inquiry.
type MatchingCompleted struct {
	BaseEvent
	InquiryID   uuid.UUID
	SubmitterID uuid.UUID
	MatchCount  int
}

func (e MatchingCompleted) EventName() string { return "matching.run.completed" }

// InquiryMatched fires when staff approve a candidate into a confirmed match.
type InquiryMatched struct {
	BaseEvent
	InquiryID   uuid.UUID
	SubmitterID uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
}

func (e InquiryMatched) EventName() string { return "inquiries.matched" }

// InquiryResolved fires when the submitter confirms ownership and the item
// leaves the inventory.
type InquiryResolved struct {
	BaseEvent
	InquiryID    uuid.UUID
	SubmitterID  uuid.UUID
	InquiryTitle string
}

func (e InquiryResolved) EventName() string { return "inquiries.resolved" }
