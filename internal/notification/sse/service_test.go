package sse

import (
	"testing"

	"github.com/google/uuid"

	"lostfound_backend/platform/logger"
)

func TestPublishReachesOnlyTargetUser(t *testing.T) {
	svc := New(logger.New("test"))
	defer svc.Close()

	target := &client{userID: uuid.New(), events: make(chan Event, 4)}
	other := &client{userID: uuid.New(), events: make(chan Event, 4)}
	svc.addClient(target)
	svc.addClient(other)

	svc.Publish(target.userID, Event{Type: EventInquiryStatusChanged})

	select {
	case ev := <-target.events:
		if ev.Type != EventInquiryStatusChanged {
			t.Errorf("event type = %s", ev.Type)
		}
	default:
		t.Fatal("target client received nothing")
	}
	select {
	case <-other.events:
		t.Fatal("other user must not receive the event")
	default:
	}
}

func TestPublishToStaffSkipsRegularUsers(t *testing.T) {
	svc := New(logger.New("test"))
	defer svc.Close()

	staff := &client{userID: uuid.New(), staff: true, events: make(chan Event, 4)}
	user := &client{userID: uuid.New(), events: make(chan Event, 4)}
	svc.addClient(staff)
	svc.addClient(user)

	svc.PublishToStaff(Event{Type: EventReviewQueueChanged})

	select {
	case <-staff.events:
	default:
		t.Fatal("staff client received nothing")
	}
	select {
	case <-user.events:
		t.Fatal("regular user must not receive staff broadcasts")
	default:
	}
}

func TestPublishFullBufferDoesNotBlock(t *testing.T) {
	svc := New(logger.New("test"))
	defer svc.Close()

	cl := &client{userID: uuid.New(), events: make(chan Event, 1)}
	svc.addClient(cl)

	svc.Publish(cl.userID, Event{Type: EventMatchingCompleted})
	// Second publish hits a full buffer and must return immediately.
	svc.Publish(cl.userID, Event{Type: EventMatchingCompleted})
}

func TestRemoveClientDropsUser(t *testing.T) {
	svc := New(logger.New("test"))

	cl := &client{userID: uuid.New(), events: make(chan Event, 1)}
	svc.addClient(cl)
	if svc.ClientCount(cl.userID) != 1 {
		t.Fatalf("client count = %d, want 1", svc.ClientCount(cl.userID))
	}

	svc.removeClient(cl)
	if svc.ClientCount(cl.userID) != 0 {
		t.Errorf("client count = %d after removal, want 0", svc.ClientCount(cl.userID))
	}
}

func TestSendAfterDisconnectDoesNotPanic(t *testing.T) {
	svc := New(logger.New("test"))

	cl := &client{userID: uuid.New(), events: make(chan Event, 1)}
	svc.addClient(cl)
	svc.removeClient(cl)

	// A publisher that grabbed the connection list before the disconnect may
	// still send; the channel stays open so that send cannot panic.
	select {
	case cl.events <- Event{Type: EventMatchingCompleted}:
	default:
	}
}
