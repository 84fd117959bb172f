package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	url string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.url }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "matching" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{url: ""}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestEnqueueMatchInquiry(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{url: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	inquiryID := uuid.New()
	if err := client.EnqueueMatchInquiry(context.Background(), inquiryID); err != nil {
		t.Fatalf("EnqueueMatchInquiry failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListPendingTasks("matching")
	if err != nil {
		t.Fatalf("ListPendingTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d pending tasks, want 1", len(tasks))
	}
	if tasks[0].Type != TaskMatchInquiry {
		t.Errorf("task type = %s, want %s", tasks[0].Type, TaskMatchInquiry)
	}

	payload, err := ParseMatchInquiryPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.InquiryID != inquiryID.String() {
		t.Errorf("payload inquiry id = %s, want %s", payload.InquiryID, inquiryID)
	}
}

func TestMatchInquiryTaskRoundTrip(t *testing.T) {
	task, err := NewMatchInquiryTask(MatchInquiryPayload{InquiryID: "abc"})
	if err != nil {
		t.Fatalf("NewMatchInquiryTask failed: %v", err)
	}
	payload, err := ParseMatchInquiryPayload(task)
	if err != nil {
		t.Fatalf("ParseMatchInquiryPayload failed: %v", err)
	}
	if payload.InquiryID != "abc" {
		t.Errorf("inquiry id = %s, want abc", payload.InquiryID)
	}
}
