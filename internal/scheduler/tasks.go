package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskMatchInquiry = "matching.run_inquiry"

type MatchInquiryPayload struct {
	InquiryID string `json:"inquiryId"`
}

func NewMatchInquiryTask(payload MatchInquiryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMatchInquiry, data), nil
}

func ParseMatchInquiryPayload(task *asynq.Task) (MatchInquiryPayload, error) {
	var payload MatchInquiryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MatchInquiryPayload{}, err
	}
	return payload, nil
}
