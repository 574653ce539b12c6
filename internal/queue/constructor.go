package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

func NewScheduledPostTask(payload ScheduledPostPayload) (*asynq.Task, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeScheduledPost, taskPayload), nil
}

func EnqueueScheduledPost(asynqClient *asynq.Client, payload ScheduledPostPayload, delay time.Duration) error {
	task, err := NewScheduledPostTask(payload)
	if err != nil {
		return err
	}

	_, err = asynqClient.Enqueue(task, asynq.ProcessIn(delay), asynq.MaxRetry(0))
	if err != nil {
		return err
	}

	log.Printf("Task scheduled: %+v", payload)
	return nil
}
