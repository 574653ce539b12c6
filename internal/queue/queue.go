package queue

import (
	"time"

	"github.com/bkmarketing/post-composer/internal/repository"
)

type Queue struct {
	pr repository.PageRepository
}

func NewQueue(pr repository.PageRepository) *Queue {
	return &Queue{pr: pr}
}

const TaskTypeScheduledPost = "composer:scheduled_post"

type ScheduledPostPayload struct {
	SessionID   string    `json:"session_id"`
	PageIDs     []string  `json:"page_ids"`
	ScheduledAt time.Time `json:"scheduled_at"`
}
