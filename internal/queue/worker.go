package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandleScheduledPostTask fires at the scheduled time. Nothing is published;
// the confirmation is only logged.
func (q *Queue) HandleScheduledPostTask(ctx context.Context, task *asynq.Task) error {
	var payload ScheduledPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w: %w", TaskTypeScheduledPost, err, asynq.SkipRetry)
	}

	names := q.PageNames(ctx, payload.PageIDs)
	slog.Info("scheduled post confirmed",
		"session_id", payload.SessionID,
		"scheduled_at", payload.ScheduledAt,
		"page_count", len(names),
		"pages", names)

	return nil
}

func (q *Queue) PageNames(ctx context.Context, pageIDs []string) []string {
	names := make([]string, 0, len(pageIDs))
	for _, id := range pageIDs {
		page, ok := q.pr.GetByID(ctx, id)
		if !ok {
			slog.Info("scheduled post references unknown page", "page_id", id)
			continue
		}
		names = append(names, page.DisplayName)
	}
	return names
}
