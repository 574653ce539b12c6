package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/bkmarketing/post-composer/internal/repository"
)

type DraftCleanupJob struct {
	dr  repository.DraftRepository
	sr  repository.SessionRepository
	ttl time.Duration
	now func() time.Time
}

func NewDraftCleanupJob(dr repository.DraftRepository, sr repository.SessionRepository, ttl time.Duration) *DraftCleanupJob {
	return &DraftCleanupJob{
		dr:  dr,
		sr:  sr,
		ttl: ttl,
		now: time.Now,
	}
}

// RemoveIdleDrafts drops drafts that have not been touched within the TTL,
// along with revoked sessions whose tokens have expired anyway.
func (j *DraftCleanupJob) RemoveIdleDrafts() {
	ctx := context.Background()

	now := j.now()
	if expired := j.sr.RemoveExpired(ctx, now); expired > 0 {
		slog.Info("removed expired revocations", "count", expired)
	}

	removed := j.dr.RemoveIdleSince(ctx, now.Add(-j.ttl))
	if removed > 0 {
		slog.Info("removed idle drafts", "count", removed, "remaining", j.dr.Count(ctx))
	}
}
