package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bkmarketing/post-composer/internal/models"
)

var ErrEmptySession = errors.New("session id is empty")

type DraftRepository interface {
	// Get returns a copy of the session's draft, or an empty draft if none exists.
	Get(ctx context.Context, sessionID string) (*models.Draft, error)
	// Update applies fn to the stored draft under the store lock. The draft is
	// only replaced when fn returns nil.
	Update(ctx context.Context, sessionID string, fn func(d *models.Draft) error) (*models.Draft, error)
	Remove(ctx context.Context, sessionID string) error
	RemoveIdleSince(ctx context.Context, cutoff time.Time) int
	Count(ctx context.Context) int
}

type draftRepository struct {
	mu     sync.Mutex
	drafts map[string]*models.Draft
}

func NewDraftRepository() DraftRepository {
	return &draftRepository{drafts: make(map[string]*models.Draft)}
}

func (r *draftRepository) Get(ctx context.Context, sessionID string) (*models.Draft, error) {
	if sessionID == "" {
		slog.Info(ErrEmptySession.Error())
		return nil, ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[sessionID]
	if !ok {
		return models.NewDraft(), nil
	}
	return d.Clone(), nil
}

func (r *draftRepository) Update(ctx context.Context, sessionID string, fn func(d *models.Draft) error) (*models.Draft, error) {
	if sessionID == "" {
		slog.Info(ErrEmptySession.Error())
		return nil, ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	working := models.NewDraft()
	if d, ok := r.drafts[sessionID]; ok {
		working = d.Clone()
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	working.UpdatedAt = time.Now()
	r.drafts[sessionID] = working
	return working.Clone(), nil
}

func (r *draftRepository) Remove(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		slog.Info(ErrEmptySession.Error())
		return ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, sessionID)
	return nil
}

func (r *draftRepository) RemoveIdleSince(ctx context.Context, cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, d := range r.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(r.drafts, id)
			removed++
		}
	}
	return removed
}

func (r *draftRepository) Count(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}
