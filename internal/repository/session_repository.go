package repository

import (
	"context"
	"sync"
	"time"
)

// SessionRepository remembers logged-out sessions until their token would
// have expired anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, sessionID string, expiresAt time.Time)
	IsRevoked(ctx context.Context, sessionID string) bool
	RemoveExpired(ctx context.Context, now time.Time) int
}

type sessionRepository struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{revoked: make(map[string]time.Time)}
}

func (r *sessionRepository) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[sessionID] = expiresAt
}

func (r *sessionRepository) IsRevoked(ctx context.Context, sessionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[sessionID]
	return ok
}

func (r *sessionRepository) RemoveExpired(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, expiresAt := range r.revoked {
		if !expiresAt.After(now) {
			delete(r.revoked, id)
			removed++
		}
	}
	return removed
}
