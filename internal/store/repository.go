package store

import (
	"context"
	"time"

	"finds/internal/domain"
)

// CacheEntry is one persisted catalog snapshot, keyed by owner/repo.
type CacheEntry struct {
	FetchedAt time.Time        `json:"fetchedAt"`
	Items     []domain.Product `json:"items"`
}

// Fresh reports whether the entry is still inside the freshness window.
func (e CacheEntry) Fresh(window time.Duration) bool {
	if e.FetchedAt.IsZero() {
		return false
	}
	return time.Since(e.FetchedAt) < window
}

// Repository persists catalog snapshots and the write credential, both
// scoped by owner/repo. Implementations must report missing keys as
// (nil, nil) / ("", nil), not as errors, so callers can treat "no cache"
// and "read failed" the same way.
type Repository interface {
	// ReadCache returns the cached snapshot, or nil when none exists.
	ReadCache(ctx context.Context, owner, repo string) (*CacheEntry, error)

	// WriteCache replaces the cached snapshot.
	WriteCache(ctx context.Context, owner, repo string, entry CacheEntry) error

	// SaveToken stores the write-capable API token.
	SaveToken(ctx context.Context, owner, repo, token string) error

	// Token returns the stored token, or "" when none was saved.
	Token(ctx context.Context, owner, repo string) (string, error)

	// Close gracefully shuts down the repository.
	Close() error
}
