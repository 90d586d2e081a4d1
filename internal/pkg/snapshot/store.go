// Package snapshot holds the latest roster upload in memory so the
// presence endpoints can answer reads without the client re-sending the
// full schedule on every request.
package snapshot

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/medroster/roster-backend-go/internal/domain/roster"
)

type Store struct {
	mu        sync.RWMutex
	payload   roster.SnapshotPayload
	version   string
	updatedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored snapshot and returns the new version id.
func (s *Store) Set(payload roster.SnapshotPayload) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = payload
	s.version = uuid.Must(uuid.NewV7()).String()
	s.updatedAt = time.Now()
	return s.version
}

// Get returns the stored snapshot and its version. ok is false until the
// first Set.
func (s *Store) Get() (roster.SnapshotPayload, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.version == "" {
		return roster.SnapshotPayload{}, "", false
	}
	return s.payload, s.version, true
}

// Age reports how long ago the snapshot was last replaced. ok is false
// when no snapshot has been stored yet.
func (s *Store) Age() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.version == "" {
		return 0, false
	}
	return time.Since(s.updatedAt), true
}
