package blob

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("blob not found")

// Blob is an uploaded file's bytes plus its declared media type.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
	StoredAt    time.Time
}

// Store keeps uploaded file bytes in process memory, keyed by an opaque
// reference. References are page-lifetime-scoped: they do not survive a
// restart and old entries are swept by the janitor.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]*Blob
	ttl   time.Duration
}

// NewStore creates a blob store whose entries are eligible for sweeping
// after ttl. A zero ttl disables sweeping.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		blobs: make(map[string]*Blob),
		ttl:   ttl,
	}
}

// Put stores the bytes and returns the new reference.
func (s *Store) Put(name, contentType string, data []byte) string {
	ref := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[ref] = &Blob{
		Name:        name,
		ContentType: contentType,
		Data:        data,
		StoredAt:    time.Now(),
	}
	return ref
}

// Get returns the blob for a reference.
func (s *Store) Get(ref string) (*Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[ref]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// Delete discards a blob. Deleting an unknown reference is a no-op.
func (s *Store) Delete(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, ref)
}

// Len reports the number of stored blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Sweep removes blobs older than the store TTL and returns how many were
// dropped. Wired to a cron schedule at startup.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for ref, b := range s.blobs {
		if b.StoredAt.Before(cutoff) {
			delete(s.blobs, ref)
			removed++
		}
	}
	return removed
}
