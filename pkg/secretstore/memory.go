package secretstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpvault/pkg/totp"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps entries in process memory. It is used for temporary
// sessions and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry              // insertion order
	secrets map[string]uuid.UUID // secret -> entry id
	now     func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		secrets: make(map[string]uuid.UUID),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, userID int64, rec totp.Record) (Entry, error) {
	if rec.IsZero() {
		return Entry{}, totp.ErrInvalidSecret
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.secrets[rec.Secret()]; ok {
		return Entry{}, totp.ErrDuplicateSecret
	}

	now := s.now().UTC()
	e := Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Record:    rec,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.entries = append(s.entries, e)
	s.secrets[rec.Secret()] = e.ID

	return e, nil
}

func (s *MemoryStore) Get(_ context.Context, userID int64, id uuid.UUID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.UserID == userID && e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, userID int64, page Page) (PageResult, error) {
	s.mu.RLock()
	owned := s.newestFirst(userID)
	s.mu.RUnlock()

	number, size, offset, pages := page.resolve(len(owned))
	end := min(offset+size, len(owned))
	items := owned[offset:end]

	return newPageResult(items, number, size, len(owned), pages), nil
}

func (s *MemoryStore) Search(_ context.Context, userID int64, query string) ([]Entry, error) {
	s.mu.RLock()
	owned := s.newestFirst(userID)
	s.mu.RUnlock()

	var out []Entry
	for _, e := range owned {
		if matches(e.Record, query) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) Export(_ context.Context, userID int64, ids ...uuid.UUID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		if len(ids) > 0 && !slices.Contains(ids, e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64, id uuid.UUID) (int, error) {
	return s.deleteWhere(func(e Entry) bool {
		return e.UserID == userID && e.ID == id
	}), nil
}

func (s *MemoryStore) DeleteAll(_ context.Context, userID int64) (int, error) {
	return s.deleteWhere(func(e Entry) bool {
		return e.UserID == userID
	}), nil
}

func (s *MemoryStore) deleteWhere(match func(Entry) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if match(e) {
			delete(s.secrets, e.Record.Secret())
			removed++
			continue
		}
		kept = append(kept, e)
	}
	clear(s.entries[len(kept):])
	s.entries = kept
	return removed
}

// newestFirst must be called with the lock held.
func (s *MemoryStore) newestFirst(userID int64) []Entry {
	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID {
			out = append(out, s.entries[i])
		}
	}
	return out
}
