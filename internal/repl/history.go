package repl

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded command line and its result.
type Entry struct {
	ID        uuid.UUID
	Command   string
	Timestamp int64 // epoch milliseconds
	Result    Result
}

// Time returns the entry timestamp.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Store is an append-only history. Entries are never mutated or removed.
type Store interface {
	// Append records e. The result becomes visible through Result before
	// the entry is visible through Entries.
	Append(e Entry) error
	// Entries returns a copy of the history in insertion order.
	Entries() []Entry
	// Result looks up the result recorded for id.
	Result(id uuid.UUID) (Result, bool)
	// Len is the number of entries.
	Len() int
	Close() error
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	results map[uuid.UUID]Result
}

// NewMemoryStore creates an empty history.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[uuid.UUID]Result)}
}

func (s *MemoryStore) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[e.ID]; exists {
		return ErrDuplicateEntry
	}
	s.results[e.ID] = e.Result
	s.entries = append(s.entries, e)
	return nil
}

func (s *MemoryStore) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *MemoryStore) Result(id uuid.UUID) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	return r, ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error { return nil }
