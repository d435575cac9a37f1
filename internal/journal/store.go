package journal

import (
	"slices"
	"sync"

	"github.com/five82/rounal/internal/search"
)

// Store holds the entries of one aggregation run, keyed by severity. A key
// exists only for severities whose fetch succeeded.
type Store struct {
	mu      sync.RWMutex
	entries map[int][]LogEntry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[int][]LogEntry)}
}

// Put records the entries for severity, replacing any previous slice.
func (s *Store) Put(severity int, entries []LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[int][]LogEntry)
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	s.entries[severity] = entries
}

// Has reports whether severity was fetched.
func (s *Store) Has(severity int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[severity]
	return ok
}

// Len returns the number of entries at severity.
func (s *Store) Len(severity int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[severity])
}

// Entries returns a copy of the entries at severity in [start, end),
// clipped to what is stored.
func (s *Store) Entries(severity, start, end int) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.entries[severity]
	start, end = max(start, 0), min(end, len(list))
	if start >= end {
		return nil
	}
	return slices.Clone(list[start:end])
}

// Entry returns the i-th entry at severity.
func (s *Store) Entry(severity, i int) (LogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.entries[severity]
	if i < 0 || i >= len(list) {
		return LogEntry{}, false
	}
	return list[i], true
}

// Severities returns the fetched severities in ascending order.
func (s *Store) Severities() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]int, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Total returns the number of entries across all severities.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, list := range s.entries {
		n += len(list)
	}
	return n
}

// Reorder moves entries at severity whose timestamp or service contains
// query to the front, keeping relative order in both groups.
func (s *Store) Reorder(severity int, query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return search.Reorder(s.entries[severity], query, SearchKey)
}

// Count returns how many entries at severity match query.
func (s *Store) Count(severity int, query string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search.Count(s.entries[severity], query, SearchKey)
}

// SearchKey is the text a log entry is matched against.
func SearchKey(e LogEntry) string {
	return e.Timestamp + " " + e.Service
}
