package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/rounal/internal/systemd"
)

// Snapshot represents the latest service catalog available to the UI.
type Snapshot struct {
	Catalog             systemd.Catalog
	HasCatalog          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int    // Number of consecutive refresh failures
	Version             uint64 // Increments on every successful update
}

// IsDegraded returns true when refreshes have failed several times in a row.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored catalog. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(catalog *systemd.Catalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if catalog != nil {
		s.snapshot.Catalog = cloneCatalog(*catalog)
		s.snapshot.HasCatalog = true
	} else {
		s.snapshot.Catalog = systemd.Catalog{}
		s.snapshot.HasCatalog = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Version++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Catalog = cloneCatalog(s.snapshot.Catalog)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneCatalog(c systemd.Catalog) systemd.Catalog {
	var dup systemd.Catalog
	if len(c.Units) > 0 {
		dup.Units = make([]systemd.ServiceUnit, len(c.Units))
		copy(dup.Units, c.Units)
	}
	if len(c.UnitFiles) > 0 {
		dup.UnitFiles = make([]systemd.ServiceUnitFile, len(c.UnitFiles))
		copy(dup.UnitFiles, c.UnitFiles)
	}
	return dup
}
