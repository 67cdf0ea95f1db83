package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Store holds the current offering set and hands out immutable snapshots.
//
// Readers never see a live reference: Snapshot copies the current generation,
// so a Replace racing with a read can never mix offerings from two
// generations within one snapshot.
type Store struct {
	mu        sync.RWMutex
	offerings []Offering
}

// NewStore creates a store populated with the given offerings.
// Duplicate (provider, name) pairs are rejected.
func NewStore(offerings []Offering) (*Store, error) {
	s := &Store{}
	if err := s.Replace(offerings); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace swaps the entire offering set atomically.
func (s *Store) Replace(offerings []Offering) error {
	seen := make(map[string]bool, len(offerings))
	for _, o := range offerings {
		key := o.Key()
		if seen[key] {
			return fmt.Errorf("duplicate offering %s", key)
		}
		seen[key] = true
	}

	next := make([]Offering, len(offerings))
	copy(next, offerings)
	sort.Slice(next, func(i, j int) bool { return next[i].Key() < next[j].Key() })

	s.mu.Lock()
	s.offerings = next
	s.mu.Unlock()
	return nil
}

// Snapshot returns a point-in-time copy of the catalog.
func (s *Store) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offerings := make([]Offering, len(s.offerings))
	copy(offerings, s.offerings)
	return Snapshot{offerings: offerings}, nil
}

// Snapshot is an immutable view of the catalog at a single point in time.
type Snapshot struct {
	offerings []Offering
}

// NewSnapshot builds a snapshot directly from offerings. Used by tests and by
// callers that bypass the store.
func NewSnapshot(offerings []Offering) Snapshot {
	copied := make([]Offering, len(offerings))
	copy(copied, offerings)
	return Snapshot{offerings: copied}
}

// Offerings returns the snapshot contents. Callers must not mutate.
func (s Snapshot) Offerings() []Offering {
	return s.offerings
}

// Len returns the number of offerings in the snapshot.
func (s Snapshot) Len() int {
	return len(s.offerings)
}

// FindModel resolves a free-form model identifier against the snapshot.
// Exact case-insensitive name matches win over substring matches; among
// substring matches the first in catalog order is returned.
func (s Snapshot) FindModel(query string) (Offering, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Offering{}, false
	}

	for _, o := range s.offerings {
		if strings.ToLower(o.Name) == q {
			return o, true
		}
	}
	for _, o := range s.offerings {
		if strings.Contains(strings.ToLower(o.Name), q) {
			return o, true
		}
	}
	return Offering{}, false
}

// Providers returns the distinct provider names in catalog order.
func (s Snapshot) Providers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, o := range s.offerings {
		if !seen[o.Provider] {
			seen[o.Provider] = true
			names = append(names, o.Provider)
		}
	}
	sort.Strings(names)
	return names
}

// Stats summarizes the snapshot for the status endpoints.
type Stats struct {
	TotalModels int      `json:"total_models"`
	Providers   []string `json:"providers"`
}

// Stats returns summary statistics for the snapshot.
func (s Snapshot) Stats() Stats {
	providers := s.Providers()
	if providers == nil {
		providers = []string{}
	}
	return Stats{
		TotalModels: len(s.offerings),
		Providers:   providers,
	}
}
