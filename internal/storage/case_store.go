package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/whisperrid/backend/internal/models"
)

// ErrCaseNotFound is returned when no case carries the requested id
var ErrCaseNotFound = errors.New("case not found")

// CaseStore holds the canonical, ordered collection of verification cases in memory.
// The live update simulator is the only writer after seeding; everyone else reads
// snapshots.
type CaseStore struct {
	mu    sync.RWMutex
	cases []models.VerificationCase
	index map[string]int
}

// NewCaseStore creates a store seeded with the given cases, keeping their order.
// Duplicate ids are rejected.
func NewCaseStore(seed []models.VerificationCase) (*CaseStore, error) {
	s := &CaseStore{
		cases: make([]models.VerificationCase, 0, len(seed)),
		index: make(map[string]int, len(seed)),
	}

	for _, c := range seed {
		if c.ID == "" {
			return nil, errors.New("case id is required")
		}
		if _, exists := s.index[c.ID]; exists {
			return nil, fmt.Errorf("duplicate case id %s", c.ID)
		}
		c.RiskScore = models.ClampRiskScore(c.RiskScore)
		s.index[c.ID] = len(s.cases)
		s.cases = append(s.cases, c)
	}

	return s, nil
}

// Snapshot returns a copy of every case in insertion order
func (s *CaseStore) Snapshot() []models.VerificationCase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VerificationCase, len(s.cases))
	copy(out, s.cases)
	return out
}

// Get returns a copy of the case with the given id
func (s *CaseStore) Get(id string) (models.VerificationCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.index[id]
	if !exists {
		return models.VerificationCase{}, fmt.Errorf("get case %s: %w", id, ErrCaseNotFound)
	}
	return s.cases[i], nil
}

// Len returns the number of cases held
func (s *CaseStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases)
}

// Replace swaps the stored record sharing c.ID for c. Ids are immutable, so the
// record must already exist.
func (s *CaseStore) Replace(c models.VerificationCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[c.ID]
	if !exists {
		return fmt.Errorf("replace case %s: %w", c.ID, ErrCaseNotFound)
	}
	c.RiskScore = models.ClampRiskScore(c.RiskScore)
	s.cases[i] = c
	return nil
}

// Update applies fn to the current record under the write lock and stores the
// returned value. fn receives a copy; the id it returns must not change.
func (s *CaseStore) Update(id string, fn func(models.VerificationCase) models.VerificationCase) (before, after models.VerificationCase, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[id]
	if !exists {
		return before, after, fmt.Errorf("update case %s: %w", id, ErrCaseNotFound)
	}

	before = s.cases[i]
	after = fn(before)
	if after.ID != before.ID {
		return before, before, fmt.Errorf("update case %s: id is immutable", id)
	}
	after.RiskScore = models.ClampRiskScore(after.RiskScore)
	s.cases[i] = after
	return before, after, nil
}

// IDsWhere returns, in order, the ids of cases matching pred
func (s *CaseStore) IDsWhere(pred func(models.VerificationCase) bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, c := range s.cases {
		if pred(c) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
