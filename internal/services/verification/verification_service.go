package verification

import (
	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/storage"
)

// VerificationService serves read-only views of the case store
type VerificationService struct {
	store *storage.CaseStore
}

// NewVerificationService creates a new verification service
func NewVerificationService(store *storage.CaseStore) *VerificationService {
	return &VerificationService{store: store}
}

// List returns one page of cases matching q, taken from a consistent snapshot
func (s *VerificationService) List(q ListQuery) Page {
	return Query(s.store.Snapshot(), q)
}

// Get returns a single case by id
func (s *VerificationService) Get(id string) (models.VerificationCase, error) {
	return s.store.Get(id)
}

// Recent returns the first limit cases in store order
func (s *VerificationService) Recent(limit int) []models.VerificationCase {
	snapshot := s.store.Snapshot()
	if limit >= 0 && limit < len(snapshot) {
		snapshot = snapshot[:limit]
	}
	return snapshot
}

// StatusFilterOptions lists the values accepted by the list's status filter
func StatusFilterOptions() []string {
	options := []string{models.StatusFilterAll}
	for _, status := range models.VerificationStatuses {
		options = append(options, string(status))
	}
	return options
}
