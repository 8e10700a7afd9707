package settings

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"github.com/whisperrid/backend/internal/models"
)

// ErrInvalidOrganization is returned when an update fails validation
var ErrInvalidOrganization = errors.New("invalid organization")

// Seeded organization profile
const (
	DefaultOrganizationID    = "org_123abc456def"
	DefaultOrganizationName  = "Acme Corp"
	DefaultOrganizationEmail = "admin@acmecorp.com"
)

// SettingsService holds the organization profile
type SettingsService struct {
	mu  sync.RWMutex
	org models.Organization
	now func() time.Time
}

// NewSettingsService creates a new settings service with the seeded profile
func NewSettingsService() *SettingsService {
	s := &SettingsService{now: time.Now}
	s.org = models.Organization{
		ID:        DefaultOrganizationID,
		Name:      DefaultOrganizationName,
		Slug:      slug.Make(DefaultOrganizationName),
		Email:     DefaultOrganizationEmail,
		UpdatedAt: s.now(),
	}
	return s
}

// Organization returns the current profile
func (s *SettingsService) Organization() models.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.org
}

// UpdateOrganization validates and applies an update. The organization id is read-only
// and any id in the update is ignored.
func (s *SettingsService) UpdateOrganization(update models.OrganizationUpdate) (models.Organization, error) {
	name := strings.TrimSpace(update.Name)
	email := strings.TrimSpace(update.Email)

	if name == "" {
		return models.Organization{}, fmt.Errorf("%w: name is required", ErrInvalidOrganization)
	}
	if !strings.Contains(email, "@") {
		return models.Organization{}, fmt.Errorf("%w: email address is invalid", ErrInvalidOrganization)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.org = models.Organization{
		ID:        s.org.ID,
		Name:      name,
		Slug:      slug.Make(name),
		Email:     email,
		Address:   strings.TrimSpace(update.Address),
		UpdatedAt: s.now(),
	}
	return s.org, nil
}
