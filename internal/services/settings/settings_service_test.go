package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisperrid/backend/internal/models"
)

func TestSeededOrganization(t *testing.T) {
	org := NewSettingsService().Organization()

	assert.Equal(t, "org_123abc456def", org.ID)
	assert.Equal(t, "Acme Corp", org.Name)
	assert.Equal(t, "acme-corp", org.Slug)
	assert.Equal(t, "admin@acmecorp.com", org.Email)
	assert.Empty(t, org.Address)
}

func TestUpdateOrganization(t *testing.T) {
	svc := NewSettingsService()
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	org, err := svc.UpdateOrganization(models.OrganizationUpdate{
		ID:      "org_hijack",
		Name:    "  Whisperr Labs Ltd ",
		Email:   "compliance@whisperr.io",
		Address: "1 Market St\nSan Francisco",
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultOrganizationID, org.ID)
	assert.Equal(t, "Whisperr Labs Ltd", org.Name)
	assert.Equal(t, "whisperr-labs-ltd", org.Slug)
	assert.Equal(t, "compliance@whisperr.io", org.Email)
	assert.Equal(t, fixed, org.UpdatedAt)
	assert.Equal(t, org, svc.Organization())
}

func TestUpdateOrganizationValidation(t *testing.T) {
	svc := NewSettingsService()
	before := svc.Organization()

	_, err := svc.UpdateOrganization(models.OrganizationUpdate{Name: " ", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrInvalidOrganization)

	_, err = svc.UpdateOrganization(models.OrganizationUpdate{Name: "Acme", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidOrganization)

	assert.Equal(t, before, svc.Organization())
}
