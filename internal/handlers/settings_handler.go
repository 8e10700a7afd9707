package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/services/settings"
)

// SettingsHandler serves the organization profile
type SettingsHandler struct {
	settingsService *settings.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetOrganization returns the organization profile
func (h *SettingsHandler) GetOrganization(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.Organization())
}

// UpdateOrganization saves the organization profile
func (h *SettingsHandler) UpdateOrganization(c *gin.Context) {
	var req models.OrganizationUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	org, err := h.settingsService.UpdateOrganization(req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidOrganization) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
		return
	}

	c.JSON(http.StatusOK, org)
}
