package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/services/verification"
)

// VerificationHandler serves the verifications list
type VerificationHandler struct {
	verificationService *verification.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *verification.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// ListVerifications returns one page of cases filtered by search term and status
func (h *VerificationHandler) ListVerifications(c *gin.Context) {
	query, err := parseListQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := h.verificationService.List(query)

	c.JSON(http.StatusOK, gin.H{
		"items":           models.NewCaseViews(page.Items),
		"total":           page.Total,
		"page":            page.Page,
		"pageSize":        page.PageSize,
		"pageSizeOptions": page.PageSizeOptions,
		"search":          query.Search,
		"status":          query.Status,
	})
}

// ListStatuses returns the status filter options
func (h *VerificationHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statuses": verification.StatusFilterOptions()})
}

func parseListQuery(c *gin.Context) (verification.ListQuery, error) {
	query := verification.ListQuery{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		PageSize: verification.DefaultPageSize,
	}
	if query.Status == "" {
		query.Status = models.StatusFilterAll
	}

	if query.Status != models.StatusFilterAll {
		if _, err := models.ParseVerificationStatus(query.Status); err != nil {
			return query, err
		}
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return query, fmt.Errorf("invalid page %q", raw)
		}
		query.Page = page
	}

	if raw := c.Query("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || !verification.IsValidPageSize(size) {
			return query, fmt.Errorf("unsupported page size %q, expected one of %v", raw, verification.PageSizeOptions)
		}
		query.PageSize = size
	}

	return query, nil
}
