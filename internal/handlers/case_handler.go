package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/services/risk"
	"github.com/whisperrid/backend/internal/services/verification"
	"github.com/whisperrid/backend/internal/storage"
	"github.com/whisperrid/backend/internal/utils"
)

// CaseHandler serves the case review screen
type CaseHandler struct {
	verificationService *verification.VerificationService
	assessmentService   *risk.AssessmentService
	auditLogger         *utils.AuditLogger
	activityLimit       int
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(verificationService *verification.VerificationService, assessmentService *risk.AssessmentService, auditLogger *utils.AuditLogger, activityLimit int) *CaseHandler {
	return &CaseHandler{
		verificationService: verificationService,
		assessmentService:   assessmentService,
		auditLogger:         auditLogger,
		activityLimit:       activityLimit,
	}
}

// GetCase returns the full case record
func (h *CaseHandler) GetCase(c *gin.Context) {
	caseData, ok := h.lookupCase(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"case":      models.NewCaseView(caseData),
		"analyzing": h.assessmentService.Analyzing(caseData.ID),
	})
}

// GetCaseActivity returns the case's activity feed, newest first
func (h *CaseHandler) GetCaseActivity(c *gin.Context) {
	caseData, ok := h.lookupCase(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"caseId":   caseData.ID,
		"activity": h.auditLogger.GetCaseAuditLogs(caseData.ID, h.activityLimit),
	})
}

// AssessCase runs the AI risk assessment on the case as it is right now
func (h *CaseHandler) AssessCase(c *gin.Context) {
	caseData, ok := h.lookupCase(c)
	if !ok {
		return
	}

	report, err := h.assessmentService.Assess(c.Request.Context(), caseData)
	if err != nil {
		if errors.Is(err, risk.ErrAssessmentInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "An assessment for this case is already running."})
			return
		}
		log.Printf("Unexpected assessment error for case %s: %v", caseData.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assess case"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"caseId":    caseData.ID,
		"riskScore": caseData.RiskScore,
		"report":    report,
	})
}

func (h *CaseHandler) lookupCase(c *gin.Context) (models.VerificationCase, bool) {
	caseData, err := h.verificationService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found.", "back": "/dashboard"})
			return models.VerificationCase{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load case"})
		return models.VerificationCase{}, false
	}
	return caseData, true
}
