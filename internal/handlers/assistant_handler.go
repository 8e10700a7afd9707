package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/whisperrid/backend/internal/services/risk"
)

// ChatRequest is a message to the dashboard assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
}

// AssistantHandler serves the dashboard assistant
type AssistantHandler struct {
	assessmentService *risk.AssessmentService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assessmentService *risk.AssessmentService) *AssistantHandler {
	return &AssistantHandler{assessmentService: assessmentService}
}

// Chat answers one assistant message. Model failures come back as a fallback reply.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply := h.assessmentService.Chat(c.Request.Context(), req.Message, req.Context)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
