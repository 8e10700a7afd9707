package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SimulatorStatus reports whether live updates are running
type SimulatorStatus interface {
	Running() bool
}

// HealthHandler serves the liveness probe
type HealthHandler struct {
	simulator SimulatorStatus
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(simulator SimulatorStatus) *HealthHandler {
	return &HealthHandler{simulator: simulator, startedAt: time.Now()}
}

// Health reports service status
func (h *HealthHandler) Health(c *gin.Context) {
	liveUpdates := false
	if h.simulator != nil {
		liveUpdates = h.simulator.Running()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"liveUpdates": liveUpdates,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
	})
}
