package utils

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/whisperrid/backend/internal/models"
)

// AuditEventType represents the kind of case activity
type AuditEventType string

const (
	AuditEventRiskScoreChanged    AuditEventType = "RISK_SCORE_CHANGED"
	AuditEventAssessmentRequested AuditEventType = "ASSESSMENT_REQUESTED"
	AuditEventAssessmentFailed    AuditEventType = "ASSESSMENT_FAILED"
)

// AuditEventSeverity represents the severity level of an audit event
type AuditEventSeverity string

const (
	AuditSeverityInfo    AuditEventSeverity = "INFO"
	AuditSeverityWarning AuditEventSeverity = "WARNING"
)

// DefaultAuditLimit is the number of entries kept per case
const DefaultAuditLimit = 50

// AuditLog is one entry of a case's activity feed
type AuditLog struct {
	ID          uuid.UUID          `json:"id"`
	CaseID      string             `json:"caseId"`
	EventType   AuditEventType     `json:"eventType"`
	Severity    AuditEventSeverity `json:"severity"`
	Description string             `json:"description"`
	Details     models.JSON        `json:"details,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

// AuditLogger keeps a bounded, in-memory activity feed per case
type AuditLogger struct {
	mu      sync.RWMutex
	limit   int
	entries map[string][]AuditLog
	now     func() time.Time
}

// NewAuditLogger creates a new audit logger keeping at most limit entries per case
func NewAuditLogger(limit int) *AuditLogger {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	return &AuditLogger{
		limit:   limit,
		entries: make(map[string][]AuditLog),
		now:     time.Now,
	}
}

// LogEvent records an event against a case and returns the stored entry
func (a *AuditLogger) LogEvent(ctx context.Context, caseID string, eventType AuditEventType, severity AuditEventSeverity, description string, details models.JSON) AuditLog {
	entry := AuditLog{
		ID:          uuid.New(),
		CaseID:      caseID,
		EventType:   eventType,
		Severity:    severity,
		Description: description,
		Details:     details,
		Timestamp:   a.now(),
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	feed := append(a.entries[caseID], entry)
	if len(feed) > a.limit {
		feed = feed[len(feed)-a.limit:]
	}
	a.entries[caseID] = feed
	return entry
}

// LogRiskScoreChange records a live risk score update
func (a *AuditLogger) LogRiskScoreChange(ctx context.Context, caseID string, from, to, delta int) AuditLog {
	return a.LogEvent(ctx, caseID, AuditEventRiskScoreChanged, AuditSeverityInfo, "Risk score updated", models.JSON{
		"from":  from,
		"to":    to,
		"delta": delta,
	})
}

// LogAssessment records an AI risk assessment request and whether it fell back
func (a *AuditLogger) LogAssessment(ctx context.Context, caseID string, riskScore int, fallback bool) AuditLog {
	if fallback {
		return a.LogEvent(ctx, caseID, AuditEventAssessmentFailed, AuditSeverityWarning, "AI risk assessment unavailable", models.JSON{
			"risk_score": riskScore,
		})
	}
	return a.LogEvent(ctx, caseID, AuditEventAssessmentRequested, AuditSeverityInfo, "AI risk assessment generated", models.JSON{
		"risk_score": riskScore,
	})
}

// GetCaseAuditLogs returns up to limit entries for a case, newest first.
// A non-positive limit returns everything kept.
func (a *AuditLogger) GetCaseAuditLogs(caseID string, limit int) []AuditLog {
	a.mu.RLock()
	defer a.mu.RUnlock()

	feed := a.entries[caseID]
	if limit <= 0 || limit > len(feed) {
		limit = len(feed)
	}

	out := make([]AuditLog, 0, limit)
	for i := len(feed) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, feed[i])
	}
	return out
}
