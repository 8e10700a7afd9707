package risk

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/utils"
)

// Fallback replies shown instead of model output
const (
	AssessmentUnavailable = "AI Risk Assessment service is currently unavailable. Please review manually."
	AssessmentEmpty       = "Unable to generate assessment at this time."
	ChatUnavailable       = "I'm having trouble connecting right now."
	ChatEmpty             = "I didn't catch that."
)

// DefaultTimeout bounds each model call
const DefaultTimeout = 20 * time.Second

// SDK errors can embed whole response bodies
const maxLoggedErrorLen = 300

// ErrAssessmentInProgress is returned when an assessment for the same case is still running
var ErrAssessmentInProgress = errors.New("risk assessment already in progress for this case")

// AssessmentService produces advisory risk narratives and assistant replies.
// Model failures never surface as errors; they are logged and replaced by a fallback reply.
type AssessmentService struct {
	generator Generator
	audit     *utils.AuditLogger
	timeout   time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewAssessmentService creates a new assessment service. A nil generator means no
// credential is configured and every call falls back. audit may be nil.
func NewAssessmentService(generator Generator, audit *utils.AuditLogger, timeout time.Duration) *AssessmentService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AssessmentService{
		generator: generator,
		audit:     audit,
		timeout:   timeout,
		inFlight:  make(map[string]struct{}),
	}
}

// Assess generates a risk assessment report for a case snapshot. The only error it
// returns is ErrAssessmentInProgress.
func (s *AssessmentService) Assess(ctx context.Context, c models.VerificationCase) (string, error) {
	if !s.acquire(c.ID) {
		return "", ErrAssessmentInProgress
	}
	defer s.release(c.ID)

	text, err := s.generate(ctx, AssessmentPrompt(c), GenerateOptions{Fast: true})
	if err != nil {
		log.Printf("AI risk assessment failed for case %s: %s", c.ID, utils.TruncateString(err.Error(), maxLoggedErrorLen))
		s.logAssessment(ctx, c, true)
		return AssessmentUnavailable, nil
	}

	s.logAssessment(ctx, c, false)
	if strings.TrimSpace(text) == "" {
		return AssessmentEmpty, nil
	}
	return text, nil
}

// Analyzing reports whether an assessment for caseID is in flight
func (s *AssessmentService) Analyzing(caseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[caseID]
	return ok
}

// Chat answers a free-form assistant message. It never fails.
func (s *AssessmentService) Chat(ctx context.Context, message, userContext string) string {
	text, err := s.generate(ctx, ChatPrompt(message, userContext), GenerateOptions{})
	if err != nil {
		log.Printf("AI assistant chat failed: %s", utils.TruncateString(err.Error(), maxLoggedErrorLen))
		return ChatUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return ChatEmpty
	}
	return text
}

func (s *AssessmentService) generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if s.generator == nil {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: errors.New("generator panicked")}
			}
		}()
		text, err := s.generator.Generate(ctx, prompt, opts)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *AssessmentService) acquire(caseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[caseID]; busy {
		return false
	}
	s.inFlight[caseID] = struct{}{}
	return true
}

func (s *AssessmentService) release(caseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, caseID)
}

func (s *AssessmentService) logAssessment(ctx context.Context, c models.VerificationCase, fallback bool) {
	if s.audit == nil {
		return
	}
	s.audit.LogAssessment(ctx, c.ID, c.RiskScore, fallback)
}
