package risk

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/utils"
)

// MockGenerator is a mock implementation of the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// blockingGenerator holds every call until release is closed
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *blockingGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "report", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func testCase() models.VerificationCase {
	return models.VerificationCase{
		ID:             "67890",
		User:           models.User{FirstName: "Olivia", LastName: "Bennett", Email: "olivia.b@example.com"},
		Status:         models.VerificationStatusPending,
		RiskScore:      45,
		Country:        "UK",
		DocumentType:   "Driver License",
		DocumentNumber: "D9876543",
	}
}

func TestAssessmentPromptEmbedsCase(t *testing.T) {
	prompt := AssessmentPrompt(testCase())

	assert.Contains(t, prompt, "Olivia Bennett (olivia.b@example.com)")
	assert.Contains(t, prompt, "Country: UK")
	assert.Contains(t, prompt, "Document: Driver License (D9876543)")
	assert.Contains(t, prompt, "Risk Score (0-100, 100 is safe): 45")
	assert.Contains(t, prompt, "Current Status: Pending")
	assert.Contains(t, prompt, "Approve, Reject, or Request More Info")
}

func TestAssessReturnsModelText(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, AssessmentPrompt(testCase()), GenerateOptions{Fast: true}).
		Return("**Recommendation:** Request More Info", nil).Once()
	audit := utils.NewAuditLogger(10)
	svc := NewAssessmentService(gen, audit, time.Second)

	text, err := svc.Assess(context.Background(), testCase())
	require.NoError(t, err)
	assert.Equal(t, "**Recommendation:** Request More Info", text)
	gen.AssertExpectations(t)

	logs := audit.GetCaseAuditLogs("67890", 0)
	require.Len(t, logs, 1)
	assert.Equal(t, utils.AuditEventAssessmentRequested, logs[0].EventType)
}

func TestAssessFallsBackOnError(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))
	audit := utils.NewAuditLogger(10)
	svc := NewAssessmentService(gen, audit, time.Second)

	text, err := svc.Assess(context.Background(), testCase())
	require.NoError(t, err)
	assert.Equal(t, AssessmentUnavailable, text)

	logs := audit.GetCaseAuditLogs("67890", 0)
	require.Len(t, logs, 1)
	assert.Equal(t, utils.AuditEventAssessmentFailed, logs[0].EventType)
}

func TestAssessEmptyText(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("  ", nil)
	svc := NewAssessmentService(gen, nil, time.Second)

	text, err := svc.Assess(context.Background(), testCase())
	require.NoError(t, err)
	assert.Equal(t, AssessmentEmpty, text)
}

func TestAssessWithoutGenerator(t *testing.T) {
	svc := NewAssessmentService(nil, nil, time.Second)

	text, err := svc.Assess(context.Background(), testCase())
	require.NoError(t, err)
	assert.Equal(t, AssessmentUnavailable, text)
	assert.Equal(t, ChatUnavailable, svc.Chat(context.Background(), "hi", "dashboard"))
}

func TestAssessTimesOut(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	defer close(gen.release)
	svc := NewAssessmentService(gen, nil, 30*time.Millisecond)

	start := time.Now()
	text, err := svc.Assess(context.Background(), testCase())
	require.NoError(t, err)
	assert.Equal(t, AssessmentUnavailable, text)
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, svc.Analyzing("67890"))
}

func TestAssessRejectsConcurrentRequestForSameCase(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewAssessmentService(gen, nil, 5*time.Second)

	done := make(chan string, 1)
	go func() {
		text, _ := svc.Assess(context.Background(), testCase())
		done <- text
	}()
	<-gen.started
	assert.True(t, svc.Analyzing("67890"))

	_, err := svc.Assess(context.Background(), testCase())
	assert.ErrorIs(t, err, ErrAssessmentInProgress)

	close(gen.release)
	assert.Equal(t, "report", <-done)
	assert.False(t, svc.Analyzing("67890"))
}

func TestAssessRepeatsRemoteCall(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)
	svc := NewAssessmentService(gen, nil, time.Second)

	for i := 0; i < 3; i++ {
		_, err := svc.Assess(context.Background(), testCase())
		require.NoError(t, err)
	}
	gen.AssertNumberOfCalls(t, "Generate", 3)
}

func TestChat(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `"WhisperrBot"`) &&
			strings.Contains(p, "User Context: reviewing case 12345") &&
			strings.Contains(p, "User Message: what is a PEP?")
	}), GenerateOptions{}).Return("A politically exposed person.", nil).Once()
	svc := NewAssessmentService(gen, nil, time.Second)

	assert.Equal(t, "A politically exposed person.", svc.Chat(context.Background(), "what is a PEP?", "reviewing case 12345"))
	gen.AssertExpectations(t)
}

func TestChatFallbacks(t *testing.T) {
	failing := new(MockGenerator)
	failing.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("network down"))
	assert.Equal(t, ChatUnavailable, NewAssessmentService(failing, nil, time.Second).Chat(context.Background(), "hi", ""))

	empty := new(MockGenerator)
	empty.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	assert.Equal(t, ChatEmpty, NewAssessmentService(empty, nil, time.Second).Chat(context.Background(), "hi", ""))
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
