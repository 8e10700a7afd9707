package simulator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/storage"
	"github.com/whisperrid/backend/internal/utils"
)

// Defaults for the dashboard's live feed
const (
	DefaultInterval          = 1500 * time.Millisecond
	DefaultHighlightDuration = 800 * time.Millisecond
	DefaultMaxDelta          = 5
)

// ErrAlreadyRunning is returned by Start on a running simulator
var ErrAlreadyRunning = errors.New("live update simulator already running")

// RandomSource is the subset of *rand.Rand the simulator draws from
type RandomSource interface {
	Intn(n int) int
}

// Config controls tick timing and perturbation size
type Config struct {
	Interval          time.Duration
	HighlightDuration time.Duration
	MaxDelta          int
}

// DefaultConfig returns the dashboard's timing: a tick every 1.5s, highlight cleared
// after 0.8s, deltas in [-5, 5]
func DefaultConfig() Config {
	return Config{
		Interval:          DefaultInterval,
		HighlightDuration: DefaultHighlightDuration,
		MaxDelta:          DefaultMaxDelta,
	}
}

// Change describes one applied risk score perturbation
type Change struct {
	CaseID   string    `json:"caseId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
	Delta    int       `json:"delta"`
	At       time.Time `json:"at"`
}

// ChangeListener is called after each mutation while the simulator lock is held.
// Listeners must not call back into the simulator.
type ChangeListener func(Change)

// LiveUpdateSimulator perturbs the risk score of one active case per tick to make the
// dashboard look like a live operations feed
type LiveUpdateSimulator struct {
	store *storage.CaseStore
	audit *utils.AuditLogger
	cfg   Config

	// mu serializes ticks with Start/Stop
	mu        sync.Mutex
	rng       RandomSource
	scheduler *gocron.Scheduler
	running   bool
	listeners []ChangeListener

	signalMu    sync.RWMutex
	lastChanged string
	generation  uint64
	clearTimer  *time.Timer
}

// NewLiveUpdateSimulator creates a simulator over store. audit may be nil.
func NewLiveUpdateSimulator(store *storage.CaseStore, audit *utils.AuditLogger, cfg Config) *LiveUpdateSimulator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.HighlightDuration <= 0 {
		cfg.HighlightDuration = DefaultHighlightDuration
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = DefaultMaxDelta
	}

	return &LiveUpdateSimulator{
		store: store,
		audit: audit,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandomSource replaces the random source, mainly for tests
func (s *LiveUpdateSimulator) SetRandomSource(rng RandomSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
}

// OnChange registers a listener for applied changes
func (s *LiveUpdateSimulator) OnChange(listener ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Start schedules ticks at the configured interval. The first tick happens one
// interval after Start.
func (s *LiveUpdateSimulator) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()
	scheduler.WaitForScheduleAll()
	if _, err := scheduler.Every(s.cfg.Interval).Do(s.scheduledTick); err != nil {
		return fmt.Errorf("failed to schedule live updates: %w", err)
	}

	s.scheduler = scheduler
	s.running = true
	scheduler.StartAsync()

	log.Printf("Live update simulator started (interval %v, highlight %v)", s.cfg.Interval, s.cfg.HighlightDuration)
	return nil
}

// Stop cancels the schedule and clears the last-changed signal. No mutation happens
// after Stop returns. Calling Stop on a stopped simulator is a no-op.
func (s *LiveUpdateSimulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	scheduler := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	// outside the lock: a tick blocked on mu must be able to finish
	scheduler.Stop()
	s.resetSignal()

	log.Println("Live update simulator stopped")
}

// Running reports whether ticks are scheduled
func (s *LiveUpdateSimulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastChanged returns the id of the most recently perturbed case while its highlight
// is still active
func (s *LiveUpdateSimulator) LastChanged() (string, bool) {
	s.signalMu.RLock()
	defer s.signalMu.RUnlock()
	return s.lastChanged, s.lastChanged != ""
}

func (s *LiveUpdateSimulator) scheduledTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.tickLocked()
}

// Tick applies a single perturbation immediately. It reports false when no case is
// Pending or Review.
func (s *LiveUpdateSimulator) Tick() (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickLocked()
}

func (s *LiveUpdateSimulator) tickLocked() (Change, bool) {
	eligible := s.store.IDsWhere(func(c models.VerificationCase) bool {
		return c.Status.IsActive()
	})
	if len(eligible) == 0 {
		return Change{}, false
	}

	id := eligible[s.rng.Intn(len(eligible))]
	delta := s.rng.Intn(2*s.cfg.MaxDelta+1) - s.cfg.MaxDelta

	before, after, err := s.store.Update(id, func(c models.VerificationCase) models.VerificationCase {
		return c.WithRiskScore(c.RiskScore + delta)
	})
	if err != nil {
		log.Printf("Error applying live update to case %s: %v", id, err)
		return Change{}, false
	}

	change := Change{
		CaseID:   id,
		OldScore: before.RiskScore,
		NewScore: after.RiskScore,
		Delta:    delta,
		At:       time.Now(),
	}

	s.signal(id)
	if s.audit != nil {
		s.audit.LogRiskScoreChange(context.Background(), id, change.OldScore, change.NewScore, delta)
	}
	for _, listener := range s.listeners {
		listener(change)
	}

	return change, true
}

// signal marks id as last changed and schedules its clearing. A newer signal
// supersedes the pending clear of an older one.
func (s *LiveUpdateSimulator) signal(id string) {
	s.signalMu.Lock()
	defer s.signalMu.Unlock()

	s.lastChanged = id
	s.generation++
	generation := s.generation

	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearTimer = time.AfterFunc(s.cfg.HighlightDuration, func() {
		s.clearSignal(generation)
	})
}

func (s *LiveUpdateSimulator) clearSignal(generation uint64) {
	s.signalMu.Lock()
	defer s.signalMu.Unlock()

	if s.generation == generation {
		s.lastChanged = ""
	}
}

func (s *LiveUpdateSimulator) resetSignal() {
	s.signalMu.Lock()
	defer s.signalMu.Unlock()

	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
	s.generation++
	s.lastChanged = ""
}
