package dashboard

import (
	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/storage"
)

// DefaultRecentLimit is the number of cases shown in the recent verifications table
const DefaultRecentLimit = 4

// RegionalAlert is the seeded warning banner
const RegionalAlert = "Unusual spike in rejected applications from Region NA-East detected."

// LiveSignal exposes the id of the case most recently touched by the live feed
type LiveSignal interface {
	LastChanged() (string, bool)
	Running() bool
}

// DashboardService assembles the dashboard overview. Stats and chart data are seeded
// on their own and are not recomputed from the case store.
type DashboardService struct {
	store       *storage.CaseStore
	live        LiveSignal
	stats       models.DashboardStats
	chart       []models.StatusBucket
	alert       string
	recentLimit int
}

// NewDashboardService creates a new dashboard service. live may be nil.
func NewDashboardService(store *storage.CaseStore, live LiveSignal, recentLimit int) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &DashboardService{
		store:       store,
		live:        live,
		stats:       SeedStats(),
		chart:       SeedChart(),
		alert:       RegionalAlert,
		recentLimit: recentLimit,
	}
}

// SeedStats returns the headline numbers shown on the dashboard cards
func SeedStats() models.DashboardStats {
	return models.DashboardStats{
		TodayVerifications: 1234,
		AvgDecisionTime:    "2m 30s",
		ApprovalRate:       92.8,
		PendingReview:      42,
	}
}

// SeedChart returns the verification status breakdown
func SeedChart() []models.StatusBucket {
	return []models.StatusBucket{
		{Name: string(models.VerificationStatusPending), Value: 86, Color: "#3b82f6"},
		{Name: string(models.VerificationStatusApproved), Value: 345, Color: "#10b981"},
		{Name: string(models.VerificationStatusRejected), Value: 16, Color: "#ef4444"},
		{Name: string(models.VerificationStatusReview), Value: 42, Color: "#eab308"},
	}
}

// Overview returns the current dashboard payload
func (s *DashboardService) Overview() models.DashboardOverview {
	snapshot := s.store.Snapshot()
	if len(snapshot) > s.recentLimit {
		snapshot = snapshot[:s.recentLimit]
	}

	chart := make([]models.StatusBucket, len(s.chart))
	copy(chart, s.chart)

	overview := models.DashboardOverview{
		Stats:  s.stats,
		Chart:  chart,
		Alert:  s.alert,
		Recent: models.NewCaseViews(snapshot),
	}

	if s.live != nil {
		overview.LiveUpdates = s.live.Running()
		if id, ok := s.live.LastChanged(); ok {
			overview.LastChangedID = &id
		}
	}

	return overview
}
