package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/storage"
)

type fakeSignal struct {
	id      string
	running bool
}

func (f fakeSignal) LastChanged() (string, bool) { return f.id, f.id != "" }
func (f fakeSignal) Running() bool               { return f.running }

func newService(t *testing.T, live LiveSignal, limit int) *DashboardService {
	t.Helper()
	store, err := storage.NewCaseStore(storage.SeedCases())
	require.NoError(t, err)
	return NewDashboardService(store, live, limit)
}

func TestOverviewSeededValues(t *testing.T) {
	overview := newService(t, nil, 0).Overview()

	assert.Equal(t, 1234, overview.Stats.TodayVerifications)
	assert.Equal(t, "2m 30s", overview.Stats.AvgDecisionTime)
	assert.Equal(t, 92.8, overview.Stats.ApprovalRate)
	assert.Equal(t, 42, overview.Stats.PendingReview)
	assert.Equal(t, RegionalAlert, overview.Alert)

	require.Len(t, overview.Chart, 4)
	assert.Equal(t, models.StatusBucket{Name: "Approved", Value: 345, Color: "#10b981"}, overview.Chart[1])

	assert.False(t, overview.LiveUpdates)
	assert.Nil(t, overview.LastChangedID)
}

func TestOverviewRecentCases(t *testing.T) {
	overview := newService(t, nil, 0).Overview()

	require.Len(t, overview.Recent, DefaultRecentLimit)
	assert.Equal(t, "12345", overview.Recent[0].ID)
	assert.Equal(t, models.RiskBandLow, overview.Recent[0].RiskBand)
	assert.Equal(t, "11223", overview.Recent[2].ID)
	assert.Equal(t, models.RiskBandHigh, overview.Recent[2].RiskBand)

	assert.Len(t, newService(t, nil, 100).Overview().Recent, 19)
}

func TestOverviewStatsIgnoreCaseStore(t *testing.T) {
	overview := newService(t, nil, 0).Overview()

	pending := 0
	for _, c := range storage.SeedCases() {
		if c.Status == models.VerificationStatusPending || c.Status == models.VerificationStatusReview {
			pending++
		}
	}
	assert.NotEqual(t, pending, overview.Stats.PendingReview)
}

func TestOverviewLiveSignal(t *testing.T) {
	overview := newService(t, fakeSignal{id: "67890", running: true}, 0).Overview()

	assert.True(t, overview.LiveUpdates)
	require.NotNil(t, overview.LastChangedID)
	assert.Equal(t, "67890", *overview.LastChangedID)
}

func TestOverviewChartIsCopied(t *testing.T) {
	svc := newService(t, nil, 0)
	first := svc.Overview()
	first.Chart[0].Value = 0

	assert.Equal(t, 86, svc.Overview().Chart[0].Value)
}
