package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/leadscout/internal/model"
)

type fakeRunLister struct {
	runs []model.Run
	err  error
}

func (f *fakeRunLister) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.runs, nil
}

func recentRun(age time.Duration, leads int, report model.ExecutionReport) model.Run {
	r := model.Run{
		CreatedAt: time.Now().UTC().Add(-age),
		Report:    report,
	}
	for i := 0; i < leads; i++ {
		r.Leads = append(r.Leads, model.EnrichedLead{Score: 80})
	}
	return r
}

func TestCollect_Aggregates(t *testing.T) {
	lister := &fakeRunLister{runs: []model.Run{
		recentRun(time.Hour, 3, model.ExecutionReport{
			RawLeadsFound:   6,
			ProvidersCalled: 3,
			ProvidersFailed: 1,
			ProviderDiagnostics: map[string]model.ProviderDiagnostic{
				"arbeitnow": {Status: model.ProviderStatusSuccess},
				"remoteok":  {Status: model.ProviderStatusError},
				"websearch": {Status: model.ProviderStatusSkipped},
			},
		}),
		recentRun(2*time.Hour, 1, model.ExecutionReport{
			RawLeadsFound:   2,
			ProvidersCalled: 2,
		}),
	}}

	snap, err := NewCollector(lister).Collect(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Runs)
	assert.Equal(t, 4, snap.LeadsTotal)
	assert.Equal(t, 2.0, snap.AvgLeadsPerRun)
	assert.Equal(t, 80.0, snap.AvgScore)
	assert.Equal(t, 0, snap.ZeroLeadRuns)
	assert.Equal(t, 5, snap.ProviderCalls)
	assert.Equal(t, 1, snap.ProviderFailures)
	assert.Equal(t, 1, snap.ProviderSkips)
	assert.InDelta(t, 0.2, snap.ProviderFailRate, 1e-9)
	assert.Equal(t, 24, snap.LookbackHours)
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestCollect_IgnoresRunsOutsideWindow(t *testing.T) {
	lister := &fakeRunLister{runs: []model.Run{
		recentRun(time.Hour, 2, model.ExecutionReport{RawLeadsFound: 2}),
		recentRun(48*time.Hour, 9, model.ExecutionReport{RawLeadsFound: 9}),
	}}

	snap, err := NewCollector(lister).Collect(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Runs)
	assert.Equal(t, 2, snap.LeadsTotal)
}

func TestCollect_CountsZeroLeadRuns(t *testing.T) {
	lister := &fakeRunLister{runs: []model.Run{
		recentRun(time.Hour, 0, model.ExecutionReport{RawLeadsFound: 0, ProvidersCalled: 3}),
		recentRun(time.Hour, 5, model.ExecutionReport{RawLeadsFound: 5, ProvidersCalled: 3}),
	}}

	snap, err := NewCollector(lister).Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ZeroLeadRuns)
}

func TestCollect_EmptyHistory(t *testing.T) {
	snap, err := NewCollector(&fakeRunLister{}).Collect(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 0, snap.Runs)
	assert.Equal(t, 0.0, snap.AvgLeadsPerRun)
	assert.Equal(t, 0.0, snap.ProviderFailRate)
}

func TestCollect_ListError(t *testing.T) {
	_, err := NewCollector(&fakeRunLister{err: assert.AnError}).Collect(context.Background(), 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list runs")
}
