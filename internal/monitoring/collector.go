package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scoutline/leadscout/internal/model"
)

// MetricsSnapshot holds a point-in-time view of system health.
type MetricsSnapshot struct {
	// Run metrics (within lookback window).
	Runs           int     `json:"runs"`
	LeadsTotal     int     `json:"leads_total"`
	AvgLeadsPerRun float64 `json:"avg_leads_per_run"`
	AvgScore       float64 `json:"avg_score"`
	ZeroLeadRuns   int     `json:"zero_lead_runs"`

	// Provider metrics aggregated across runs in the window.
	ProviderCalls    int     `json:"provider_calls"`
	ProviderFailures int     `json:"provider_failures"`
	ProviderSkips    int     `json:"provider_skips"`
	ProviderFailRate float64 `json:"provider_fail_rate"`

	// Metadata.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// RunLister abstracts the store methods the collector needs.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
}

// Collector aggregates run history into a health snapshot.
type Collector struct {
	runs RunLister
}

// NewCollector creates a new metrics collector.
func NewCollector(runs RunLister) *Collector {
	return &Collector{runs: runs}
}

// Collect gathers a snapshot of system metrics over the given lookback window.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   time.Now().UTC(),
	}

	cutoff := time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)

	runs, err := c.runs.ListRuns(ctx, 10000)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list runs")
	}

	var totalScore float64
	var scoredLeads int
	for _, r := range runs {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		snap.Runs++
		snap.LeadsTotal += len(r.Leads)
		if r.Report.RawLeadsFound == 0 {
			snap.ZeroLeadRuns++
		}
		snap.ProviderCalls += r.Report.ProvidersCalled
		snap.ProviderFailures += r.Report.ProvidersFailed
		for _, d := range r.Report.ProviderDiagnostics {
			if d.Status == model.ProviderStatusSkipped {
				snap.ProviderSkips++
			}
		}
		for _, lead := range r.Leads {
			totalScore += lead.Score
			scoredLeads++
		}
	}

	if snap.Runs > 0 {
		snap.AvgLeadsPerRun = float64(snap.LeadsTotal) / float64(snap.Runs)
	}
	if scoredLeads > 0 {
		snap.AvgScore = totalScore / float64(scoredLeads)
	}
	if snap.ProviderCalls > 0 {
		snap.ProviderFailRate = float64(snap.ProviderFailures) / float64(snap.ProviderCalls)
	}

	return snap, nil
}
