package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/leadscout/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRun(query string) *model.Run {
	return &model.Run{
		Query: query,
		Intelligence: model.IntelligenceResult{
			Intent:    model.IntentHiring,
			Role:      "AI Engineer",
			Seniority: model.SenioritySenior,
			Location:  "Bangalore",
			Skills:    []string{"Python", "LLM"},
			Signals: model.Signals{
				HiringPressure:        0.89,
				RoleScarcity:          0.89,
				MarketDifficulty:      0.90,
				OutsourcingLikelihood: 0.70,
			},
		},
		Leads: []model.EnrichedLead{
			{
				CompanyName: "Nexara Labs",
				Company:     "Nexara Labs",
				Role:        "Senior AI Engineer",
				Location:    "Bangalore",
				WebsiteURL:  "https://nexaralabs.example.com/careers/1",
				Source:      "seed",
				Skills:      []string{"Python", "PyTorch"},
				Score:       91.4,
				Confidence:  0.92,
				Reasons:     []string{"High hiring pressure detected"},
			},
			{
				CompanyName: "Quantrail",
				Company:     "Quantrail",
				Role:        "ML Engineer",
				Location:    "Remote",
				Source:      "remoteok",
				Skills:      []string{},
				Score:       74.2,
				Confidence:  0.81,
				Reasons:     []string{"Competitive talent market"},
			},
		},
		TotalCount: 2,
		Report: model.ExecutionReport{
			Query:              query,
			StartedAt:          time.Now().UTC().Truncate(time.Second),
			ProvidersCalled:    2,
			ProvidersSucceeded: 2,
			RawLeadsFound:      5,
			NormalizedLeads:    4,
			RankedLeadsCount:   2,
			DeduplicatedCount:  2,
			ProviderDiagnostics: map[string]model.ProviderDiagnostic{
				"seed": {Status: model.ProviderStatusSuccess, LeadsFound: 3},
			},
		},
	}
}

func TestSQLiteSaveRunAssignsIDAndTimestamp(t *testing.T) {
	s := newTestSQLiteStore(t)
	run := testRun("need senior ai engineers in bangalore")

	require.NoError(t, s.SaveRun(context.Background(), run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestSQLiteSaveAndGetRunRoundtrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	run := testRun("need senior ai engineers in bangalore")
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.Query, got.Query)
	assert.Equal(t, run.TotalCount, got.TotalCount)
	assert.Equal(t, run.Intelligence, got.Intelligence)
	assert.Equal(t, run.Leads, got.Leads)
	assert.Equal(t, run.Report.ProvidersCalled, got.Report.ProvidersCalled)
	assert.Equal(t, run.Report.ProviderDiagnostics, got.Report.ProviderDiagnostics)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	assert.Error(t, err)
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	older := testRun("older query")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, s.SaveRun(ctx, older))

	newer := testRun("newer query")
	require.NoError(t, s.SaveRun(ctx, newer))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newer query", runs[0].Query)
	assert.Equal(t, "older query", runs[1].Query)
}

func TestSQLiteListRunsLimit(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := testRun("query")
		run.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.SaveRun(ctx, run))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteArchiveUpsert(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := testRun("first")
	require.NoError(t, s.SaveRun(ctx, first))

	// Same company/role/location with a new score replaces the archive row.
	second := testRun("second")
	second.Leads = second.Leads[:1]
	second.Leads[0].Score = 95.0
	require.NoError(t, s.SaveRun(ctx, second))

	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lead_archive`)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)

	var score float64
	var lastRunID string
	row = s.db.QueryRowContext(ctx,
		`SELECT score, last_run_id FROM lead_archive WHERE company_name = ?`, "Nexara Labs")
	require.NoError(t, row.Scan(&score, &lastRunID))
	assert.Equal(t, 95.0, score)
	assert.Equal(t, second.ID, lastRunID)
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	s := newTestSQLiteStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}
