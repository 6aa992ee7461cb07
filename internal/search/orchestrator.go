package search

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scoutline/leadscout/internal/enrich"
	"github.com/scoutline/leadscout/internal/model"
	"github.com/scoutline/leadscout/internal/provider"
	"github.com/scoutline/leadscout/internal/resilience"
)

// Options tune the orchestrator.
type Options struct {
	// MaxResults truncates the final lead list. Zero means no limit.
	MaxResults int

	// MaxConcurrent bounds simultaneous provider fetches. Default: all.
	MaxConcurrent int

	// OnReport is invoked with the finalized report of every run. The
	// monitoring alerter hooks in here. May be nil.
	OnReport func(ctx context.Context, report *model.ExecutionReport)
}

// Result is the outcome of one orchestrated search.
type Result struct {
	Leads      []model.EnrichedLead   `json:"leads"`
	TotalCount int                    `json:"total_count"`
	Report     *model.ExecutionReport `json:"execution_report"`
}

// Orchestrator coordinates the full pipeline: concurrent provider
// fan-out, normalization, scoring, ranking and enrichment. Provider
// failures degrade the result instead of failing it; the only hard
// errors are construction with zero providers and context cancellation.
type Orchestrator struct {
	providers  []provider.DataSource
	normalizer *Normalizer
	scorer     *Scorer
	ranker     *Ranker
	enricher   *enrich.Enricher
	contract   *enrich.Contract
	opts       Options
}

// New creates an Orchestrator. It fails fast when no providers are
// configured so a misconfigured deployment is caught at startup rather
// than at first query.
func New(providers []provider.DataSource, normalizer *Normalizer, scorer *Scorer, ranker *Ranker, enricher *enrich.Enricher, contract *enrich.Contract, opts Options) (*Orchestrator, error) {
	if len(providers) == 0 {
		return nil, eris.New("search: no providers enabled")
	}
	return &Orchestrator{
		providers:  providers,
		normalizer: normalizer,
		scorer:     scorer,
		ranker:     ranker,
		enricher:   enricher,
		contract:   contract,
		opts:       opts,
	}, nil
}

// Orchestrate runs the pipeline for one query. The returned report is the
// single source of truth for run telemetry; every count in Result derives
// from it.
func (o *Orchestrator) Orchestrate(ctx context.Context, query string, intel model.IntelligenceResult) (*Result, error) {
	start := time.Now()
	report := &model.ExecutionReport{
		Query:               query,
		StartedAt:           start.UTC(),
		ProvidersCalled:     len(o.providers),
		ProviderDiagnostics: make(map[string]model.ProviderDiagnostic, len(o.providers)),
	}

	constraints := provider.Constraints{
		Role:      intel.Role,
		Location:  intel.Location,
		Skills:    intel.Skills,
		Seniority: intel.Seniority,
	}

	raw := o.fetchAll(ctx, query, constraints, report)
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "search: orchestration cancelled")
	}
	report.RawLeadsFound = len(raw)

	leads, skipped := o.normalizer.NormalizeBatch(raw)
	report.NormalizedLeads = len(leads)
	report.SkippedInvalid = skipped

	scored := o.scorer.ScoreBatch(leads, intel.Signals)
	ranked := o.ranker.Rank(scored)
	report.RankedLeadsCount = len(ranked)
	report.DeduplicatedCount = len(scored) - len(ranked)

	totalCount := report.RankedLeadsCount
	if o.opts.MaxResults > 0 && len(ranked) > o.opts.MaxResults {
		ranked = ranked[:o.opts.MaxResults]
	}

	enriched := make([]model.EnrichedLead, 0, len(ranked))
	for _, s := range ranked {
		enriched = append(enriched, o.enricher.Enrich(s.Lead, s.Score, intel.Signals))
	}
	enriched = o.contract.ApplyBatch(enriched)

	// TotalCount counts unique ranked leads before truncation and can
	// never be less than the leads actually returned.
	if totalCount < len(enriched) {
		zap.L().Error("search: total_count below returned leads, correcting",
			zap.Int("total_count", totalCount),
			zap.Int("returned", len(enriched)),
		)
		totalCount = len(enriched)
	}

	report.ExecutionTimeMS = float64(time.Since(start).Microseconds()) / 1000.0

	if o.opts.OnReport != nil {
		o.opts.OnReport(ctx, report)
	}

	zap.L().Info("search: orchestration complete",
		zap.String("query", query),
		zap.Int("raw", report.RawLeadsFound),
		zap.Int("normalized", report.NormalizedLeads),
		zap.Int("skipped", report.SkippedInvalid),
		zap.Int("ranked", report.RankedLeadsCount),
		zap.Int("returned", len(enriched)),
		zap.Int("providers_failed", report.ProvidersFailed),
		zap.Float64("elapsed_ms", report.ExecutionTimeMS),
	)

	return &Result{
		Leads:      enriched,
		TotalCount: totalCount,
		Report:     report,
	}, nil
}

// fetchAll fans out to every provider concurrently and merges results in
// provider registration order, so output is stable regardless of which
// goroutine finishes first.
func (o *Orchestrator) fetchAll(ctx context.Context, query string, c provider.Constraints, report *model.ExecutionReport) []model.RawRecord {
	results := make([][]model.RawRecord, len(o.providers))
	diags := make([]model.ProviderDiagnostic, len(o.providers))

	g, gCtx := errgroup.WithContext(ctx)
	if o.opts.MaxConcurrent > 0 {
		g.SetLimit(o.opts.MaxConcurrent)
	}

	for i, p := range o.providers {
		g.Go(func() error {
			callStart := time.Now()
			recs, err := p.Fetch(gCtx, query, c)
			latency := float64(time.Since(callStart).Microseconds()) / 1000.0

			diag := model.ProviderDiagnostic{LatencyMS: latency}
			switch {
			case err == nil:
				diag.Status = model.ProviderStatusSuccess
				diag.LeadsFound = len(recs)
				results[i] = recs
			case errors.Is(err, resilience.ErrOpen):
				diag.Status = model.ProviderStatusSkipped
				diag.Error = err.Error()
				zap.L().Warn("search: provider skipped, circuit open",
					zap.String("provider", p.Name()),
				)
			default:
				diag.Status = model.ProviderStatusError
				diag.Error = err.Error()
				zap.L().Warn("search: provider failed",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
			}
			diags[i] = diag
			return nil
		})
	}
	// Workers never return errors; failures live in the diagnostics.
	_ = g.Wait()

	var raw []model.RawRecord
	for i, p := range o.providers {
		report.ProviderDiagnostics[p.Name()] = diags[i]
		switch diags[i].Status {
		case model.ProviderStatusSuccess:
			report.ProvidersSucceeded++
			raw = append(raw, results[i]...)
		case model.ProviderStatusError:
			report.ProvidersFailed++
		}
	}
	return raw
}
