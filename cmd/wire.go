package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scoutline/leadscout/internal/config"
	"github.com/scoutline/leadscout/internal/enrich"
	"github.com/scoutline/leadscout/internal/model"
	"github.com/scoutline/leadscout/internal/monitoring"
	"github.com/scoutline/leadscout/internal/provider"
	"github.com/scoutline/leadscout/internal/search"
	"github.com/scoutline/leadscout/internal/store"
	"github.com/scoutline/leadscout/pkg/arbeitnow"
	"github.com/scoutline/leadscout/pkg/remoteok"
	"github.com/scoutline/leadscout/pkg/websearch"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "leadscout.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func providerOptions(pc config.ProviderConfig) provider.Options {
	return provider.Options{
		Timeout:           time.Duration(pc.TimeoutSecs) * time.Second,
		BreakerThreshold:  pc.BreakerThreshold,
		BreakerReset:      time.Duration(pc.BreakerResetSecs) * time.Second,
		RequestsPerSecond: pc.RequestsPerSecond,
	}
}

// buildProviders constructs the enabled data sources in a fixed order so
// result merging is deterministic across runs.
func buildProviders() []provider.DataSource {
	var providers []provider.DataSource

	if pc := cfg.Providers.Arbeitnow; pc.Enabled {
		client := arbeitnow.NewClient(arbeitnow.WithBaseURL(pc.BaseURL))
		providers = append(providers, provider.NewArbeitnow(client, providerOptions(pc)))
	}
	if pc := cfg.Providers.RemoteOK; pc.Enabled {
		client := remoteok.NewClient(remoteok.WithBaseURL(pc.BaseURL))
		providers = append(providers, provider.NewRemoteOK(client, providerOptions(pc)))
	}
	if pc := cfg.Providers.WebSearch; pc.Enabled {
		client := websearch.NewClient(websearch.WithBaseURL(pc.BaseURL))
		providers = append(providers, provider.NewWebSearch(client, providerOptions(pc)))
	}
	if cfg.Providers.Seed.Enabled {
		providers = append(providers, provider.NewSeed())
	}

	return providers
}

// buildOrchestrator wires the full pipeline, with the monitoring alerter
// hooked into every finalized report.
func buildOrchestrator() (*search.Orchestrator, error) {
	alerter := monitoring.NewAlerter(cfg.Monitoring)

	return search.New(
		buildProviders(),
		search.NewNormalizer(),
		search.NewScorer(),
		search.NewRanker(cfg.Search.DensityCap),
		enrich.NewEnricher(),
		enrich.NewContract(),
		search.Options{
			MaxResults:    cfg.Search.MaxResults,
			MaxConcurrent: cfg.Search.MaxConcurrent,
			OnReport: func(ctx context.Context, report *model.ExecutionReport) {
				alerter.SendAlerts(ctx, alerter.EvaluateReport(report))
			},
		},
	)
}
