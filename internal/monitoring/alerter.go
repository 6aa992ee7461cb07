package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/config"
	"github.com/scoutline/leadscout/internal/model"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertZeroLeads           AlertType = "zero_leads"
	AlertProviderFailureRate AlertType = "provider_failure_rate"
	AlertLowLeadVolume       AlertType = "low_lead_volume"
)

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter turns execution telemetry into alerts and delivers them via
// webhook when one is configured.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// EvaluateReport checks a single search execution. A run where every
// provider was called yet no raw leads came back is the critical case:
// it usually means upstream formats changed or every circuit is open.
func (a *Alerter) EvaluateReport(report *model.ExecutionReport) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	if report.ProvidersCalled > 0 && report.RawLeadsFound == 0 {
		alerts = append(alerts, Alert{
			Type:     AlertZeroLeads,
			Severity: "critical",
			Message: fmt.Sprintf(
				"Search %q produced zero raw leads across %d provider(s)",
				report.Query, report.ProvidersCalled,
			),
			Details: map[string]any{
				"query":              report.Query,
				"providers_called":   report.ProvidersCalled,
				"providers_failed":   report.ProvidersFailed,
				"provider_breakdown": report.ProviderDiagnostics,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// Evaluate checks the aggregate snapshot against configured thresholds.
func (a *Alerter) Evaluate(snap *MetricsSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	if snap.ProviderCalls >= 5 && snap.ProviderFailRate > a.cfg.FailureRateThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertProviderFailureRate,
			Severity: "high",
			Message: fmt.Sprintf(
				"Provider failure rate %.1f%% exceeds threshold %.1f%% (%d failed / %d calls in last %dh)",
				snap.ProviderFailRate*100, a.cfg.FailureRateThreshold*100,
				snap.ProviderFailures, snap.ProviderCalls, snap.LookbackHours,
			),
			Details: map[string]any{
				"failure_rate": snap.ProviderFailRate,
				"threshold":    a.cfg.FailureRateThreshold,
				"failed":       snap.ProviderFailures,
				"calls":        snap.ProviderCalls,
			},
			Timestamp: now,
		})
	}

	if snap.Runs >= 3 && a.cfg.MinAvgLeadsPerRun > 0 && snap.AvgLeadsPerRun < a.cfg.MinAvgLeadsPerRun {
		alerts = append(alerts, Alert{
			Type:     AlertLowLeadVolume,
			Severity: "high",
			Message: fmt.Sprintf(
				"Average %.1f leads per run below threshold %.1f (%d runs in last %dh)",
				snap.AvgLeadsPerRun, a.cfg.MinAvgLeadsPerRun, snap.Runs, snap.LookbackHours,
			),
			Details: map[string]any{
				"avg_leads_per_run": snap.AvgLeadsPerRun,
				"threshold":         a.cfg.MinAvgLeadsPerRun,
				"runs":              snap.Runs,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	for _, alert := range alerts {
		zap.L().Warn("monitoring: alert triggered",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
			zap.String("message", alert.Message),
		)
	}
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
