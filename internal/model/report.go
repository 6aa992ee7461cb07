package model

import "time"

// Provider call outcomes recorded in ProviderDiagnostic.Status.
const (
	ProviderStatusSuccess = "success"
	ProviderStatusError   = "error"
	ProviderStatusSkipped = "skipped"
)

// ProviderDiagnostic records the outcome of a single provider call.
type ProviderDiagnostic struct {
	Status     string  `json:"status"`
	LatencyMS  float64 `json:"latency_ms"`
	LeadsFound int     `json:"leads_found,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// ExecutionReport is the canonical observability record for one
// orchestration run. It is created at orchestration start, filled
// incrementally, and treated as immutable once the run is finalized.
// Every caller-facing count must be derived from it.
type ExecutionReport struct {
	Query           string    `json:"query"`
	StartedAt       time.Time `json:"started_at"`
	ExecutionTimeMS float64   `json:"execution_time_ms"`

	ProvidersCalled     int                           `json:"providers_called"`
	ProvidersSucceeded  int                           `json:"providers_succeeded"`
	ProvidersFailed     int                           `json:"providers_failed"`
	ProviderDiagnostics map[string]ProviderDiagnostic `json:"provider_diagnostics"`

	RawLeadsFound     int `json:"raw_leads_found"`
	NormalizedLeads   int `json:"normalized_leads"`
	SkippedInvalid    int `json:"skipped_invalid_count"`
	RankedLeadsCount  int `json:"ranked_leads_count"`
	DeduplicatedCount int `json:"deduplicated_count"`
}

// Run is the persisted record of one search invocation.
type Run struct {
	ID           string             `json:"id"`
	Query        string             `json:"query"`
	Intelligence IntelligenceResult `json:"intelligence"`
	Leads        []EnrichedLead     `json:"leads"`
	TotalCount   int                `json:"total_count"`
	Report       ExecutionReport    `json:"execution_report"`
	CreatedAt    time.Time          `json:"created_at"`
}
