// Package enrich turns ranked leads into the outward-facing contract
// shape: confidence estimates, human-readable reasons, and a strict
// field allow-list.
package enrich

import (
	"math"
	"strings"

	"github.com/scoutline/leadscout/internal/model"
)

// Confidence bounds. Even a perfect lead from a scraped source keeps
// residual uncertainty, so the ceiling stays below 1.
const (
	confidenceFloor   = 0.40
	confidenceCeiling = 0.95
	confidenceSpan    = 0.55
)

// sourceTrust adjusts confidence by how structured each source's data is.
// Scraped search results rank below real job-board APIs.
var sourceTrust = map[string]float64{
	"arbeitnow": 0.02,
	"remoteok":  0.02,
	"seed":      0.0,
	"websearch": -0.05,
}

// Enricher derives confidence and explanations for ranked leads.
type Enricher struct{}

// NewEnricher creates an Enricher.
func NewEnricher() *Enricher {
	return &Enricher{}
}

// Enrich converts a scored lead into its enriched form using the market
// signals that produced the score.
func (e *Enricher) Enrich(lead model.NormalizedLead, score float64, sig model.Signals) model.EnrichedLead {
	return model.EnrichedLead{
		CompanyName:   lead.CompanyName,
		Company:       lead.CompanyName,
		CompanyDomain: domainFromURL(lead.JobURL),
		Role:          lead.Role,
		Location:      lead.Location,
		WebsiteURL:    lead.JobURL,
		Source:        lead.Source,
		Skills:        lead.Skills,
		SalaryRange:   lead.SalaryRange,
		Score:         score,
		Confidence:    e.confidence(lead, score),
		Reasons:       e.reasons(sig),
	}
}

// EnrichBatch enriches leads in input order.
func (e *Enricher) EnrichBatch(leads []model.NormalizedLead, scores []float64, sig model.Signals) []model.EnrichedLead {
	out := make([]model.EnrichedLead, 0, len(leads))
	for i, lead := range leads {
		out = append(out, e.Enrich(lead, scores[i], sig))
	}
	return out
}

// confidence maps the lead score into [0.40, 0.95], nudged by how much
// supporting evidence the lead carries and how trusted its source is.
func (e *Enricher) confidence(lead model.NormalizedLead, score float64) float64 {
	c := confidenceFloor + (score/100.0)*confidenceSpan

	evidence := 0
	if len(lead.Skills) > 0 {
		evidence += len(lead.Skills)
	}
	if lead.SalaryRange != "" {
		evidence++
	}
	if lead.JobURL != "" {
		evidence++
	}
	c += math.Min(float64(evidence)*0.01, 0.05)

	c += sourceTrust[lead.Source]

	c = math.Round(c*100) / 100
	return math.Max(confidenceFloor, math.Min(confidenceCeiling, c))
}

// reasons explains the ranking in market terms. At least one reason is
// always returned.
func (e *Enricher) reasons(sig model.Signals) []string {
	var out []string

	switch {
	case sig.HiringPressure > 0.7:
		out = append(out, "High hiring pressure detected")
	case sig.HiringPressure > 0.5:
		out = append(out, "Moderate hiring activity")
	}

	switch {
	case sig.RoleScarcity > 0.7:
		out = append(out, "Talent pool is scarce for this role")
	case sig.RoleScarcity > 0.5:
		out = append(out, "Competitive talent market")
	}

	switch {
	case sig.MarketDifficulty > 0.7:
		out = append(out, "Hiring difficulty is high in this market")
	case sig.MarketDifficulty < 0.3:
		out = append(out, "Favorable hiring conditions")
	}

	switch {
	case sig.OutsourcingLikelihood > 0.7:
		out = append(out, "Strong outsourcing potential")
	case sig.OutsourcingLikelihood < 0.3:
		out = append(out, "Likely to hire in-house")
	}

	if len(out) == 0 {
		out = append(out, "Standard market conditions")
	}
	return out
}

// domainFromURL extracts the registrable host from a job URL, stripping
// scheme, www prefix, path, and port.
func domainFromURL(rawURL string) string {
	u := rawURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.IndexAny(u, "/?#"); i >= 0 {
		u = u[:i]
	}
	if i := strings.Index(u, ":"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimPrefix(u, "www.")
	return strings.ToLower(strings.TrimSpace(u))
}
