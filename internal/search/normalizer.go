// Package search implements the lead pipeline: fan-out acquisition across
// providers, normalization of heterogeneous raw records, scoring, and
// ranking with per-company density control.
package search

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/model"
)

// legalSuffixes are stripped from the end of company names so that
// "Acme GmbH" and "Acme" deduplicate together.
var legalSuffixes = regexp.MustCompile(`(?i)[\s,]+(gmbh|inc\.?|ltd\.?|llc|pvt\.?\s*ltd\.?|limited|corp\.?|co\.?|s\.?a\.?|ag|plc)$`)

// roleNoise removes recruiting boilerplate from job titles, like the
// "(m/f/d)" gender markers common on European boards.
var roleNoise = regexp.MustCompile(`(?i)\s*\((m/w/d|m/f/d|f/m/d|w/m/d|all genders)\)`)

var seniorityPrefixes = []string{"senior ", "sr. ", "sr ", "junior ", "jr. ", "jr ", "lead ", "principal ", "staff "}

var urgencyMarkers = []string{"urgent", "immediate", "asap", "right away", "actively hiring"}

// Normalizer converts provider raw records into the canonical lead shape.
// Records missing the identity fields (company, role, source) are rejected
// rather than patched.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize maps a single raw record to a NormalizedLead. It returns an
// error when the record lacks company, role, or source.
func (n *Normalizer) Normalize(rec model.RawRecord) (model.NormalizedLead, error) {
	company := cleanCompany(rec.String("company", "company_name", "employer"))
	role := cleanRole(rec.String("title", "role", "position", "job_title"))
	source := rec.String("source")

	switch {
	case company == "":
		return model.NormalizedLead{}, eris.New("normalize: record has no company")
	case role == "":
		return model.NormalizedLead{}, eris.New("normalize: record has no role")
	case source == "":
		return model.NormalizedLead{}, eris.New("normalize: record has no source")
	}

	lead := model.NormalizedLead{
		CompanyName:        company,
		Role:               role,
		Location:           rec.String("location", "city"),
		JobURL:             rec.String("url", "job_url", "link", "apply_url"),
		Source:             source,
		Skills:             rec.StringList("skills"),
		SalaryRange:        rec.String("salary_range", "salary"),
		HiringUrgency:      rec.String("hiring_urgency", "urgency"),
		CompanyGrowthStage: rec.String("company_growth_stage", "growth_stage"),
		FundingStage:       rec.String("funding_stage", "funding"),
	}

	if len(lead.Skills) == 0 {
		lead.Skills = rec.StringList("tags")
	}
	if lead.Location == "" {
		lead.Location = "Remote"
	}
	if lead.HiringUrgency == "" {
		lead.HiringUrgency = inferUrgency(rec)
	}
	return lead, nil
}

// NormalizeBatch normalizes every record, dropping and counting the
// invalid ones. Output order follows input order.
func (n *Normalizer) NormalizeBatch(recs []model.RawRecord) (leads []model.NormalizedLead, skipped int) {
	leads = make([]model.NormalizedLead, 0, len(recs))
	for _, rec := range recs {
		lead, err := n.Normalize(rec)
		if err != nil {
			skipped++
			zap.L().Debug("normalize: skipping record", zap.Error(err))
			continue
		}
		leads = append(leads, lead)
	}
	return leads, skipped
}

func cleanCompany(name string) string {
	name = strings.TrimSpace(name)
	name = legalSuffixes.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func cleanRole(role string) string {
	role = roleNoise.ReplaceAllString(role, "")
	role = strings.TrimSpace(role)
	lower := strings.ToLower(role)
	for _, prefix := range seniorityPrefixes {
		if strings.HasPrefix(lower, prefix) && len(role) > len(prefix) {
			// Seniority lives in the intelligence result, not the role.
			role = strings.TrimSpace(role[len(prefix):])
			lower = strings.ToLower(role)
		}
	}
	return role
}

func inferUrgency(rec model.RawRecord) string {
	text := strings.ToLower(rec.String("description") + " " + rec.String("title"))
	for _, marker := range urgencyMarkers {
		if strings.Contains(text, marker) {
			return "High"
		}
	}
	return ""
}
