package model

import "strings"

// RawRecord is an untyped record as returned by a data source provider.
// Keys and value shapes vary per provider; nothing here is trusted until
// the normalizer has validated it.
type RawRecord map[string]any

// String returns the first non-empty string value among the given keys.
// Alias-priority extraction lives here so every consumer resolves provider
// schema drift the same way.
func (r RawRecord) String(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// StringList returns the value under key coerced to a string slice. It
// accepts []string, []any of strings, or a comma-separated string.
func (r RawRecord) StringList(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		var out []string
		for _, part := range strings.Split(t, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

// NormalizedLead is the canonical lead shape produced by the normalizer.
// CompanyName and Role are guaranteed non-empty with legal-entity suffixes
// and seniority adjectives stripped, so they form a stable grouping key.
type NormalizedLead struct {
	CompanyName        string   `json:"company_name"`
	Role               string   `json:"role"`
	Location           string   `json:"location"`
	JobURL             string   `json:"job_url"`
	Source             string   `json:"source"`
	Skills             []string `json:"skills"`
	SalaryRange        string   `json:"salary_range,omitempty"`
	HiringUrgency      string   `json:"hiring_urgency"`
	CompanyGrowthStage string   `json:"company_growth_stage"`
	FundingStage       string   `json:"funding_stage"`
	ConfidenceScore    float64  `json:"confidence_score"`
}

// EnrichedLead is the schema-safe output record handed to callers and the
// persistence layer. Score, Confidence and Reasons are always populated and
// within their documented bounds after the contract gate has run.
type EnrichedLead struct {
	CompanyName   string   `json:"company_name"`
	Company       string   `json:"company"`
	CompanyDomain string   `json:"company_domain,omitempty"`
	Role          string   `json:"role"`
	Location      string   `json:"location"`
	WebsiteURL    string   `json:"website_url,omitempty"`
	Source        string   `json:"source"`
	Skills        []string `json:"skills"`
	SalaryRange   string   `json:"salary_range,omitempty"`
	Score         float64  `json:"score"`
	Confidence    float64  `json:"confidence"`
	Reasons       []string `json:"reasons"`
}
