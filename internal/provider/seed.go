package provider

import (
	"context"

	"github.com/scoutline/leadscout/internal/model"
)

// SourceSeed is the provider name for the curated development dataset.
const SourceSeed = "seed"

// Seed serves a small curated dataset for development and demos. It is
// disabled by default and gated by config. Records carry the richer
// fields (growth stage, funding, urgency) live providers rarely expose,
// which exercises the full scoring surface.
type Seed struct{}

// NewSeed creates the seed provider.
func NewSeed() *Seed { return &Seed{} }

// Name implements DataSource.
func (p *Seed) Name() string { return SourceSeed }

// Fetch implements DataSource. Seed data is static so the guard stack is
// unnecessary; role filtering still applies so results stay relevant.
func (p *Seed) Fetch(ctx context.Context, query string, c Constraints) ([]model.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.RawRecord, 0, len(seedRecords))
	for _, rec := range seedRecords {
		title, _ := rec["title"].(string)
		if !matchesRole(c.Role, title) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

var seedRecords = []model.RawRecord{
	{
		"company":              "Nexara Labs",
		"title":                "Senior AI Engineer",
		"location":             "Bangalore",
		"url":                  "https://nexaralabs.example.com/careers/senior-ai-engineer",
		"skills":               []string{"Python", "PyTorch", "LLM", "Kubernetes"},
		"salary_range":         "45-65 LPA",
		"hiring_urgency":       "High",
		"company_growth_stage": "High Growth",
		"funding_stage":        "Series B",
		"source":               SourceSeed,
	},
	{
		"company":              "Quantrail",
		"title":                "Machine Learning Engineer",
		"location":             "Remote",
		"url":                  "https://quantrail.example.com/jobs/ml-engineer",
		"skills":               []string{"Python", "TensorFlow", "AWS"},
		"salary_range":         "30-45 LPA",
		"hiring_urgency":       "Medium",
		"company_growth_stage": "Stable",
		"funding_stage":        "Series C",
		"source":               SourceSeed,
	},
	{
		"company":              "BrightHive Systems",
		"title":                "Backend Engineer",
		"location":             "Pune",
		"url":                  "https://brighthive.example.com/careers/backend-engineer",
		"skills":               []string{"Go", "PostgreSQL", "Docker"},
		"salary_range":         "20-32 LPA",
		"hiring_urgency":       "Low",
		"company_growth_stage": "Early",
		"funding_stage":        "Seed",
		"source":               SourceSeed,
	},
	{
		"company":              "Veloce AI",
		"title":                "Lead Data Scientist",
		"location":             "Hyderabad",
		"url":                  "https://veloce.example.com/jobs/lead-data-scientist",
		"skills":               []string{"Python", "SQL", "Spark", "MLOps"},
		"salary_range":         "50-70 LPA",
		"hiring_urgency":       "High",
		"company_growth_stage": "High Growth",
		"funding_stage":        "Series A",
		"source":               SourceSeed,
	},
	{
		"company":              "Orbitply",
		"title":                "Frontend Developer",
		"location":             "Mumbai",
		"url":                  "https://orbitply.example.com/careers/frontend-developer",
		"skills":               []string{"React", "TypeScript"},
		"hiring_urgency":       "Medium",
		"company_growth_stage": "Stable",
		"source":               SourceSeed,
	},
	{
		"company":              "Deltashore",
		"title":                "DevOps Engineer",
		"location":             "Chennai",
		"url":                  "https://deltashore.example.com/jobs/devops-engineer",
		"skills":               []string{"Kubernetes", "AWS", "Terraform"},
		"salary_range":         "25-38 LPA",
		"hiring_urgency":       "Medium",
		"company_growth_stage": "High Growth",
		"funding_stage":        "Series A",
		"source":               SourceSeed,
	},
}
