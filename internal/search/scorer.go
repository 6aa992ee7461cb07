package search

import (
	"math"

	"github.com/scoutline/leadscout/internal/model"
)

// Score bounds. The raw formula tops out below scoreMax so a perfect
// score is unreachable and the ceiling clamp never flattens real spread.
const (
	scoreMin = 40.0
	scoreMax = 100.0

	scoreBase      = 15.0
	pressureWeight = 35.0
	scarcityWeight = 25.0
	signalExponent = 1.5
	skillPointsPer = 0.6
	skillPointsMax = 3.0
	salaryBonus    = 3.0
)

var urgencyPoints = map[string]float64{
	"High":   6,
	"Medium": 4,
	"Low":    2,
}

var growthPoints = map[string]float64{
	"High Growth": 4,
	"Stable":      2,
	"Early":       2,
}

var fundingPoints = map[string]float64{
	"Series C": 4,
	"Series B": 3,
	"Series A": 3,
	"Seed":     2,
}

// Scorer assigns a market-fit score to each lead by combining the query's
// market signals with per-lead attributes. Scoring is pure: the same lead
// and signals always yield the same score.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score returns a value in [40, 100). Signal terms are raised to a power
// above 1 so differences between weak and strong markets widen instead of
// bunching near the middle.
func (s *Scorer) Score(lead model.NormalizedLead, sig model.Signals) float64 {
	score := scoreBase
	score += pressureWeight * math.Pow(sig.HiringPressure, signalExponent)
	score += scarcityWeight * math.Pow(sig.RoleScarcity, signalExponent)

	score += urgencyPoints[lead.HiringUrgency]
	score += growthPoints[lead.CompanyGrowthStage]
	score += fundingPoints[lead.FundingStage]

	skillPts := float64(len(lead.Skills)) * skillPointsPer
	score += math.Min(skillPts, skillPointsMax)

	if lead.SalaryRange != "" {
		score += salaryBonus
	}

	score = math.Round(score*10) / 10
	return math.Max(scoreMin, math.Min(scoreMax, score))
}

// ScoreBatch returns scored leads in input order.
func (s *Scorer) ScoreBatch(leads []model.NormalizedLead, sig model.Signals) []ScoredLead {
	out := make([]ScoredLead, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ScoredLead{Lead: lead, Score: s.Score(lead, sig)})
	}
	return out
}

// ScoredLead pairs a normalized lead with its score.
type ScoredLead struct {
	Lead  model.NormalizedLead
	Score float64
}
