package intelligence

import (
	"math"

	"github.com/scoutline/leadscout/internal/model"
)

// computeSignals derives the four market signals from the extracted
// profile. All outputs are capped below 1.0 and rounded to two decimals so
// identical queries always produce byte-identical results.
func computeSignals(intent, role, seniority, location string) model.Signals {
	rf := roleFactor(role)
	sf := seniorityFactor(seniority)
	lf := locationFactor(location)

	scarcity := math.Min(0.99, rf*0.8+sf*0.2)
	if seniority == model.SeniorityLead || seniority == model.SeniorityPrincipal {
		scarcity = math.Min(0.99, scarcity+0.1)
	}

	intentWeight := 0.3
	switch intent {
	case model.IntentHiring:
		intentWeight = 0.9
	case model.IntentSalary, model.IntentBenchmark:
		intentWeight = 0.5
	case model.IntentGeneral:
		intentWeight = 0.0
	}

	pressure := math.Min(0.99, intentWeight*0.7+sf*0.3)
	if intent == model.IntentGeneral {
		// A browsing query exerts no real hiring pressure.
		pressure = math.Min(0.1, pressure)
	}

	difficulty := (scarcity + lf) / 2

	outsourcing := 0.3
	if pressure > 0.7 || difficulty > 0.7 {
		outsourcing = 0.7
	}
	if seniority == model.SeniorityJunior {
		outsourcing = 0.2
	}

	return model.Signals{
		HiringPressure:        round2(pressure),
		RoleScarcity:          round2(scarcity),
		OutsourcingLikelihood: round2(outsourcing),
		MarketDifficulty:      round2(difficulty),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
