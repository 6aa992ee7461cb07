package intelligence

// Static market knowledge. Values are heuristic multipliers in [0,1];
// unknown keys fall back to defaultFactor.

const defaultFactor = 0.5

var roleScarcity = map[string]float64{
	"AI Engineer":         0.9,
	"ML Engineer":         0.85,
	"Data Scientist":      0.8,
	"Backend Engineer":    0.6,
	"Frontend Engineer":   0.5,
	"DevOps Engineer":     0.7,
	"Full Stack Engineer": 0.65,
	"Android Developer":   0.6,
	"iOS Developer":       0.65,
}

var locationCompetition = map[string]float64{
	"Bangalore": 0.9,
	"Mumbai":    0.8,
	"Pune":      0.7,
	"Delhi":     0.75,
	"Remote":    0.6,
	"Hyderabad": 0.75,
	"Chennai":   0.7,
}

var seniorityDifficulty = map[string]float64{
	"Junior":    0.3,
	"Mid":       0.6,
	"Senior":    0.85,
	"Lead":      0.9,
	"Principal": 0.95,
}

func roleFactor(role string) float64 {
	if f, ok := roleScarcity[role]; ok {
		return f
	}
	return defaultFactor
}

func seniorityFactor(seniority string) float64 {
	if f, ok := seniorityDifficulty[seniority]; ok {
		return f
	}
	return defaultFactor
}

func locationFactor(location string) float64 {
	if f, ok := locationCompetition[location]; ok {
		return f
	}
	return defaultFactor
}
