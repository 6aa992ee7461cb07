package model

// Query intents recognized by the intelligence engine.
const (
	IntentHiring    = "HIRING"
	IntentSalary    = "SALARY"
	IntentResearch  = "RESEARCH"
	IntentBenchmark = "BENCHMARK"
	IntentGeneral   = "GENERAL"
)

// Seniority levels recognized by the intelligence engine.
const (
	SeniorityJunior    = "Junior"
	SeniorityMid       = "Mid"
	SenioritySenior    = "Senior"
	SeniorityLead      = "Lead"
	SeniorityPrincipal = "Principal"
)

// Signals are the four normalized market-condition scores, each in [0,1]
// and rounded to two decimals.
type Signals struct {
	HiringPressure        float64 `json:"hiring_pressure"`
	RoleScarcity          float64 `json:"role_scarcity"`
	OutsourcingLikelihood float64 `json:"outsourcing_likelihood"`
	MarketDifficulty      float64 `json:"market_difficulty"`
}

// IntelligenceResult is the structured profile extracted from a free-text
// recruiter query. It is immutable once produced: the orchestrator reads it
// as search constraints and the scorer reads the signals.
type IntelligenceResult struct {
	Intent     string   `json:"intent"`
	Role       string   `json:"role"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
	Seniority  string   `json:"seniority"`
	Location   string   `json:"location"`
	Signals    Signals  `json:"signals"`
}
