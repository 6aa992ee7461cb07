package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/leadscout/internal/model"
)

func TestProcess_UrgentSeniorQuery(t *testing.T) {
	e := NewEngine()

	res := e.Process("Urgently need senior AI engineers in Bangalore")

	assert.Equal(t, model.IntentHiring, res.Intent)
	assert.Equal(t, "AI Engineer", res.Role)
	assert.Equal(t, model.SenioritySenior, res.Seniority)
	assert.Equal(t, "Bangalore", res.Location)
	assert.Contains(t, res.Skills, "ai")

	assert.InDelta(t, 0.89, res.Signals.HiringPressure, 0.001)
	assert.InDelta(t, 0.89, res.Signals.RoleScarcity, 0.001)
	assert.InDelta(t, 0.90, res.Signals.MarketDifficulty, 0.001)
	assert.InDelta(t, 0.70, res.Signals.OutsourcingLikelihood, 0.001)
}

func TestProcess_Deterministic(t *testing.T) {
	e := NewEngine()
	query := "hire 5+ years backend developers with golang and kubernetes in pune"

	first := e.Process(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Process(query))
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"need python developers", model.IntentHiring},
		{"looking for ML engineers", model.IntentHiring},
		{"urgently hiring react devs", model.IntentHiring},
		{"average salary for data scientists", model.IntentSalary},
		{"ctc range for devops", model.IntentSalary},
		{"market trends for ai roles", model.IntentResearch},
		{"how many ios developers in mumbai", model.IntentResearch},
		{"compare bangalore vs pune attrition rates", model.IntentBenchmark},
		{"java developers", model.IntentGeneral},
		{"", model.IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyIntent(parseQuery(tt.query)))
		})
	}
}

func TestClassifyIntent_FirstBucketWins(t *testing.T) {
	// "need" (HIRING) appears alongside "salary" (SALARY); HIRING is
	// checked first.
	got := classifyIntent(parseQuery("need engineers with good salary"))
	assert.Equal(t, model.IntentHiring, got)
}

func TestExtractRole(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"need machine learning engineers", "ML Engineer"},
		{"ml engineer in pune", "ML Engineer"},
		{"hire ai engineers", "AI Engineer"},
		{"senior data scientist", "Data Scientist"},
		{"backend developer with golang", "Backend Engineer"},
		{"frontend react developer", "Frontend Engineer"},
		{"devops with kubernetes", "DevOps Engineer"},
		{"full stack developers", "Full Stack Engineer"},
		{"android developer in delhi", "Android Developer"},
		{"ios engineer", "iOS Developer"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, extractRole(parseQuery(tt.query)))
		})
	}
}

func TestExtractRole_NoMLFalsePositiveInsideWords(t *testing.T) {
	// "html" must not token-match "ml".
	got := extractRole(parseQuery("html email template designer"))
	assert.NotEqual(t, "ML Engineer", got)
}

func TestExtractRole_Fallback(t *testing.T) {
	// Unknown roles fall back to the first tokens, title-cased.
	assert.Equal(t, "Quantum Compiler Wrangler", extractRole(parseQuery("quantum compiler wrangler with rust")))
	assert.Equal(t, "Software Engineer", extractRole(parseQuery("")))
}

func TestExtractSkills(t *testing.T) {
	p := parseQuery("python developer with sql, aws, kubernetes, docker, react and java")
	skills := extractSkills(p)

	require.Len(t, skills, 5, "skill list is capped")
	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "sql")
	assert.Contains(t, skills, "aws")
}

func TestExtractExperience(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"5+ years backend", 5},
		{"3 yrs python", 3},
		{"10 yoe architect", 10},
		{"2 years exp", 2},
		{"backend developer", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExperience(parseQuery(tt.query)))
		})
	}
}

func TestExtractSeniority(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"senior backend developer", model.SenioritySenior},
		{"sr devops engineer", model.SenioritySenior},
		{"lead data scientist", model.SeniorityLead},
		{"junior python developer", model.SeniorityJunior},
		{"fresher java developer", model.SeniorityJunior},
		{"principal engineer", model.SeniorityPrincipal},
		{"backend developer", model.SeniorityJunior},
		{"backend developer in pune", model.SeniorityJunior},
		{"backend developer 4 years", model.SeniorityMid},
		{"backend developer 6+ years", model.SenioritySenior},
		{"backend developer 9 years", model.SeniorityLead},
		{"python developer 2 years", model.SeniorityJunior},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSeniority(parseQuery(tt.query)))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"developers in bangalore", "Bangalore"},
		{"blr startup hiring", "Bangalore"},
		{"hyd based company", "Hyderabad"},
		{"remote python developer", "Remote"},
		{"developers in springfield", "Remote"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLocation(parseQuery(tt.query)))
		})
	}
}

func TestComputeSignals_Bounds(t *testing.T) {
	roles := []string{"AI Engineer", "Frontend Engineer", "Nonexistent Role"}
	seniorities := []string{model.SeniorityJunior, model.SeniorityMid, model.SenioritySenior, model.SeniorityLead, model.SeniorityPrincipal}
	intents := []string{model.IntentHiring, model.IntentSalary, model.IntentResearch, model.IntentBenchmark, model.IntentGeneral}

	for _, role := range roles {
		for _, sen := range seniorities {
			for _, intent := range intents {
				sig := computeSignals(intent, role, sen, "Bangalore")
				for _, v := range []float64{sig.HiringPressure, sig.RoleScarcity, sig.OutsourcingLikelihood, sig.MarketDifficulty} {
					assert.GreaterOrEqual(t, v, 0.0)
					assert.Less(t, v, 1.0)
				}
			}
		}
	}
}

func TestComputeSignals_PressureMonotonicWithSeniority(t *testing.T) {
	junior := computeSignals(model.IntentHiring, "Backend Engineer", model.SeniorityJunior, "Pune")
	senior := computeSignals(model.IntentHiring, "Backend Engineer", model.SenioritySenior, "Pune")

	assert.Less(t, junior.HiringPressure, senior.HiringPressure)
}

func TestComputeSignals_GeneralIntentCapsPressure(t *testing.T) {
	sig := computeSignals(model.IntentGeneral, "AI Engineer", model.SenioritySenior, "Bangalore")
	assert.LessOrEqual(t, sig.HiringPressure, 0.1)
}

func TestComputeSignals_BangaloreHarderThanUnlisted(t *testing.T) {
	blr := computeSignals(model.IntentHiring, "AI Engineer", model.SenioritySenior, "Bangalore")
	other := computeSignals(model.IntentHiring, "AI Engineer", model.SenioritySenior, "Indore")

	assert.Greater(t, blr.MarketDifficulty, other.MarketDifficulty)
}

func TestComputeSignals_LeadScarcityBoost(t *testing.T) {
	mid := computeSignals(model.IntentHiring, "Backend Engineer", model.SeniorityMid, "Pune")
	lead := computeSignals(model.IntentHiring, "Backend Engineer", model.SeniorityLead, "Pune")

	assert.Greater(t, lead.RoleScarcity, mid.RoleScarcity)
}

func TestComputeSignals_JuniorOutsourcingOverride(t *testing.T) {
	sig := computeSignals(model.IntentHiring, "AI Engineer", model.SeniorityJunior, "Bangalore")
	assert.InDelta(t, 0.2, sig.OutsourcingLikelihood, 0.001)
}
