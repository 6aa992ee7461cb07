package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/leadscout/internal/model"
)

func scored(company, role, location string, score float64) ScoredLead {
	return ScoredLead{
		Lead:  model.NormalizedLead{CompanyName: company, Role: role, Location: location},
		Score: score,
	}
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	r := NewRanker(3)

	out := r.Rank([]ScoredLead{
		scored("A", "Engineer", "Pune", 55),
		scored("B", "Engineer", "Pune", 80),
		scored("C", "Engineer", "Pune", 62),
	})

	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].Lead.CompanyName)
	assert.Equal(t, "C", out[1].Lead.CompanyName)
	assert.Equal(t, "A", out[2].Lead.CompanyName)
}

func TestRank_StableForEqualScores(t *testing.T) {
	r := NewRanker(3)
	in := []ScoredLead{
		scored("First", "Engineer", "Pune", 70),
		scored("Second", "Engineer", "Pune", 70),
		scored("Third", "Engineer", "Pune", 70),
	}

	out := r.Rank(in)
	require.Len(t, out, 3)
	assert.Equal(t, "First", out[0].Lead.CompanyName)
	assert.Equal(t, "Second", out[1].Lead.CompanyName)
	assert.Equal(t, "Third", out[2].Lead.CompanyName)
}

func TestRank_DeduplicatesByIdentity(t *testing.T) {
	r := NewRanker(3)

	out := r.Rank([]ScoredLead{
		scored("Acme", "Backend Engineer", "Pune", 80),
		scored("acme", "backend engineer", "pune", 60),
		scored("ACME", "Backend Developer", "Pune", 75),
	})

	// "Developer" and "Engineer" fold together, so all three collapse
	// into the highest-scoring lead.
	require.Len(t, out, 1)
	assert.Equal(t, "Acme", out[0].Lead.CompanyName)
	assert.Equal(t, 80.0, out[0].Score)
}

func TestRank_DistinctRolesSurvive(t *testing.T) {
	r := NewRanker(3)

	out := r.Rank([]ScoredLead{
		scored("Acme", "Backend Engineer", "Pune", 80),
		scored("Acme", "Data Scientist", "Pune", 75),
		scored("Acme", "Backend Engineer", "Mumbai", 70),
	})

	assert.Len(t, out, 3)
}

func TestRank_DensityCap(t *testing.T) {
	r := NewRanker(2)

	out := r.Rank([]ScoredLead{
		scored("Acme", "Role A", "Pune", 90),
		scored("Acme", "Role B", "Pune", 85),
		scored("Acme", "Role C", "Pune", 80),
		scored("Globex", "Role A", "Pune", 70),
	})

	companies := map[string]int{}
	for _, lead := range out {
		companies[lead.Lead.CompanyName]++
	}
	assert.Equal(t, 2, companies["Acme"], "cap limits one company's share")
	assert.Equal(t, 1, companies["Globex"])
}

func TestRank_DropsEmptyCompany(t *testing.T) {
	r := NewRanker(3)

	out := r.Rank([]ScoredLead{
		scored("", "Engineer", "Pune", 90),
		scored("  ", "Engineer", "Pune", 85),
		scored("Acme", "Engineer", "Pune", 60),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Acme", out[0].Lead.CompanyName)
}

func TestRank_PairwiseDistinctKeys(t *testing.T) {
	r := NewRanker(5)

	out := r.Rank([]ScoredLead{
		scored("Acme", "Backend Dev", "Pune", 90),
		scored("Acme", "Backend Engineer", "Pune", 85),
		scored("Globex", "ML Engineer", "Remote", 80),
		scored("Globex", "ML Eng", "Remote", 75),
		scored("Initech", "iOS Developer", "Mumbai", 70),
	})

	seen := map[string]bool{}
	for _, lead := range out {
		key := dedupKey(lead)
		assert.False(t, seen[key], "duplicate key %q in output", key)
		seen[key] = true
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	r := NewRanker(3)
	in := []ScoredLead{
		scored("A", "Engineer", "Pune", 55),
		scored("B", "Engineer", "Pune", 80),
	}

	r.Rank(in)
	assert.Equal(t, "A", in[0].Lead.CompanyName)
	assert.Equal(t, "B", in[1].Lead.CompanyName)
}

func TestNewRanker_DefaultCap(t *testing.T) {
	r := NewRanker(0)
	assert.Equal(t, DefaultDensityCap, r.densityCap)
}

func TestFoldRole(t *testing.T) {
	assert.Equal(t, foldRole("Backend Developer"), foldRole("backend dev"))
	assert.Equal(t, foldRole("ML Engineer"), foldRole("ml eng"))
	assert.NotEqual(t, foldRole("Backend Engineer"), foldRole("Frontend Engineer"))
}
