package search

import (
	"sort"
	"strings"
)

// DefaultDensityCap bounds how many leads a single company may occupy in
// the final ranking so one heavy poster cannot crowd out the list.
const DefaultDensityCap = 3

// Ranker orders scored leads, removes duplicates, and enforces the
// per-company density cap.
type Ranker struct {
	densityCap int
}

// NewRanker creates a Ranker. A cap below 1 falls back to the default.
func NewRanker(densityCap int) *Ranker {
	if densityCap < 1 {
		densityCap = DefaultDensityCap
	}
	return &Ranker{densityCap: densityCap}
}

// Rank sorts leads by score descending and removes duplicates. Equal-score
// leads keep their input order, so ranking is deterministic for a fixed
// merge order upstream. Deduplication keeps the first (highest scoring)
// lead per identity key.
func (r *Ranker) Rank(leads []ScoredLead) []ScoredLead {
	sorted := make([]ScoredLead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	seen := make(map[string]struct{}, len(sorted))
	perCompany := make(map[string]int)
	out := make([]ScoredLead, 0, len(sorted))
	for _, lead := range sorted {
		companyKey := strings.ToLower(strings.TrimSpace(lead.Lead.CompanyName))
		if companyKey == "" {
			continue
		}
		key := dedupKey(lead)
		if _, dup := seen[key]; dup {
			continue
		}
		if perCompany[companyKey] >= r.densityCap {
			continue
		}
		seen[key] = struct{}{}
		perCompany[companyKey]++
		out = append(out, lead)
	}
	return out
}

// dedupKey builds the identity key for a lead. Role words are folded so
// "Backend Developer" and "Backend Engineer" collapse together.
func dedupKey(lead ScoredLead) string {
	return strings.ToLower(strings.TrimSpace(lead.Lead.CompanyName)) + "|" +
		foldRole(lead.Lead.Role) + "|" +
		strings.ToLower(strings.TrimSpace(lead.Lead.Location))
}

var roleFolds = map[string]string{
	"developer": "dev",
	"dev":       "dev",
	"engineer":  "eng",
	"eng":       "eng",
}

func foldRole(role string) string {
	words := strings.Fields(strings.ToLower(role))
	for i, w := range words {
		if folded, ok := roleFolds[w]; ok {
			words[i] = folded
		}
	}
	return strings.Join(words, " ")
}
