package intelligence

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scoutline/leadscout/internal/model"
)

// roleProfile holds the entities extracted from a query.
type roleProfile struct {
	role       string
	skills     []string
	experience int
	seniority  string
	location   string
}

const maxSkills = 5

var skillVocabulary = []string{
	"python", "ml", "ai", "sql", "aws", "react", "node", "java",
	"golang", "c++", "kubernetes", "docker", "gcp", "azure",
}

// roleOverrides are high-priority substring rules checked after the
// longest-keyword match, so compound phrases like "machine learning" beat a
// generic table hit. Single-token patterns use token matching to avoid
// false hits inside words ("ml" in "html").
var roleOverrides = []struct {
	phrases []string
	tokens  []string
	role    string
}{
	{phrases: []string{"machine learning"}, tokens: []string{"ml"}, role: "ML Engineer"},
	{phrases: []string{"artificial intelligence"}, tokens: []string{"ai"}, role: "AI Engineer"},
	{phrases: []string{"data scientist"}, tokens: []string{"ds"}, role: "Data Scientist"},
	{tokens: []string{"backend"}, role: "Backend Engineer"},
	{tokens: []string{"frontend"}, role: "Frontend Engineer"},
	{tokens: []string{"devops"}, role: "DevOps Engineer"},
	{phrases: []string{"full stack"}, tokens: []string{"fullstack"}, role: "Full Stack Engineer"},
	{tokens: []string{"android"}, role: "Android Developer"},
	{tokens: []string{"ios"}, role: "iOS Developer"},
}

var cityVocabulary = []string{
	"bangalore", "mumbai", "pune", "delhi", "remote", "hyderabad",
	"chennai", "ncr", "gurgaon", "noida", "jaipur", "kolkata", "ahmedabad",
}

var cityAliases = []struct {
	alias string
	city  string
}{
	{"blr", "Bangalore"},
	{"hyd", "Hyderabad"},
}

var experiencePattern = regexp.MustCompile(`(\d+)\s*\+?\s*(year|yrs|yoe|exp)`)

var titleCaser = cases.Title(language.English)

func extractProfile(p parsedQuery) roleProfile {
	return roleProfile{
		role:       extractRole(p),
		skills:     extractSkills(p),
		experience: extractExperience(p),
		seniority:  extractSeniority(p),
		location:   extractLocation(p),
	}
}

func extractRole(p parsedQuery) string {
	// Longest keyword match over the known-role table. Keys are visited in
	// sorted order so equal-length ties resolve the same way every call.
	role := ""
	known := make([]string, 0, len(roleScarcity))
	for r := range roleScarcity {
		known = append(known, r)
	}
	sort.Strings(known)

	bestLen := 0
	for _, r := range known {
		if p.contains(strings.ToLower(r)) && len(r) > bestLen {
			role = r
			bestLen = len(r)
		}
	}

	for _, rule := range roleOverrides {
		if matchesOverride(p, rule.phrases, rule.tokens) {
			return rule.role
		}
	}

	if role != "" {
		return role
	}
	if len(p.tokens) == 0 {
		return "Software Engineer"
	}
	n := len(p.tokens)
	if n > 3 {
		n = 3
	}
	return titleCaser.String(strings.Join(p.tokens[:n], " "))
}

func matchesOverride(p parsedQuery, phrases, tokens []string) bool {
	for _, ph := range phrases {
		if p.contains(ph) {
			return true
		}
	}
	for _, tok := range tokens {
		if p.hasToken(tok) {
			return true
		}
	}
	return false
}

func extractSkills(p parsedQuery) []string {
	var skills []string
	for _, skill := range skillVocabulary {
		if len(skills) == maxSkills {
			break
		}
		if len(skill) <= 3 && !strings.Contains(skill, "+") {
			if p.hasToken(skill) {
				skills = append(skills, skill)
			}
			continue
		}
		if p.contains(skill) {
			skills = append(skills, skill)
		}
	}
	return skills
}

func extractExperience(p parsedQuery) int {
	m := experiencePattern.FindStringSubmatch(p.normalized)
	if m == nil {
		return 0
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return years
}

func extractSeniority(p parsedQuery) string {
	seniority := model.SeniorityMid
	switch {
	case p.hasToken("senior") || p.hasToken("sr"):
		seniority = model.SenioritySenior
	case p.hasToken("lead"):
		seniority = model.SeniorityLead
	case p.hasToken("junior") || p.hasToken("jr") || p.hasToken("fresher"):
		seniority = model.SeniorityJunior
	case p.hasToken("principal"):
		seniority = model.SeniorityPrincipal
	}

	// Infer from experience when the query did not say it outright.
	exp := extractExperience(p)
	if exp >= 5 && seniority == model.SeniorityMid {
		seniority = model.SenioritySenior
	}
	if exp >= 8 && seniority == model.SenioritySenior {
		seniority = model.SeniorityLead
	}
	if exp <= 2 && seniority == model.SeniorityMid {
		seniority = model.SeniorityJunior
	}
	return seniority
}

func extractLocation(p parsedQuery) string {
	for _, city := range cityVocabulary {
		if p.contains(city) {
			return titleCaser.String(city)
		}
	}
	for _, a := range cityAliases {
		if p.hasToken(a.alias) {
			return a.city
		}
	}
	return "Remote"
}
