package intelligence

import (
	"regexp"
	"strings"
)

// parsedQuery is the lexical view of a recruiter query: lowercased, with
// everything except letters, digits, spaces and '+' stripped. The '+' is
// kept so experience phrases like "4+ years" survive normalization.
type parsedQuery struct {
	raw        string
	normalized string
	tokens     []string
	tokenSet   map[string]bool
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s+]`)

func parseQuery(query string) parsedQuery {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = nonAlnum.ReplaceAllString(normalized, "")

	tokens := strings.Fields(normalized)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[strings.TrimSuffix(t, "+")] = true
	}

	return parsedQuery{
		raw:        query,
		normalized: normalized,
		tokens:     tokens,
		tokenSet:   set,
	}
}

func (p parsedQuery) hasToken(tok string) bool {
	return p.tokenSet[tok]
}

func (p parsedQuery) contains(phrase string) bool {
	return strings.Contains(p.normalized, phrase)
}
