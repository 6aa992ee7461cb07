// Package intelligence turns a free-text recruiter query into a structured
// intent/role/location/seniority profile plus four normalized market
// signals. Processing is pure and deterministic: no I/O, no clock, no
// randomness, so identical queries always yield identical results.
package intelligence

import "github.com/scoutline/leadscout/internal/model"

// Engine is the deterministic query-intelligence extractor.
type Engine struct{}

// NewEngine creates an intelligence engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Process parses the query and derives the intelligence profile consumed
// by the search orchestrator (as constraints) and the scorer (as signals).
func (e *Engine) Process(query string) model.IntelligenceResult {
	parsed := parseQuery(query)

	intent := classifyIntent(parsed)
	profile := extractProfile(parsed)
	signals := computeSignals(intent, profile.role, profile.seniority, profile.location)

	return model.IntelligenceResult{
		Intent:     intent,
		Role:       profile.role,
		Skills:     profile.skills,
		Experience: profile.experience,
		Seniority:  profile.seniority,
		Location:   profile.location,
		Signals:    signals,
	}
}
