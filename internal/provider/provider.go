// Package provider defines the data source abstraction the search
// orchestrator fans out to, plus the concrete providers. Every provider
// owns a private circuit breaker, a rate limiter, and a per-call timeout,
// so one flaky upstream cannot degrade the rest of the pipeline.
package provider

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"github.com/scoutline/leadscout/internal/model"
	"github.com/scoutline/leadscout/internal/resilience"
)

// Constraints narrow a provider fetch to the parsed query profile.
type Constraints struct {
	Role      string
	Location  string
	Skills    []string
	Seniority string
}

// DataSource is one pluggable external lead source.
type DataSource interface {
	// Name identifies the provider in telemetry and lead records.
	Name() string

	// Fetch returns raw untyped records for the query. It returns
	// resilience.ErrOpen without touching the network while the
	// provider's circuit breaker is open.
	Fetch(ctx context.Context, query string, c Constraints) ([]model.RawRecord, error)
}

// Options are the per-provider resilience knobs, shared by all concrete
// providers and derived from config.
type Options struct {
	// Timeout bounds each upstream call. Default: 10s.
	Timeout time.Duration

	// BreakerThreshold is the consecutive-failure count that opens the
	// circuit. Default: 3.
	BreakerThreshold int

	// BreakerReset is how long the circuit stays open. Default: 30s.
	BreakerReset time.Duration

	// RequestsPerSecond caps the call rate to the upstream. Default: 1.
	RequestsPerSecond float64
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.BreakerThreshold <= 0 {
		o.BreakerThreshold = 3
	}
	if o.BreakerReset <= 0 {
		o.BreakerReset = 30 * time.Second
	}
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = 1
	}
	return o
}

// guard bundles the breaker, limiter and timeout shared by every provider.
type guard struct {
	breaker *resilience.Breaker
	limiter *rate.Limiter
	timeout time.Duration
}

func newGuard(opts Options) guard {
	opts = opts.withDefaults()
	return guard{
		breaker: resilience.NewBreaker(resilience.BreakerConfig{
			FailureThreshold: opts.BreakerThreshold,
			ResetTimeout:     opts.BreakerReset,
		}),
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		timeout: opts.Timeout,
	}
}

// call runs fn under the guard: rate limit first, then breaker, then a
// bounded timeout around the upstream call. A timeout surfaces as a plain
// error and therefore counts as a breaker failure.
func call[T any](ctx context.Context, g guard, fn func(ctx context.Context) (T, error)) (T, error) {
	return resilience.Call(ctx, g.breaker, func(ctx context.Context) (T, error) {
		var zero T
		if err := g.limiter.Wait(ctx); err != nil {
			return zero, err
		}
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return fn(cctx)
	})
}

// matchesRole reports whether any role token appears as a whole word in
// the haystack fields. Generic filler tokens are ignored so "Senior AI
// Engineer" matches on "ai", not on "engineer" alone matching everything.
func matchesRole(role string, haystacks ...string) bool {
	tokens := splitWords(role)
	if len(tokens) == 0 {
		return true
	}

	words := make(map[string]bool)
	for _, h := range haystacks {
		for _, w := range splitWords(h) {
			words[w] = true
		}
	}

	matched := false
	for _, tok := range tokens {
		if genericRoleTokens[tok] {
			continue
		}
		matched = true
		if words[tok] {
			return true
		}
	}
	// Only generic tokens to match against: fall back to requiring one.
	if !matched {
		for _, tok := range tokens {
			if words[tok] {
				return true
			}
		}
	}
	return false
}

// splitWords lowercases s and splits on anything that is not a letter or
// digit, so role token "ai" matches the word "AI" but never the inside of
// "maintain".
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

var genericRoleTokens = map[string]bool{
	"engineer":  true,
	"developer": true,
	"jobs":      true,
	"job":       true,
}
