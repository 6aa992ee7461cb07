package provider

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/model"
	"github.com/scoutline/leadscout/pkg/websearch"
)

// SourceWebSearch is the provider name recorded in telemetry and leads.
const SourceWebSearch = "websearch"

const webSearchLimit = 10

// WebSearch discovers live postings by searching known job boards through
// a web search engine. Companies are recovered heuristically from result
// titles, so records from this source carry lower trust downstream.
type WebSearch struct {
	client websearch.Client
	guard  guard
}

// NewWebSearch creates the web search provider.
func NewWebSearch(client websearch.Client, opts Options) *WebSearch {
	return &WebSearch{client: client, guard: newGuard(opts)}
}

// Name implements DataSource.
func (p *WebSearch) Name() string { return SourceWebSearch }

// Fetch implements DataSource.
func (p *WebSearch) Fetch(ctx context.Context, query string, c Constraints) ([]model.RawRecord, error) {
	return call(ctx, p.guard, func(ctx context.Context) ([]model.RawRecord, error) {
		role := c.Role
		if role == "" {
			role = query
		}
		location := c.Location
		if location == "" {
			location = "Remote"
		}

		searchQuery := fmt.Sprintf(
			"%s jobs %s site:linkedin.com/jobs OR site:indeed.com OR site:greenhouse.io",
			role, location,
		)

		results, err := p.client.Search(ctx, searchQuery, webSearchLimit)
		if err != nil {
			return nil, err
		}

		records := make([]model.RawRecord, 0, len(results))
		for _, r := range results {
			company := companyFromTitle(r.Title)
			if company == "" {
				continue
			}
			records = append(records, model.RawRecord{
				"company":     company,
				"title":       r.Title,
				"location":    location,
				"url":         r.URL,
				"description": r.Snippet,
				"tags":        []string{"Active Hiring"},
				"source":      SourceWebSearch,
			})
		}

		zap.L().Debug("provider: websearch fetch",
			zap.Int("results", len(results)),
			zap.Int("records", len(records)),
		)
		return records, nil
	})
}

// companyFromTitle recovers a company name from a search result title like
// "Senior AI Engineer at Acme | LinkedIn" or "ML Engineer - Initech".
func companyFromTitle(title string) string {
	company := ""
	switch {
	case strings.Contains(title, " at "):
		parts := strings.Split(title, " at ")
		company = strings.SplitN(parts[len(parts)-1], "|", 2)[0]
	case strings.Contains(title, "|"):
		parts := strings.Split(title, "|")
		company = parts[len(parts)-1]
	case strings.Contains(title, " - "):
		parts := strings.Split(title, " - ")
		company = parts[len(parts)-1]
	}

	for _, boardName := range []string{"LinkedIn", "Indeed", "Greenhouse"} {
		company = strings.ReplaceAll(company, boardName, "")
	}
	return strings.TrimSpace(company)
}
