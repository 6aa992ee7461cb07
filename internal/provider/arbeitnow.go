package provider

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/model"
	"github.com/scoutline/leadscout/pkg/arbeitnow"
)

// SourceArbeitnow is the provider name recorded in telemetry and leads.
const SourceArbeitnow = "arbeitnow"

// Arbeitnow wraps the Arbeitnow job-board API as a data source.
type Arbeitnow struct {
	client arbeitnow.Client
	guard  guard
}

// NewArbeitnow creates the Arbeitnow provider.
func NewArbeitnow(client arbeitnow.Client, opts Options) *Arbeitnow {
	return &Arbeitnow{client: client, guard: newGuard(opts)}
}

// Name implements DataSource.
func (p *Arbeitnow) Name() string { return SourceArbeitnow }

// Fetch implements DataSource. The API has no server-side search, so the
// first page is fetched and filtered against the role constraint.
func (p *Arbeitnow) Fetch(ctx context.Context, query string, c Constraints) ([]model.RawRecord, error) {
	return call(ctx, p.guard, func(ctx context.Context) ([]model.RawRecord, error) {
		resp, err := p.client.Jobs(ctx, 1)
		if err != nil {
			return nil, err
		}

		records := make([]model.RawRecord, 0, len(resp.Data))
		for _, job := range resp.Data {
			if !matchesRole(c.Role, job.Title, job.Description, joinTags(job.Tags)) {
				continue
			}
			location := job.Location
			if location == "" && job.Remote {
				location = "Remote"
			}
			records = append(records, model.RawRecord{
				"company":     job.CompanyName,
				"title":       job.Title,
				"location":    location,
				"url":         job.URL,
				"description": job.Description,
				"tags":        job.Tags,
				"source":      SourceArbeitnow,
			})
		}

		zap.L().Debug("provider: arbeitnow fetch",
			zap.Int("total", len(resp.Data)),
			zap.Int("matched", len(records)),
		)
		return records, nil
	})
}

func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}
