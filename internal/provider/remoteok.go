package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/model"
	"github.com/scoutline/leadscout/pkg/remoteok"
)

// SourceRemoteOK is the provider name recorded in telemetry and leads.
const SourceRemoteOK = "remoteok"

// RemoteOK wraps the RemoteOK API as a data source. Every posting it
// returns is remote, so the location constraint is not applied.
type RemoteOK struct {
	client remoteok.Client
	guard  guard
}

// NewRemoteOK creates the RemoteOK provider.
func NewRemoteOK(client remoteok.Client, opts Options) *RemoteOK {
	return &RemoteOK{client: client, guard: newGuard(opts)}
}

// Name implements DataSource.
func (p *RemoteOK) Name() string { return SourceRemoteOK }

// Fetch implements DataSource.
func (p *RemoteOK) Fetch(ctx context.Context, query string, c Constraints) ([]model.RawRecord, error) {
	return call(ctx, p.guard, func(ctx context.Context) ([]model.RawRecord, error) {
		jobs, err := p.client.Jobs(ctx)
		if err != nil {
			return nil, err
		}

		records := make([]model.RawRecord, 0, len(jobs))
		for _, job := range jobs {
			if !matchesRole(c.Role, job.Position, job.Description, joinTags(job.Tags)) {
				continue
			}
			location := job.Location
			if location == "" {
				location = "Remote"
			}
			rec := model.RawRecord{
				"company":     job.Company,
				"title":       job.Position,
				"location":    location,
				"url":         job.URL,
				"description": job.Description,
				"tags":        job.Tags,
				"source":      SourceRemoteOK,
			}
			if job.SalaryMin > 0 && job.SalaryMax > 0 {
				rec["salary_range"] = fmt.Sprintf("$%d-$%d", job.SalaryMin, job.SalaryMax)
			}
			records = append(records, rec)
		}

		zap.L().Debug("provider: remoteok fetch",
			zap.Int("total", len(jobs)),
			zap.Int("matched", len(records)),
		)
		return records, nil
	})
}
