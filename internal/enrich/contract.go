package enrich

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/scoutline/leadscout/internal/model"
)

// UnknownCompany is the sentinel written when a lead somehow reaches the
// outward contract without a company name.
const UnknownCompany = "Unknown Company"

// Contract is the final schema gate before leads leave the system. It
// clamps numeric fields into their documented ranges, fills sentinels,
// and guarantees list fields are never null in JSON.
type Contract struct{}

// NewContract creates a Contract.
func NewContract() *Contract {
	return &Contract{}
}

// Apply enforces the outward schema on a single lead.
func (c *Contract) Apply(lead model.EnrichedLead) model.EnrichedLead {
	if strings.TrimSpace(lead.CompanyName) == "" {
		zap.L().Warn("contract: lead missing company name, writing sentinel",
			zap.String("role", lead.Role),
			zap.String("source", lead.Source),
		)
		lead.CompanyName = UnknownCompany
	}
	// Legacy alias field mirrors its canonical counterpart.
	lead.Company = lead.CompanyName

	lead.Score = clamp(lead.Score, 0, 100)
	lead.Confidence = clamp(lead.Confidence, 0, 1)

	if lead.Skills == nil {
		lead.Skills = []string{}
	}
	if lead.Reasons == nil {
		lead.Reasons = []string{}
	}
	return lead
}

// ApplyBatch enforces the contract on every lead in order.
func (c *Contract) ApplyBatch(leads []model.EnrichedLead) []model.EnrichedLead {
	out := make([]model.EnrichedLead, 0, len(leads))
	for _, lead := range leads {
		out = append(out, c.Apply(lead))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
