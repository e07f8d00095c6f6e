package fatigue

import "github.com/railsafe/roster-backend-go/internal/domain/compliance"

// Result is the fatigue risk index for one occurrence.
type Result struct {
	Occurrence compliance.Occurrence
	RiskIndex  float64
	RawScore   float64 // unnormalized per-shift fatigue score, used by the score tiers
	Band       RiskBand
}

// RiskBand is the qualitative display bucket for a risk index. The band
// cut points are independent of the breach threshold on the same score;
// both families serve different compliance clauses and both are kept.
type RiskBand string

const (
	BandLow      RiskBand = "low"      // < 1.0
	BandModerate RiskBand = "moderate" // 1.0 - 1.1
	BandElevated RiskBand = "elevated" // 1.1 - 1.2
	BandCritical RiskBand = "critical" // >= 1.2
)

// BandFor buckets a risk index for display.
func BandFor(riskIndex float64) RiskBand {
	switch {
	case riskIndex >= 1.2:
		return BandCritical
	case riskIndex >= 1.1:
		return BandElevated
	case riskIndex >= 1.0:
		return BandModerate
	default:
		return BandLow
	}
}

// Summary aggregates a set of results for dashboard display.
type Summary struct {
	MaxFRI      float64
	AvgFRI      float64
	OverallRisk RiskBand
}
