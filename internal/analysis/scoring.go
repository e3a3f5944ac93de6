package analysis

import (
	"fmt"

	"github.com/udyamlens/udyamlens/internal/models"
)

// penaltyCheck is one evaluated rule from a vertical's rule table. The
// vertical-specific tables produce data; the accumulation below is the
// single shared scoring algorithm.
type penaltyCheck struct {
	Name     string
	Penalty  int
	Breached bool
}

// ScoreMetrics runs the penalty ladder for the metric set's vertical.
// The score starts at 100 and drops by the fixed penalty of every
// breached rule. Penalties are additive, so rule order never changes
// the result. The score is not clamped at 0.
func ScoreMetrics(m models.VerticalMetrics) (models.HealthResult, []models.TriggeredRule, error) {
	var checks []penaltyCheck
	switch v := m.(type) {
	case models.AgricultureMetrics:
		checks = agricultureChecks(v)
	case models.ManufacturingMetrics:
		checks = manufacturingChecks(v)
	case models.RetailMetrics:
		checks = retailChecks(v)
	case models.LogisticsMetrics:
		checks = logisticsChecks(v)
	case models.EcommerceMetrics:
		checks = ecommerceChecks(v)
	default:
		return models.HealthResult{}, nil, fmt.Errorf("unsupported metric set type %T", m)
	}

	result, triggered := scoreChecks(checks)
	return result, triggered, nil
}

func scoreChecks(checks []penaltyCheck) (models.HealthResult, []models.TriggeredRule) {
	score := 100
	var triggered []models.TriggeredRule
	for _, c := range checks {
		if !c.Breached {
			continue
		}
		score -= c.Penalty
		triggered = append(triggered, models.TriggeredRule{Name: c.Name, Penalty: c.Penalty})
	}
	return models.HealthResult{Score: score, Status: statusFor(score)}, triggered
}

// statusFor maps a final score to the three-level label. Thresholds are
// inclusive on the lower bound of each tier.
func statusFor(score int) models.HealthStatus {
	switch {
	case score >= 75:
		return models.StatusHealthy
	case score >= 50:
		return models.StatusWatch
	default:
		return models.StatusStressed
	}
}
