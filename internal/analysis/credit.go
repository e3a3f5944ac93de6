package analysis

import "github.com/udyamlens/udyamlens/internal/models"

// ClassifyCredit maps a health score to a credit-risk tier. One shared
// rule for every vertical; thresholds are inclusive on the lower bound
// of each tier and deliberately mirror the health-status thresholds.
func ClassifyCredit(score int) models.CreditRisk {
	switch {
	case score >= 75:
		return models.RiskLow
	case score >= 50:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
