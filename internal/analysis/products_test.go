package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udyamlens/udyamlens/internal/models"
)

func TestRecommendProducts(t *testing.T) {
	tests := []struct {
		name     string
		vertical models.Vertical
		risk     models.CreditRisk
		want     []string
	}{
		{
			name:     "retail high risk gets the fixed support set",
			vertical: models.VerticalRetail,
			risk:     models.RiskHigh,
			want: []string{
				"Secured NBFC Loan",
				"Short-term Working Capital Support",
				"Government-backed Credit Schemes",
			},
		},
		{
			name:     "agriculture low risk",
			vertical: models.VerticalAgriculture,
			risk:     models.RiskLow,
			want:     []string{"Bank Working Capital Loan", "Term Loan at Lower Interest"},
		},
		{
			name:     "manufacturing low risk adds machinery loan",
			vertical: models.VerticalManufacturing,
			risk:     models.RiskLow,
			want: []string{
				"Bank Working Capital Loan",
				"Term Loan at Lower Interest",
				"Machinery / Equipment Loan",
			},
		},
		{
			name:     "logistics low risk adds fleet loan",
			vertical: models.VerticalLogistics,
			risk:     models.RiskLow,
			want: []string{
				"Bank Working Capital Loan",
				"Term Loan at Lower Interest",
				"Fleet Expansion Loan",
			},
		},
		{
			name:     "ecommerce low risk adds growth credit",
			vertical: models.VerticalEcommerce,
			risk:     models.RiskLow,
			want: []string{
				"Bank Working Capital Loan",
				"Term Loan at Lower Interest",
				"Growth Capital / Line of Credit",
			},
		},
		{
			name:     "agriculture medium risk includes KCC",
			vertical: models.VerticalAgriculture,
			risk:     models.RiskMedium,
			want: []string{
				"NBFC Working Capital Loan",
				"Invoice Discounting",
				"Kisan Credit Card (KCC)",
			},
		},
		{
			name:     "retail medium risk includes inventory financing",
			vertical: models.VerticalRetail,
			risk:     models.RiskMedium,
			want: []string{
				"NBFC Working Capital Loan",
				"Invoice Discounting",
				"Inventory Financing",
			},
		},
		{
			name:     "ecommerce medium risk includes inventory financing",
			vertical: models.VerticalEcommerce,
			risk:     models.RiskMedium,
			want: []string{
				"NBFC Working Capital Loan",
				"Invoice Discounting",
				"Inventory Financing",
			},
		},
		{
			name:     "logistics medium risk has only the generic pair",
			vertical: models.VerticalLogistics,
			risk:     models.RiskMedium,
			want:     []string{"NBFC Working Capital Loan", "Invoice Discounting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendProducts(tt.vertical, tt.risk)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommendProducts_HighRiskIdenticalAcrossVerticals(t *testing.T) {
	want := RecommendProducts(models.VerticalAgriculture, models.RiskHigh)
	for _, v := range models.Verticals {
		assert.Equal(t, want, RecommendProducts(v, models.RiskHigh), "vertical=%s", v)
	}
}

func TestRecommendProducts_NoDuplicates(t *testing.T) {
	for _, v := range models.Verticals {
		for _, risk := range []models.CreditRisk{models.RiskLow, models.RiskMedium, models.RiskHigh} {
			seen := make(map[string]bool)
			for _, p := range RecommendProducts(v, risk) {
				assert.False(t, seen[p], "duplicate product %q for %s/%s", p, v, risk)
				seen[p] = true
			}
		}
	}
}
