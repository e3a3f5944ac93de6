package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udyamlens/udyamlens/internal/models"
)

func TestClassifyCredit(t *testing.T) {
	tests := []struct {
		score int
		want  models.CreditRisk
	}{
		{100, models.RiskLow},
		{76, models.RiskLow},
		{75, models.RiskLow},
		{74, models.RiskMedium},
		{51, models.RiskMedium},
		{50, models.RiskMedium},
		{49, models.RiskHigh},
		{0, models.RiskHigh},
		{-20, models.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyCredit(tt.score), "score=%d", tt.score)
	}
}
