package analysis

import (
	"strings"

	"github.com/udyamlens/udyamlens/internal/models"
)

// ExtractAgricultureMetrics aggregates one agriculture record set into
// its metric set. All aggregations run across the whole set; the unit of
// analysis is the business's year, not a single month.
func ExtractAgricultureMetrics(ds *Dataset) (models.AgricultureMetrics, error) {
	var m models.AgricultureMetrics

	totalRevenue, err := ds.Sum("total_revenue")
	if err != nil {
		return m, err
	}
	totalExpenses, err := ds.Sum("total_expenses")
	if err != nil {
		return m, err
	}

	profit := totalRevenue - totalExpenses
	profitMargin := ratioOf(profit, totalRevenue) * 100

	avgLossPct, err := ds.Mean("inventory_loss_percentage")
	if err != nil {
		return m, err
	}
	lossValue := totalRevenue * (avgLossPct / 100)
	effectiveProfit := profit - lossValue

	meanEMI, err := ds.Mean("emi_amount")
	if err != nil {
		return m, err
	}

	storageType, err := ds.Mode("storage_type")
	if err != nil {
		return m, err
	}
	season, err := ds.Mode("season")
	if err != nil {
		return m, err
	}
	crop, err := ds.Mode("primary_crop_type")
	if err != nil {
		return m, err
	}

	return models.AgricultureMetrics{
		TotalRevenue:            round2(totalRevenue),
		TotalExpenses:           round2(totalExpenses),
		Profit:                  round2(profit),
		ProfitMargin:            round2(profitMargin),
		EffectiveProfit:         round2(effectiveProfit),
		InventoryLossPercentage: round2(avgLossPct),
		InventoryLossValue:      round2(lossValue),
		CostPressureRatio:       round2(ratioOf(totalExpenses, totalRevenue)),
		DebtServiceRatio:        round2(ratioOf(meanEMI, totalRevenue)),
		Season:                  season,
		PrimaryCropType:         crop,
		StorageRiskScore:        storageRiskScore(storageType),
	}, nil
}

// storageRiskScore maps the modal storage type to a fixed risk score.
// Unrecognized categories default to medium risk.
func storageRiskScore(storageType string) int {
	switch strings.ToLower(storageType) {
	case "open":
		return 80
	case "warehouse":
		return 50
	case "cold_storage":
		return 20
	default:
		return 50
	}
}

func agricultureChecks(m models.AgricultureMetrics) []penaltyCheck {
	return []penaltyCheck{
		{Name: "profit margin below 10%", Penalty: 25, Breached: m.ProfitMargin < 10},
		{Name: "debt service ratio above 0.3", Penalty: 20, Breached: m.DebtServiceRatio > 0.3},
		{Name: "inventory loss above 5%", Penalty: 15, Breached: m.InventoryLossPercentage > 5},
		{Name: "high-risk storage", Penalty: 10, Breached: m.StorageRiskScore > 60},
	}
}
