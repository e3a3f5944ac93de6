package analysis

import "github.com/udyamlens/udyamlens/internal/models"

// ExtractRetailMetrics aggregates one retail record set. Expenses are
// the sum of COGS, store operating, logistics and loss costs.
func ExtractRetailMetrics(ds *Dataset) (models.RetailMetrics, error) {
	var m models.RetailMetrics

	totalRevenue, err := ds.Sum("total_revenue")
	if err != nil {
		return m, err
	}

	cogs, err := ds.Sum("cost_of_goods_sold")
	if err != nil {
		return m, err
	}
	storeCost, err := ds.Sum("store_operating_cost")
	if err != nil {
		return m, err
	}
	logisticsCost, err := ds.Sum("logistics_cost")
	if err != nil {
		return m, err
	}
	lossCost, err := ds.Sum("loss_cost")
	if err != nil {
		return m, err
	}
	totalExpenses := cogs + storeCost + logisticsCost + lossCost

	profit := totalRevenue - totalExpenses
	profitMargin := ratioOf(profit, totalRevenue) * 100

	avgInventory, err := ds.Mean("inventory_value")
	if err != nil {
		return m, err
	}

	slowMoving, err := ds.Mean("slow_moving_inventory_percentage")
	if err != nil {
		return m, err
	}
	expired, err := ds.Mean("expired_inventory_percentage")
	if err != nil {
		return m, err
	}
	// Slow movers weigh more than outright expiry: they tie up capital
	// for longer before the loss is realized.
	inventoryRisk := slowMoving*0.6 + expired*0.4

	discount, err := ds.Mean("discount_percentage")
	if err != nil {
		return m, err
	}
	meanEMI, err := ds.Mean("emi_amount")
	if err != nil {
		return m, err
	}

	return models.RetailMetrics{
		TotalRevenue:           round2(totalRevenue),
		TotalExpenses:          round2(totalExpenses),
		Profit:                 round2(profit),
		ProfitMargin:           round2(profitMargin),
		InventoryBlockageRatio: round2(ratioOf(avgInventory, totalRevenue)),
		InventoryRiskScore:     round2(inventoryRisk),
		DiscountImpactRatio:    round2(discount / 100),
		LossCostRatio:          round2(ratioOf(lossCost, totalRevenue)),
		DebtServiceRatio:       round2(ratioOf(meanEMI, totalRevenue)),
	}, nil
}

func retailChecks(m models.RetailMetrics) []penaltyCheck {
	return []penaltyCheck{
		{Name: "profit margin below 8%", Penalty: 25, Breached: m.ProfitMargin < 8},
		{Name: "inventory blockage above 0.5", Penalty: 20, Breached: m.InventoryBlockageRatio > 0.5},
		{Name: "inventory risk above 30", Penalty: 15, Breached: m.InventoryRiskScore > 30},
		{Name: "discount impact above 0.2", Penalty: 10, Breached: m.DiscountImpactRatio > 0.2},
		{Name: "debt service ratio above 0.3", Penalty: 15, Breached: m.DebtServiceRatio > 0.3},
	}
}
