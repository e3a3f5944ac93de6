package analysis

import "github.com/udyamlens/udyamlens/internal/models"

// ExtractEcommerceMetrics aggregates one e-commerce record set. Expenses
// are the sum of COGS, fulfillment, shipping, payment gateway, marketing
// and returns costs.
func ExtractEcommerceMetrics(ds *Dataset) (models.EcommerceMetrics, error) {
	var m models.EcommerceMetrics

	totalRevenue, err := ds.Sum("total_revenue")
	if err != nil {
		return m, err
	}
	totalOrders, err := ds.Sum("orders_count")
	if err != nil {
		return m, err
	}

	cogs, err := ds.Sum("cost_of_goods_sold")
	if err != nil {
		return m, err
	}
	fulfillment, err := ds.Sum("fulfillment_cost")
	if err != nil {
		return m, err
	}
	shipping, err := ds.Sum("shipping_cost")
	if err != nil {
		return m, err
	}
	payment, err := ds.Sum("payment_gateway_cost")
	if err != nil {
		return m, err
	}
	marketing, err := ds.Sum("marketing_cost")
	if err != nil {
		return m, err
	}
	returns, err := ds.Sum("returns_cost")
	if err != nil {
		return m, err
	}
	totalExpenses := cogs + fulfillment + shipping + payment + marketing + returns

	profit := totalRevenue - totalExpenses
	profitMargin := ratioOf(profit, totalRevenue) * 100

	// Contribution of revenue after the variable per-order costs.
	contributionMargin := totalRevenue - (shipping + payment + returns)

	platformFee, err := ds.Mean("platform_fee_percentage")
	if err != nil {
		return m, err
	}
	avgInventory, err := ds.Mean("inventory_value")
	if err != nil {
		return m, err
	}
	returnRate, err := ds.Mean("return_rate_percentage")
	if err != nil {
		return m, err
	}
	meanEMI, err := ds.Mean("emi_amount")
	if err != nil {
		return m, err
	}

	return models.EcommerceMetrics{
		TotalRevenue:           round2(totalRevenue),
		TotalExpenses:          round2(totalExpenses),
		Profit:                 round2(profit),
		ProfitMargin:           round2(profitMargin),
		ContributionMargin:     round2(contributionMargin),
		PlatformFeeRatio:       round2(platformFee / 100),
		InventoryBlockageRatio: round2(ratioOf(avgInventory, totalRevenue)),
		OrderProfitability:     round2(ratioOf(profit, totalOrders)),
		ReturnRatePercentage:   round2(returnRate),
		DebtServiceRatio:       round2(ratioOf(meanEMI, totalRevenue)),
	}, nil
}

func ecommerceChecks(m models.EcommerceMetrics) []penaltyCheck {
	return []penaltyCheck{
		{Name: "profit margin below 8%", Penalty: 25, Breached: m.ProfitMargin < 8},
		{Name: "inventory blockage above 0.5", Penalty: 20, Breached: m.InventoryBlockageRatio > 0.5},
		{Name: "return rate above 20%", Penalty: 15, Breached: m.ReturnRatePercentage > 20},
		{Name: "platform fee ratio above 0.18", Penalty: 10, Breached: m.PlatformFeeRatio > 0.18},
		{Name: "debt service ratio above 0.3", Penalty: 15, Breached: m.DebtServiceRatio > 0.3},
	}
}
