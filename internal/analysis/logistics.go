package analysis

import "github.com/udyamlens/udyamlens/internal/models"

// ExtractLogisticsMetrics aggregates one logistics record set. Expenses
// are the sum of fuel, driver wages, vehicle, warehouse and other
// operating costs.
func ExtractLogisticsMetrics(ds *Dataset) (models.LogisticsMetrics, error) {
	var m models.LogisticsMetrics

	totalRevenue, err := ds.Sum("total_revenue")
	if err != nil {
		return m, err
	}

	fuelCost, err := ds.Sum("fuel_cost")
	if err != nil {
		return m, err
	}
	driverWages, err := ds.Sum("driver_wages")
	if err != nil {
		return m, err
	}
	vehicleCost, err := ds.Sum("vehicle_cost")
	if err != nil {
		return m, err
	}
	warehouseCost, err := ds.Sum("warehouse_cost")
	if err != nil {
		return m, err
	}
	otherCost, err := ds.Sum("other_operating_cost")
	if err != nil {
		return m, err
	}
	totalExpenses := fuelCost + driverWages + vehicleCost + warehouseCost + otherCost

	profit := totalRevenue - totalExpenses
	profitMargin := ratioOf(profit, totalRevenue) * 100

	totalDistance, err := ds.Sum("distance_km")
	if err != nil {
		return m, err
	}
	totalShipments, err := ds.Sum("total_shipments")
	if err != nil {
		return m, err
	}

	inTransit, err := ds.Mean("avg_goods_in_transit_value")
	if err != nil {
		return m, err
	}
	onTime, err := ds.Mean("on_time_delivery_percentage")
	if err != nil {
		return m, err
	}
	meanEMI, err := ds.Mean("emi_amount")
	if err != nil {
		return m, err
	}

	return models.LogisticsMetrics{
		TotalRevenue:             round2(totalRevenue),
		TotalExpenses:            round2(totalExpenses),
		Profit:                   round2(profit),
		ProfitMargin:             round2(profitMargin),
		CostPerKm:                round2(ratioOf(totalExpenses, totalDistance)),
		RevenuePerShipment:       round2(ratioOf(totalRevenue, totalShipments)),
		FuelCostRatio:            round2(ratioOf(fuelCost, totalExpenses)),
		AssetBlockageRatio:       round2(ratioOf(inTransit, totalRevenue)),
		OnTimeDeliveryPercentage: round2(onTime),
		DebtServiceRatio:         round2(ratioOf(meanEMI, totalRevenue)),
	}, nil
}

func logisticsChecks(m models.LogisticsMetrics) []penaltyCheck {
	return []penaltyCheck{
		{Name: "profit margin below 10%", Penalty: 25, Breached: m.ProfitMargin < 10},
		{Name: "on-time delivery below 90%", Penalty: 20, Breached: m.OnTimeDeliveryPercentage < 90},
		{Name: "fuel cost ratio above 0.4", Penalty: 15, Breached: m.FuelCostRatio > 0.4},
		{Name: "asset blockage above 0.4", Penalty: 15, Breached: m.AssetBlockageRatio > 0.4},
		{Name: "debt service ratio above 0.3", Penalty: 15, Breached: m.DebtServiceRatio > 0.3},
	}
}
