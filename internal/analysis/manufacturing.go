package analysis

import "github.com/udyamlens/udyamlens/internal/models"

// ExtractManufacturingMetrics aggregates one manufacturing record set.
// Overhead comes from the single overhead_cost column when present; the
// power/rent/maintenance split is only summed as a fallback, so a set
// carrying both representations deterministically uses the direct one.
func ExtractManufacturingMetrics(ds *Dataset) (models.ManufacturingMetrics, error) {
	var m models.ManufacturingMetrics

	totalRevenue, err := ds.Sum("total_revenue")
	if err != nil {
		return m, err
	}

	rawMaterial, err := ds.Sum("raw_material_cost")
	if err != nil {
		return m, err
	}
	labor, err := ds.Sum("direct_labor_cost")
	if err != nil {
		return m, err
	}
	overhead, err := overheadCost(ds)
	if err != nil {
		return m, err
	}
	totalExpenses := rawMaterial + labor + overhead

	profit := totalRevenue - totalExpenses
	profitMargin := ratioOf(profit, totalRevenue) * 100

	actual, err := ds.Sum("actual_production")
	if err != nil {
		return m, err
	}
	capacity, err := ds.Sum("production_capacity")
	if err != nil {
		return m, err
	}
	capacityUtilization := ratioOf(actual, capacity) * 100

	rmInventory, err := ds.Mean("raw_material_inventory_value")
	if err != nil {
		return m, err
	}
	wipInventory, err := ds.Mean("wip_inventory_value")
	if err != nil {
		return m, err
	}
	fgInventory, err := ds.Mean("finished_goods_inventory_value")
	if err != nil {
		return m, err
	}
	inventoryBlockage := ratioOf(rmInventory+wipInventory+fgInventory, totalRevenue)

	meanEMI, err := ds.Mean("emi_amount")
	if err != nil {
		return m, err
	}

	return models.ManufacturingMetrics{
		TotalRevenue:           round2(totalRevenue),
		TotalExpenses:          round2(totalExpenses),
		Profit:                 round2(profit),
		ProfitMargin:           round2(profitMargin),
		CapacityUtilization:    round2(capacityUtilization),
		InventoryBlockageRatio: round2(inventoryBlockage),
		CostEfficiencyRatio:    round2(ratioOf(totalExpenses, totalRevenue)),
		DebtServiceRatio:       round2(ratioOf(meanEMI, totalRevenue)),
	}, nil
}

func overheadCost(ds *Dataset) (float64, error) {
	if ds.HasColumn(overheadDirect) {
		return ds.Sum(overheadDirect)
	}
	var total float64
	for _, col := range overheadSplit {
		v, err := ds.Sum(col)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

func manufacturingChecks(m models.ManufacturingMetrics) []penaltyCheck {
	return []penaltyCheck{
		{Name: "profit margin below 12%", Penalty: 25, Breached: m.ProfitMargin < 12},
		{Name: "capacity utilization below 60%", Penalty: 20, Breached: m.CapacityUtilization < 60},
		{Name: "inventory blockage above 0.4", Penalty: 15, Breached: m.InventoryBlockageRatio > 0.4},
		{Name: "debt service ratio above 0.3", Penalty: 15, Breached: m.DebtServiceRatio > 0.3},
	}
}
