package models

// VerticalMetrics is the tagged union over the five per-vertical metric
// shapes. Every stage of the pipeline works with the concrete struct for
// its vertical; the interface carries the tag and the financial core
// every vertical shares.
type VerticalMetrics interface {
	MetricsVertical() Vertical
	Core() CoreFinancials
}

// CoreFinancials are the metrics common to every vertical, flattened
// into dedicated columns by the persistence layer.
type CoreFinancials struct {
	TotalRevenue  float64
	TotalExpenses float64
	Profit        float64
	ProfitMargin  float64
}

// AgricultureMetrics holds the aggregated financial and operational
// ratios for one agriculture record set. Currency fields are rupee
// amounts rounded to 2 decimals; ratio fields are raw fractions except
// ProfitMargin and InventoryLossPercentage which are percentages.
type AgricultureMetrics struct {
	TotalRevenue            float64 `json:"total_revenue"`
	TotalExpenses           float64 `json:"total_expenses"`
	Profit                  float64 `json:"profit"`
	ProfitMargin            float64 `json:"profit_margin"`
	EffectiveProfit         float64 `json:"effective_profit"`
	InventoryLossPercentage float64 `json:"inventory_loss_percentage"`
	InventoryLossValue      float64 `json:"inventory_loss_value"`
	CostPressureRatio       float64 `json:"cost_pressure_ratio"`
	DebtServiceRatio        float64 `json:"debt_service_ratio"`
	Season                  string  `json:"season"`
	PrimaryCropType         string  `json:"primary_crop_type"`
	StorageRiskScore        int     `json:"storage_risk_score"`
}

func (m AgricultureMetrics) Core() CoreFinancials {
	return CoreFinancials{
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		Profit:        m.Profit,
		ProfitMargin:  m.ProfitMargin,
	}
}

func (AgricultureMetrics) MetricsVertical() Vertical { return VerticalAgriculture }

// ManufacturingMetrics: CapacityUtilization and ProfitMargin are
// percentages, the remaining ratios are raw fractions.
type ManufacturingMetrics struct {
	TotalRevenue           float64 `json:"total_revenue"`
	TotalExpenses          float64 `json:"total_expenses"`
	Profit                 float64 `json:"profit"`
	ProfitMargin           float64 `json:"profit_margin"`
	CapacityUtilization    float64 `json:"capacity_utilization"`
	InventoryBlockageRatio float64 `json:"inventory_blockage_ratio"`
	CostEfficiencyRatio    float64 `json:"cost_efficiency_ratio"`
	DebtServiceRatio       float64 `json:"debt_service_ratio"`
}

func (m ManufacturingMetrics) Core() CoreFinancials {
	return CoreFinancials{
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		Profit:        m.Profit,
		ProfitMargin:  m.ProfitMargin,
	}
}

func (ManufacturingMetrics) MetricsVertical() Vertical { return VerticalManufacturing }

// RetailMetrics: InventoryRiskScore is a weighted blend of slow-moving
// and expired inventory percentages.
type RetailMetrics struct {
	TotalRevenue           float64 `json:"total_revenue"`
	TotalExpenses          float64 `json:"total_expenses"`
	Profit                 float64 `json:"profit"`
	ProfitMargin           float64 `json:"profit_margin"`
	InventoryBlockageRatio float64 `json:"inventory_blockage_ratio"`
	InventoryRiskScore     float64 `json:"inventory_risk_score"`
	DiscountImpactRatio    float64 `json:"discount_impact_ratio"`
	LossCostRatio          float64 `json:"loss_cost_ratio"`
	DebtServiceRatio       float64 `json:"debt_service_ratio"`
}

func (m RetailMetrics) Core() CoreFinancials {
	return CoreFinancials{
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		Profit:        m.Profit,
		ProfitMargin:  m.ProfitMargin,
	}
}

func (RetailMetrics) MetricsVertical() Vertical { return VerticalRetail }

// LogisticsMetrics: OnTimeDeliveryPercentage is a straight mean across
// the record set.
type LogisticsMetrics struct {
	TotalRevenue             float64 `json:"total_revenue"`
	TotalExpenses            float64 `json:"total_expenses"`
	Profit                   float64 `json:"profit"`
	ProfitMargin             float64 `json:"profit_margin"`
	CostPerKm                float64 `json:"cost_per_km"`
	RevenuePerShipment       float64 `json:"revenue_per_shipment"`
	FuelCostRatio            float64 `json:"fuel_cost_ratio"`
	AssetBlockageRatio       float64 `json:"asset_blockage_ratio"`
	OnTimeDeliveryPercentage float64 `json:"on_time_delivery_percentage"`
	DebtServiceRatio         float64 `json:"debt_service_ratio"`
}

func (m LogisticsMetrics) Core() CoreFinancials {
	return CoreFinancials{
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		Profit:        m.Profit,
		ProfitMargin:  m.ProfitMargin,
	}
}

func (LogisticsMetrics) MetricsVertical() Vertical { return VerticalLogistics }

// EcommerceMetrics: ContributionMargin and OrderProfitability are rupee
// amounts, ReturnRatePercentage is a percentage.
type EcommerceMetrics struct {
	TotalRevenue           float64 `json:"total_revenue"`
	TotalExpenses          float64 `json:"total_expenses"`
	Profit                 float64 `json:"profit"`
	ProfitMargin           float64 `json:"profit_margin"`
	ContributionMargin     float64 `json:"contribution_margin"`
	PlatformFeeRatio       float64 `json:"platform_fee_ratio"`
	InventoryBlockageRatio float64 `json:"inventory_blockage_ratio"`
	OrderProfitability     float64 `json:"order_profitability"`
	ReturnRatePercentage   float64 `json:"return_rate_percentage"`
	DebtServiceRatio       float64 `json:"debt_service_ratio"`
}

func (m EcommerceMetrics) Core() CoreFinancials {
	return CoreFinancials{
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		Profit:        m.Profit,
		ProfitMargin:  m.ProfitMargin,
	}
}

func (EcommerceMetrics) MetricsVertical() Vertical { return VerticalEcommerce }
