package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/udyamlens/udyamlens/internal/models"
)

// ValidationError rejects a record set before any computation runs. It
// carries the exact missing-column names so the caller can tell the
// uploader what to fix.
type ValidationError struct {
	Vertical models.Vertical
	Missing  []string
	Detail   string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s record set is missing required columns: %s",
		e.Vertical, strings.Join(e.Missing, ", "))
	if e.Detail != "" {
		msg += "; " + e.Detail
	}
	return msg
}

var requiredColumns = map[models.Vertical][]string{
	models.VerticalAgriculture: {
		"month", "season", "primary_crop_type", "year",
		"total_revenue", "quantity_sold", "avg_selling_price",
		"total_expenses", "input_cost_percentage",
		"harvested_inventory_quantity", "inventory_loss_percentage",
		"storage_type",
		"loan_outstanding_amount", "emi_amount", "loan_type",
	},
	models.VerticalManufacturing: {
		"month", "product_type", "year",
		"production_capacity", "actual_production",
		"total_revenue", "units_sold", "avg_selling_price", "sales_channel",
		"raw_material_cost", "direct_labor_cost",
		"raw_material_inventory_value",
		"wip_inventory_value",
		"finished_goods_inventory_value",
		"loan_outstanding_amount", "emi_amount", "loan_type",
	},
	models.VerticalRetail: {
		"month", "store_type", "product_category", "year",
		"total_revenue", "quantity_sold", "avg_selling_price",
		"discount_percentage", "sales_channel",
		"cost_of_goods_sold", "store_operating_cost",
		"logistics_cost", "loss_cost",
		"inventory_value",
		"slow_moving_inventory_percentage",
		"expired_inventory_percentage",
		"stock_age_days_avg",
		"loan_outstanding_amount", "emi_amount", "loan_type",
	},
	models.VerticalLogistics: {
		"month", "service_type", "delivery_type", "year",
		"total_revenue", "distance_km", "weight_volume", "rate_per_unit", "fuel_surcharge",
		"fuel_cost", "driver_wages", "vehicle_cost", "warehouse_cost", "other_operating_cost",
		"total_shipments", "on_time_delivery_percentage",
		"avg_goods_in_transit_value", "avg_storage_days",
		"loan_outstanding_amount", "emi_amount", "loan_type",
	},
	models.VerticalEcommerce: {
		"month", "seller_type", "product_category", "sales_region", "year",
		"total_revenue", "orders_count", "avg_order_value",
		"discount_percentage", "platform_fee_percentage",
		"cost_of_goods_sold", "fulfillment_cost", "shipping_cost",
		"payment_gateway_cost", "marketing_cost", "returns_cost",
		"inventory_value", "stock_age_days_avg", "return_rate_percentage",
		"loan_outstanding_amount", "emi_amount", "loan_type",
	},
}

// Columns needed for manufacturing overhead: either the direct column or
// the full split. When both are present the direct column wins.
var (
	overheadDirect = "overhead_cost"
	overheadSplit  = []string{"power_cost", "rent_cost", "maintenance_cost"}
)

// RequiredColumns returns the mandatory column list for a vertical.
func RequiredColumns(v models.Vertical) []string {
	cols := requiredColumns[v]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Validate checks a record set against the vertical's mandatory column
// list. Manufacturing additionally needs one of the two overhead
// representations. Missing names are reported sorted.
func Validate(v models.Vertical, ds *Dataset) error {
	var missing []string
	for _, col := range requiredColumns[v] {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}

	detail := ""
	if v == models.VerticalManufacturing && !hasOverheadColumns(ds) {
		missing = append(missing, overheadDirect)
		detail = fmt.Sprintf("provide either %q or all of %s",
			overheadDirect, strings.Join(overheadSplit, ", "))
	}

	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &ValidationError{Vertical: v, Missing: missing, Detail: detail}
}

func hasOverheadColumns(ds *Dataset) bool {
	if ds.HasColumn(overheadDirect) {
		return true
	}
	for _, col := range overheadSplit {
		if !ds.HasColumn(col) {
			return false
		}
	}
	return true
}
