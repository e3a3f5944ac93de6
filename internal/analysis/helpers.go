package analysis

import "github.com/shopspring/decimal"

// ratioOf divides numerator by denominator, defining the ratio as 0
// when the denominator is zero or negative. "No revenue yet" is a valid
// business state and must still produce a displayable metric set.
func ratioOf(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// round2 rounds to 2 decimal places at the output boundary. Intermediate
// computation stays unrounded so rounding error does not compound.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
