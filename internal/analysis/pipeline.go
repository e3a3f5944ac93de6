package analysis

import (
	"fmt"

	"github.com/udyamlens/udyamlens/internal/models"
)

// Run sequences the pipeline for one vertical and one record set:
// validation, metric extraction, health scoring, credit classification
// and product recommendation. It is pure and synchronous; persistence
// and narrative generation belong to the caller.
//
// The reporting year is taken from the first record. A set spanning
// several years is not rejected here; Run reports the extra years so
// the caller can warn about them.
func Run(vertical models.Vertical, ds *Dataset) (*models.AnalysisResult, error) {
	if err := Validate(vertical, ds); err != nil {
		return nil, err
	}

	metrics, err := extract(vertical, ds)
	if err != nil {
		return nil, err
	}

	health, triggered, err := ScoreMetrics(metrics)
	if err != nil {
		return nil, err
	}

	risk := ClassifyCredit(health.Score)

	year, err := ds.FirstInt("year")
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		Vertical:  vertical,
		Year:      year,
		Metrics:   metrics,
		Health:    health,
		Risk:      risk,
		Products:  RecommendProducts(vertical, risk),
		Triggered: triggered,
	}, nil
}

// ExtraYears returns the reporting years beyond the first one found in
// the record set. A non-empty result means the whole analysis is tagged
// with the first row's year while later rows belong elsewhere.
func ExtraYears(ds *Dataset) []int {
	years, err := ds.DistinctInts("year")
	if err != nil || len(years) <= 1 {
		return nil
	}
	return years[1:]
}

func extract(vertical models.Vertical, ds *Dataset) (models.VerticalMetrics, error) {
	switch vertical {
	case models.VerticalAgriculture:
		return ExtractAgricultureMetrics(ds)
	case models.VerticalManufacturing:
		return ExtractManufacturingMetrics(ds)
	case models.VerticalRetail:
		return ExtractRetailMetrics(ds)
	case models.VerticalLogistics:
		return ExtractLogisticsMetrics(ds)
	case models.VerticalEcommerce:
		return ExtractEcommerceMetrics(ds)
	default:
		return nil, fmt.Errorf("unsupported vertical: %q", vertical)
	}
}
