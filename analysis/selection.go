package analysis

import (
	"errors"
	"fmt"

	"hermannm.dev/salesdash/sales"
)

const (
	MinTopN     = 3
	MaxTopN     = 20
	DefaultTopN = 10
)

// Returned for grouping, metric, top-N or date range parameters outside their allowed
// values. Checked before anything is computed.
var ErrInvalidSelection = errors.New("invalid selection")

type Selection struct {
	Dimension sales.Dimension `json:"dimension"`
	Metric    sales.Metric    `json:"metric"`
	TopN      int             `json:"topN"`
}

func DefaultSelection() Selection {
	return Selection{
		Dimension: sales.DimensionProduct,
		Metric:    sales.MetricSales,
		TopN:      DefaultTopN,
	}
}

func (selection Selection) Validate() error {
	if !selection.Dimension.IsValid() {
		return fmt.Errorf(
			"%w: dimension must be '%v' or '%v'",
			ErrInvalidSelection,
			sales.DimensionProduct,
			sales.DimensionRegion,
		)
	}
	if !selection.Metric.IsValid() {
		return fmt.Errorf(
			"%w: metric must be '%v' or '%v'",
			ErrInvalidSelection,
			sales.MetricSales,
			sales.MetricQuantitySold,
		)
	}
	if selection.TopN < MinTopN || selection.TopN > MaxTopN {
		return fmt.Errorf(
			"%w: top N must be between %d and %d, got %d",
			ErrInvalidSelection,
			MinTopN,
			MaxTopN,
			selection.TopN,
		)
	}
	return nil
}
