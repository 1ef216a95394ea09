package sales

import (
	"hermannm.dev/enumnames"
)

// Categorical field used to bucket records.
type Dimension int8

const (
	DimensionProduct Dimension = iota + 1
	DimensionRegion
)

var dimensionNames = enumnames.NewMap(map[Dimension]string{
	DimensionProduct: ColumnProduct,
	DimensionRegion:  ColumnRegion,
})

func (dimension Dimension) IsValid() bool {
	return dimensionNames.GetNameOrFallback(dimension, "") != ""
}

func (dimension Dimension) String() string {
	return dimensionNames.GetNameOrFallback(dimension, "INVALID_DIMENSION")
}

func (dimension Dimension) MarshalJSON() ([]byte, error) {
	return dimensionNames.MarshalToNameJSON(dimension)
}

func (dimension *Dimension) UnmarshalJSON(bytes []byte) error {
	return dimensionNames.UnmarshalFromNameJSON(bytes, dimension)
}

// Panics on an invalid dimension; selections are validated before reaching aggregation.
func (dimension Dimension) Of(record Record) string {
	switch dimension {
	case DimensionProduct:
		return record.Product
	case DimensionRegion:
		return record.Region
	default:
		panic("invalid dimension " + dimension.String())
	}
}

// Numeric field being summed.
type Metric int8

const (
	MetricSales Metric = iota + 1
	MetricQuantitySold
)

var metricNames = enumnames.NewMap(map[Metric]string{
	MetricSales:        ColumnSales,
	MetricQuantitySold: ColumnQuantitySold,
})

func (metric Metric) IsValid() bool {
	return metricNames.GetNameOrFallback(metric, "") != ""
}

func (metric Metric) String() string {
	return metricNames.GetNameOrFallback(metric, "INVALID_METRIC")
}

func (metric Metric) MarshalJSON() ([]byte, error) {
	return metricNames.MarshalToNameJSON(metric)
}

func (metric *Metric) UnmarshalJSON(bytes []byte) error {
	return metricNames.UnmarshalFromNameJSON(bytes, metric)
}

// Panics on an invalid metric; selections are validated before reaching aggregation.
func (metric Metric) Of(record Record) float64 {
	switch metric {
	case MetricSales:
		return record.Sales
	case MetricQuantitySold:
		return record.QuantitySold
	default:
		panic("invalid metric " + metric.String())
	}
}
