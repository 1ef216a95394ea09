package sales

// Column names expected in the source spreadsheet. Matching is exact.
const (
	ColumnProduct      = "Product"
	ColumnSales        = "Sales"
	ColumnQuantitySold = "Quantity Sold"
	ColumnDate         = "Date"
	ColumnRegion       = "Region"
)

var RequiredColumns = []string{
	ColumnProduct,
	ColumnSales,
	ColumnQuantitySold,
	ColumnDate,
	ColumnRegion,
}

// One sales transaction. Only records where every field is present and type-valid make it
// into a Table.
type Record struct {
	Product      string  `json:"product"`
	Region       string  `json:"region"`
	Date         Date    `json:"date"`
	Sales        float64 `json:"sales"`
	QuantitySold float64 `json:"quantitySold"`
}
