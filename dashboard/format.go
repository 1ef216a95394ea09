package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Formats with thousands separators and two decimals, e.g. 1,234.50.
func FormatAmount(value float64) string {
	return printer.Sprintf("%.2f", value)
}

func FormatCount(value int) string {
	return printer.Sprintf("%d", value)
}
