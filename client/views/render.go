package views

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// pricePrinter formats prices with locale-aware grouping, so a total of
// 1234.5 renders as $1,234.50.
var pricePrinter = message.NewPrinter(language.English)

func formatPrice(p float64) string {
	return pricePrinter.Sprintf("$%.2f", p)
}
