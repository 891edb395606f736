package exporter

import (
	"fmt"
)

// FormatAmount formats a sales amount with exactly 2 decimal places so
// values like 13.4 appear as 13.40 in every artifact.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatAmountWithSymbol prepends an optional currency symbol. An empty
// symbol keeps the output currency-agnostic.
func FormatAmountWithSymbol(v float64, symbol string) string {
	if symbol == "" {
		return FormatAmount(v)
	}
	return fmt.Sprintf("%s %s", symbol, FormatAmount(v))
}
