package finance

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Amount renders a monetary value with exactly two decimal places, the fixed
// format used in analytics payloads.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatINR renders an amount with Indian digit grouping (1,23,456.78) and a
// rupee prefix for display fields.
func FormatINR(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inrPrinter.Sprintf("₹ %v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
