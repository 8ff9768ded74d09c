// Package finance holds the shared monetary calculations used by the order
// and invoice write paths and by the analytics read path, so the two can
// never drift apart.
package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineTotal is the monetary breakdown of a single order or invoice line.
type LineTotal struct {
	Base  decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// ComputeLineTotal derives the base, GST, and gross amounts for one line.
//
// Amounts are truncated to two decimals with floor(x*100)/100 rather than
// rounded. Existing documents were written with this arithmetic, so parity
// matters more than the small downward bias it carries. Negative inputs are
// not rejected and simply flow through to negative outputs.
func ComputeLineTotal(quantity int64, unitRate, taxPercent decimal.Decimal) LineTotal {
	qty := decimal.NewFromInt(quantity)
	base := unitRate.Mul(qty)
	tax := base.Mul(taxPercent).Div(hundred)
	return LineTotal{
		Base:  Truncate2(base),
		Tax:   Truncate2(tax),
		Total: Truncate2(base.Add(tax)),
	}
}

// DocumentTotal summarises the lines of one order or invoice.
type DocumentTotal struct {
	Count int
	Value decimal.Decimal
}

// AggregateLines sums the per-line gross totals into a document-level value.
// An empty slice yields a zero total, not an error.
func AggregateLines(lines []LineTotal) DocumentTotal {
	value := decimal.Zero
	for _, line := range lines {
		value = value.Add(line.Total)
	}
	return DocumentTotal{Count: len(lines), Value: value}
}

// Truncate2 floors toward negative infinity at two decimal places, matching
// floor(x*100)/100.
func Truncate2(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Floor().Div(hundred)
}
