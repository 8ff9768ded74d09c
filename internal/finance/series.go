package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the minimal date/amount/status shape the yearly aggregator
// folds over. Orders, invoices, and payments all reduce to it.
type Document struct {
	Date   time.Time
	Amount decimal.Decimal
	Status string
}

// MonthBucket is one calendar month of a yearly series.
type MonthBucket struct {
	Month      string
	Count      int
	TotalValue decimal.Decimal
}

// StatusTotal accumulates the documents carrying one status value.
type StatusTotal struct {
	Count      int
	TotalValue decimal.Decimal
}

// YearlySeries is the result of folding a year's documents into twelve
// calendar buckets plus per-status totals.
type YearlySeries struct {
	Count        int
	TotalValue   decimal.Decimal
	Series       []MonthBucket
	StatusTotals map[string]StatusTotal
}

// BuildYearlySeries folds docs into a Jan..Dec series for the given year.
//
// All twelve buckets are seeded with zero values up front, so the series
// always has exactly 12 entries in calendar order no matter how sparse the
// data is. A document is included when its date falls inside
// [Jan 1 00:00:00, Dec 31 23:59:59] of the year in local civil time; no
// timezone normalisation is applied.
//
// knownStatuses defines the categorical totals. Documents with a status
// outside that set still count toward the overall Count and TotalValue but
// are dropped from StatusTotals. Intermediate sums keep full precision;
// callers format to two decimals only at the response boundary.
func BuildYearlySeries(year int, knownStatuses []string, docs []Document) YearlySeries {
	series := make([]MonthBucket, 12)
	for m := 0; m < 12; m++ {
		series[m] = MonthBucket{
			Month:      time.Month(m + 1).String()[:3],
			TotalValue: decimal.Zero,
		}
	}

	statusTotals := make(map[string]StatusTotal, len(knownStatuses))
	for _, s := range knownStatuses {
		statusTotals[s] = StatusTotal{TotalValue: decimal.Zero}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local)

	out := YearlySeries{TotalValue: decimal.Zero, Series: series, StatusTotals: statusTotals}
	for _, doc := range docs {
		if doc.Date.Before(start) || doc.Date.After(end) {
			continue
		}
		out.Count++
		out.TotalValue = out.TotalValue.Add(doc.Amount)

		bucket := &out.Series[int(doc.Date.Month())-1]
		bucket.Count++
		bucket.TotalValue = bucket.TotalValue.Add(doc.Amount)

		if total, ok := out.StatusTotals[doc.Status]; ok {
			total.Count++
			total.TotalValue = total.TotalValue.Add(doc.Amount)
			out.StatusTotals[doc.Status] = total
		}
	}
	return out
}
