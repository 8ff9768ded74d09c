package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusRow is one status bucket as aggregated by the database.
type StatusRow struct {
	Status string
	Count  int
	Value  decimal.Decimal
}

// MonthRow is one calendar month as aggregated by the database. Month is the
// truncated first instant of that month.
type MonthRow struct {
	Month time.Time
	Count int
	Value decimal.Decimal
}

// DashboardFilter scopes the dashboard snapshot to a date range.
type DashboardFilter struct {
	From time.Time
	To   time.Time
}

// DocumentSnapshot summarises one document type over the dashboard window.
// Amounts are serialised as fixed two-decimal strings; Display carries the
// rupee-formatted overall value for direct rendering.
type DocumentSnapshot struct {
	ByStatus   map[string]StatusSummary `json:"by_status"`
	TotalCount int                      `json:"total_count"`
	TotalValue string                   `json:"total_value"`
	Display    string                   `json:"display_value"`
}

type StatusSummary struct {
	Count int    `json:"count"`
	Value string `json:"value"`
}

// DashboardSummary is the combined snapshot served at /dashboard.
//
// The aggregates come from independent reads, so a write landing between
// them can surface in some parts only. The window is short enough that the
// next request heals it.
type DashboardSummary struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Orders    DocumentSnapshot `json:"orders"`
	Invoices  DocumentSnapshot `json:"invoices"`
	Payments  DocumentSnapshot `json:"payments"`

	// Per-month series within the window, labelled "YYYY-M". Months with no
	// documents are omitted.
	OrdersOverTime   []MonthPoint `json:"orders_over_time"`
	InvoicesOverTime []MonthPoint `json:"invoices_over_time"`
	PaymentsOverTime []MonthPoint `json:"payments_over_time"`
}

// MonthPoint is one month of a yearly report.
type MonthPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Value string `json:"value"`
}

// YearlyReport is the twelve-month series for one document type.
type YearlyReport struct {
	Year       int                      `json:"year"`
	Count      int                      `json:"count"`
	TotalValue string                   `json:"total_value"`
	GraphData  []MonthPoint             `json:"graph_data"`
	StatusWise map[string]StatusSummary `json:"status_totals"`
}
