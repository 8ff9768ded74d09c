package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

// Repository exposes the read queries the analytics service relies on.
type Repository interface {
	OrderStatusTotals(ctx context.Context, from, to time.Time) ([]StatusRow, error)
	InvoiceStatusTotals(ctx context.Context, from, to time.Time) ([]StatusRow, error)
	PaymentStatusTotals(ctx context.Context, from, to time.Time) ([]StatusRow, error)
	OrdersOverTime(ctx context.Context, from, to time.Time) ([]MonthRow, error)
	InvoicesOverTime(ctx context.Context, from, to time.Time) ([]MonthRow, error)
	PaymentsOverTime(ctx context.Context, from, to time.Time) ([]MonthRow, error)
	OrderDocuments(ctx context.Context, year int) ([]finance.Document, error)
	InvoiceDocuments(ctx context.Context, year int) ([]finance.Document, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) OrderStatusTotals(ctx context.Context, from, to time.Time) ([]StatusRow, error) {
	return r.statusTotals(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(order_value), 0)
		 FROM orders WHERE order_date BETWEEN $1 AND $2 GROUP BY status`, from, to)
}

func (r *repository) InvoiceStatusTotals(ctx context.Context, from, to time.Time) ([]StatusRow, error) {
	return r.statusTotals(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(adjusted_amount), 0)
		 FROM invoices WHERE invoice_date BETWEEN $1 AND $2 GROUP BY status`, from, to)
}

func (r *repository) PaymentStatusTotals(ctx context.Context, from, to time.Time) ([]StatusRow, error) {
	return r.statusTotals(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		 FROM invoice_payments WHERE paid_on BETWEEN $1 AND $2 GROUP BY status`, from, to)
}

func (r *repository) OrdersOverTime(ctx context.Context, from, to time.Time) ([]MonthRow, error) {
	return r.monthly(ctx,
		`SELECT date_trunc('month', order_date), COUNT(*), COALESCE(SUM(order_value), 0)
		 FROM orders WHERE order_date BETWEEN $1 AND $2 GROUP BY 1 ORDER BY 1`, from, to)
}

func (r *repository) InvoicesOverTime(ctx context.Context, from, to time.Time) ([]MonthRow, error) {
	return r.monthly(ctx,
		`SELECT date_trunc('month', invoice_date), COUNT(*), COALESCE(SUM(adjusted_amount), 0)
		 FROM invoices WHERE invoice_date BETWEEN $1 AND $2 GROUP BY 1 ORDER BY 1`, from, to)
}

func (r *repository) PaymentsOverTime(ctx context.Context, from, to time.Time) ([]MonthRow, error) {
	return r.monthly(ctx,
		`SELECT date_trunc('month', paid_on), COUNT(*), COALESCE(SUM(amount), 0)
		 FROM invoice_payments WHERE paid_on BETWEEN $1 AND $2 GROUP BY 1 ORDER BY 1`, from, to)
}

func (r *repository) monthly(ctx context.Context, query string, from, to time.Time) ([]MonthRow, error) {
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRow
	for rows.Next() {
		var row MonthRow
		if err := rows.Scan(&row.Month, &row.Count, &row.Value); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) statusTotals(ctx context.Context, query string, from, to time.Time) ([]StatusRow, error) {
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusRow
	for rows.Next() {
		var row StatusRow
		if err := rows.Scan(&row.Status, &row.Count, &row.Value); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) OrderDocuments(ctx context.Context, year int) ([]finance.Document, error) {
	return r.documents(ctx,
		`SELECT order_date, order_value, status FROM orders
		 WHERE order_date >= $1 AND order_date < $2`, year)
}

func (r *repository) InvoiceDocuments(ctx context.Context, year int) ([]finance.Document, error) {
	return r.documents(ctx,
		`SELECT invoice_date, adjusted_amount, status FROM invoices
		 WHERE invoice_date >= $1 AND invoice_date < $2`, year)
}

func (r *repository) documents(ctx context.Context, query string, year int) ([]finance.Document, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(1, 0, 0)

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []finance.Document
	for rows.Next() {
		var doc finance.Document
		if err := rows.Scan(&doc.Date, &doc.Amount, &doc.Status); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
