package invoices

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerdesk/ledgerdesk/internal/platform/db"
)

var (
	ErrNotFound     = errors.New("invoice not found")
	ErrDuplicate    = errors.New("invoice number already exists")
	ErrBadReference = errors.New("invoice references a missing customer or order")
)

// Repository provides PostgreSQL backed persistence for invoices. Writes
// that touch an invoice and its children run in a single transaction.
type Repository interface {
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	Create(ctx context.Context, invoice Invoice) (int64, error)
	Update(ctx context.Context, id int64, invoice Invoice) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const invoiceColumns = `i.id, i.invoice_number, i.order_id, i.customer_id, c.name, i.customer_gst,
	i.invoice_date, i.invoice_amount, i.packaging_charges, i.shipping_charges, i.discount_amount,
	i.adjusted_amount, i.reconciled_amount, i.status, i.notes, i.created_at, i.updated_at`

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices i JOIN customers c ON c.id = i.customer_id WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM invoices i WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Status != "" {
		argCount++
		cond := ` AND i.status = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, req.Status)
	}
	if req.CustomerID > 0 {
		argCount++
		cond := ` AND i.customer_id = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, req.CustomerID)
	}
	if req.InvoiceNumber != "" {
		argCount++
		cond := ` AND i.invoice_number ILIKE $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, "%"+req.InvoiceNumber+"%")
	}
	if req.From != nil {
		argCount++
		cond := ` AND i.invoice_date >= $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.From)
	}
	if req.To != nil {
		argCount++
		cond := ` AND i.invoice_date <= $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.To)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY i.invoice_date DESC, i.id DESC`

	limit := req.Limit
	if limit < 1 {
		limit = 20
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Invoice, error) {
	var inv Invoice
	row := r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices i JOIN customers c ON c.id = i.customer_id WHERE i.id = $1`, id)
	if err := scanInvoice(row, &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	inv.Items = items

	payments, err := r.listPayments(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	inv.Payments = payments
	return inv, nil
}

func (r *repository) listItems(ctx context.Context, invoiceID int64) ([]InvoiceItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, product_id, service_item_id, description, quantity,
		        unit_rate, tax_percent, base_amount, tax_amount, total_amount
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ServiceItemID, &it.Description, &it.Quantity,
			&it.UnitRate, &it.TaxPercent, &it.BaseAmount, &it.TaxAmount, &it.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) listPayments(ctx context.Context, invoiceID int64) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, reference, amount, paid_on, mode, status, notes
		 FROM invoice_payments WHERE invoice_id = $1 ORDER BY paid_on, id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Reference, &p.Amount, &p.PaidOn, &p.Mode, &p.Status, &p.Notes); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *repository) Create(ctx context.Context, invoice Invoice) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO invoices (invoice_number, order_id, customer_id, customer_gst, invoice_date,
			 invoice_amount, packaging_charges, shipping_charges, discount_amount,
			 adjusted_amount, reconciled_amount, status, notes, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			 RETURNING id`,
			invoice.InvoiceNumber, invoice.OrderID, invoice.CustomerID, invoice.CustomerGST, invoice.InvoiceDate,
			invoice.InvoiceAmount, invoice.PackagingCharges, invoice.ShippingCharges, invoice.DiscountAmount,
			invoice.AdjustedAmount, invoice.ReconciledAmount, invoice.Status, invoice.Notes,
		).Scan(&id)
		if err != nil {
			return translateWriteError(err)
		}
		return insertChildren(ctx, tx, id, invoice.Items, invoice.Payments)
	})
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, invoice Invoice) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE invoices SET order_id = $1, customer_id = $2, customer_gst = $3, invoice_date = $4,
			 invoice_amount = $5, packaging_charges = $6, shipping_charges = $7, discount_amount = $8,
			 adjusted_amount = $9, reconciled_amount = $10, status = $11, notes = $12, updated_at = NOW()
			 WHERE id = $13`,
			invoice.OrderID, invoice.CustomerID, invoice.CustomerGST, invoice.InvoiceDate,
			invoice.InvoiceAmount, invoice.PackagingCharges, invoice.ShippingCharges, invoice.DiscountAmount,
			invoice.AdjustedAmount, invoice.ReconciledAmount, invoice.Status, invoice.Notes, id,
		)
		if err != nil {
			return translateWriteError(err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_payments WHERE invoice_id = $1`, id); err != nil {
			return err
		}
		return insertChildren(ctx, tx, id, invoice.Items, invoice.Payments)
	})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_payments WHERE invoice_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func insertChildren(ctx context.Context, tx pgx.Tx, invoiceID int64, items []InvoiceItem, payments []Payment) error {
	for _, it := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_items (invoice_id, product_id, service_item_id, description, quantity,
			 unit_rate, tax_percent, base_amount, tax_amount, total_amount)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			invoiceID, it.ProductID, it.ServiceItemID, it.Description, it.Quantity,
			it.UnitRate, it.TaxPercent, it.BaseAmount, it.TaxAmount, it.TotalAmount,
		)
		if err != nil {
			return translateWriteError(err)
		}
	}
	for _, p := range payments {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_payments (invoice_id, reference, amount, paid_on, mode, status, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			invoiceID, p.Reference, p.Amount, p.PaidOn, p.Mode, p.Status, p.Notes,
		)
		if err != nil {
			return translateWriteError(err)
		}
	}
	return nil
}

func scanInvoice(row pgx.Row, inv *Invoice) error {
	return row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerID, &inv.CustomerName, &inv.CustomerGST,
		&inv.InvoiceDate, &inv.InvoiceAmount, &inv.PackagingCharges, &inv.ShippingCharges, &inv.DiscountAmount,
		&inv.AdjustedAmount, &inv.ReconciledAmount, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrBadReference
		}
	}
	return err
}
