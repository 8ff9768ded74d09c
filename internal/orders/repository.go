package orders

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
	ErrNotFound     = errors.New("order not found")
	ErrDuplicate    = errors.New("order number already exists")
	ErrBadReference = errors.New("order references a missing customer or catalog entry")
)

// Repository provides PostgreSQL backed persistence for orders. Writes that
// touch an order and its children run in a single transaction.
type Repository interface {
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Get(ctx context.Context, id int64) (Order, error)
	Create(ctx context.Context, order Order) (int64, error)
	Update(ctx context.Context, id int64, order Order) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderColumns = `o.id, o.order_number, o.proforma_invoice, o.proforma_date, o.customer_id, c.name,
	o.order_date, o.delivery_date, o.status, o.order_value, o.notes, o.created_at, o.updated_at`

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o JOIN customers c ON c.id = o.customer_id WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM orders o WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Status != "" {
		argCount++
		cond := ` AND o.status = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, req.Status)
	}
	if req.CustomerID > 0 {
		argCount++
		cond := ` AND o.customer_id = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, req.CustomerID)
	}
	if req.OrderNumber != "" {
		argCount++
		cond := ` AND o.order_number ILIKE $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, "%"+req.OrderNumber+"%")
	}
	if req.From != nil {
		argCount++
		cond := ` AND o.order_date >= $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.From)
	}
	if req.To != nil {
		argCount++
		cond := ` AND o.order_date <= $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.To)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY o.order_date DESC, o.id DESC`

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

	var orders []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders o JOIN customers c ON c.id = o.customer_id WHERE o.id = $1`, id)
	if err := scanOrder(row, &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return Order{}, err
	}
	o.Items = items

	advances, err := r.listAdvances(ctx, id)
	if err != nil {
		return Order{}, err
	}
	o.Advances = advances
	return o, nil
}

func (r *repository) listItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, product_id, service_item_id, description, quantity,
		        unit_rate, tax_percent, base_amount, tax_amount, total_amount
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ServiceItemID, &it.Description,
			&it.Quantity, &it.UnitRate, &it.TaxPercent, &it.BaseAmount, &it.TaxAmount, &it.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) listAdvances(ctx context.Context, orderID int64) ([]AdvancePayment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, reference, amount, paid_on, mode, status, notes
		 FROM order_advances WHERE order_id = $1 ORDER BY paid_on, id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []AdvancePayment
	for rows.Next() {
		var a AdvancePayment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.Reference, &a.Amount, &a.PaidOn, &a.Mode, &a.Status, &a.Notes); err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

func (r *repository) Create(ctx context.Context, order Order) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (order_number, proforma_invoice, proforma_date, customer_id, order_date, delivery_date, status, order_value, notes, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			 RETURNING id`,
			order.OrderNumber, order.ProformaInvoice, order.ProformaDate, order.CustomerID, order.OrderDate,
			order.DeliveryDate, order.Status, order.OrderValue, order.Notes,
		).Scan(&id)
		if err != nil {
			return translateWriteError(err)
		}
		if err := insertChildren(ctx, tx, id, order.Items, order.Advances); err != nil {
			return err
		}
		return nil
	})
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, order Order) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE orders SET proforma_invoice = $1, proforma_date = $2, customer_id = $3, order_date = $4,
			 delivery_date = $5, status = $6, order_value = $7, notes = $8, updated_at = NOW() WHERE id = $9`,
			order.ProformaInvoice, order.ProformaDate, order.CustomerID, order.OrderDate,
			order.DeliveryDate, order.Status, order.OrderValue, order.Notes, id,
		)
		if err != nil {
			return translateWriteError(err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_advances WHERE order_id = $1`, id); err != nil {
			return err
		}
		return insertChildren(ctx, tx, id, order.Items, order.Advances)
	})
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_advances WHERE order_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func insertChildren(ctx context.Context, tx pgx.Tx, orderID int64, items []OrderItem, advances []AdvancePayment) error {
	for _, it := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, service_item_id, description, quantity,
			 unit_rate, tax_percent, base_amount, tax_amount, total_amount)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			orderID, it.ProductID, it.ServiceItemID, it.Description, it.Quantity,
			it.UnitRate, it.TaxPercent, it.BaseAmount, it.TaxAmount, it.TotalAmount,
		)
		if err != nil {
			return translateWriteError(err)
		}
	}
	for _, a := range advances {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_advances (order_id, reference, amount, paid_on, mode, status, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			orderID, a.Reference, a.Amount, a.PaidOn, a.Mode, a.Status, a.Notes,
		)
		if err != nil {
			return translateWriteError(err)
		}
	}
	return nil
}

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.ProformaInvoice, &o.ProformaDate, &o.CustomerID, &o.CustomerName,
		&o.OrderDate, &o.DeliveryDate, &o.Status, &o.OrderValue, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
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
