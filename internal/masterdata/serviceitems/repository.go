package serviceitems

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]ServiceItem, int, error)
	Get(ctx context.Context, id int64) (ServiceItem, error)
	Create(ctx context.Context, item ServiceItem) (ServiceItem, error)
	Update(ctx context.Context, id int64, item ServiceItem) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `p.id, p.name, p.description, p.price, p.gst_code_id,
	p.is_active, c.code, r.tax_percentage, p.created_at, p.updated_at`

const fromClause = ` FROM service_items p
	JOIN gst_codes c ON c.id = p.gst_code_id
	JOIN gst_rates r ON r.id = c.gst_rate_id`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]ServiceItem, int, error) {
	query := `SELECT ` + selectColumns + fromClause + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM service_items p WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		cond := ` AND p.name ILIKE $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.IsActive != nil {
		argCount++
		cond := ` AND p.is_active = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *filters.IsActive)
	}
	if filters.GSTCodeID != nil {
		argCount++
		cond := ` AND p.gst_code_id = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *filters.GSTCodeID)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.EffectiveLimit())
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []ServiceItem
	for rows.Next() {
		var p ServiceItem
		if err := scanServiceItem(rows, &p); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (ServiceItem, error) {
	var p ServiceItem
	row := r.db.QueryRow(ctx, `SELECT `+selectColumns+fromClause+` WHERE p.id = $1`, id)
	if err := scanServiceItem(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceItem{}, shared.ErrNotFound
		}
		return ServiceItem{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, item ServiceItem) (ServiceItem, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO service_items (name, description, price, gst_code_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Price, item.GSTCodeID, item.IsActive,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ServiceItem{}, shared.ErrValidation
		}
		return ServiceItem{}, err
	}
	return item, nil
}

func (r *repository) Update(ctx context.Context, id int64, item ServiceItem) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE service_items SET name = $1, description = $2, price = $3, gst_code_id = $4,
		 is_active = $5, updated_at = NOW() WHERE id = $6`,
		item.Name, item.Description, item.Price, item.GSTCodeID, item.IsActive, id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return shared.ErrValidation
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM service_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return shared.ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanServiceItem(row pgx.Row, p *ServiceItem) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.GSTCodeID,
		&p.IsActive, &p.GSTCode, &p.TaxPercentage, &p.CreatedAt, &p.UpdatedAt)
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "p.name " + dir
	case "price":
		return "p.price " + dir
	case "created_at":
		return "p.created_at " + dir
	default:
		return "p.name " + dir
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
