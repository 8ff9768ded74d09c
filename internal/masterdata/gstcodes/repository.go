package gstcodes

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
	List(ctx context.Context, filters shared.ListFilters) ([]Code, int, error)
	Get(ctx context.Context, id int64) (Code, error)
	Create(ctx context.Context, code Code) (Code, error)
	Update(ctx context.Context, id int64, code Code) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `c.id, c.code, c.name, c.effective_from, c.effective_to,
	c.is_active, c.gst_rate_id, r.tax_percentage, c.created_at, c.updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Code, int, error) {
	query := `SELECT ` + selectColumns + ` FROM gst_codes c JOIN gst_rates r ON r.id = c.gst_rate_id WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM gst_codes c WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.IsActive != nil {
		argCount++
		cond := ` AND c.is_active = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *filters.IsActive)
	}
	if filters.GSTRateID != nil {
		argCount++
		cond := ` AND c.gst_rate_id = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *filters.GSTRateID)
	}
	if filters.Search != "" {
		argCount++
		cond := ` AND (c.code ILIKE $` + strconv.Itoa(argCount) + ` OR c.name ILIKE $` + strconv.Itoa(argCount) + `)`
		query += cond
		countQuery += cond
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY c.code ASC`
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

	var codes []Code
	for rows.Next() {
		var c Code
		if err := scanCode(rows, &c); err != nil {
			return nil, 0, err
		}
		codes = append(codes, c)
	}
	return codes, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Code, error) {
	var c Code
	row := r.db.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM gst_codes c JOIN gst_rates r ON r.id = c.gst_rate_id WHERE c.id = $1`, id)
	if err := scanCode(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Code{}, shared.ErrNotFound
		}
		return Code{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, code Code) (Code, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO gst_codes (code, name, effective_from, effective_to, is_active, gst_rate_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		code.Code, code.Name, code.EffectiveFrom, code.EffectiveTo, code.IsActive, code.GSTRateID,
	).Scan(&code.ID, &code.CreatedAt, &code.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Code{}, shared.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return Code{}, shared.ErrValidation
		}
		return Code{}, err
	}
	return code, nil
}

func (r *repository) Update(ctx context.Context, id int64, code Code) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE gst_codes SET code = $1, name = $2, effective_from = $3, effective_to = $4,
		 is_active = $5, gst_rate_id = $6, updated_at = NOW() WHERE id = $7`,
		code.Code, code.Name, code.EffectiveFrom, code.EffectiveTo, code.IsActive, code.GSTRateID, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicate
		}
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
	tag, err := r.db.Exec(ctx, `DELETE FROM gst_codes WHERE id = $1`, id)
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

func scanCode(row pgx.Row, c *Code) error {
	return row.Scan(&c.ID, &c.Code, &c.Name, &c.EffectiveFrom, &c.EffectiveTo,
		&c.IsActive, &c.GSTRateID, &c.TaxPercentage, &c.CreatedAt, &c.UpdatedAt)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
