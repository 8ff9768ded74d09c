package gst

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
	List(ctx context.Context, filters shared.ListFilters) ([]Rate, int, error)
	Get(ctx context.Context, id int64) (Rate, error)
	Create(ctx context.Context, rate Rate) (Rate, error)
	Update(ctx context.Context, id int64, rate Rate) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Rate, int, error) {
	query := `SELECT id, tax_percentage, is_active, created_at, updated_at FROM gst_rates WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM gst_rates WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.IsActive != nil {
		argCount++
		cond := ` AND is_active = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *filters.IsActive)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY tax_percentage ASC`
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

	var rates []Rate
	for rows.Next() {
		var rate Rate
		if err := rows.Scan(&rate.ID, &rate.TaxPercentage, &rate.IsActive, &rate.CreatedAt, &rate.UpdatedAt); err != nil {
			return nil, 0, err
		}
		rates = append(rates, rate)
	}
	return rates, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Rate, error) {
	var rate Rate
	err := r.db.QueryRow(ctx,
		`SELECT id, tax_percentage, is_active, created_at, updated_at FROM gst_rates WHERE id = $1`, id,
	).Scan(&rate.ID, &rate.TaxPercentage, &rate.IsActive, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rate{}, shared.ErrNotFound
		}
		return Rate{}, err
	}
	return rate, nil
}

func (r *repository) Create(ctx context.Context, rate Rate) (Rate, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO gst_rates (tax_percentage, is_active, created_at, updated_at)
		 VALUES ($1, $2, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		rate.TaxPercentage, rate.IsActive,
	).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Rate{}, shared.ErrDuplicate
		}
		return Rate{}, err
	}
	return rate, nil
}

func (r *repository) Update(ctx context.Context, id int64, rate Rate) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE gst_rates SET tax_percentage = $1, is_active = $2, updated_at = NOW() WHERE id = $3`,
		rate.TaxPercentage, rate.IsActive, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gst_rates WHERE id = $1`, id)
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
