package vendor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, v *Vendor) error
	GetByID(ctx context.Context, id string) (*Vendor, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*Vendor, error)
	List(ctx context.Context, filter Filter) ([]*Vendor, int, error)
	Update(ctx context.Context, v *Vendor) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var vendorColumns = []string{
	"id", "name", "owner_user_id", "contact_email", "is_active", "created_at",
}

func scanVendor(row pgx.Row) (*Vendor, error) {
	var v Vendor
	if err := row.Scan(
		&v.ID, &v.Name, &v.OwnerUserID, &v.ContactEmail, &v.IsActive, &v.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan vendor failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) Create(ctx context.Context, v *Vendor) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.vendors").
		Columns("name", "owner_user_id", "contact_email", "is_active").
		Values(v.Name, v.OwnerUserID, v.ContactEmail, v.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create vendor query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.ID, &v.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// Unique constraints exist on both name and owner_user_id.
			if pgErr.ConstraintName == "vendors_owner_user_id_key" {
				return ErrAlreadyVendor
			}
			return ErrNameTaken
		}
		return fmt.Errorf("create vendor failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Vendor, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(vendorColumns...).
		From("public.vendors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vendor query failed: %w", err)
	}

	return scanVendor(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByOwner(ctx context.Context, ownerUserID string) (*Vendor, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(vendorColumns...).
		From("public.vendors").
		Where(squirrel.Eq{"owner_user_id": ownerUserID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vendor query failed: %w", err)
	}

	return scanVendor(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Vendor, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(vendorColumns, "count(*) OVER() AS total_count")...).
		From("public.vendors")

	if filter.Keyword != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Keyword + "%"})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list vendors query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors failed: %w", err)
	}
	defer rows.Close()

	var vendors []*Vendor
	var total int

	for rows.Next() {
		var v Vendor
		if err := rows.Scan(
			&v.ID, &v.Name, &v.OwnerUserID, &v.ContactEmail, &v.IsActive, &v.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan vendor failed: %w", err)
		}
		vendors = append(vendors, &v)
	}

	return vendors, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Vendor) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.vendors").
		Set("name", v.Name).
		Set("contact_email", v.ContactEmail).
		Set("is_active", v.IsActive).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update vendor query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("update vendor failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
