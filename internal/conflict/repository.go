package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var conflictColumns = []string{
	"id", "court_id", "start_time", "end_time", "reason", "status", "created_by", "created_at",
}

type Repository interface {
	Create(ctx context.Context, c *Conflict) error
	GetByID(ctx context.Context, id string) (*Conflict, error)
	ListByCourt(ctx context.Context, courtID string, status string) ([]*Conflict, error)
	SetStatus(ctx context.Context, id, status string) error

	// ActiveInRange returns active conflicts overlapping [from, to).
	ActiveInRange(ctx context.Context, courtID string, from, to time.Time) ([]*Conflict, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanConflict(row pgx.Row) (*Conflict, error) {
	var c Conflict
	err := row.Scan(
		&c.ID, &c.CourtID, &c.StartTime, &c.EndTime, &c.Reason, &c.Status, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Conflict) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.conflicts").
		Columns("court_id", "start_time", "end_time", "reason", "status", "created_by").
		Values(c.CourtID, c.StartTime, c.EndTime, c.Reason, c.Status, c.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create conflict query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create conflict failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Conflict, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(conflictColumns...).
		From("public.conflicts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get conflict query failed: %w", err)
	}

	c, err := scanConflict(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conflict failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) ListByCourt(ctx context.Context, courtID string, status string) ([]*Conflict, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(conflictColumns...).
		From("public.conflicts").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("start_time DESC")
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list conflicts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conflicts failed: %w", err)
	}
	defer rows.Close()

	var conflicts []*Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conflict failed: %w", err)
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, nil
}

func (r *pgxRepository) SetStatus(ctx context.Context, id, status string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.conflicts").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set conflict status query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set conflict status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ActiveInRange(ctx context.Context, courtID string, from, to time.Time) ([]*Conflict, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Half-open overlap: start < to AND end > from.
	query, args, err := psql.Select(conflictColumns...).
		From("public.conflicts").
		Where(squirrel.Eq{"court_id": courtID, "status": StatusActive}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active conflicts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query active conflicts failed: %w", err)
	}
	defer rows.Close()

	var conflicts []*Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conflict failed: %w", err)
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, nil
}
