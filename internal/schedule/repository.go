package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Upsert inserts or replaces the window for (court, weekday).
	Upsert(ctx context.Context, w *OperatingWindow) error
	GetByCourtAndWeekday(ctx context.Context, courtID string, weekday time.Weekday) (*OperatingWindow, error)
	ListByCourt(ctx context.Context, courtID string) ([]*OperatingWindow, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Upsert(ctx context.Context, w *OperatingWindow) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.operating_windows").
		Columns("court_id", "weekday", "opens_at", "closes_at", "is_open").
		Values(w.CourtID, int(w.Weekday), w.OpensAt, w.ClosesAt, w.IsOpen).
		Suffix(`ON CONFLICT (court_id, weekday) DO UPDATE SET
			opens_at = EXCLUDED.opens_at,
			closes_at = EXCLUDED.closes_at,
			is_open = EXCLUDED.is_open,
			updated_at = now()
			RETURNING id, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert window query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&w.ID, &w.UpdatedAt); err != nil {
		return fmt.Errorf("upsert window failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByCourtAndWeekday(ctx context.Context, courtID string, weekday time.Weekday) (*OperatingWindow, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "court_id", "weekday", "opens_at", "closes_at", "is_open", "updated_at",
	).
		From("public.operating_windows").
		Where(squirrel.Eq{"court_id": courtID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get window query failed: %w", err)
	}

	var w OperatingWindow
	var day int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&w.ID, &w.CourtID, &day, &w.OpensAt, &w.ClosesAt, &w.IsOpen, &w.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get window failed: %w", err)
	}
	w.Weekday = time.Weekday(day)
	return &w, nil
}

func (r *pgxRepository) ListByCourt(ctx context.Context, courtID string) ([]*OperatingWindow, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "court_id", "weekday", "opens_at", "closes_at", "is_open", "updated_at",
	).
		From("public.operating_windows").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []*OperatingWindow
	for rows.Next() {
		var w OperatingWindow
		var day int
		if err := rows.Scan(
			&w.ID, &w.CourtID, &day, &w.OpensAt, &w.ClosesAt, &w.IsOpen, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan window failed: %w", err)
		}
		w.Weekday = time.Weekday(day)
		windows = append(windows, &w)
	}

	return windows, nil
}
