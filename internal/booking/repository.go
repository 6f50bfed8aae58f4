package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/conflict"
)

var bookingColumns = []string{
	"id", "court_id", "user_id", "start_time", "end_time", "status", "notes", "created_at", "updated_at",
}

type Filter struct {
	CourtID string
	UserID  string
	Status  string
	Limit   uint64
	Offset  uint64
}

type Repository interface {
	// CreateValidated re-checks the slot inside a serializable transaction
	// and inserts only if it is still free. Returns *ConflictError when the
	// slot is taken and ErrTransient when the transaction should be retried.
	CreateValidated(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*Booking, error)

	// BlockingInRange returns pending/confirmed bookings overlapping [from, to).
	BlockingInRange(ctx context.Context, courtID string, from, to time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CourtID, &b.UserID, &b.StartTime, &b.EndTime,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// isRetryableTxError reports whether the transaction lost a race and should
// be replayed from the top.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

func (r *pgxRepository) CreateValidated(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin booking transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Half-open overlap against live bookings: start < end' AND end > start'.
	query, args, err := psql.Select("id").
		From("public.bookings").
		Where(squirrel.Eq{"court_id": b.CourtID, "status": BlockingStatuses}).
		Where(squirrel.Lt{"start_time": b.EndTime}).
		Where(squirrel.Gt{"end_time": b.StartTime}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("build booking overlap query failed: %w", err)
	}

	var conflictingID string
	err = tx.QueryRow(ctx, query, args...).Scan(&conflictingID)
	switch {
	case err == nil:
		return &ConflictError{Kind: availability.KindBooking, ConflictingID: conflictingID}
	case errors.Is(err, pgx.ErrNoRows):
		// Slot is free of bookings; check conflicts next.
	case isRetryableTxError(err):
		return ErrTransient
	default:
		return fmt.Errorf("booking overlap check failed: %w", err)
	}

	query, args, err = psql.Select("id").
		From("public.conflicts").
		Where(squirrel.Eq{"court_id": b.CourtID, "status": conflict.StatusActive}).
		Where(squirrel.Lt{"start_time": b.EndTime}).
		Where(squirrel.Gt{"end_time": b.StartTime}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("build conflict overlap query failed: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&conflictingID)
	switch {
	case err == nil:
		return &ConflictError{Kind: availability.KindConflict, ConflictingID: conflictingID}
	case errors.Is(err, pgx.ErrNoRows):
	case isRetryableTxError(err):
		return ErrTransient
	default:
		return fmt.Errorf("conflict overlap check failed: %w", err)
	}

	query, args, err = psql.Insert("public.bookings").
		Columns("court_id", "user_id", "start_time", "end_time", "status", "notes").
		Values(b.CourtID, b.UserID, b.StartTime, b.EndTime, b.Status, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isRetryableTxError(err) {
			return ErrTransient
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isRetryableTxError(err) {
			return ErrTransient
		}
		return fmt.Errorf("commit booking transaction failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() AS total_count")
	builder := psql.Select(cols...).
		From("public.bookings").
		OrderBy("start_time DESC")

	if filter.CourtID != "" {
		builder = builder.Where(squirrel.Eq{"court_id": filter.CourtID})
	}
	if filter.UserID != "" {
		builder = builder.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	total := 0
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CourtID, &b.UserID, &b.StartTime, &b.EndTime,
			&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) BlockingInRange(ctx context.Context, courtID string, from, to time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"court_id": courtID, "status": BlockingStatuses}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blocking bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blocking bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
