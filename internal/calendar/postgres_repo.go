package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const entryColumns = `id, book_slug, platform, copy, asset_url, scheduled_for, status, created_at, updated_at`

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.BookSlug, &e.Platform, &e.Copy, &e.AssetURL, &e.ScheduledFor, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *PostgresRepo) Create(ctx context.Context, e *Entry) error {
	const sql = `
		INSERT INTO calendar_entries (book_slug, platform, copy, asset_url, scheduled_for, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, sql,
		e.BookSlug, e.Platform, e.Copy, e.AssetURL, e.ScheduledFor, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM calendar_entries WHERE id = $1`, entryColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	e, err := scanEntry(r.db.QueryRow(timeoutCtx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Entry, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Platform != "" {
		clauses = append(clauses, fmt.Sprintf("platform = $%d", argn))
		args = append(args, q.Platform)
		argn++
	}

	if q.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", argn))
		args = append(args, q.Status)
		argn++
	}

	if q.From != nil {
		clauses = append(clauses, fmt.Sprintf("scheduled_for >= $%d", argn))
		args = append(args, *q.From)
		argn++
	}

	if q.To != nil {
		clauses = append(clauses, fmt.Sprintf("scheduled_for < $%d", argn))
		args = append(args, *q.To)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM calendar_entries %s", where)
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM calendar_entries
		%s
		ORDER BY scheduled_for
		LIMIT $%d OFFSET $%d`, entryColumns, where, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id, status string) (Entry, error) {
	query := fmt.Sprintf(`
		UPDATE calendar_entries SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, entryColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	e, err := scanEntry(r.db.QueryRow(timeoutCtx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepo) Due(ctx context.Context, now time.Time) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM calendar_entries
		WHERE scheduled_for <= $1 AND status IN ('planned', 'drafted')
		ORDER BY scheduled_for`, entryColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
