package lead

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

// Upsert inserts a lead, or on an email conflict refreshes name, source
// and book interest. An unsubscribed lead stays unsubscribed; the
// existing unsubscribe token is kept so old links stay valid.
func (r *PostgresRepo) Upsert(ctx context.Context, l *Lead) error {
	const sql = `
		INSERT INTO leads (email, first_name, source, book_slug, status, unsubscribe_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			source = EXCLUDED.source,
			book_slug = EXCLUDED.book_slug,
			updated_at = NOW()
		RETURNING id, status, unsubscribe_token, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, sql,
		l.Email, l.FirstName, l.Source, l.BookSlug, l.Status, l.UnsubscribeToken,
	).Scan(&l.ID, &l.Status, &l.UnsubscribeToken, &l.CreatedAt, &l.UpdatedAt)
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Lead, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", argn))
		args = append(args, q.Status)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM leads %s", where)
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT id, email, first_name, source, book_slug, status, unsubscribe_token, created_at, updated_at
		FROM leads
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(
			&l.ID, &l.Email, &l.FirstName, &l.Source, &l.BookSlug, &l.Status, &l.UnsubscribeToken,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) UnsubscribeByToken(ctx context.Context, token string) error {
	const sql = `
		UPDATE leads SET status = 'unsubscribed', updated_at = NOW()
		WHERE unsubscribe_token = $1
		RETURNING id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var id string
	err := r.db.QueryRow(timeoutCtx, sql, token).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
