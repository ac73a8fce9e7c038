package brief

import (
	"context"
	"errors"
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

func (r *PostgresRepo) Upsert(ctx context.Context, b *Brief) error {
	const sql = `
		INSERT INTO cover_briefs (book_slug, palette, art_prompt, typeface, finish, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (book_slug) DO UPDATE SET
			palette = EXCLUDED.palette,
			art_prompt = EXCLUDED.art_prompt,
			typeface = EXCLUDED.typeface,
			finish = EXCLUDED.finish,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, sql,
		b.BookSlug, b.Palette, b.ArtPrompt, b.Typeface, b.Finish, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PostgresRepo) GetByBookSlug(ctx context.Context, slug string) (Brief, error) {
	const sql = `
		SELECT id, book_slug, palette, art_prompt, typeface, finish, notes, created_at, updated_at
		FROM cover_briefs
		WHERE book_slug = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Brief
	err := r.db.QueryRow(timeoutCtx, sql, slug).Scan(
		&b.ID, &b.BookSlug, &b.Palette, &b.ArtPrompt, &b.Typeface, &b.Finish, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Brief{}, ErrNotFound
	}
	return b, err
}
