package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const bookColumns = `id, slug, title, subtitle, puzzle_type, difficulty, trim_size,
	       page_count, paper_type, list_price_cents, asin, status, description, keywords,
	       created_at, updated_at`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Slug, &b.Title, &b.Subtitle, &b.PuzzleType, &b.Difficulty, &b.TrimSize,
		&b.PageCount, &b.PaperType, &b.ListPriceCents, &b.ASIN, &b.Status, &b.Description, &b.Keywords,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.PuzzleType != "" {
		clauses = append(clauses, fmt.Sprintf("puzzle_type = $%d", argn))
		args = append(args, q.PuzzleType)
		argn++
	}

	if q.Difficulty != "" {
		clauses = append(clauses, fmt.Sprintf("difficulty = $%d", argn))
		args = append(args, q.Difficulty)
		argn++
	}

	if q.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", argn))
		args = append(args, q.Status)
		argn++
	}

	if q.Q != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR subtitle ILIKE $%d OR description ILIKE $%d)", argn, argn+1, argn+2))
		pattern := "%" + q.Q + "%"
		args = append(args, pattern, pattern, pattern)
		argn += 3
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	sortCol := "title"
	switch q.Sort {
	case "created_at":
		sortCol = "created_at"
	case "price":
		sortCol = "list_price_cents"
	}

	order := "ASC"
	if q.Desc {
		order = "DESC"
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM books %s", where)
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM books
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		bookColumns, where, sortCol, order, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, slug string) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE slug = $1 LIMIT 1`, bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (slug, title, subtitle, puzzle_type, difficulty, trim_size,
		                   page_count, paper_type, list_price_cents, asin, status, description, keywords,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql,
		b.Slug, b.Title, b.Subtitle, b.PuzzleType, b.Difficulty, b.TrimSize,
		b.PageCount, b.PaperType, b.ListPriceCents, b.ASIN, b.Status, b.Description, b.Keywords,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlugTaken
	}
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const sql = `
		UPDATE books SET
			title = $2,
			subtitle = $3,
			puzzle_type = $4,
			difficulty = $5,
			trim_size = $6,
			page_count = $7,
			paper_type = $8,
			list_price_cents = $9,
			asin = $10,
			status = $11,
			description = $12,
			keywords = $13,
			updated_at = NOW()
		WHERE slug = $1
		RETURNING updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql,
		b.Slug, b.Title, b.Subtitle, b.PuzzleType, b.Difficulty, b.TrimSize,
		b.PageCount, b.PaperType, b.ListPriceCents, b.ASIN, b.Status, b.Description, b.Keywords,
	).Scan(&b.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
