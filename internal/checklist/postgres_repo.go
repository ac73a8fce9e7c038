package checklist

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

func (r *PostgresRepo) CreateInstance(ctx context.Context, inst *Instance) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	const instSQL = `
		INSERT INTO checklist_instances (book_slug, template_name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (book_slug, template_name) DO NOTHING
		RETURNING id, created_at`

	err = tx.QueryRow(timeoutCtx, instSQL, inst.BookSlug, inst.TemplateName).Scan(&inst.ID, &inst.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already instantiated; hand back the stored state untouched.
		existing, err := r.getInstanceTx(timeoutCtx, tx, inst.BookSlug, inst.TemplateName)
		if err != nil {
			return err
		}
		*inst = existing
		return tx.Commit(timeoutCtx)
	}
	if err != nil {
		return err
	}

	const itemSQL = `
		INSERT INTO checklist_items (instance_id, key, title, details, position, done)
		VALUES ($1, $2, $3, $4, $5, FALSE)`
	for i, item := range inst.Items {
		if _, err := tx.Exec(timeoutCtx, itemSQL, inst.ID, item.Key, item.Title, item.Details, i); err != nil {
			return err
		}
	}

	return tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) getInstanceTx(ctx context.Context, tx pgx.Tx, bookSlug, templateName string) (Instance, error) {
	const sql = `
		SELECT id, book_slug, template_name, created_at
		FROM checklist_instances
		WHERE book_slug = $1 AND template_name = $2`

	var inst Instance
	err := tx.QueryRow(ctx, sql, bookSlug, templateName).Scan(&inst.ID, &inst.BookSlug, &inst.TemplateName, &inst.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Instance{}, ErrNotFound
	}
	if err != nil {
		return Instance{}, err
	}

	items, err := r.itemsForInstanceTx(ctx, tx, inst.ID)
	if err != nil {
		return Instance{}, err
	}
	inst.Items = items
	return inst, nil
}

func (r *PostgresRepo) itemsForInstanceTx(ctx context.Context, tx pgx.Tx, instanceID string) ([]Item, error) {
	const sql = `
		SELECT key, title, details, done, done_at
		FROM checklist_items
		WHERE instance_id = $1
		ORDER BY position`

	rows, err := tx.Query(ctx, sql, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.Key, &item.Title, &item.Details, &item.Done, &item.DoneAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepo) GetInstance(ctx context.Context, bookSlug, templateName string) (Instance, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return Instance{}, err
	}
	defer tx.Rollback(timeoutCtx)

	inst, err := r.getInstanceTx(timeoutCtx, tx, bookSlug, templateName)
	if err != nil {
		return Instance{}, err
	}
	return inst, tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) ListInstances(ctx context.Context, bookSlug string) ([]Instance, error) {
	const sql = `
		SELECT i.id, i.book_slug, i.template_name, i.created_at
		FROM checklist_instances i
		WHERE i.book_slug = $1
		ORDER BY i.created_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(timeoutCtx)

	rows, err := tx.Query(timeoutCtx, sql, bookSlug)
	if err != nil {
		return nil, err
	}

	var out []Instance
	for rows.Next() {
		var inst Instance
		if err := rows.Scan(&inst.ID, &inst.BookSlug, &inst.TemplateName, &inst.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, inst)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsForInstanceTx(timeoutCtx, tx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) SetItemDone(ctx context.Context, bookSlug, templateName, itemKey string, done bool) (Item, error) {
	const sql = `
		UPDATE checklist_items it
		SET done = $4,
		    done_at = CASE WHEN $4 THEN NOW() ELSE NULL END
		FROM checklist_instances i
		WHERE it.instance_id = i.id
		  AND i.book_slug = $1
		  AND i.template_name = $2
		  AND it.key = $3
		RETURNING it.key, it.title, it.details, it.done, it.done_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var item Item
	err := r.db.QueryRow(timeoutCtx, sql, bookSlug, templateName, itemKey, done).Scan(
		&item.Key, &item.Title, &item.Details, &item.Done, &item.DoneAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return item, err
}
