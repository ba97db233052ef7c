package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rsrujukan/hospital/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const entryCols = `id, actor_id, action, entity, entity_id, meta, created_at`

func (r *repoPG) scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.Meta, &e.CreatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO audit_log (id, actor_id, action, entity, entity_id, meta)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.ActorID, e.Action, e.Entity, e.EntityID, e.Meta)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.scanEntry(r.conn(ctx).QueryRow(ctx, `SELECT `+entryCols+` FROM audit_log WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+entryCols+` FROM audit_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Entry, int, error) {
	query := `SELECT ` + entryCols + ` FROM audit_log WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM audit_log WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["entity"]; ok {
		query += fmt.Sprintf(` AND entity = $%d`, idx)
		countQuery += fmt.Sprintf(` AND entity = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["entity_id"]; ok {
		query += fmt.Sprintf(` AND entity_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND entity_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["action"]; ok {
		query += fmt.Sprintf(` AND action = $%d`, idx)
		countQuery += fmt.Sprintf(` AND action = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["actor_id"]; ok {
		query += fmt.Sprintf(` AND actor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND actor_id = $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, nil
}
