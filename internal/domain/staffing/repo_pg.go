package staffing

import (
	"context"
	"errors"
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

// ErrStaffNotFound signals an unknown employee code.
var ErrStaffNotFound = errors.New("staff not found")

// =========== Staff Repository ===========

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewStaffRepoPG(pool *pgxpool.Pool) StaffRepository { return &staffRepoPG{pool: pool} }

func (r *staffRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const staffCols = `id, staff_id, name, role, sip, str_number, qualifications, on_call, created_at, updated_at`

func (r *staffRepoPG) scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	err := row.Scan(&s.ID, &s.StaffID, &s.Name, &s.Role, &s.SIP, &s.STRNumber, &s.Qualifications, &s.OnCall, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *staffRepoPG) Create(ctx context.Context, s *Staff) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO staff (id, staff_id, name, role, sip, str_number, qualifications, on_call)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.StaffID, s.Name, s.Role, s.SIP, s.STRNumber, s.Qualifications, s.OnCall)
	return err
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return r.scanStaff(r.conn(ctx).QueryRow(ctx, `SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *staffRepoPG) GetByStaffID(ctx context.Context, staffID string) (*Staff, error) {
	s, err := r.scanStaff(r.conn(ctx).QueryRow(ctx, `SELECT `+staffCols+` FROM staff WHERE staff_id = $1`, staffID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	return s, err
}

func (r *staffRepoPG) Update(ctx context.Context, s *Staff) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE staff SET staff_id=$2, name=$3, role=$4, sip=$5, str_number=$6,
			qualifications=$7, on_call=$8, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.StaffID, s.Name, s.Role, s.SIP, s.STRNumber, s.Qualifications, s.OnCall)
	return err
}

func (r *staffRepoPG) List(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+staffCols+` FROM staff ORDER BY staff_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Staff
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}

func (r *staffRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Staff, int, error) {
	query := `SELECT ` + staffCols + ` FROM staff WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM staff WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["role"]; ok {
		query += fmt.Sprintf(` AND role = $%d`, idx)
		countQuery += fmt.Sprintf(` AND role = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["on_call"]; ok {
		query += fmt.Sprintf(` AND on_call = $%d`, idx)
		countQuery += fmt.Sprintf(` AND on_call = $%d`, idx)
		args = append(args, p == "true")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY staff_id LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Staff
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}

// =========== Shift Repository ===========

type shiftRepoPG struct{ pool *pgxpool.Pool }

func NewShiftRepoPG(pool *pgxpool.Pool) ShiftRepository { return &shiftRepoPG{pool: pool} }

func (r *shiftRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const shiftCols = `id, staff_id, area, start_time, end_time, created_at`

func (r *shiftRepoPG) scanShift(row pgx.Row) (*Shift, error) {
	var sh Shift
	err := row.Scan(&sh.ID, &sh.StaffID, &sh.Area, &sh.Start, &sh.End, &sh.CreatedAt)
	return &sh, err
}

func (r *shiftRepoPG) Create(ctx context.Context, sh *Shift) error {
	sh.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO shift (id, staff_id, area, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5)`,
		sh.ID, sh.StaffID, sh.Area, sh.Start, sh.End)
	return err
}

func (r *shiftRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Shift, error) {
	return r.scanShift(r.conn(ctx).QueryRow(ctx, `SELECT `+shiftCols+` FROM shift WHERE id = $1`, id))
}

func (r *shiftRepoPG) List(ctx context.Context, limit, offset int) ([]*Shift, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shift`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+shiftCols+` FROM shift ORDER BY start_time DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Shift
	for rows.Next() {
		sh, err := r.scanShift(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sh)
	}
	return items, total, nil
}

func (r *shiftRepoPG) ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]*Shift, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shift WHERE staff_id = $1`, staffID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+shiftCols+` FROM shift WHERE staff_id = $1 ORDER BY start_time DESC LIMIT $2 OFFSET $3`, staffID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Shift
	for rows.Next() {
		sh, err := r.scanShift(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sh)
	}
	return items, total, nil
}
