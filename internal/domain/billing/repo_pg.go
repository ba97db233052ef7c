package billing

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

// =========== Claim Repository ===========

type claimRepoPG struct{ pool *pgxpool.Pool }

func NewClaimRepoPG(pool *pgxpool.Pool) ClaimRepository { return &claimRepoPG{pool: pool} }

func (r *claimRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const claimCols = `id, patient_id, payer, amount, status, notes, created_at, updated_at`

func (r *claimRepoPG) scanClaim(row pgx.Row) (*InsuranceClaim, error) {
	var cl InsuranceClaim
	err := row.Scan(&cl.ID, &cl.PatientID, &cl.Payer, &cl.Amount, &cl.Status, &cl.Notes, &cl.CreatedAt, &cl.UpdatedAt)
	return &cl, err
}

func (r *claimRepoPG) Create(ctx context.Context, cl *InsuranceClaim) error {
	cl.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO insurance_claim (id, patient_id, payer, amount, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		cl.ID, cl.PatientID, cl.Payer, cl.Amount, cl.Status, cl.Notes)
	return err
}

func (r *claimRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*InsuranceClaim, error) {
	cl, err := r.scanClaim(r.conn(ctx).QueryRow(ctx, `SELECT `+claimCols+` FROM insurance_claim WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClaimNotFound
	}
	return cl, err
}

func (r *claimRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE insurance_claim SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClaimNotFound
	}
	return nil
}

func (r *claimRepoPG) List(ctx context.Context, limit, offset int) ([]*InsuranceClaim, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM insurance_claim`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+claimCols+` FROM insurance_claim ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*InsuranceClaim
	for rows.Next() {
		cl, err := r.scanClaim(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cl)
	}
	return items, total, nil
}

func (r *claimRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*InsuranceClaim, int, error) {
	query := `SELECT ` + claimCols + ` FROM insurance_claim WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM insurance_claim WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["payer"]; ok {
		query += fmt.Sprintf(` AND payer = $%d`, idx)
		countQuery += fmt.Sprintf(` AND payer = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["patient_id"]; ok {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
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
	var items []*InsuranceClaim
	for rows.Next() {
		cl, err := r.scanClaim(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cl)
	}
	return items, total, nil
}

// =========== Report Repository ===========

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewReportRepoPG(pool *pgxpool.Pool) ReportRepository { return &reportRepoPG{pool: pool} }

func (r *reportRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reportCols = `id, kind, payload, status, created_at, updated_at`

func (r *reportRepoPG) scanReport(row pgx.Row) (*GovernmentReport, error) {
	var rep GovernmentReport
	err := row.Scan(&rep.ID, &rep.Kind, &rep.Payload, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt)
	return &rep, err
}

func (r *reportRepoPG) Create(ctx context.Context, rep *GovernmentReport) error {
	rep.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO government_report (id, kind, payload, status)
		VALUES ($1,$2,$3,$4)`,
		rep.ID, rep.Kind, rep.Payload, rep.Status)
	return err
}

func (r *reportRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*GovernmentReport, error) {
	rep, err := r.scanReport(r.conn(ctx).QueryRow(ctx, `SELECT `+reportCols+` FROM government_report WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	return rep, err
}

func (r *reportRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE government_report SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *reportRepoPG) List(ctx context.Context, limit, offset int) ([]*GovernmentReport, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM government_report`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+reportCols+` FROM government_report ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*GovernmentReport
	for rows.Next() {
		rep, err := r.scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	return items, total, nil
}
