package patient

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

const patientCols = `id, national_mrn, name, birth_date, gender, phone, address,
	categories, family_profile, guarantor, emergency_contacts,
	allergies, chronic_conditions, qr_wristband,
	telemed_referral_type, telemed_referral_time, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.NationalMRN, &p.Name, &p.BirthDate, &p.Gender, &p.Phone, &p.Address,
		&p.Categories, &p.FamilyProfile, &p.Guarantor, &p.EmergencyContacts,
		&p.Allergies, &p.ChronicConditions, &p.QRWristband,
		&p.TelemedReferralType, &p.TelemedReferralTime, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, national_mrn, name, birth_date, gender, phone, address,
			categories, family_profile, guarantor, emergency_contacts,
			allergies, chronic_conditions, qr_wristband,
			telemed_referral_type, telemed_referral_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.NationalMRN, p.Name, p.BirthDate, p.Gender, p.Phone, p.Address,
		p.Categories, p.FamilyProfile, p.Guarantor, p.EmergencyContacts,
		p.Allergies, p.ChronicConditions, p.QRWristband,
		p.TelemedReferralType, p.TelemedReferralTime)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE national_mrn = $1`, mrn))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET national_mrn=$2, name=$3, birth_date=$4, gender=$5, phone=$6, address=$7,
			categories=$8, family_profile=$9, guarantor=$10, emergency_contacts=$11,
			allergies=$12, chronic_conditions=$13, qr_wristband=$14,
			telemed_referral_type=$15, telemed_referral_time=$16, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.NationalMRN, p.Name, p.BirthDate, p.Gender, p.Phone, p.Address,
		p.Categories, p.FamilyProfile, p.Guarantor, p.EmergencyContacts,
		p.Allergies, p.ChronicConditions, p.QRWristband,
		p.TelemedReferralType, p.TelemedReferralTime)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patient WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patient WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["national_mrn"]; ok {
		query += fmt.Sprintf(` AND national_mrn = $%d`, idx)
		countQuery += fmt.Sprintf(` AND national_mrn = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["gender"]; ok {
		query += fmt.Sprintf(` AND gender = $%d`, idx)
		countQuery += fmt.Sprintf(` AND gender = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["name"]; ok {
		query += fmt.Sprintf(` AND name->>'first' ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND name->>'first' ILIKE $%d`, idx)
		args = append(args, "%"+p+"%")
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
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
