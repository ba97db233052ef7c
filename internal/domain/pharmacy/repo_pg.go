package pharmacy

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

// =========== Inventory Repository ===========

type inventoryRepoPG struct{ pool *pgxpool.Pool }

func NewInventoryRepoPG(pool *pgxpool.Pool) InventoryRepository { return &inventoryRepoPG{pool: pool} }

func (r *inventoryRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const itemCols = `id, sku, name, type, barcode, stock, sterile_batch, created_at, updated_at`

func (r *inventoryRepoPG) scanItem(row pgx.Row) (*InventoryItem, error) {
	var i InventoryItem
	err := row.Scan(&i.ID, &i.SKU, &i.Name, &i.Type, &i.Barcode, &i.Stock, &i.SterileBatch, &i.CreatedAt, &i.UpdatedAt)
	return &i, err
}

func (r *inventoryRepoPG) Create(ctx context.Context, i *InventoryItem) error {
	i.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO inventory_item (id, sku, name, type, barcode, stock, sterile_batch)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		i.ID, i.SKU, i.Name, i.Type, i.Barcode, i.Stock, i.SterileBatch)
	return err
}

func (r *inventoryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	return r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM inventory_item WHERE id = $1`, id))
}

func (r *inventoryRepoPG) GetBySKU(ctx context.Context, sku string) (*InventoryItem, error) {
	i, err := r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM inventory_item WHERE sku = $1`, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return i, err
}

func (r *inventoryRepoPG) Update(ctx context.Context, i *InventoryItem) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE inventory_item SET sku=$2, name=$3, type=$4, barcode=$5, stock=$6, sterile_batch=$7, updated_at=NOW()
		WHERE id = $1`,
		i.ID, i.SKU, i.Name, i.Type, i.Barcode, i.Stock, i.SterileBatch)
	return err
}

func (r *inventoryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM inventory_item WHERE id = $1`, id)
	return err
}

func (r *inventoryRepoPG) List(ctx context.Context, limit, offset int) ([]*InventoryItem, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM inventory_item`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+itemCols+` FROM inventory_item ORDER BY sku LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*InventoryItem
	for rows.Next() {
		i, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, nil
}

func (r *inventoryRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*InventoryItem, int, error) {
	query := `SELECT ` + itemCols + ` FROM inventory_item WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM inventory_item WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["type"]; ok {
		query += fmt.Sprintf(` AND type = $%d`, idx)
		countQuery += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["sku"]; ok {
		query += fmt.Sprintf(` AND sku = $%d`, idx)
		countQuery += fmt.Sprintf(` AND sku = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["name"]; ok {
		query += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		args = append(args, "%"+p+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY sku LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*InventoryItem
	for rows.Next() {
		i, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, nil
}

// =========== Prescription Repository ===========

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const prescriptionCols = `id, patient_id, items, allergies_checked, interactions_checked, status, created_at, updated_at`

func (r *prescriptionRepoPG) scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.Items, &p.AllergiesChecked, &p.InteractionsChecked, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription (id, patient_id, items, allergies_checked, interactions_checked, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.PatientID, p.Items, p.AllergiesChecked, p.InteractionsChecked, p.Status)
	return err
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := r.scanPrescription(r.conn(ctx).QueryRow(ctx, `SELECT `+prescriptionCols+` FROM prescription WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPrescriptionNotFound
	}
	return p, err
}

func (r *prescriptionRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE prescription SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPrescriptionNotFound
	}
	return nil
}

func (r *prescriptionRepoPG) List(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prescription`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prescriptionCols+` FROM prescription ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *prescriptionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prescription WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prescriptionCols+` FROM prescription WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
