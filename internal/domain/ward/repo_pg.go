package ward

import (
	"context"
	"errors"
	"time"

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

// =========== Room Repository ===========

type roomRepoPG struct{ pool *pgxpool.Pool }

func NewRoomRepoPG(pool *pgxpool.Pool) RoomRepository { return &roomRepoPG{pool: pool} }

func (r *roomRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const roomCols = `id, code, zone, bed_count, occupied_beds, tariff_class, created_at, updated_at`

func (r *roomRepoPG) scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(&rm.ID, &rm.Code, &rm.Zone, &rm.BedCount, &rm.OccupiedBeds, &rm.TariffClass, &rm.CreatedAt, &rm.UpdatedAt)
	return &rm, err
}

func (r *roomRepoPG) Create(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO room (id, code, zone, bed_count, occupied_beds, tariff_class)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rm.ID, rm.Code, rm.Zone, rm.BedCount, rm.OccupiedBeds, rm.TariffClass)
	return err
}

func (r *roomRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	return r.scanRoom(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM room WHERE id = $1`, id))
}

func (r *roomRepoPG) GetByCode(ctx context.Context, code string) (*Room, error) {
	rm, err := r.scanRoom(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM room WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

func (r *roomRepoPG) Update(ctx context.Context, rm *Room) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE room SET zone=$2, bed_count=$3, tariff_class=$4, updated_at=NOW()
		WHERE id = $1`,
		rm.ID, rm.Zone, rm.BedCount, rm.TariffClass)
	return err
}

func (r *roomRepoPG) List(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM room`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+roomCols+` FROM room ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Room
	for rows.Next() {
		rm, err := r.scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rm)
	}
	return items, total, nil
}

// ReserveBed performs a bounded increment so two concurrent admissions can
// never take the same last bed.
func (r *roomRepoPG) ReserveBed(ctx context.Context, code string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE room SET occupied_beds = occupied_beds + 1, updated_at = NOW()
		WHERE code = $1 AND occupied_beds < bed_count`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM room WHERE code = $1)`, code).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrRoomNotFound
	}
	return ErrNoBedAvailable
}

func (r *roomRepoPG) ReleaseBed(ctx context.Context, code string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE room SET occupied_beds = GREATEST(occupied_beds - 1, 0), updated_at = NOW()
		WHERE code = $1`, code)
	return err
}

func (r *roomRepoPG) OccupancySummary(ctx context.Context) (int, int, error) {
	var totalBeds, occupied int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(bed_count), 0), COALESCE(SUM(occupied_beds), 0) FROM room`).
		Scan(&totalBeds, &occupied)
	return totalBeds, occupied, err
}

// =========== Admission Repository ===========

type admissionRepoPG struct{ pool *pgxpool.Pool }

func NewAdmissionRepoPG(pool *pgxpool.Pool) AdmissionRepository { return &admissionRepoPG{pool: pool} }

func (r *admissionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const admissionCols = `id, patient_id, room_code, bed_number, start_time, end_time, risk_movement, created_at, updated_at`

func (r *admissionRepoPG) scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(&a.ID, &a.PatientID, &a.RoomCode, &a.BedNumber, &a.Start, &a.End, &a.RiskMovement, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *admissionRepoPG) Create(ctx context.Context, a *Admission) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO admission (id, patient_id, room_code, bed_number, start_time, risk_movement)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.PatientID, a.RoomCode, a.BedNumber, a.Start, a.RiskMovement)
	return err
}

func (r *admissionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, err := r.scanAdmission(r.conn(ctx).QueryRow(ctx, `SELECT `+admissionCols+` FROM admission WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdmissionNotFound
	}
	return a, err
}

func (r *admissionRepoPG) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admission`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+admissionCols+` FROM admission ORDER BY start_time DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Admission
	for rows.Next() {
		a, err := r.scanAdmission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *admissionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admission WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+admissionCols+` FROM admission WHERE patient_id = $1 ORDER BY start_time DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Admission
	for rows.Next() {
		a, err := r.scanAdmission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

// Close only matches open admissions, so discharging twice fails instead of
// double-decrementing the room counter.
func (r *admissionRepoPG) Close(ctx context.Context, id uuid.UUID) (string, error) {
	var roomCode string
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE admission SET end_time = NOW(), updated_at = NOW()
		WHERE id = $1 AND end_time IS NULL
		RETURNING room_code`, id).Scan(&roomCode)
	if err == nil {
		return roomCode, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	var end *time.Time
	lookupErr := r.conn(ctx).QueryRow(ctx, `SELECT end_time FROM admission WHERE id = $1`, id).Scan(&end)
	if errors.Is(lookupErr, pgx.ErrNoRows) {
		return "", ErrAdmissionNotFound
	}
	if lookupErr != nil {
		return "", lookupErr
	}
	return "", ErrAlreadyDischarged
}
