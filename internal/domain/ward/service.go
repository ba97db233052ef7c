package ward

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
	"github.com/rsrujukan/hospital/internal/platform/db"
)

type Service struct {
	rooms      RoomRepository
	admissions AdmissionRepository
	tx         db.TxRunner
	audit      *audit.Recorder
}

func NewService(rooms RoomRepository, admissions AdmissionRepository, tx db.TxRunner, rec *audit.Recorder) *Service {
	return &Service{rooms: rooms, admissions: admissions, tx: tx, audit: rec}
}

// -- Rooms --

func (s *Service) CreateRoom(ctx context.Context, r *Room) error {
	if r.Code == "" {
		return fmt.Errorf("code is required")
	}
	if r.Zone == "" {
		return fmt.Errorf("zone is required")
	}
	if r.BedCount <= 0 {
		r.BedCount = 1
	}
	if r.OccupiedBeds < 0 || r.OccupiedBeds > r.BedCount {
		return fmt.Errorf("occupied_beds must be between 0 and bed_count")
	}
	if r.TariffClass == "" {
		r.TariffClass = "3"
	}
	if err := s.rooms.Create(ctx, r); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "room", r.ID.String(), nil)
	return nil
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) GetRoomByCode(ctx context.Context, code string) (*Room, error) {
	return s.rooms.GetByCode(ctx, code)
}

func (s *Service) UpdateRoom(ctx context.Context, r *Room) error {
	if err := s.rooms.Update(ctx, r); err != nil {
		return err
	}
	s.audit.Record(ctx, "update", "room", r.ID.String(), nil)
	return nil
}

func (s *Service) ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	return s.rooms.List(ctx, limit, offset)
}

// -- Admissions --

// Admit reserves a bed and opens the admission in one transaction, so a
// failure in either leaves the room counter untouched.
func (s *Service) Admit(ctx context.Context, a *Admission) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.RoomCode == "" {
		return fmt.Errorf("room_code is required")
	}
	if a.Start.IsZero() {
		a.Start = time.Now().UTC()
	}

	err := s.tx(ctx, func(ctx context.Context) error {
		if err := s.rooms.ReserveBed(ctx, a.RoomCode); err != nil {
			return err
		}
		return s.admissions.Create(ctx, a)
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "admission", a.ID.String(), nil)
	return nil
}

// Discharge closes the admission and releases its bed. A second discharge of
// the same admission fails with ErrAlreadyDischarged.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) error {
	err := s.tx(ctx, func(ctx context.Context) error {
		roomCode, err := s.admissions.Close(ctx, id)
		if err != nil {
			return err
		}
		return s.rooms.ReleaseBed(ctx, roomCode)
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, "update", "admission", id.String(), map[string]interface{}{"op": "discharge"})
	return nil
}

func (s *Service) GetAdmission(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return s.admissions.GetByID(ctx, id)
}

func (s *Service) ListAdmissions(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.List(ctx, limit, offset)
}

func (s *Service) ListAdmissionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.ListByPatient(ctx, patientID, limit, offset)
}

// -- Dashboard --

// Occupancy computes the bed occupancy rate across all rooms. An empty
// hospital reports a rate of zero.
func (s *Service) Occupancy(ctx context.Context) (*OccupancyReport, error) {
	totalBeds, occupied, err := s.rooms.OccupancySummary(ctx)
	if err != nil {
		return nil, err
	}
	report := &OccupancyReport{TotalBeds: totalBeds, Occupied: occupied}
	if totalBeds > 0 {
		report.BOR = float64(occupied) / float64(totalBeds) * 100
	}
	return report, nil
}
