package procedure

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

type Service struct {
	repo  Repository
	audit *audit.Recorder
	now   func() time.Time
}

func NewService(repo Repository, rec *audit.Recorder) *Service {
	return &Service{repo: repo, audit: rec, now: time.Now}
}

// CreateProcedure persists a procedure. Sterile procedures without an
// assigned batch get an auto-generated one and a CSSD return deadline.
func (s *Service) CreateProcedure(ctx context.Context, p *Procedure) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if p.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if p.Description == "" {
		return fmt.Errorf("description is required")
	}
	if p.Materials == nil {
		p.Materials = []map[string]interface{}{}
	}
	if p.IoTDevices == nil {
		p.IoTDevices = []string{}
	}

	// An empty batch string counts as unassigned, same as absent.
	if p.RequiresSterile && (p.SterileBatch == nil || *p.SterileBatch == "") {
		batch := fmt.Sprintf("AUTO-%d", s.now().Unix())
		due := s.now().UTC().Add(CSSDTurnaround)
		p.SterileBatch = &batch
		p.CSSDReturnDue = &due
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "procedure", p.ID.String(), nil)
	return nil
}

func (s *Service) GetProcedure(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProcedures(ctx context.Context, limit, offset int) ([]*Procedure, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListProceduresByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Procedure, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
