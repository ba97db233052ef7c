package triage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

type Service struct {
	repo  Repository
	audit *audit.Recorder
}

func NewService(repo Repository, rec *audit.Recorder) *Service {
	return &Service{repo: repo, audit: rec}
}

// CreateEvent evaluates and persists a triage event. A critical presentation
// without prior consent is granted emergency-protocol consent automatically
// and flagged as such.
func (s *Service) CreateEvent(ctx context.Context, e *Event) (*Result, error) {
	if e.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if e.VitalSigns == nil {
		e.VitalSigns = map[string]*float64{}
	}
	if e.CriticalFlags == nil {
		e.CriticalFlags = []string{}
	}

	critical := Evaluate(e.GCS, e.VitalSigns)
	if critical && !e.ConsentEmergencyProtocol {
		e.ConsentEmergencyProtocol = true
		e.CriticalFlags = append(e.CriticalFlags, FlagAutoConsent)
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "create", "triageevent", e.ID.String(), nil)

	return &Result{ID: e.ID, Critical: critical, Consent: e.ConsentEmergencyProtocol}, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, limit, offset int) ([]*Event, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListEventsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Event, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
