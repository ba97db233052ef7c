package patient

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

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.NationalMRN == "" {
		return fmt.Errorf("national_mrn is required")
	}
	if p.Name.First == "" {
		return fmt.Errorf("name.first is required")
	}
	if p.Categories == nil {
		p.Categories = []InsuranceInfo{}
	}
	if p.EmergencyContacts == nil {
		p.EmergencyContacts = []Contact{}
	}
	if p.Allergies == nil {
		p.Allergies = []Allergy{}
	}
	if p.ChronicConditions == nil {
		p.ChronicConditions = []ChronicCondition{}
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "patient", p.ID.String(), map[string]interface{}{"source": "api"})
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetPatientByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return s.repo.GetByMRN(ctx, mrn)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.NationalMRN == "" {
		return fmt.Errorf("national_mrn is required")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, "update", "patient", p.ID.String(), nil)
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "delete", "patient", id.String(), nil)
	return nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchPatients(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}
