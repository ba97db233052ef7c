package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

type Service struct {
	claims  ClaimRepository
	reports ReportRepository
	audit   *audit.Recorder
}

func NewService(claims ClaimRepository, reports ReportRepository, rec *audit.Recorder) *Service {
	return &Service{claims: claims, reports: reports, audit: rec}
}

func (s *Service) SubmitClaim(ctx context.Context, cl *InsuranceClaim) error {
	if cl.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !validPayer(cl.Payer) {
		return fmt.Errorf("unknown payer: %s", cl.Payer)
	}
	if cl.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if cl.Status == "" {
		cl.Status = ClaimStatusSubmitted
	}
	if !claimStatuses[cl.Status] {
		return fmt.Errorf("unknown status: %s", cl.Status)
	}
	if err := s.claims.Create(ctx, cl); err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}
	s.audit.Record(ctx, "create", "insuranceclaim", cl.ID.String(), map[string]interface{}{
		"payer":  cl.Payer,
		"amount": cl.Amount,
	})
	return nil
}

func (s *Service) GetClaim(ctx context.Context, id uuid.UUID) (*InsuranceClaim, error) {
	return s.claims.GetByID(ctx, id)
}

// UpdateClaimStatus moves a claim through its review lifecycle. Any
// known status is accepted; payers resubmit and reopen claims freely.
func (s *Service) UpdateClaimStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !claimStatuses[status] {
		return fmt.Errorf("unknown status: %s", status)
	}
	cl, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.claims.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit.Record(ctx, "status_change", "insuranceclaim", id.String(), map[string]interface{}{
		"from": cl.Status,
		"to":   status,
	})
	return nil
}

func (s *Service) ListClaims(ctx context.Context, limit, offset int) ([]*InsuranceClaim, int, error) {
	return s.claims.List(ctx, limit, offset)
}

func (s *Service) SearchClaims(ctx context.Context, params map[string]string, limit, offset int) ([]*InsuranceClaim, int, error) {
	return s.claims.Search(ctx, params, limit, offset)
}

// QueueReport stages a payload for one of the national integrations.
// Reports start queued; a forwarding worker or manual retry flips them
// to sent or error.
func (s *Service) QueueReport(ctx context.Context, rep *GovernmentReport) error {
	if !validReportKind(rep.Kind) {
		return fmt.Errorf("unknown report kind: %s", rep.Kind)
	}
	if rep.Payload == nil {
		return fmt.Errorf("payload is required")
	}
	if rep.Status == "" {
		rep.Status = ReportStatusQueued
	}
	if !reportStatuses[rep.Status] {
		return fmt.Errorf("unknown status: %s", rep.Status)
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	s.audit.Record(ctx, "create", "governmentreport", rep.ID.String(), map[string]interface{}{
		"kind": rep.Kind,
	})
	return nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*GovernmentReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !reportStatuses[status] {
		return fmt.Errorf("unknown status: %s", status)
	}
	if err := s.reports.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit.Record(ctx, "status_change", "governmentreport", id.String(), map[string]interface{}{
		"to": status,
	})
	return nil
}

func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]*GovernmentReport, int, error) {
	return s.reports.List(ctx, limit, offset)
}
