package payroll

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
	"github.com/rsrujukan/hospital/internal/domain/staffing"
)

type Service struct {
	records Repository
	staff   staffing.StaffRepository
	audit   *audit.Recorder
}

func NewService(records Repository, staff staffing.StaffRepository, rec *audit.Recorder) *Service {
	return &Service{records: records, staff: staff, audit: rec}
}

// CreateRecord settles and stores a monthly payroll record. A client
// supplied total is ignored; the amount is always recomputed from the
// counts and rates.
func (s *Service) CreateRecord(ctx context.Context, rec *Record) error {
	if rec.StaffID == "" {
		return fmt.Errorf("staff_id is required")
	}
	if !validMonth(rec.Month) {
		return fmt.Errorf("month must be YYYY-MM")
	}
	if rec.Kehadiran < 0 || rec.TindakanLangsung < 0 || rec.TindakanAsistensi < 0 ||
		rec.InsentifIGD < 0 || rec.InsentifICU < 0 || rec.InsentifIsolasi < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	if rec.BonusBPJS < 0 || rec.BaseSalary < 0 {
		return fmt.Errorf("amounts must not be negative")
	}
	if _, err := s.staff.GetByStaffID(ctx, rec.StaffID); err != nil {
		return fmt.Errorf("staff %s: %w", rec.StaffID, err)
	}
	rec.Total = rec.ComputeTotal()
	if err := s.records.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to create payroll record: %w", err)
	}
	s.audit.Record(ctx, "create", "payrollrecord", rec.ID.String(), map[string]interface{}{
		"staff_id": rec.StaffID,
		"month":    rec.Month,
		"total":    rec.Total,
	})
	return nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	return s.records.List(ctx, limit, offset)
}

func (s *Service) ListRecordsByStaff(ctx context.Context, staffID string, limit, offset int) ([]*Record, int, error) {
	return s.records.ListByStaff(ctx, staffID, limit, offset)
}

func (s *Service) ListRecordsByMonth(ctx context.Context, month string, limit, offset int) ([]*Record, int, error) {
	if !validMonth(month) {
		return nil, 0, fmt.Errorf("month must be YYYY-MM")
	}
	return s.records.ListByMonth(ctx, month, limit, offset)
}
