package staffing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

type Service struct {
	staff  StaffRepository
	shifts ShiftRepository
	audit  *audit.Recorder
}

func NewService(staff StaffRepository, shifts ShiftRepository, rec *audit.Recorder) *Service {
	return &Service{staff: staff, shifts: shifts, audit: rec}
}

func (s *Service) CreateStaff(ctx context.Context, st *Staff) error {
	if st.StaffID == "" {
		return fmt.Errorf("staff_id is required")
	}
	if st.Name.First == "" {
		return fmt.Errorf("name.first is required")
	}
	if !validRole(st.Role) {
		return fmt.Errorf("unknown role: %s", st.Role)
	}
	if st.Qualifications == nil {
		st.Qualifications = []string{}
	}
	if err := s.staff.Create(ctx, st); err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	s.audit.Record(ctx, "create", "staff", st.ID.String(), map[string]interface{}{
		"staff_id": st.StaffID,
		"role":     st.Role,
	})
	return nil
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) GetStaffByCode(ctx context.Context, staffID string) (*Staff, error) {
	return s.staff.GetByStaffID(ctx, staffID)
}

func (s *Service) UpdateStaff(ctx context.Context, st *Staff) error {
	if _, err := s.staff.GetByID(ctx, st.ID); err != nil {
		return fmt.Errorf("staff not found: %w", err)
	}
	if !validRole(st.Role) {
		return fmt.Errorf("unknown role: %s", st.Role)
	}
	if err := s.staff.Update(ctx, st); err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	s.audit.Record(ctx, "update", "staff", st.ID.String(), nil)
	return nil
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	return s.staff.List(ctx, limit, offset)
}

func (s *Service) SearchStaff(ctx context.Context, params map[string]string, limit, offset int) ([]*Staff, int, error) {
	return s.staff.Search(ctx, params, limit, offset)
}

// CreateShift rosters an existing staff member to an area. The shift
// references staff by employee code, not row id.
func (s *Service) CreateShift(ctx context.Context, sh *Shift) error {
	if sh.StaffID == "" {
		return fmt.Errorf("staff_id is required")
	}
	if !validArea(sh.Area) {
		return fmt.Errorf("unknown area: %s", sh.Area)
	}
	if sh.Start.IsZero() || sh.End.IsZero() {
		return fmt.Errorf("start and end are required")
	}
	if !sh.Start.Before(sh.End) {
		return fmt.Errorf("shift start must be before end")
	}
	if _, err := s.staff.GetByStaffID(ctx, sh.StaffID); err != nil {
		return fmt.Errorf("staff %s: %w", sh.StaffID, err)
	}
	if err := s.shifts.Create(ctx, sh); err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	s.audit.Record(ctx, "create", "shift", sh.ID.String(), map[string]interface{}{
		"staff_id": sh.StaffID,
		"area":     sh.Area,
	})
	return nil
}

func (s *Service) GetShift(ctx context.Context, id uuid.UUID) (*Shift, error) {
	return s.shifts.GetByID(ctx, id)
}

func (s *Service) ListShifts(ctx context.Context, limit, offset int) ([]*Shift, int, error) {
	return s.shifts.List(ctx, limit, offset)
}

func (s *Service) ListShiftsByStaff(ctx context.Context, staffID string, limit, offset int) ([]*Shift, int, error) {
	return s.shifts.ListByStaff(ctx, staffID, limit, offset)
}
