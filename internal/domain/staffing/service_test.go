package staffing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

// -- Mock Repositories --

type mockStaffRepo struct {
	staff map[uuid.UUID]*Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[uuid.UUID]*Staff)}
}

func (m *mockStaffRepo) Create(_ context.Context, s *Staff) error {
	s.ID = uuid.New()
	m.staff[s.ID] = s
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*Staff, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockStaffRepo) GetByStaffID(_ context.Context, staffID string) (*Staff, error) {
	for _, s := range m.staff {
		if s.StaffID == staffID {
			return s, nil
		}
	}
	return nil, ErrStaffNotFound
}

func (m *mockStaffRepo) Update(_ context.Context, s *Staff) error {
	if _, ok := m.staff[s.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.staff[s.ID] = s
	return nil
}

func (m *mockStaffRepo) List(_ context.Context, limit, offset int) ([]*Staff, int, error) {
	var result []*Staff
	for _, s := range m.staff {
		result = append(result, s)
	}
	return result, len(result), nil
}

func (m *mockStaffRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Staff, int, error) {
	var result []*Staff
	for _, s := range m.staff {
		if role, ok := params["role"]; ok && s.Role != role {
			continue
		}
		result = append(result, s)
	}
	return result, len(result), nil
}

type mockShiftRepo struct {
	shifts map[uuid.UUID]*Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[uuid.UUID]*Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, sh *Shift) error {
	sh.ID = uuid.New()
	m.shifts[sh.ID] = sh
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id uuid.UUID) (*Shift, error) {
	sh, ok := m.shifts[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return sh, nil
}

func (m *mockShiftRepo) List(_ context.Context, limit, offset int) ([]*Shift, int, error) {
	var result []*Shift
	for _, sh := range m.shifts {
		result = append(result, sh)
	}
	return result, len(result), nil
}

func (m *mockShiftRepo) ListByStaff(_ context.Context, staffID string, limit, offset int) ([]*Shift, int, error) {
	var result []*Shift
	for _, sh := range m.shifts {
		if sh.StaffID == staffID {
			result = append(result, sh)
		}
	}
	return result, len(result), nil
}

type mockAuditRepo struct {
	entries []*audit.Entry
}

func (m *mockAuditRepo) Create(_ context.Context, e *audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditRepo) GetByID(_ context.Context, id uuid.UUID) (*audit.Entry, error) {
	return nil, fmt.Errorf("not found")
}

func (m *mockAuditRepo) List(_ context.Context, limit, offset int) ([]*audit.Entry, int, error) {
	return m.entries, len(m.entries), nil
}

func (m *mockAuditRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*audit.Entry, int, error) {
	return m.entries, len(m.entries), nil
}

func newTestService() (*Service, *mockStaffRepo, *mockShiftRepo, *mockAuditRepo) {
	staffRepo := newMockStaffRepo()
	shiftRepo := newMockShiftRepo()
	auditRepo := &mockAuditRepo{}
	rec := audit.NewRecorder(auditRepo, zerolog.Nop())
	return NewService(staffRepo, shiftRepo, rec), staffRepo, shiftRepo, auditRepo
}

// -- Tests --

func TestCreateStaff(t *testing.T) {
	svc, repo, _, auditRepo := newTestService()

	st := &Staff{StaffID: "STF-001", Name: PersonName{First: "Sari"}, Role: "perawat_senior"}
	if err := svc.CreateStaff(context.Background(), st); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := repo.staff[st.ID]; !ok {
		t.Fatal("staff not stored")
	}
	if repo.staff[st.ID].Qualifications == nil {
		t.Error("expected qualifications defaulted to empty slice")
	}
	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Entity != "staff" {
		t.Error("expected staff create to be audited")
	}
}

func TestCreateStaff_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name  string
		staff *Staff
	}{
		{"missing staff_id", &Staff{Name: PersonName{First: "A"}, Role: "admin"}},
		{"missing first name", &Staff{StaffID: "X", Role: "admin"}},
		{"unknown role", &Staff{StaffID: "X", Name: PersonName{First: "A"}, Role: "janitor"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateStaff(context.Background(), tc.staff); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateShift(t *testing.T) {
	svc, _, shifts, _ := newTestService()

	st := &Staff{StaffID: "STF-002", Name: PersonName{First: "Budi"}, Role: "dokter_umum"}
	if err := svc.CreateStaff(context.Background(), st); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	sh := &Shift{StaffID: "STF-002", Area: "IGD", Start: start, End: start.Add(8 * time.Hour)}
	if err := svc.CreateShift(context.Background(), sh); err != nil {
		t.Fatalf("create shift: %v", err)
	}
	if _, ok := shifts.shifts[sh.ID]; !ok {
		t.Fatal("shift not stored")
	}
}

func TestCreateShift_UnknownStaff(t *testing.T) {
	svc, _, _, _ := newTestService()

	start := time.Now()
	sh := &Shift{StaffID: "GHOST", Area: "ICU", Start: start, End: start.Add(8 * time.Hour)}
	if err := svc.CreateShift(context.Background(), sh); err == nil {
		t.Fatal("expected error for unknown staff")
	}
}

func TestCreateShift_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	st := &Staff{StaffID: "STF-003", Name: PersonName{First: "Dewi"}, Role: "perawat_junior"}
	if err := svc.CreateStaff(context.Background(), st); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	start := time.Now()
	if err := svc.CreateShift(context.Background(), &Shift{StaffID: "STF-003", Area: "Lobby", Start: start, End: start.Add(time.Hour)}); err == nil {
		t.Error("expected error for unknown area")
	}
	if err := svc.CreateShift(context.Background(), &Shift{StaffID: "STF-003", Area: "ICU", Start: start, End: start}); err == nil {
		t.Error("expected error for start not before end")
	}
	if err := svc.CreateShift(context.Background(), &Shift{StaffID: "STF-003", Area: "ICU"}); err == nil {
		t.Error("expected error for missing times")
	}
}

func TestListShiftsByStaff(t *testing.T) {
	svc, _, _, _ := newTestService()

	st := &Staff{StaffID: "STF-004", Name: PersonName{First: "Rina"}, Role: "laboran"}
	if err := svc.CreateStaff(context.Background(), st); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	start := time.Now()
	for i := 0; i < 3; i++ {
		sh := &Shift{StaffID: "STF-004", Area: "HD", Start: start.Add(time.Duration(i) * 24 * time.Hour), End: start.Add(time.Duration(i)*24*time.Hour + 8*time.Hour)}
		if err := svc.CreateShift(context.Background(), sh); err != nil {
			t.Fatalf("create shift: %v", err)
		}
	}

	items, total, err := svc.ListShiftsByStaff(context.Background(), "STF-004", 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Errorf("expected 3 shifts, got total=%d len=%d", total, len(items))
	}
}
