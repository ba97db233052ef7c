package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByMRN(_ context.Context, mrn string) (*Patient, error) {
	for _, p := range m.patients {
		if p.NationalMRN == mrn {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if v, ok := params["national_mrn"]; ok && p.NationalMRN != v {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

// -- Mock audit repo, shared by domain service tests --

type mockAuditRepo struct {
	entries []*audit.Entry
}

func (m *mockAuditRepo) Create(_ context.Context, e *audit.Entry) error {
	e.ID = uuid.New()
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

func newTestRecorder() (*audit.Recorder, *mockAuditRepo) {
	repo := &mockAuditRepo{}
	return audit.NewRecorder(repo, zerolog.Nop()), repo
}

// -- Tests --

func TestCreatePatient(t *testing.T) {
	repo := newMockRepo()
	rec, auditRepo := newTestRecorder()
	svc := NewService(repo, rec)

	p := &Patient{
		NationalMRN: "MRN-001",
		Name:        PersonName{First: "Budi"},
	}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if p.Allergies == nil || p.Categories == nil {
		t.Error("expected nil slices to be defaulted")
	}
	if len(auditRepo.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(auditRepo.entries))
	}
	if auditRepo.entries[0].Entity != "patient" || auditRepo.entries[0].Action != "create" {
		t.Errorf("unexpected audit entry: %+v", auditRepo.entries[0])
	}
}

func TestCreatePatient_MissingMRN(t *testing.T) {
	repo := newMockRepo()
	rec, _ := newTestRecorder()
	svc := NewService(repo, rec)

	err := svc.CreatePatient(context.Background(), &Patient{Name: PersonName{First: "Budi"}})
	if err == nil {
		t.Fatal("expected error for missing national_mrn")
	}
}

func TestCreatePatient_MissingName(t *testing.T) {
	repo := newMockRepo()
	rec, _ := newTestRecorder()
	svc := NewService(repo, rec)

	err := svc.CreatePatient(context.Background(), &Patient{NationalMRN: "MRN-002"})
	if err == nil {
		t.Fatal("expected error for missing name.first")
	}
}

func TestGetPatientByMRN(t *testing.T) {
	repo := newMockRepo()
	rec, _ := newTestRecorder()
	svc := NewService(repo, rec)

	p := &Patient{NationalMRN: "MRN-003", Name: PersonName{First: "Siti"}}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetPatientByMRN(context.Background(), "MRN-003")
	if err != nil {
		t.Fatalf("get by mrn: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected id %s, got %s", p.ID, got.ID)
	}
}

func TestDeletePatient_Audited(t *testing.T) {
	repo := newMockRepo()
	rec, auditRepo := newTestRecorder()
	svc := NewService(repo, rec)

	p := &Patient{NationalMRN: "MRN-004", Name: PersonName{First: "Agus"}}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeletePatient(context.Background(), p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(auditRepo.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(auditRepo.entries))
	}
	if auditRepo.entries[1].Action != "delete" {
		t.Errorf("expected delete action, got %s", auditRepo.entries[1].Action)
	}
}
