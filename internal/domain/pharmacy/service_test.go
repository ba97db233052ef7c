package pharmacy

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

// -- Mock Repositories --

type mockInventoryRepo struct {
	items map[string]*InventoryItem
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{items: make(map[string]*InventoryItem)}
}

func (m *mockInventoryRepo) Create(_ context.Context, i *InventoryItem) error {
	i.ID = uuid.New()
	i.CreatedAt = time.Now()
	m.items[i.SKU] = i
	return nil
}

func (m *mockInventoryRepo) GetByID(_ context.Context, id uuid.UUID) (*InventoryItem, error) {
	for _, i := range m.items {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, ErrItemNotFound
}

func (m *mockInventoryRepo) GetBySKU(_ context.Context, sku string) (*InventoryItem, error) {
	i, ok := m.items[sku]
	if !ok {
		return nil, ErrItemNotFound
	}
	return i, nil
}

func (m *mockInventoryRepo) Update(_ context.Context, i *InventoryItem) error {
	m.items[i.SKU] = i
	return nil
}

func (m *mockInventoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for sku, i := range m.items {
		if i.ID == id {
			delete(m.items, sku)
		}
	}
	return nil
}

func (m *mockInventoryRepo) List(_ context.Context, limit, offset int) ([]*InventoryItem, int, error) {
	var result []*InventoryItem
	for _, i := range m.items {
		result = append(result, i)
	}
	return result, len(result), nil
}

func (m *mockInventoryRepo) Search(_ context.Context, _ map[string]string, limit, offset int) ([]*InventoryItem, int, error) {
	return m.List(context.Background(), limit, offset)
}

type mockPrescriptionRepo struct {
	prescriptions map[uuid.UUID]*Prescription
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{prescriptions: make(map[uuid.UUID]*Prescription)}
}

func (m *mockPrescriptionRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	m.prescriptions[p.ID] = p
	return nil
}

func (m *mockPrescriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.prescriptions[id]
	if !ok {
		return nil, ErrPrescriptionNotFound
	}
	return p, nil
}

func (m *mockPrescriptionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	p, ok := m.prescriptions[id]
	if !ok {
		return ErrPrescriptionNotFound
	}
	p.Status = status
	return nil
}

func (m *mockPrescriptionRepo) List(_ context.Context, limit, offset int) ([]*Prescription, int, error) {
	var result []*Prescription
	for _, p := range m.prescriptions {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockPrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var result []*Prescription
	for _, p := range m.prescriptions {
		if p.PatientID == patientID {
			result = append(result, p)
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

func newTestService() (*Service, *mockInventoryRepo, *mockPrescriptionRepo) {
	inv := newMockInventoryRepo()
	rx := newMockPrescriptionRepo()
	rec := audit.NewRecorder(&mockAuditRepo{}, zerolog.Nop())
	return NewService(inv, rx, rec), inv, rx
}

func stockItem(t *testing.T, svc *Service, sku string, stock int) {
	t.Helper()
	if err := svc.CreateItem(context.Background(), &InventoryItem{SKU: sku, Name: sku, Type: "obat", Stock: stock}); err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

// -- Tests --

func TestCheckStock_AllAvailable(t *testing.T) {
	svc, _, _ := newTestService()
	stockItem(t, svc, "paracetamol", 100)
	stockItem(t, svc, "amoxicillin", 20)

	result, err := svc.CheckStock(context.Background(), []PrescriptionItem{
		{Drug: "paracetamol"},
		{Drug: "amoxicillin"},
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Status != StatusValidated {
		t.Errorf("expected validated, got %s", result.Status)
	}
	if len(result.OutOfStock) != 0 {
		t.Errorf("expected no out-of-stock, got %v", result.OutOfStock)
	}
}

func TestCheckStock_MissingAndZeroStock(t *testing.T) {
	svc, _, _ := newTestService()
	stockItem(t, svc, "paracetamol", 0)

	result, err := svc.CheckStock(context.Background(), []PrescriptionItem{
		{Drug: "paracetamol"},
		{Drug: "unknown-drug"},
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Status != StatusOutOfStock {
		t.Errorf("expected out_of_stock_external, got %s", result.Status)
	}
	if len(result.OutOfStock) != 2 {
		t.Errorf("expected 2 out-of-stock lines, got %v", result.OutOfStock)
	}
}

func TestCheckStock_SKUFallback(t *testing.T) {
	svc, _, _ := newTestService()
	stockItem(t, svc, "SKU-042", 5)

	result, err := svc.CheckStock(context.Background(), []PrescriptionItem{{SKU: "SKU-042"}})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Status != StatusValidated {
		t.Errorf("expected validated via sku fallback, got %s", result.Status)
	}
}

func TestCheckStock_EmptyPrescription(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.CheckStock(context.Background(), nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Status != StatusValidated {
		t.Errorf("expected validated for empty items, got %s", result.Status)
	}
}

func TestValidatePrescription_AppliesVerdict(t *testing.T) {
	svc, _, rx := newTestService()
	stockItem(t, svc, "paracetamol", 10)

	p := &Prescription{PatientID: uuid.New(), Items: []PrescriptionItem{{Drug: "paracetamol"}}}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := svc.ValidatePrescription(context.Background(), p, &p.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Status != StatusValidated {
		t.Errorf("expected validated, got %s", result.Status)
	}
	if rx.prescriptions[p.ID].Status != StatusValidated {
		t.Errorf("expected stored status updated, got %s", rx.prescriptions[p.ID].Status)
	}
}

func TestTransitionStatus_ForwardOnly(t *testing.T) {
	svc, _, _ := newTestService()

	p := &Prescription{PatientID: uuid.New()}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.TransitionStatus(context.Background(), p.ID, StatusValidated); err != nil {
		t.Fatalf("draft -> validated: %v", err)
	}
	if err := svc.Dispense(context.Background(), p.ID); err != nil {
		t.Fatalf("validated -> dispensed: %v", err)
	}

	// Dispensed is terminal.
	err := svc.TransitionStatus(context.Background(), p.ID, StatusValidated)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionStatus_OutOfStockRecovery(t *testing.T) {
	svc, _, _ := newTestService()

	p := &Prescription{PatientID: uuid.New()}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.TransitionStatus(context.Background(), p.ID, StatusOutOfStock); err != nil {
		t.Fatalf("draft -> out_of_stock: %v", err)
	}
	if err := svc.TransitionStatus(context.Background(), p.ID, StatusValidated); err != nil {
		t.Fatalf("out_of_stock -> validated: %v", err)
	}
	// Cannot skip from out_of_stock straight to dispensed.
	p2 := &Prescription{PatientID: uuid.New()}
	if err := svc.CreatePrescription(context.Background(), p2); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.TransitionStatus(context.Background(), p2.ID, StatusOutOfStock); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if err := svc.Dispense(context.Background(), p2.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionStatus_UnknownPrescription(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.TransitionStatus(context.Background(), uuid.New(), StatusValidated)
	if !errors.Is(err, ErrPrescriptionNotFound) {
		t.Fatalf("expected ErrPrescriptionNotFound, got %v", err)
	}
}

func TestCreatePrescription_DefaultsToDraft(t *testing.T) {
	svc, _, rx := newTestService()

	p := &Prescription{PatientID: uuid.New()}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rx.prescriptions[p.ID].Status != StatusDraft {
		t.Errorf("expected draft, got %s", rx.prescriptions[p.ID].Status)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.CreateItem(context.Background(), &InventoryItem{Name: "x", Type: "obat"}); err == nil {
		t.Error("expected error for missing sku")
	}
	if err := svc.CreateItem(context.Background(), &InventoryItem{SKU: "x", Type: "obat"}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.CreateItem(context.Background(), &InventoryItem{SKU: "x", Name: "x", Type: "obat", Stock: -1}); err == nil {
		t.Error("expected error for negative stock")
	}
}
