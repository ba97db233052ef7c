package lab

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

// -- Mock Repositories --

type mockOrderRepo struct {
	orders map[uuid.UUID]*Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	o.ID = uuid.New()
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return o, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepo) List(_ context.Context, limit, offset int) ([]*Order, int, error) {
	var result []*Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, len(result), nil
}

func (m *mockOrderRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	var result []*Order
	for _, o := range m.orders {
		if o.PatientID == patientID {
			result = append(result, o)
		}
	}
	return result, len(result), nil
}

type mockResultRepo struct {
	results map[uuid.UUID]*Result
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{results: make(map[uuid.UUID]*Result)}
}

func (m *mockResultRepo) Create(_ context.Context, r *Result) error {
	r.ID = uuid.New()
	m.results[r.ID] = r
	return nil
}

func (m *mockResultRepo) GetByID(_ context.Context, id uuid.UUID) (*Result, error) {
	r, ok := m.results[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockResultRepo) List(_ context.Context, limit, offset int) ([]*Result, int, error) {
	var result []*Result
	for _, r := range m.results {
		result = append(result, r)
	}
	return result, len(result), nil
}

func (m *mockResultRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]*Result, error) {
	var result []*Result
	for _, r := range m.results {
		if r.OrderID == orderID {
			result = append(result, r)
		}
	}
	return result, nil
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

func newTestService() (*Service, *mockOrderRepo, *mockResultRepo, *mockAuditRepo) {
	orders := newMockOrderRepo()
	results := newMockResultRepo()
	auditRepo := &mockAuditRepo{}
	rec := audit.NewRecorder(auditRepo, zerolog.Nop())
	return NewService(orders, results, rec), orders, results, auditRepo
}

// -- Tests --

func TestCreateOrder_Defaults(t *testing.T) {
	svc, orders, _, _ := newTestService()

	o := &Order{PatientID: uuid.New(), Tests: []string{"darah_lengkap"}}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("create: %v", err)
	}
	stored := orders.orders[o.ID]
	if stored.Source != "UGD" {
		t.Errorf("expected default source UGD, got %s", stored.Source)
	}
	if stored.Status != OrderStatusOrdered {
		t.Errorf("expected default status ordered, got %s", stored.Status)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateOrder(context.Background(), &Order{Tests: []string{"x"}}); err == nil {
		t.Error("expected error for missing patient_id")
	}
	if err := svc.CreateOrder(context.Background(), &Order{PatientID: uuid.New()}); err == nil {
		t.Error("expected error for empty tests")
	}
	if err := svc.CreateOrder(context.Background(), &Order{PatientID: uuid.New(), Tests: []string{"x"}, Status: "bogus"}); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestIngestExternalResult(t *testing.T) {
	svc, orders, results, auditRepo := newTestService()

	o := &Order{PatientID: uuid.New(), Tests: []string{"hba1c"}}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("create order: %v", err)
	}

	r := &Result{OrderID: o.ID, Results: map[string]interface{}{"hba1c": 6.1}}
	if err := svc.IngestExternalResult(context.Background(), r); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if results.results[r.ID].Status != ResultStatusCompleted {
		t.Errorf("expected default status completed, got %s", results.results[r.ID].Status)
	}

	// Completed result closes the known order.
	if orders.orders[o.ID].Status != OrderStatusCompleted {
		t.Errorf("expected order closed, got %s", orders.orders[o.ID].Status)
	}

	// Audited with external source marker.
	found := false
	for _, e := range auditRepo.entries {
		if e.Entity == "labresult" && e.Meta["source"] == "external" {
			found = true
		}
	}
	if !found {
		t.Error("expected audit entry with source=external")
	}
}

func TestIngestExternalResult_UnknownOrderAccepted(t *testing.T) {
	svc, _, results, _ := newTestService()

	r := &Result{OrderID: uuid.New(), Results: map[string]interface{}{"na": 140}}
	if err := svc.IngestExternalResult(context.Background(), r); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(results.results) != 1 {
		t.Errorf("expected result stored, got %d", len(results.results))
	}
}

func TestIngestExternalResult_PartialKeepsOrderOpen(t *testing.T) {
	svc, orders, _, _ := newTestService()

	o := &Order{PatientID: uuid.New(), Tests: []string{"elektrolit"}}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("create order: %v", err)
	}

	r := &Result{OrderID: o.ID, Status: ResultStatusPartial, Results: map[string]interface{}{"na": 138}}
	if err := svc.IngestExternalResult(context.Background(), r); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if orders.orders[o.ID].Status != OrderStatusOrdered {
		t.Errorf("expected order to stay ordered for partial result, got %s", orders.orders[o.ID].Status)
	}
}

func TestIngestExternalResult_MissingOrderID(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.IngestExternalResult(context.Background(), &Result{}); err == nil {
		t.Fatal("expected error for missing order_id")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, orders, _, _ := newTestService()

	o := &Order{PatientID: uuid.New(), Tests: []string{"ureum"}}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.UpdateOrderStatus(context.Background(), o.ID, OrderStatusInProgress); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if orders.orders[o.ID].Status != OrderStatusInProgress {
		t.Errorf("expected in_progress, got %s", orders.orders[o.ID].Status)
	}
	if err := svc.UpdateOrderStatus(context.Background(), o.ID, "bogus"); err == nil {
		t.Error("expected error for unknown status")
	}
}
