package lab

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

type Service struct {
	orders  OrderRepository
	results ResultRepository
	audit   *audit.Recorder
}

func NewService(orders OrderRepository, results ResultRepository, rec *audit.Recorder) *Service {
	return &Service{orders: orders, results: results, audit: rec}
}

// -- Orders --

func (s *Service) CreateOrder(ctx context.Context, o *Order) error {
	if o.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if len(o.Tests) == 0 {
		return fmt.Errorf("tests must not be empty")
	}
	if o.Source == "" {
		o.Source = "UGD"
	}
	if o.Status == "" {
		o.Status = OrderStatusOrdered
	}
	switch o.Status {
	case OrderStatusOrdered, OrderStatusInProgress, OrderStatusCompleted:
	default:
		return fmt.Errorf("unknown status %q", o.Status)
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "laborder", o.ID.String(), nil)
	return nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	return s.orders.List(ctx, limit, offset)
}

func (s *Service) ListOrdersByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	return s.orders.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case OrderStatusOrdered, OrderStatusInProgress, OrderStatusCompleted:
	default:
		return fmt.Errorf("unknown status %q", status)
	}
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit.Record(ctx, "update", "laborder", id.String(), map[string]interface{}{"status": status})
	return nil
}

// -- Results --

// IngestExternalResult stores a result delivered by an outside laboratory.
// When the result is complete and references a known order, the order is
// closed; unknown orders are accepted as-is since external references may
// predate the order record.
func (s *Service) IngestExternalResult(ctx context.Context, r *Result) error {
	if r.OrderID == uuid.Nil {
		return fmt.Errorf("order_id is required")
	}
	if r.Results == nil {
		r.Results = map[string]interface{}{}
	}
	if r.Status == "" {
		r.Status = ResultStatusCompleted
	}
	if r.Status != ResultStatusCompleted && r.Status != ResultStatusPartial {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	if err := s.results.Create(ctx, r); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "labresult", r.ID.String(), map[string]interface{}{"source": "external"})

	if r.Status == ResultStatusCompleted {
		if _, err := s.orders.GetByID(ctx, r.OrderID); err == nil {
			_ = s.orders.UpdateStatus(ctx, r.OrderID, OrderStatusCompleted)
		}
	}
	return nil
}

func (s *Service) GetResult(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.results.GetByID(ctx, id)
}

func (s *Service) ListResults(ctx context.Context, limit, offset int) ([]*Result, int, error) {
	return s.results.List(ctx, limit, offset)
}

func (s *Service) ListResultsByOrder(ctx context.Context, orderID uuid.UUID) ([]*Result, error) {
	return s.results.ListByOrder(ctx, orderID)
}
