package pharmacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsrujukan/hospital/internal/domain/audit"
)

type Service struct {
	inventory     InventoryRepository
	prescriptions PrescriptionRepository
	audit         *audit.Recorder
}

func NewService(inventory InventoryRepository, prescriptions PrescriptionRepository, rec *audit.Recorder) *Service {
	return &Service{inventory: inventory, prescriptions: prescriptions, audit: rec}
}

// -- Inventory --

func (s *Service) CreateItem(ctx context.Context, i *InventoryItem) error {
	if i.SKU == "" {
		return fmt.Errorf("sku is required")
	}
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if i.Type == "" {
		return fmt.Errorf("type is required")
	}
	if i.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	if err := s.inventory.Create(ctx, i); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "inventoryitem", i.ID.String(), nil)
	return nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	return s.inventory.GetByID(ctx, id)
}

func (s *Service) GetItemBySKU(ctx context.Context, sku string) (*InventoryItem, error) {
	return s.inventory.GetBySKU(ctx, sku)
}

func (s *Service) UpdateItem(ctx context.Context, i *InventoryItem) error {
	if i.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	if err := s.inventory.Update(ctx, i); err != nil {
		return err
	}
	s.audit.Record(ctx, "update", "inventoryitem", i.ID.String(), nil)
	return nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.inventory.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "delete", "inventoryitem", id.String(), nil)
	return nil
}

func (s *Service) ListItems(ctx context.Context, limit, offset int) ([]*InventoryItem, int, error) {
	return s.inventory.List(ctx, limit, offset)
}

func (s *Service) SearchItems(ctx context.Context, params map[string]string, limit, offset int) ([]*InventoryItem, int, error) {
	return s.inventory.Search(ctx, params, limit, offset)
}

// -- Stock validation --

// CheckStock verifies each prescription line against inventory. A line with
// no matching item, or zero stock, is reported out of stock and the whole
// prescription is routed externally.
func (s *Service) CheckStock(ctx context.Context, items []PrescriptionItem) (*ValidationResult, error) {
	outOfStock := []string{}
	for _, it := range items {
		key := it.StockKey()
		inv, err := s.inventory.GetBySKU(ctx, key)
		if errors.Is(err, ErrItemNotFound) {
			outOfStock = append(outOfStock, key)
			continue
		}
		if err != nil {
			return nil, err
		}
		if inv.Stock <= 0 {
			outOfStock = append(outOfStock, key)
		}
	}
	status := StatusValidated
	if len(outOfStock) > 0 {
		status = StatusOutOfStock
	}
	return &ValidationResult{Status: status, OutOfStock: outOfStock}, nil
}

// ValidatePrescription runs the stock check and, when prescriptionID is set,
// applies the verdict to the stored prescription.
func (s *Service) ValidatePrescription(ctx context.Context, p *Prescription, prescriptionID *uuid.UUID) (*ValidationResult, error) {
	result, err := s.CheckStock(ctx, p.Items)
	if err != nil {
		return nil, err
	}
	if prescriptionID != nil {
		if err := s.TransitionStatus(ctx, *prescriptionID, result.Status); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// -- Prescriptions --

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if p.Items == nil {
		p.Items = []PrescriptionItem{}
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if _, ok := allowedTransitions[p.Status]; !ok {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, "create", "prescription", p.ID.String(), nil)
	return nil
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) ListPrescriptions(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.List(ctx, limit, offset)
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.ListByPatient(ctx, patientID, limit, offset)
}

// TransitionStatus moves a prescription through its lifecycle, rejecting
// anything but a forward step.
func (s *Service) TransitionStatus(ctx context.Context, id uuid.UUID, status string) error {
	p, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(p.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, status)
	}
	if err := s.prescriptions.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit.Record(ctx, "update", "prescription", id.String(), map[string]interface{}{
		"from": p.Status, "to": status,
	})
	return nil
}

// Dispense marks a validated prescription as handed out.
func (s *Service) Dispense(ctx context.Context, id uuid.UUID) error {
	return s.TransitionStatus(ctx, id, StatusDispensed)
}
