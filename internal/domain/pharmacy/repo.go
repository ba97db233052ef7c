package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	Create(ctx context.Context, i *InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*InventoryItem, error)
	Update(ctx context.Context, i *InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*InventoryItem, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*InventoryItem, int, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, limit, offset int) ([]*Prescription, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
}
