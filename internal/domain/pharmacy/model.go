package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"inventoryitem", "prescription"} }

// Prescription lifecycle states. Transitions only move forward:
// draft -> validated or out_of_stock_external, out_of_stock_external ->
// validated once stock arrives, validated -> dispensed.
const (
	StatusDraft      = "draft"
	StatusValidated  = "validated"
	StatusDispensed  = "dispensed"
	StatusOutOfStock = "out_of_stock_external"
)

// InventoryItem maps to the inventory_item table. Type is one of obat,
// alat_medis, material.
type InventoryItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SKU          string    `db:"sku" json:"sku"`
	Name         string    `db:"name" json:"name"`
	Type         string    `db:"type" json:"type"`
	Barcode      *string   `db:"barcode" json:"barcode,omitempty"`
	Stock        int       `db:"stock" json:"stock"`
	SterileBatch *string   `db:"sterile_batch" json:"sterile_batch,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PrescriptionItem is one line of a prescription, stored as jsonb. Stock is
// matched by drug name, falling back to sku.
type PrescriptionItem struct {
	Drug     string  `json:"drug,omitempty"`
	SKU      string  `json:"sku,omitempty"`
	Dose     *string `json:"dose,omitempty"`
	Freq     *string `json:"freq,omitempty"`
	Duration *string `json:"duration,omitempty"`
	Compound bool    `json:"compound,omitempty"`
}

// StockKey returns the inventory lookup key for the line.
func (i PrescriptionItem) StockKey() string {
	if i.Drug != "" {
		return i.Drug
	}
	return i.SKU
}

// Prescription maps to the prescription table.
type Prescription struct {
	ID                  uuid.UUID          `db:"id" json:"id"`
	PatientID           uuid.UUID          `db:"patient_id" json:"patient_id"`
	Items               []PrescriptionItem `db:"items" json:"items"`
	AllergiesChecked    bool               `db:"allergies_checked" json:"allergies_checked"`
	InteractionsChecked bool               `db:"interactions_checked" json:"interactions_checked"`
	Status              string             `db:"status" json:"status"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}

// ValidationResult is the verdict of a stock check.
type ValidationResult struct {
	Status     string   `json:"status"`
	OutOfStock []string `json:"out_of_stock"`
}

// allowedTransitions captures the forward-only lifecycle.
var allowedTransitions = map[string][]string{
	StatusDraft:      {StatusValidated, StatusOutOfStock},
	StatusOutOfStock: {StatusValidated},
	StatusValidated:  {StatusDispensed},
	StatusDispensed:  {},
}

// CanTransition reports whether a prescription may move between the two
// states.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
