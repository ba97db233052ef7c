package lab

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"laborder", "labresult"} }

// Lab order lifecycle.
const (
	OrderStatusOrdered    = "ordered"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
)

// Result completeness.
const (
	ResultStatusCompleted = "completed"
	ResultStatusPartial   = "partial"
)

// Order maps to the lab_order table. Source is one of UGD, URJ, RI,
// External.
type Order struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Tests       []string  `db:"tests" json:"tests"`
	Source      string    `db:"source" json:"source"`
	TubeBarcode *string   `db:"tube_barcode" json:"tube_barcode,omitempty"`
	Status      string    `db:"status" json:"status"`
	ExternalRef *string   `db:"external_ref" json:"external_ref,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Result maps to the lab_result table. Results are stored as jsonb keyed by
// test name.
type Result struct {
	ID        uuid.UUID              `db:"id" json:"id"`
	OrderID   uuid.UUID              `db:"order_id" json:"order_id"`
	Results   map[string]interface{} `db:"results" json:"results"`
	Status    string                 `db:"status" json:"status"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
