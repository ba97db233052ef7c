package billing

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"insuranceclaim", "governmentreport"} }

// Payers accepted on insurance claims.
var ValidPayers = []string{"BPJS", "Askes", "Swasta", "Jamkesda", "Jampersal"}

// Claim lifecycle statuses.
const (
	ClaimStatusSubmitted = "submitted"
	ClaimStatusInReview  = "in_review"
	ClaimStatusApproved  = "approved"
	ClaimStatusRejected  = "rejected"
	ClaimStatusPaid      = "paid"
)

var claimStatuses = map[string]bool{
	ClaimStatusSubmitted: true,
	ClaimStatusInReview:  true,
	ClaimStatusApproved:  true,
	ClaimStatusRejected:  true,
	ClaimStatusPaid:      true,
}

// Report kinds correspond to the national integrations reports are
// forwarded to.
var ValidReportKinds = []string{"VClaim", "SISRUTE", "SATUSEHAT"}

const (
	ReportStatusQueued = "queued"
	ReportStatusSent   = "sent"
	ReportStatusError  = "error"
)

var reportStatuses = map[string]bool{
	ReportStatusQueued: true,
	ReportStatusSent:   true,
	ReportStatusError:  true,
}

// InsuranceClaim maps to the insurance_claim table.
type InsuranceClaim struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Payer     string    `db:"payer" json:"payer"`
	Amount    float64   `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GovernmentReport maps to the government_report table. Payload is the
// raw document forwarded to the external system, stored as jsonb.
type GovernmentReport struct {
	ID        uuid.UUID              `db:"id" json:"id"`
	Kind      string                 `db:"kind" json:"kind"`
	Payload   map[string]interface{} `db:"payload" json:"payload"`
	Status    string                 `db:"status" json:"status"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt time.Time              `db:"updated_at" json:"updated_at"`
}

func validPayer(p string) bool {
	for _, v := range ValidPayers {
		if v == p {
			return true
		}
	}
	return false
}

func validReportKind(k string) bool {
	for _, v := range ValidReportKinds {
		if v == k {
			return true
		}
	}
	return false
}
