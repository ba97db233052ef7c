package procedure

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"procedure"} }

// CSSDTurnaround is how long the central sterile supply department has to
// take instruments back after a sterile procedure.
const CSSDTurnaround = 8 * time.Hour

// Procedure maps to the procedure table. Materials and IoT device lists are
// stored as jsonb.
type Procedure struct {
	ID              uuid.UUID                `db:"id" json:"id"`
	PatientID       uuid.UUID                `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID                `db:"doctor_id" json:"doctor_id"`
	Description     string                   `db:"description" json:"description"`
	RequiresSterile bool                     `db:"requires_sterile" json:"requires_sterile"`
	SterileBatch    *string                  `db:"sterile_batch" json:"sterile_batch,omitempty"`
	CSSDReturnDue   *time.Time               `db:"cssd_return_due" json:"cssd_return_due,omitempty"`
	Materials       []map[string]interface{} `db:"materials" json:"materials"`
	ESignature      *string                  `db:"e_signature" json:"e_signature,omitempty"`
	IoTDevices      []string                 `db:"iot_devices" json:"iot_devices"`
	CreatedAt       time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time                `db:"updated_at" json:"updated_at"`
}
