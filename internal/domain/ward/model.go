package ward

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"room", "admission"} }

// Room maps to the room table. occupied_beds is maintained by the admission
// workflow and is constrained to 0..bed_count.
type Room struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Zone         string    `db:"zone" json:"zone"`
	BedCount     int       `db:"bed_count" json:"bed_count"`
	OccupiedBeds int       `db:"occupied_beds" json:"occupied_beds"`
	TariffClass  string    `db:"tariff_class" json:"tariff_class"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Admission maps to the admission table. End is nil while the stay is open.
type Admission struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	RoomCode     string     `db:"room_code" json:"room_code"`
	BedNumber    *int       `db:"bed_number" json:"bed_number,omitempty"`
	Start        time.Time  `db:"start_time" json:"start"`
	End          *time.Time `db:"end_time" json:"end,omitempty"`
	RiskMovement *string    `db:"risk_movement" json:"risk_movement,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// OccupancyReport is the bed occupancy rate snapshot for the dashboard.
type OccupancyReport struct {
	TotalBeds int     `json:"total_beds"`
	Occupied  int     `json:"occupied"`
	BOR       float64 `json:"bor"`
}
