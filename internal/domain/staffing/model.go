package staffing

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"staff", "shift"} }

// Roles recognised for hospital staff.
var ValidRoles = []string{
	"dokter_umum", "spesialis", "sub_spesialis",
	"perawat_junior", "perawat_madya", "perawat_senior",
	"farmasi", "laboran", "admin",
}

// Areas a shift can be rostered to.
var ValidAreas = []string{
	"IGD", "ICU", "NICU", "Isolasi", "Bedah", "URJ", "URI", "HD", "Ruang Umum",
}

// PersonName is stored as jsonb.
type PersonName struct {
	First  string  `json:"first"`
	Last   *string `json:"last,omitempty"`
	Middle *string `json:"middle,omitempty"`
}

// Staff maps to the staff table. StaffID is the human-facing employee code,
// distinct from the row id.
type Staff struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	StaffID        string     `db:"staff_id" json:"staff_id"`
	Name           PersonName `db:"name" json:"name"`
	Role           string     `db:"role" json:"role"`
	SIP            *string    `db:"sip" json:"sip,omitempty"`
	STRNumber      *string    `db:"str_number" json:"str_number,omitempty"`
	Qualifications []string   `db:"qualifications" json:"qualifications"`
	OnCall         bool       `db:"on_call" json:"on_call"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Shift maps to the shift table.
type Shift struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StaffID   string    `db:"staff_id" json:"staff_id"`
	Area      string    `db:"area" json:"area"`
	Start     time.Time `db:"start_time" json:"start"`
	End       time.Time `db:"end_time" json:"end"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func validRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func validArea(area string) bool {
	for _, a := range ValidAreas {
		if a == area {
			return true
		}
	}
	return false
}
