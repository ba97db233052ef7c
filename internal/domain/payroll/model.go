package payroll

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"payrollrecord"} }

// Per-unit remuneration rates in rupiah. Attendance and procedure counts
// are multiplied by these when the monthly total is settled.
const (
	RateKehadiran         = 150000.0
	RateTindakanLangsung  = 75000.0
	RateTindakanAsistensi = 35000.0
	RateInsentifIGD       = 100000.0
	RateInsentifICU       = 125000.0
	RateInsentifIsolasi   = 175000.0
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Record maps to the payroll_record table. Month is YYYY-MM.
type Record struct {
	ID                uuid.UUID `db:"id" json:"id"`
	StaffID           string    `db:"staff_id" json:"staff_id"`
	Month             string    `db:"month" json:"month"`
	Kehadiran         int       `db:"kehadiran" json:"kehadiran"`
	TindakanLangsung  int       `db:"tindakan_langsung" json:"tindakan_langsung"`
	TindakanAsistensi int       `db:"tindakan_asistensi" json:"tindakan_asistensi"`
	InsentifIGD       int       `db:"insentif_igd" json:"insentif_igd"`
	InsentifICU       int       `db:"insentif_icu" json:"insentif_icu"`
	InsentifIsolasi   int       `db:"insentif_isolasi" json:"insentif_isolasi"`
	BonusBPJS         float64   `db:"bonus_bpjs" json:"bonus_bpjs"`
	BaseSalary        float64   `db:"base_salary" json:"base_salary"`
	Total             float64   `db:"total" json:"total"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// ComputeTotal settles the monthly amount from base salary, BPJS bonus
// and the per-unit counts.
func (r *Record) ComputeTotal() float64 {
	return r.BaseSalary + r.BonusBPJS +
		float64(r.Kehadiran)*RateKehadiran +
		float64(r.TindakanLangsung)*RateTindakanLangsung +
		float64(r.TindakanAsistensi)*RateTindakanAsistensi +
		float64(r.InsentifIGD)*RateInsentifIGD +
		float64(r.InsentifICU)*RateInsentifICU +
		float64(r.InsentifIsolasi)*RateInsentifIsolasi
}

func validMonth(m string) bool {
	return monthPattern.MatchString(m)
}
