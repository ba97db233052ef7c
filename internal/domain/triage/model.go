package triage

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"triageevent"} }

// FlagAutoConsent marks events where emergency-protocol consent was granted
// automatically because the patient was in no state to give it.
const FlagAutoConsent = "auto_consent_emergency_protocol"

// Event maps to the triage_event table. Vital signs are stored as jsonb
// keyed by measurement name: td_systolic, td_diastolic, nadi, spo2, rr, temp.
// Values are pointers so a JSON null measurement stays distinguishable from a
// reading of zero.
type Event struct {
	ID                       uuid.UUID           `db:"id" json:"id"`
	PatientID                uuid.UUID           `db:"patient_id" json:"patient_id"`
	ArrivalMode              *string             `db:"arrival_mode" json:"arrival_mode,omitempty"`
	GCS                      *int                `db:"gcs" json:"gcs,omitempty"`
	VitalSigns               map[string]*float64 `db:"vital_signs" json:"vital_signs"`
	ESILevel                 *int                `db:"esi_level" json:"esi_level,omitempty"`
	CriticalFlags            []string            `db:"critical_flags" json:"critical_flags"`
	ConsentEmergencyProtocol bool                `db:"consent_emergency_protocol" json:"consent_emergency_protocol"`
	Notes                    *string             `db:"notes" json:"notes,omitempty"`
	CreatedAt                time.Time           `db:"created_at" json:"created_at"`
}

// Result is the triage outcome returned to the caller.
type Result struct {
	ID       uuid.UUID `json:"id"`
	Critical bool      `json:"critical"`
	Consent  bool      `json:"consent"`
}

// Evaluate decides whether a presentation is critical: a Glasgow Coma Scale
// of 8 or below, or an SpO2 under 90, qualifies. The spo2 rule only applies
// when a reading was actually taken; a null measurement is not a reading.
func Evaluate(gcs *int, vitals map[string]*float64) bool {
	if gcs != nil && *gcs <= 8 {
		return true
	}
	if spo2, ok := vitals["spo2"]; ok && spo2 != nil && *spo2 < 90 {
		return true
	}
	return false
}
