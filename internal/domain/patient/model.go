package patient

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"patient"} }

// PersonName is embedded in several records and stored as jsonb.
type PersonName struct {
	First  string  `json:"first"`
	Last   *string `json:"last,omitempty"`
	Middle *string `json:"middle,omitempty"`
}

// Contact holds guarantor and emergency-contact details.
type Contact struct {
	Name     string  `json:"name"`
	Relation *string `json:"relation,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Allergy severity is one of mild, moderate, severe, anaphylaxis.
type Allergy struct {
	Substance string  `json:"substance"`
	Reaction  *string `json:"reaction,omitempty"`
	Severity  *string `json:"severity,omitempty"`
}

// ChronicCondition status is one of active, remission, resolved.
type ChronicCondition struct {
	Name   string  `json:"name"`
	Status *string `json:"status,omitempty"`
}

// InsuranceInfo categorises the patient by payer scheme: umum, bpjs, pppk,
// jampersal, jamkesda, sisrute, telemedis.
type InsuranceInfo struct {
	Type         string  `json:"type"`
	PolicyNumber *string `json:"policy_number,omitempty"`
	Provider     *string `json:"provider,omitempty"`
}

// Patient maps to the patient table. Nested profile data is stored as jsonb.
type Patient struct {
	ID                  uuid.UUID              `db:"id" json:"id"`
	NationalMRN         string                 `db:"national_mrn" json:"national_mrn"`
	Name                PersonName             `db:"name" json:"name"`
	BirthDate           *time.Time             `db:"birth_date" json:"birth_date,omitempty"`
	Gender              *string                `db:"gender" json:"gender,omitempty"`
	Phone               *string                `db:"phone" json:"phone,omitempty"`
	Address             *string                `db:"address" json:"address,omitempty"`
	Categories          []InsuranceInfo        `db:"categories" json:"categories"`
	FamilyProfile       map[string]interface{} `db:"family_profile" json:"family_profile,omitempty"`
	Guarantor           *Contact               `db:"guarantor" json:"guarantor,omitempty"`
	EmergencyContacts   []Contact              `db:"emergency_contacts" json:"emergency_contacts"`
	Allergies           []Allergy              `db:"allergies" json:"allergies"`
	ChronicConditions   []ChronicCondition     `db:"chronic_conditions" json:"chronic_conditions"`
	QRWristband         *string                `db:"qr_wristband" json:"qr_wristband,omitempty"`
	TelemedReferralType *string                `db:"telemed_referral_type" json:"telemed_referral_type,omitempty"`
	TelemedReferralTime *time.Time             `db:"telemed_referral_time" json:"telemed_referral_time,omitempty"`
	CreatedAt           time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time              `db:"updated_at" json:"updated_at"`
}
