package audit

import (
	"time"

	"github.com/google/uuid"
)

// Kinds lists the entity kinds this package persists.
func Kinds() []string { return []string{"auditlog"} }

// Entry maps to the audit_log table. Meta is stored as jsonb.
type Entry struct {
	ID       uuid.UUID              `db:"id" json:"id"`
	ActorID  *string                `db:"actor_id" json:"actor_id,omitempty"`
	Action   string                 `db:"action" json:"action"`
	Entity   string                 `db:"entity" json:"entity"`
	EntityID *string                `db:"entity_id" json:"entity_id,omitempty"`
	Meta     map[string]interface{} `db:"meta" json:"meta"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}
