package domain

import "time"

// Audit actions recorded by the mutation paths.
const (
	AuditUserRegistered = "user.registered"
	AuditUserUpdated    = "user.updated"
	AuditProductCreated = "product.created"
	AuditProductUpdated = "product.updated"
	AuditProductDeleted = "product.deleted"
)

// AuditEvent records a single mutation for the audit trail. Actor is the id
// of the authenticated user that performed the action, or empty for
// unauthenticated flows such as self-registration.
type AuditEvent struct {
	Actor    string    `json:"actor,omitempty" bson:"actor,omitempty"`
	Action   string    `json:"action" bson:"action"`
	Entity   string    `json:"entity" bson:"entity"`
	EntityID string    `json:"entity_id" bson:"entity_id"`
	At       time.Time `json:"at" bson:"at"`
}
