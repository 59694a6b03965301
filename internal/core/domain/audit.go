package domain

import "time"

// AuditAction enumerates the events recorded in the audit trail.
type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
	ActionLogout AuditAction = "logout"
	ActionView   AuditAction = "view"
)

// AuditEntry is an immutable record of a privileged action. Entries are only
// ever inserted; the sole path that removes them is the cascade that follows
// the deletion of their actor.
type AuditEntry struct {
	ID          string      `bson:"_id" json:"id"`
	ActorID     string      `bson:"actor_id" json:"actor_id"`
	Actor       string      `bson:"actor" json:"actor"` // username at the time of the action
	Action      AuditAction `bson:"action" json:"action"`
	ModelName   string      `bson:"model_name,omitempty" json:"model_name,omitempty"`
	ObjectID    string      `bson:"object_id,omitempty" json:"object_id,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	IPAddress   string      `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	Timestamp   time.Time   `bson:"timestamp" json:"timestamp"`
}
