package models

import "time"

// Actor identifies who performed a mutation, for audit attribution.
type Actor struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Role string `bson:"role" json:"role"`
}

// SystemActor is the explicit fallback identity when no actor is supplied
// (scheduled jobs, migrations, requests without actor headers).
var SystemActor = Actor{ID: "system", Name: "System", Role: "system"}

// IsZero reports whether the actor carries no identity at all.
func (a Actor) IsZero() bool {
	return a.ID == "" && a.Name == ""
}

// AuditAction tags what kind of operation an audit entry records.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
	AuditLogin   AuditAction = "LOGIN"
	AuditLogout  AuditAction = "LOGOUT"
	AuditImport  AuditAction = "IMPORT"
	AuditExport  AuditAction = "EXPORT"
	AuditRestore AuditAction = "RESTORE"
)

// AuditTarget describes the entity an audit entry is about.
type AuditTarget struct {
	Type string `bson:"type" json:"type"`
	ID   string `bson:"id,omitempty" json:"id,omitempty"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
}

// AuditEntry is one append-only change-log record. Before/After hold
// serialization-safe snapshots taken at write time; they are never read
// back into typed structs.
type AuditEntry struct {
	ID        string      `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	Actor     Actor       `bson:"actor" json:"actor"`
	Module    string      `bson:"module" json:"module"`
	Action    AuditAction `bson:"action" json:"action"`
	Target    AuditTarget `bson:"target" json:"target"`
	Summary   string      `bson:"summary" json:"summary"`
	Before    any         `bson:"before,omitempty" json:"before,omitempty"`
	After     any         `bson:"after,omitempty" json:"after,omitempty"`
}
