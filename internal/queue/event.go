// Package queue defines message payloads exchanged over the message broker.
package queue

// Audit event types published by the record handlers. Only mutations
// carrying a cross-record invariant are audited: the student soft
// delete and the academic-year activation.
const (
	EventSiswaDeactivated      = "siswa.deactivated"
	EventTahunAjaranActivated  = "tahun_ajaran.activated"
)

// AuditEvent is published when an audited mutation succeeds. It
// contains enough information for downstream consumers to log or
// notify without querying the primary database.
type AuditEvent struct {
	Type       string `json:"type"`
	EntityID   string `json:"entity_id"`
	Actor      string `json:"actor"` // email of the acting user
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
