// Package auditlog keeps a local record of every administrative and
// evaluation operation issued against a monitoring backend. Clinical
// deployments need to answer "who changed the endpoint configuration and
// when" even when the backend's own logs are out of reach.
package auditlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AuditEntry represents a persisted audit event.
type AuditEntry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Command    string    `json:"command"`
	Backend    string    `json:"backend,omitempty"`
	Endpoint   string    `json:"endpoint,omitempty"`
	ModelName  string    `json:"model_name,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
