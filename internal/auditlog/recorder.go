package auditlog

import "time"

// Record persists one audit entry best-effort. Audit failures never block
// the command that triggered them.
func Record(entry *AuditEntry) {
	repo, err := Open()
	if err != nil {
		return
	}
	defer repo.Close()
	_ = repo.Save(entry)
}

// Outcome maps an error to the outcome string stored with an entry.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// Since returns elapsed milliseconds for the DurationMs field.
func Since(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
