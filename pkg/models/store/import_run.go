package store

import "time"

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportRun is one attempt to replace the stored sheet rows.
type ImportRun struct {
	ID           int64
	Source       string
	Status       ImportStatus
	RowsImported int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	Error        *string
}
