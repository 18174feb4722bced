// Package models holds the database row types persisted by internal/storage.
package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks a ProcessingJob through the async pipeline.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job is the audit record for one call into the processing pipeline,
// whether it ran synchronously or was picked up by a worker off the
// queue. The pipeline itself keeps no state; this is the caller's record
// of what happened.
type Job struct {
	ID        uuid.UUID
	Status    JobStatus
	Preset    string
	SourceKey string
	ResultKey *string

	SourceSizeBytes int
	ResultSizeBytes *int
	RateBpp         *float64

	ComplianceSeverity *string
	ComplianceIssues   []string

	ErrorKind    *string
	ErrorMessage *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}
