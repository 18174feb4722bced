package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitJobResponse is returned by POST /v1/jobs once the source image has
// been stored and the job handed to the queue.
type SubmitJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// JobResponse is returned by GET /v1/jobs/{id}.
type JobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
	Preset string    `json:"preset"`

	ResultSizeBytes    *int     `json:"result_size_bytes,omitempty"`
	RateBpp            *float64 `json:"rate_bpp,omitempty"`
	ComplianceSeverity *string  `json:"compliance_severity,omitempty"`
	ComplianceIssues   []string `json:"compliance_issues,omitempty"`
	ResultURL          string   `json:"result_url,omitempty"`

	ErrorKind    *string `json:"error_kind,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// JobListResponse is returned by GET /v1/jobs.
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
}
