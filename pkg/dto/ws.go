package dto

import "github.com/google/uuid"

// WSEvent is pushed to WebSocket clients subscribed to a job (or to all
// jobs, if connected without a filter) as it changes status.
type WSEvent struct {
	Type  string      `json:"type"` // "job_queued" | "job_processing" | "job_completed" | "job_failed"
	JobID uuid.UUID   `json:"job_id"`
	Data  JobResponse `json:"data"`
}
