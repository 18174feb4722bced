package jobs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/your-org/piv-face/internal/models"
)

func TestToResponse_CompletedJobHasResultURL(t *testing.T) {
	id := uuid.New()
	size := 18000
	rate := 1.1
	severity := "low"
	now := time.Unix(1700000000, 0).UTC()

	job := &models.Job{
		ID:              id,
		Status:          models.JobCompleted,
		Preset:          "piv-balanced",
		ResultSizeBytes: &size,
		RateBpp:         &rate,
		ComplianceSeverity: &severity,
		ComplianceIssues:   []string{"eye line deviates from center"},
		CreatedAt:          now,
		UpdatedAt:          now,
		CompletedAt:        &now,
	}

	resp := ToResponse(job)

	assert.Equal(t, id, resp.JobID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "/v1/jobs/"+id.String()+"/result", resp.ResultURL)
	assert.Equal(t, &size, resp.ResultSizeBytes)
	assert.Equal(t, []string{"eye line deviates from center"}, resp.ComplianceIssues)
}

func TestToResponse_NonCompletedJobHasNoResultURL(t *testing.T) {
	job := &models.Job{ID: uuid.New(), Status: models.JobProcessing}

	resp := ToResponse(job)

	assert.Empty(t, resp.ResultURL)
}

func TestEventType_MapsEveryStatus(t *testing.T) {
	cases := map[models.JobStatus]string{
		models.JobQueued:     "job_queued",
		models.JobProcessing: "job_processing",
		models.JobCompleted:  "job_completed",
		models.JobFailed:     "job_failed",
	}
	for status, want := range cases {
		assert.Equal(t, want, eventType(status))
	}
}

func TestSourceAndResultKeys_AreDerivedFromJobID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "jobs/"+id.String()+"/source", sourceKey(id))
	assert.Equal(t, "jobs/"+id.String()+"/result.jp2", resultKey(id))
	assert.NotEqual(t, sourceKey(id), resultKey(id))
}
