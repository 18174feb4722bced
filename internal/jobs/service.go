// Package jobs wraps the pure processing pipeline with the audit trail
// and object storage a production deployment needs around it: every
// call, synchronous or queued, is recorded as a job row and its source
// and result bytes live in object storage, addressed by job ID. The
// pipeline itself stays exactly as stateless as it is in internal/pipeline.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/your-org/piv-face/internal/models"
	"github.com/your-org/piv-face/internal/pipeline"
	"github.com/your-org/piv-face/internal/piverr"
	"github.com/your-org/piv-face/internal/queue"
	"github.com/your-org/piv-face/internal/storage"
	"github.com/your-org/piv-face/pkg/dto"
)

const resultContentType = "image/jp2"

// Service orchestrates the pipeline, Postgres audit records, MinIO object
// storage and the NATS queue. It never runs inference itself.
type Service struct {
	pipeline *pipeline.Pipeline
	db       *storage.PostgresStore
	objects  *storage.MinIOStore
	producer *queue.Producer
}

func NewService(p *pipeline.Pipeline, db *storage.PostgresStore, objects *storage.MinIOStore, producer *queue.Producer) *Service {
	return &Service{pipeline: p, db: db, objects: objects, producer: producer}
}

func sourceKey(jobID uuid.UUID) string { return fmt.Sprintf("jobs/%s/source", jobID) }
func resultKey(jobID uuid.UUID) string { return fmt.Sprintf("jobs/%s/result.jp2", jobID) }

// ProcessSync runs the pipeline inline and returns once it has finished,
// recording a completed (or failed) job row for the audit trail just as
// the async path does.
func (s *Service) ProcessSync(ctx context.Context, imageData []byte, presetName string, opts pipeline.ProcessingOptions) (*models.Job, pipeline.ProcessingResult, error) {
	job := &models.Job{ID: uuid.New(), Preset: presetName, SourceSizeBytes: len(imageData)}
	job.SourceKey = sourceKey(job.ID)
	if err := s.db.CreateJob(ctx, job); err != nil {
		return nil, pipeline.ProcessingResult{}, fmt.Errorf("create job record: %w", err)
	}

	if err := s.objects.PutObject(ctx, job.SourceKey, imageData, "application/octet-stream"); err != nil {
		return job, pipeline.ProcessingResult{}, fmt.Errorf("store source image: %w", err)
	}

	if err := s.db.MarkProcessing(ctx, job.ID); err != nil {
		slog.Warn("mark job processing", "job_id", job.ID, "error", err)
	}

	result, err := s.pipeline.ProcessAsync(ctx, imageData, opts)
	if err != nil {
		s.recordFailure(ctx, job.ID, err)
		return job, pipeline.ProcessingResult{}, err
	}

	if err := s.recordSuccess(ctx, job, result); err != nil {
		return job, result, err
	}
	return job, result, nil
}

// Submit stores the source image and enqueues a job for a worker to pick
// up, returning immediately with the job in the queued state.
func (s *Service) Submit(ctx context.Context, imageData []byte, presetName string) (*models.Job, error) {
	job := &models.Job{ID: uuid.New(), Preset: presetName, SourceSizeBytes: len(imageData)}
	job.SourceKey = sourceKey(job.ID)
	if err := s.db.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job record: %w", err)
	}

	if err := s.objects.PutObject(ctx, job.SourceKey, imageData, "application/octet-stream"); err != nil {
		return job, fmt.Errorf("store source image: %w", err)
	}

	msg := queuedJob{JobID: job.ID.String(), Preset: presetName}
	if err := s.producer.PublishJob(ctx, job.ID.String(), msg); err != nil {
		return job, fmt.Errorf("publish job: %w", err)
	}
	s.publishStatus(job)
	return job, nil
}

// Get returns the audit record for a job, or nil if it doesn't exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.db.GetJob(ctx, id)
}

// List returns a page of job audit records.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Job, int, error) {
	return s.db.ListJobs(ctx, limit, offset)
}

// ResultBytes fetches a completed job's encoded output from object storage.
func (s *Service) ResultBytes(ctx context.Context, job *models.Job) ([]byte, error) {
	if job.ResultKey == nil {
		return nil, fmt.Errorf("job %s has no result", job.ID)
	}
	return s.objects.GetObject(ctx, *job.ResultKey)
}

// HandleQueuedJob is the worker-side NATS message handler: it downloads
// the source image, resolves the named preset, runs the pipeline and
// records the outcome. Returning an error here leaves the message
// unacked so JetStream redelivers it, per the consumer's MaxDeliver.
func (s *Service) HandleQueuedJob(ctx context.Context, msg jetstream.Msg) error {
	var qj queuedJob
	if err := json.Unmarshal(msg.Data(), &qj); err != nil {
		slog.Error("unmarshal queued job", "error", err)
		return nil // malformed message, don't retry
	}

	jobID, err := uuid.Parse(qj.JobID)
	if err != nil {
		slog.Error("invalid job id in queued message", "job_id", qj.JobID, "error", err)
		return nil
	}

	job, err := s.db.GetJob(ctx, jobID)
	if err != nil || job == nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}

	if err := s.db.MarkProcessing(ctx, job.ID); err != nil {
		slog.Warn("mark job processing", "job_id", job.ID, "error", err)
	}
	job.Status = models.JobProcessing
	s.publishStatus(job)

	imageData, err := s.objects.GetObject(ctx, job.SourceKey)
	if err != nil {
		return fmt.Errorf("fetch source for job %s: %w", job.ID, err)
	}

	opts, err := pipeline.PresetByName(qj.Preset)
	if err != nil {
		s.recordFailure(ctx, job.ID, piverr.InvalidInput(err.Error()))
		return nil
	}

	result, err := s.pipeline.ProcessAsync(ctx, imageData, opts)
	if err != nil {
		s.recordFailure(ctx, job.ID, err)
		return nil
	}

	return s.recordSuccess(ctx, job, result)
}

func (s *Service) recordSuccess(ctx context.Context, job *models.Job, result pipeline.ProcessingResult) error {
	rKey := resultKey(job.ID)
	if err := s.objects.PutObject(ctx, rKey, result.EncodedBytes, resultContentType); err != nil {
		s.recordFailure(ctx, job.ID, piverr.EncodingFailed(err))
		return fmt.Errorf("store result image: %w", err)
	}

	severity := result.ComplianceValidation.Severity.String()
	if err := s.db.CompleteJob(ctx, job.ID, rKey, len(result.EncodedBytes), result.ActualRateBpp,
		severity, result.ComplianceValidation.Issues); err != nil {
		return fmt.Errorf("record job completion: %w", err)
	}

	job.Status = models.JobCompleted
	job.ResultKey = &rKey
	size := len(result.EncodedBytes)
	job.ResultSizeBytes = &size
	job.ComplianceSeverity = &severity
	job.ComplianceIssues = result.ComplianceValidation.Issues
	s.publishStatus(job)
	return nil
}

func (s *Service) recordFailure(ctx context.Context, jobID uuid.UUID, err error) {
	var pe *piverr.Error
	kind := "unknown"
	message := err.Error()
	if errors.As(err, &pe) {
		kind = pe.Kind.String()
		message = pe.Message
	}
	if dbErr := s.db.FailJob(ctx, jobID, kind, message); dbErr != nil {
		slog.Error("record job failure", "job_id", jobID, "error", dbErr)
	}

	job, getErr := s.db.GetJob(ctx, jobID)
	if getErr == nil && job != nil {
		s.publishStatus(job)
	}
}

func (s *Service) publishStatus(job *models.Job) {
	evt := dto.WSEvent{Type: eventType(job.Status), JobID: job.ID, Data: ToResponse(job)}
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Error("marshal job status", "job_id", job.ID, "error", err)
		return
	}
	if err := s.producer.PublishStatus(job.ID.String(), payload); err != nil {
		slog.Warn("publish job status", "job_id", job.ID, "error", err)
	}
}

func eventType(status models.JobStatus) string {
	switch status {
	case models.JobQueued:
		return "job_queued"
	case models.JobProcessing:
		return "job_processing"
	case models.JobCompleted:
		return "job_completed"
	case models.JobFailed:
		return "job_failed"
	default:
		return "job_updated"
	}
}

// ToResponse converts a job audit record into its wire representation,
// shared by the HTTP handlers and the WebSocket status relay.
func ToResponse(j *models.Job) dto.JobResponse {
	resultURL := ""
	if j.Status == models.JobCompleted {
		resultURL = "/v1/jobs/" + j.ID.String() + "/result"
	}
	return dto.JobResponse{
		JobID:              j.ID,
		Status:             string(j.Status),
		Preset:             j.Preset,
		ResultSizeBytes:    j.ResultSizeBytes,
		RateBpp:            j.RateBpp,
		ComplianceSeverity: j.ComplianceSeverity,
		ComplianceIssues:   j.ComplianceIssues,
		ResultURL:          resultURL,
		ErrorKind:          j.ErrorKind,
		ErrorMessage:       j.ErrorMessage,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
		CompletedAt:        j.CompletedAt,
	}
}
