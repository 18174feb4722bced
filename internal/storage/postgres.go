package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/piv-face/internal/config"
	"github.com/your-org/piv-face/internal/models"
)

// PostgresStore persists ProcessingJob audit records. Schema (managed
// externally, not by this package):
//
//	CREATE TABLE jobs (
//	  id                   UUID PRIMARY KEY,
//	  status               TEXT NOT NULL,
//	  preset               TEXT NOT NULL,
//	  source_key           TEXT NOT NULL,
//	  result_key           TEXT,
//	  source_size_bytes    INT NOT NULL,
//	  result_size_bytes    INT,
//	  rate_bpp             DOUBLE PRECISION,
//	  compliance_severity  TEXT,
//	  compliance_issues    JSONB,
//	  error_kind           TEXT,
//	  error_message        TEXT,
//	  created_at           TIMESTAMPTZ NOT NULL,
//	  updated_at           TIMESTAMPTZ NOT NULL,
//	  completed_at         TIMESTAMPTZ
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateJob inserts a new job row in the queued state. The caller must
// set j.ID and j.SourceKey first, since the object storage key is
// derived from the job ID and needs to exist before the row does.
func (s *PostgresStore) CreateJob(ctx context.Context, j *models.Job) error {
	j.Status = models.JobQueued
	err := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, status, preset, source_key, source_size_bytes)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		j.ID, j.Status, j.Preset, j.SourceKey, j.SourceSizeBytes,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// MarkProcessing transitions a queued job to processing, once a worker
// has picked it up.
func (s *PostgresStore) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = now() WHERE id = $2`,
		models.JobProcessing, id)
	return err
}

// CompleteJob records a successful pipeline run.
func (s *PostgresStore) CompleteJob(ctx context.Context, id uuid.UUID, resultKey string, resultSizeBytes int, rateBpp float64, complianceSeverity string, complianceIssues []string) error {
	issues, err := json.Marshal(complianceIssues)
	if err != nil {
		return fmt.Errorf("marshal compliance issues: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, result_key = $2, result_size_bytes = $3, rate_bpp = $4,
		   compliance_severity = $5, compliance_issues = $6, updated_at = now(), completed_at = now()
		 WHERE id = $7`,
		models.JobCompleted, resultKey, resultSizeBytes, rateBpp, complianceSeverity, issues, id)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}

// FailJob records a pipeline failure, tagged with the piverr.Kind string.
func (s *PostgresStore) FailJob(ctx context.Context, id uuid.UUID, errorKind, errorMessage string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error_kind = $2, error_message = $3, updated_at = now(), completed_at = now()
		 WHERE id = $4`,
		models.JobFailed, errorKind, errorMessage, id)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	j := &models.Job{}
	var issues []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, preset, source_key, result_key, source_size_bytes, result_size_bytes, rate_bpp,
		        compliance_severity, compliance_issues, error_kind, error_message, created_at, updated_at, completed_at
		 FROM jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.Status, &j.Preset, &j.SourceKey, &j.ResultKey, &j.SourceSizeBytes, &j.ResultSizeBytes, &j.RateBpp,
		&j.ComplianceSeverity, &issues, &j.ErrorKind, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	if len(issues) > 0 {
		if err := json.Unmarshal(issues, &j.ComplianceIssues); err != nil {
			return nil, fmt.Errorf("unmarshal compliance issues: %w", err)
		}
	}
	return j, nil
}

// ListJobs returns a page of jobs ordered newest-first, plus the total
// row count for pagination.
func (s *PostgresStore) ListJobs(ctx context.Context, limit, offset int) ([]models.Job, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, status, preset, source_key, result_key, source_size_bytes, result_size_bytes, rate_bpp,
		        compliance_severity, error_kind, error_message, created_at, updated_at, completed_at
		 FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Status, &j.Preset, &j.SourceKey, &j.ResultKey, &j.SourceSizeBytes, &j.ResultSizeBytes, &j.RateBpp,
			&j.ComplianceSeverity, &j.ErrorKind, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, total, nil
}
