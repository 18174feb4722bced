package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	JobsStreamName  = "PIV_JOBS"
	JobsSubjectBase = "piv.jobs"
)

// Producer publishes processing jobs onto the PIV_JOBS JetStream stream for
// worker processes to consume.
type Producer struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewProducer(natsURL string) (*Producer, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	return &Producer{nc: nc, js: js}, nil
}

// EnsureStreams creates the PIV_JOBS JetStream stream if it doesn't exist yet.
// Retries up to 30 times (1s apart) to handle NATS startup delay.
func (p *Producer) EnsureStreams(ctx context.Context) error {
	cfg := jetstream.StreamConfig{
		Name:        JobsStreamName,
		Subjects:    []string{JobsSubjectBase + ".*"},
		Retention:   jetstream.WorkQueuePolicy,
		MaxAge:      24 * time.Hour,
		MaxMsgs:     1000000,
		MaxBytes:    1 * 1024 * 1024 * 1024, // 1GB
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
		Duplicates:  30 * time.Second,
		Description: "PIV facial image processing jobs",
	}

	const maxAttempts = 30
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, err := p.js.CreateOrUpdateStream(opCtx, cfg)
		cancel()
		if err == nil {
			slog.Info("ensured NATS stream", "name", cfg.Name)
			return nil
		}
		if attempt == maxAttempts {
			return fmt.Errorf("create stream %s: %w (after %d attempts)", cfg.Name, err, maxAttempts)
		}
		slog.Warn("ensure NATS stream (retrying...)", "name", cfg.Name, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
	return nil
}

// PublishJob enqueues a processing job, keyed by jobID, for a worker to pick up.
func (p *Producer) PublishJob(ctx context.Context, jobID string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", JobsSubjectBase, jobID)
	_, err = p.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("publish job: %w", err)
	}
	return nil
}

// QueueDepth returns the number of pending messages in the PIV_JOBS stream.
func (p *Producer) QueueDepth(ctx context.Context) (uint64, error) {
	stream, err := p.js.Stream(ctx, JobsStreamName)
	if err != nil {
		return 0, err
	}
	info, err := stream.Info(ctx)
	if err != nil {
		return 0, err
	}
	return info.State.Msgs, nil
}

// statusSubjectBase is a plain (non-JetStream) NATS subject used to fan out
// job status changes to whichever API instance is holding the client's
// WebSocket connection. It is best-effort: the job's definitive state
// always lives in Postgres, so a dropped status message only costs the
// client a poll of GET /v1/jobs/{id}, never correctness.
const statusSubjectBase = "piv.jobs.status"

// PublishStatus announces a job status change on the status subject. Unlike
// PublishJob this does not go through JetStream — there is nothing to
// redeliver, since the row in Postgres is the source of truth.
func (p *Producer) PublishStatus(jobID string, payload []byte) error {
	return p.nc.Publish(fmt.Sprintf("%s.%s", statusSubjectBase, jobID), payload)
}

func (p *Producer) Ping() error {
	if !p.nc.IsConnected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}

func (p *Producer) Close() {
	p.nc.Close()
}
