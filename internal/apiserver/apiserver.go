// Package apiserver wires the PIV HTTP API's dependencies and runs it to
// completion. It exists so cmd/api and the `piv serve` CLI subcommand
// share one startup path instead of keeping two copies in sync.
package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/piv-face/internal/api"
	"github.com/your-org/piv-face/internal/api/ws"
	"github.com/your-org/piv-face/internal/config"
	"github.com/your-org/piv-face/internal/jobs"
	"github.com/your-org/piv-face/internal/onnxutil"
	"github.com/your-org/piv-face/internal/pipeline"
	"github.com/your-org/piv-face/internal/queue"
	"github.com/your-org/piv-face/internal/storage"
	"github.com/your-org/piv-face/internal/vision"
	"github.com/your-org/piv-face/pkg/dto"
)

// Run connects to every backing service, starts the HTTP server and the
// status-relay WebSocket hub, and blocks until SIGINT/SIGTERM, shutting
// down gracefully before returning.
func Run(cfg *config.Config) error {
	slog.Info("starting PIV API service", "port", cfg.Server.Port)

	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer db.Close()

	minioStore, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		return fmt.Errorf("connect to minio: %w", err)
	}
	if err := minioStore.EnsureBucket(context.Background()); err != nil {
		slog.Warn("ensure minio bucket", "error", err)
	}

	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	defer producer.Close()

	if err := producer.EnsureStreams(context.Background()); err != nil {
		slog.Warn("ensure nats streams", "error", err)
	}

	ort.SetSharedLibraryPath(onnxutil.SharedLibraryPath())
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("init onnx runtime: %w", err)
	}
	defer ort.DestroyEnvironment()

	models, err := vision.LoadModels(cfg.Vision.ModelsDir, cfg.Vision.DetectionThreshold,
		cfg.Vision.IntraOpThreads, cfg.Vision.InterOpThreads)
	if err != nil {
		return fmt.Errorf("load vision models: %w", err)
	}

	pipe := pipeline.New(models)
	defer pipe.Close()

	jobSvc := jobs.NewService(pipe, db, minioStore, producer)

	hub := ws.NewHub()
	go hub.Run()

	statusConsumer, err := queue.NewConsumer(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("create status consumer: %w", err)
	}
	defer statusConsumer.Close()

	sub, err := statusConsumer.SubscribeStatus(func(jobID string, payload []byte) {
		var evt dto.WSEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			slog.Warn("unmarshal job status event", "job_id", jobID, "error", err)
			return
		}
		hub.BroadcastEvent(&evt)
	})
	if err != nil {
		slog.Warn("subscribe job status", "error", err)
	} else {
		defer sub.Unsubscribe()
	}

	router := api.NewRouter(api.RouterConfig{
		APIKey:   cfg.Server.APIKey,
		DB:       db,
		MinIO:    minioStore,
		Producer: producer,
		Jobs:     jobSvc,
		Hub:      hub,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down API server...")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("API server stopped")
	return nil
}
