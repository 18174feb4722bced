package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/piv-face/internal/api/handlers"
	"github.com/your-org/piv-face/internal/api/ws"
	"github.com/your-org/piv-face/internal/auth"
	"github.com/your-org/piv-face/internal/jobs"
	"github.com/your-org/piv-face/internal/queue"
	"github.com/your-org/piv-face/internal/storage"
)

type RouterConfig struct {
	APIKey   string
	DB       *storage.PostgresStore
	MinIO    *storage.MinIOStore
	Producer *queue.Producer
	Jobs     *jobs.Service
	Hub      *ws.Hub
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// WebSocket: job status push notifications
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Presets
	presetH := handlers.NewPresetHandler()
	v1.GET("/presets", presetH.List)

	// Synchronous processing
	processH := handlers.NewProcessHandler(cfg.Jobs)
	v1.POST("/process", processH.Process)

	// Asynchronous jobs
	jobH := handlers.NewJobHandler(cfg.Jobs)
	v1.POST("/jobs", jobH.Submit)
	v1.GET("/jobs", jobH.List)
	v1.GET("/jobs/:id", jobH.Get)
	v1.GET("/jobs/:id/result", jobH.Result)

	return r
}
