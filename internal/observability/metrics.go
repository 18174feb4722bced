package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "piv",
		Name:      "images_processed_total",
		Help:      "Total number of images run through the pipeline, by outcome",
	}, []string{"outcome"})

	FacesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "piv",
		Name:      "faces_detected_total",
		Help:      "Total number of faces detected above the confidence threshold",
	}, []string{"preset"})

	ComplianceResult = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "piv",
		Name:      "compliance_result_total",
		Help:      "PIV compliance validation outcomes by severity",
	}, []string{"severity"})

	InferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "piv",
		Name:      "inference_duration_seconds",
		Help:      "Duration of ONNX inference stages",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"stage"})

	EncodingAttempts = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "piv",
		Name:      "encoding_attempts",
		Help:      "Number of rate-table attempts the target-size search needed",
		Buckets:   []float64{1, 2, 3, 4, 5, 6},
	}, []string{"preset"})

	EncodedSizeBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "piv",
		Name:      "encoded_size_bytes",
		Help:      "Size in bytes of the final JPEG 2000 codestream",
		Buckets:   prometheus.ExponentialBuckets(2000, 2, 8),
	}, []string{"preset"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "piv",
		Name:      "queue_depth",
		Help:      "Number of pending processing jobs in queue",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "piv",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "piv",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
