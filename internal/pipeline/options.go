package pipeline

import (
	"time"

	"github.com/your-org/piv-face/internal/encoding"
)

// ProcessingOptions configures a single ProcessAsync call. Zero-value
// options are not valid input; use DefaultOptions as a base.
type ProcessingOptions struct {
	MinFaceConfidence float64
	RequireSingleFace bool
	MaxRetries        int
	ProcessingTimeout time.Duration
	PreserveMetadata  bool
	RoiStartLevel     int
	EnableRoi         bool
	AlignRoi          bool
	Strategy          encoding.Strategy
}

// DefaultOptions returns the PivBalanced preset, the pipeline's default.
func DefaultOptions() ProcessingOptions {
	return PivBalanced()
}

func baseOptions() ProcessingOptions {
	return ProcessingOptions{
		MinFaceConfidence: 0.8,
		RequireSingleFace: true,
		MaxRetries:        2,
		ProcessingTimeout: 30 * time.Second,
		PreserveMetadata:  false,
		RoiStartLevel:     3,
		EnableRoi:         true,
		AlignRoi:          false,
	}
}
