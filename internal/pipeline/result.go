package pipeline

import (
	"github.com/your-org/piv-face/internal/piv"
	"github.com/your-org/piv-face/internal/transform"
)

// ProcessingResult is the outcome of a successful ProcessAsync call.
type ProcessingResult struct {
	EncodedBytes          []byte
	SourceDimensions      transform.ImageDimensions
	TransformedDimensions transform.ImageDimensions
	AppliedTransform      transform.PivTransform
	ComplianceValidation  piv.Validation
	ActualRateBpp         float64
	ActualSizeBytes       int
	TargetSizeBytes       int // 0 when the strategy was FixedRate
}
