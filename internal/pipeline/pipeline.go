// Package pipeline orchestrates the full PIV facial image pipeline: decode,
// detect, extract landmarks, plan and execute the geometric transform,
// validate compliance, and run the JPEG 2000 encoding strategy. Each stage
// depends on the previous stage's output; the call is logically sequential
// even though it exposes an asynchronous entry point.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/your-org/piv-face/internal/encoding"
	"github.com/your-org/piv-face/internal/piv"
	"github.com/your-org/piv-face/internal/piverr"
	"github.com/your-org/piv-face/internal/roi"
	"github.com/your-org/piv-face/internal/transform"
	"github.com/your-org/piv-face/internal/vision"
)

// Pipeline owns the loaded ONNX sessions and runs ProcessAsync calls
// against them. A single Pipeline may be shared read-only across
// concurrently running calls, provided each call's raster buffers stay
// call-local; vision.Models serialises inference on the shared ONNX
// sessions.
type Pipeline struct {
	models *vision.Models
}

// New wraps already-loaded vision models in a Pipeline.
func New(models *vision.Models) *Pipeline {
	return &Pipeline{models: models}
}

// Close releases the underlying ONNX sessions.
func (p *Pipeline) Close() {
	p.models.Close()
}

// ProcessAsync decodes imageData, runs it through detection, landmark
// extraction, the PIV geometric transform, compliance validation and the
// JPEG 2000 encoding strategy, and returns the result. A wall-clock
// deadline of options.ProcessingTimeout bounds the whole call; cancelling
// ctx or letting the deadline expire aborts cooperatively at the next
// suspension point (detector inference, landmark inference, or an encoder
// attempt inside a target-size search) without any partial write.
func (p *Pipeline) ProcessAsync(ctx context.Context, imageData []byte, options ProcessingOptions) (ProcessingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, options.ProcessingTimeout)
	defer cancel()

	img, srcDims, err := decode(imageData)
	if err != nil {
		return ProcessingResult{}, piverr.InvalidInput(err.Error())
	}

	if err := checkSuspensionPoint(ctx); err != nil {
		return ProcessingResult{}, err
	}
	detections, err := p.models.DetectFaces(img)
	if err != nil {
		return ProcessingResult{}, piverr.InvalidInput(fmt.Sprintf("detection failed: %v", err))
	}

	qualifying := filterByConfidence(detections, options.MinFaceConfidence)
	if len(qualifying) == 0 {
		if len(detections) > 0 {
			return ProcessingResult{}, bestConfidenceError(detections, options.MinFaceConfidence)
		}
		return ProcessingResult{}, piverr.NoFaceDetected()
	}
	if options.RequireSingleFace && len(qualifying) != 1 {
		return ProcessingResult{}, piverr.MultipleFacesDetected(len(qualifying))
	}
	face := primaryFace(qualifying)

	if err := checkSuspensionPoint(ctx); err != nil {
		return ProcessingResult{}, err
	}
	lm, err := p.models.ExtractLandmarks(img, face.Box)
	if err != nil {
		return ProcessingResult{}, piverr.InvalidLandmarks(err)
	}

	leftEye := lm.LeftEyeCenter()
	rightEye := lm.RightEyeCenter()
	t, err := transform.Plan(leftEye, rightEye, face.Box, srcDims)
	if err != nil {
		return ProcessingResult{}, piverr.CropBoundsExceeded(err)
	}

	canvas := transform.Execute(img, t)
	canvasDims := t.TargetDimensions

	remapped, err := transform.RemapLandmarks(lm, t, srcDims)
	if err != nil {
		return ProcessingResult{}, piverr.InvalidLandmarks(err)
	}
	lines := piv.CalculateLines(remapped)
	validation := piv.Validate(lines, float64(canvasDims.Width), float64(canvasDims.Height))

	rois := roi.InnerRegionFor(canvasDims.Width, canvasDims.Height)

	if err := checkSuspensionPoint(ctx); err != nil {
		return ProcessingResult{}, err
	}
	encResult, err := encoding.Run(ctx, canvas, rois, options.Strategy)
	if err != nil {
		return ProcessingResult{}, classifyEncodingError(err)
	}

	targetBytes := 0
	if options.Strategy.Kind == encoding.TargetSize {
		targetBytes = options.Strategy.TargetBytes
	}

	return ProcessingResult{
		EncodedBytes:          encResult.Data,
		SourceDimensions:      srcDims,
		TransformedDimensions: canvasDims,
		AppliedTransform:      t,
		ComplianceValidation:  validation,
		ActualRateBpp:         encResult.RateBpp,
		ActualSizeBytes:       len(encResult.Data),
		TargetSizeBytes:       targetBytes,
	}, nil
}

// decode delegates to the standard library's registered image formats and
// returns the decoded image alongside its pixel dimensions.
func decode(data []byte) (image.Image, transform.ImageDimensions, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, transform.ImageDimensions{}, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	dims, err := transform.NewImageDimensions(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, transform.ImageDimensions{}, err
	}
	return img, dims, nil
}

func filterByConfidence(detections []vision.Detection, minConfidence float64) []vision.Detection {
	qualifying := make([]vision.Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence.Float64() >= minConfidence {
			qualifying = append(qualifying, d)
		}
	}
	return qualifying
}

// primaryFace picks the highest-confidence detection, tie-breaking on the
// larger box area.
func primaryFace(detections []vision.Detection) vision.Detection {
	best := detections[0]
	for _, d := range detections[1:] {
		switch {
		case d.Confidence.Float64() > best.Confidence.Float64():
			best = d
		case d.Confidence.Float64() == best.Confidence.Float64() && d.Box.Area() > best.Box.Area():
			best = d
		}
	}
	return best
}

func bestConfidenceError(detections []vision.Detection, threshold float64) error {
	best := primaryFace(detections)
	return piverr.LowConfidence(best.Confidence.Float64(), threshold)
}

func classifyEncodingError(err error) error {
	switch e := err.(type) {
	case *encoding.CannotMeetSizeError:
		return piverr.CannotMeetSize(e.Requested, e.BestSize, e.BestRate)
	case *encoding.CancelledError:
		return piverr.Cancelled()
	default:
		return piverr.EncodingFailed(err)
	}
}

func checkSuspensionPoint(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return piverr.Timeout()
		}
		return piverr.Cancelled()
	default:
		return nil
	}
}

