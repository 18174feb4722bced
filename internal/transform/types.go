// Package transform computes (C5) and applies (C6) the rigid
// rotate-then-crop-then-scale transform that places a detected face at the
// PIV-mandated position within a 420x560 canvas.
package transform

import (
	"fmt"

	"github.com/your-org/piv-face/internal/geometry"
)

// CanvasWidth and CanvasHeight are the PIV-mandated output dimensions.
const (
	CanvasWidth  = 420
	CanvasHeight = 560
)

const (
	maxRotationDegrees   = 45.0
	preferredRotationDeg = 5.0
	maxScaleFactor       = 10.0
)

// ImageDimensions is a positive-integer width/height pair.
type ImageDimensions struct {
	Width, Height int
}

// NewImageDimensions validates that both dimensions are positive.
func NewImageDimensions(w, h int) (ImageDimensions, error) {
	if w <= 0 || h <= 0 {
		return ImageDimensions{}, fmt.Errorf("image dimensions must be positive, got %dx%d", w, h)
	}
	return ImageDimensions{Width: w, Height: h}, nil
}

// PivTransform is the rigid geometric transform computed by the planner
// and applied by the executor: rotate, crop, then scale to 420x560.
type PivTransform struct {
	RotationDegrees  float64
	CropRegion       geometry.CropRect
	ScaleFactor      float64
	TargetDimensions ImageDimensions
	IsPivCompliant   bool
}

// New validates and constructs a PivTransform.
func New(rotationDegrees float64, crop geometry.CropRect, scaleFactor float64, target ImageDimensions, isPivCompliant bool) (PivTransform, error) {
	if rotationDegrees < -maxRotationDegrees || rotationDegrees > maxRotationDegrees {
		return PivTransform{}, &RotationOutOfRangeError{Degrees: rotationDegrees}
	}
	if scaleFactor <= 0 || scaleFactor > maxScaleFactor {
		return PivTransform{}, fmt.Errorf("scale factor %g out of range (0, %g]", scaleFactor, maxScaleFactor)
	}
	if target.Width < CanvasWidth || target.Height < CanvasHeight {
		return PivTransform{}, fmt.Errorf("target dimensions %dx%d smaller than minimum %dx%d",
			target.Width, target.Height, CanvasWidth, CanvasHeight)
	}
	return PivTransform{
		RotationDegrees:  rotationDegrees,
		CropRegion:       crop,
		ScaleFactor:      scaleFactor,
		TargetDimensions: target,
		IsPivCompliant:   isPivCompliant,
	}, nil
}

// Identity returns the identity transform over dims: no rotation, full
// crop, unit scale. It is a direct value construction used for round-trip
// testing and bypasses the >=420x560 target-dimension invariant, since its
// purpose is to reproduce an arbitrary source image unchanged.
func Identity(dims ImageDimensions) PivTransform {
	return PivTransform{
		RotationDegrees:  0,
		CropRegion:       geometry.FullFrame(),
		ScaleFactor:      1.0,
		TargetDimensions: dims,
		IsPivCompliant:   false,
	}
}

// RotationOutOfRangeError reports a rotation outside [-45, 45] degrees.
type RotationOutOfRangeError struct {
	Degrees float64
}

func (e *RotationOutOfRangeError) Error() string {
	return fmt.Sprintf("rotation %g degrees out of range [-%g, %g]", e.Degrees, maxRotationDegrees, maxRotationDegrees)
}

// CropBoundsExceededError reports a planned crop that cannot fit within the source.
type CropBoundsExceededError struct {
	Reason string
}

func (e *CropBoundsExceededError) Error() string {
	return "crop bounds exceeded: " + e.Reason
}
