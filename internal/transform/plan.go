package transform

import (
	"math"

	"github.com/your-org/piv-face/internal/geometry"
)

// paddingRatio is the crop-width padding factor applied to the detected
// face width; empirically this yields PIV-compliant head width ratios in
// the 1.85-2.0 range after the fixed 420x560 resize.
const paddingRatio = 2.0

// eyeLineFromTop is the fraction of crop height, from the top, at which
// the rotated eye midpoint is placed (eye line at 60% from the bottom).
const eyeLineFromTop = 1.0 - 0.60

const targetAspect = float64(CanvasWidth) / float64(CanvasHeight) // 3:4

// Plan computes a PivTransform from eye centres, the detected face box and
// the source image dimensions, per INCITS 385-2004 geometry.
func Plan(leftEye, rightEye geometry.Point2D, faceBox geometry.FaceBox, source ImageDimensions) (PivTransform, error) {
	rawAngle := rawRotationDegrees(leftEye, rightEye)
	rotation := clamp(rawAngle, -preferredRotationDeg, preferredRotationDeg)

	center := geometry.Point2D{X: float64(source.Width) / 2, Y: float64(source.Height) / 2}
	eyeMidpoint := leftEye.Midpoint(rightEye)
	rotatedEyeMidpoint := eyeMidpoint.RotateAround(center, rotation)

	cropWidth := paddingRatio * faceBox.Width
	cropHeight := cropWidth / targetAspect

	cropLeft := rotatedEyeMidpoint.X - cropWidth/2
	cropTop := rotatedEyeMidpoint.Y - eyeLineFromTop*cropHeight

	cropBox, err := geometry.NewFaceBox(cropLeft, cropTop, cropWidth, cropHeight)
	if err != nil {
		return PivTransform{}, &CropBoundsExceededError{Reason: err.Error()}
	}

	clamped, ok := cropBox.ClampWithin(float64(source.Width), float64(source.Height))
	if !ok {
		return PivTransform{}, &CropBoundsExceededError{
			Reason: "planned crop collapses to zero size after clamping to source bounds",
		}
	}

	cropRect, err := geometry.CropRectFromPixels(clamped, float64(source.Width), float64(source.Height))
	if err != nil {
		return PivTransform{}, &CropBoundsExceededError{Reason: err.Error()}
	}

	scale := math.Min(float64(CanvasWidth)/clamped.Width, float64(CanvasHeight)/clamped.Height)
	if scale > 1.0 {
		scale = 1.0 // recorded capped at 1.0; Execute still resizes to the exact target
	}

	target, err := NewImageDimensions(CanvasWidth, CanvasHeight)
	if err != nil {
		return PivTransform{}, err
	}

	isPivCompliant := math.Abs(rawAngle) <= preferredRotationDeg &&
		clamped.Width == cropBox.Width && clamped.Height == cropBox.Height

	return New(rotation, cropRect, scale, target, isPivCompliant)
}

// rawRotationDegrees returns the eye-levelling angle before clamping, using
// the image convention that y grows downward (hence the negated atan2).
func rawRotationDegrees(leftEye, rightEye geometry.Point2D) float64 {
	dy := rightEye.Y - leftEye.Y
	dx := rightEye.X - leftEye.X
	return -math.Atan2(dy, dx) * 180.0 / math.Pi
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
