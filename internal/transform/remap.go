package transform

import (
	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/landmarks"
)

// RemapPoint carries a source-image point through the same rotate, crop
// and scale transform Execute applies to pixels, returning its position on
// the target canvas. It assumes the crop region already matches the
// target aspect ratio (the common case; Plan always sizes it that way),
// so it does not model the rare padding Execute falls back to when a
// clamped crop drifts from that aspect.
func RemapPoint(p geometry.Point2D, t PivTransform, source ImageDimensions) geometry.Point2D {
	center := geometry.Point2D{X: float64(source.Width) / 2, Y: float64(source.Height) / 2}
	rotated := p.RotateAround(center, t.RotationDegrees)

	cropPx := t.CropRegion.ToPixels(float64(source.Width), float64(source.Height))
	scaleX := float64(t.TargetDimensions.Width) / cropPx.Width
	scaleY := float64(t.TargetDimensions.Height) / cropPx.Height

	return geometry.Point2D{
		X: (rotated.X - cropPx.X) * scaleX,
		Y: (rotated.Y - cropPx.Y) * scaleY,
	}
}

// RemapLandmarks remaps every point of lm onto the canvas t.Execute would
// produce from an image of the given source dimensions.
func RemapLandmarks(lm landmarks.Landmarks68, t PivTransform, source ImageDimensions) (landmarks.Landmarks68, error) {
	points := lm.Points()
	remapped := make([]geometry.Point2D, len(points))
	for i, p := range points {
		rp := RemapPoint(p, t, source)
		np, err := geometry.NewPoint2D(rp.X, rp.Y)
		if err != nil {
			return landmarks.Landmarks68{}, err
		}
		remapped[i] = np
	}
	return landmarks.New(remapped)
}
