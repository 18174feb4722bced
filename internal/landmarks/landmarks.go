// Package landmarks models the 68-point facial landmark topology produced
// by the external PFLD extractor (see internal/vision) and the derived
// points the PIV geometry (internal/piv) is built from.
package landmarks

import "github.com/your-org/piv-face/internal/geometry"

// NumPoints is the fixed size of the 68-point landmark topology.
const NumPoints = 68

// Canonical index ranges for the 68-point topology.
const (
	jawStart, jawEnd           = 0, 16
	leftBrowStart, leftBrowEnd = 17, 21
	rightBrowStart, rightBrow  = 22, 26
	noseBridgeStart, noseEnd   = 27, 30
	nostrilStart, nostrilEnd   = 31, 35
	leftEyeStart, leftEyeEnd   = 36, 41
	rightEyeStart, rightEyeEnd = 42, 47
	mouthStart, mouthEnd       = 48, 67
)

// Landmarks68 is an ordered, fixed-size set of 68 facial landmark points.
// Invariant: len(points) == NumPoints.
type Landmarks68 struct {
	points [NumPoints]geometry.Point2D
}

// New validates and constructs a Landmarks68 from exactly 68 points.
func New(points []geometry.Point2D) (Landmarks68, error) {
	if len(points) != NumPoints {
		return Landmarks68{}, &InvalidLandmarksError{Reason: "landmark count must be 68"}
	}
	var lm Landmarks68
	copy(lm.points[:], points)
	return lm, nil
}

// InvalidLandmarksError is returned when a landmark set fails validation.
type InvalidLandmarksError struct {
	Reason string
}

func (e *InvalidLandmarksError) Error() string {
	return "invalid landmarks: " + e.Reason
}

// Points returns a copy of the 68 ordered points.
func (l Landmarks68) Points() []geometry.Point2D {
	out := make([]geometry.Point2D, NumPoints)
	copy(out, l.points[:])
	return out
}

// At returns the point at canonical index i (0..67).
func (l Landmarks68) At(i int) geometry.Point2D {
	return l.points[i]
}

// LeftEyeCenter is the arithmetic mean of the left-eye contour points (36..41).
func (l Landmarks68) LeftEyeCenter() geometry.Point2D {
	return geometry.MeanPoint(l.points[leftEyeStart : leftEyeEnd+1])
}

// RightEyeCenter is the arithmetic mean of the right-eye contour points (42..47).
func (l Landmarks68) RightEyeCenter() geometry.Point2D {
	return geometry.MeanPoint(l.points[rightEyeStart : rightEyeEnd+1])
}

// NoseCenter is the arithmetic mean of the nose-bridge points (27..30).
func (l Landmarks68) NoseCenter() geometry.Point2D {
	return geometry.MeanPoint(l.points[noseBridgeStart : noseEnd+1])
}

// MouthCenter is the arithmetic mean of the four outer mouth corner/lip points {48,51,54,57}.
func (l Landmarks68) MouthCenter() geometry.Point2D {
	return geometry.MeanPoint([]geometry.Point2D{
		l.points[48], l.points[51], l.points[54], l.points[57],
	})
}

// LeftExtremum is the jaw-contour point (0..16) with the smallest x.
func (l Landmarks68) LeftExtremum() geometry.Point2D {
	return l.jawExtremum(func(a, b float64) bool { return a < b })
}

// RightExtremum is the jaw-contour point (0..16) with the largest x.
func (l Landmarks68) RightExtremum() geometry.Point2D {
	return l.jawExtremum(func(a, b float64) bool { return a > b })
}

func (l Landmarks68) jawExtremum(better func(candidate, current float64) bool) geometry.Point2D {
	best := l.points[jawStart]
	for i := jawStart + 1; i <= jawEnd; i++ {
		if better(l.points[i].X, best.X) {
			best = l.points[i]
		}
	}
	return best
}
