// Package geometry implements the 2D primitives the PIV pipeline builds on:
// points, bounding boxes, ranges and confidence values. All types are
// immutable value types constructed once and never mutated.
package geometry

import "math"

// Point2D is a floating-point pixel coordinate. The origin is the
// top-left corner of the image; y increases downward.
type Point2D struct {
	X, Y float64
}

// NewPoint2D constructs a Point2D, rejecting NaN/Inf coordinates.
func NewPoint2D(x, y float64) (Point2D, error) {
	if !isFinite(x) || !isFinite(y) {
		return Point2D{}, &InvalidValueError{Field: "Point2D", Reason: "coordinates must be finite"}
	}
	return Point2D{X: x, Y: y}, nil
}

// Distance returns the Euclidean distance between two points. It is
// symmetric and zero for a point to itself.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the arithmetic mean of two points.
func (p Point2D) Midpoint(other Point2D) Point2D {
	return Point2D{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Translate returns a new point shifted by (dx, dy).
func (p Point2D) Translate(dx, dy float64) Point2D {
	return Point2D{X: p.X + dx, Y: p.Y + dy}
}

// RotateAround rotates p by angleDegrees (clockwise, since y grows downward)
// about the given centre and returns the rotated point.
func (p Point2D) RotateAround(center Point2D, angleDegrees float64) Point2D {
	theta := angleDegrees * math.Pi / 180.0
	sin, cos := math.Sin(theta), math.Cos(theta)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point2D{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// MeanPoint returns the arithmetic mean of a non-empty slice of points.
func MeanPoint(points []Point2D) Point2D {
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point2D{X: sx / n, Y: sy / n}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// InvalidValueError reports a constructor invariant violation.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return e.Field + ": " + e.Reason
}
