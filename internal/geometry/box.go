package geometry

import (
	"fmt"
	"math"
)

// FaceBox is an axis-aligned bounding box in pixel coordinates.
// Invariant: Width > 0 and Height > 0.
type FaceBox struct {
	X, Y, Width, Height float64
}

// NewFaceBox validates and constructs a FaceBox.
func NewFaceBox(x, y, w, h float64) (FaceBox, error) {
	if !isFinite(x) || !isFinite(y) || !isFinite(w) || !isFinite(h) {
		return FaceBox{}, &InvalidValueError{Field: "FaceBox", Reason: "coordinates must be finite"}
	}
	if w <= 0 || h <= 0 {
		return FaceBox{}, &InvalidValueError{Field: "FaceBox", Reason: fmt.Sprintf("width and height must be positive, got %gx%g", w, h)}
	}
	return FaceBox{X: x, Y: y, Width: w, Height: h}, nil
}

// Center returns the box's centre point.
func (b FaceBox) Center() Point2D {
	return Point2D{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Area returns width * height.
func (b FaceBox) Area() float64 {
	return b.Width * b.Height
}

// Contains reports whether p lies within the box (inclusive of edges).
func (b FaceBox) Contains(p Point2D) bool {
	return p.X >= b.X && p.X <= b.X+b.Width && p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Translate returns a new box shifted by (dx, dy).
func (b FaceBox) Translate(dx, dy float64) FaceBox {
	return FaceBox{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// Expand grows the box symmetrically by ratio on each side (ratio=0.1 adds
// 10% of width/height to every edge) and returns the new box.
func (b FaceBox) Expand(ratio float64) FaceBox {
	dw := b.Width * ratio
	dh := b.Height * ratio
	return FaceBox{
		X:      b.X - dw,
		Y:      b.Y - dh,
		Width:  b.Width + 2*dw,
		Height: b.Height + 2*dh,
	}
}

// Scale multiplies width and height by factor, keeping the centre fixed.
func (b FaceBox) Scale(factor float64) FaceBox {
	c := b.Center()
	w := b.Width * factor
	h := b.Height * factor
	return FaceBox{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// IntersectionOverUnion returns 0 for disjoint boxes, else area(intersection)/area(union).
func (a FaceBox) IntersectionOverUnion(b FaceBox) float64 {
	ix0 := math.Max(a.X, b.X)
	iy0 := math.Max(a.Y, b.Y)
	ix1 := math.Min(a.X+a.Width, b.X+b.Width)
	iy1 := math.Min(a.Y+a.Height, b.Y+b.Height)

	iw := ix1 - ix0
	ih := iy1 - iy0
	if iw <= 0 || ih <= 0 {
		return 0
	}

	intersection := iw * ih
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

// ClampWithin returns b clamped so it lies fully inside bounds (0,0,w,h).
// If clamping would collapse an axis to zero or negative size, ok is false.
func (b FaceBox) ClampWithin(boundsW, boundsH float64) (FaceBox, bool) {
	x0 := math.Max(0, b.X)
	y0 := math.Max(0, b.Y)
	x1 := math.Min(boundsW, b.X+b.Width)
	y1 := math.Min(boundsH, b.Y+b.Height)
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return FaceBox{}, false
	}
	return FaceBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
