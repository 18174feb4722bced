package transform

import (
	"testing"

	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/landmarks"
)

func TestRemapPointIdentityTransformIsUnchanged(t *testing.T) {
	dims := mustDims(t, 420, 560)
	pt, err := New(0, geometry.FullFrame(), 1.0, dims, true)
	if err != nil {
		t.Fatal(err)
	}

	p := geometry.Point2D{X: 100, Y: 150}
	got := RemapPoint(p, pt, dims)
	if got.X != p.X || got.Y != p.Y {
		t.Fatalf("expected identity transform to leave the point unchanged, got %+v", got)
	}
}

func TestRemapPointMapsCropCornerToCanvasOrigin(t *testing.T) {
	dims := mustDims(t, 800, 600)
	crop, err := geometry.NewCropRect(0.25, 0.25, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	target := mustDims(t, 420, 560)
	pt, err := New(0, crop, 1.0, target, true)
	if err != nil {
		t.Fatal(err)
	}

	cropPx := crop.ToPixels(800, 600)
	got := RemapPoint(geometry.Point2D{X: cropPx.X, Y: cropPx.Y}, pt, dims)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("expected the crop's top-left corner to map to the canvas origin, got %+v", got)
	}
}

func TestRemapLandmarksPreservesCount(t *testing.T) {
	dims := mustDims(t, 800, 600)
	pt, err := New(0, geometry.FullFrame(), 1.0, mustDims(t, 420, 560), true)
	if err != nil {
		t.Fatal(err)
	}

	points := make([]geometry.Point2D, 68)
	for i := range points {
		points[i] = geometry.Point2D{X: float64(i), Y: float64(i) * 2}
	}
	lm, err := landmarks.New(points)
	if err != nil {
		t.Fatal(err)
	}

	remapped, err := RemapLandmarks(lm, pt, dims)
	if err != nil {
		t.Fatal(err)
	}
	if len(remapped.Points()) != 68 {
		t.Fatalf("expected 68 remapped points, got %d", len(remapped.Points()))
	}
}
