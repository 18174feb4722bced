package geometry

import (
	"math"
	"testing"
)

func TestPointDistanceSymmetricAndZero(t *testing.T) {
	a := Point2D{X: 1, Y: 2}
	b := Point2D{X: 4, Y: 6}

	if d := a.Distance(a); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
	if a.Distance(b) != b.Distance(a) {
		t.Fatalf("distance not symmetric: %v vs %v", a.Distance(b), b.Distance(a))
	}
	if d := a.Distance(b); d < 0 {
		t.Fatalf("distance negative: %v", d)
	}
}

func TestPointConstructorRejectsNaN(t *testing.T) {
	if _, err := NewPoint2D(math.NaN(), 0); err == nil {
		t.Fatal("expected error for NaN coordinate")
	}
	if _, err := NewPoint2D(math.Inf(1), 0); err == nil {
		t.Fatal("expected error for Inf coordinate")
	}
}

func TestFaceBoxRejectsNonPositiveDims(t *testing.T) {
	cases := []struct{ w, h float64 }{{0, 10}, {10, 0}, {-1, 10}, {10, -1}}
	for _, c := range cases {
		if _, err := NewFaceBox(0, 0, c.w, c.h); err == nil {
			t.Fatalf("expected error for w=%g h=%g", c.w, c.h)
		}
	}
}

func TestFaceBoxIoU(t *testing.T) {
	b, err := NewFaceBox(0, 0, 10, 10)
	if err != nil {
		t.Fatal(err)
	}

	if got := b.IntersectionOverUnion(b); got != 1 {
		t.Fatalf("IoU(b,b) = %v, want 1", got)
	}

	translated := b.Translate(10, 10)
	if got := b.IntersectionOverUnion(translated); got != 0 {
		t.Fatalf("IoU(b, translate(b,(w,h))) = %v, want 0", got)
	}

	if !b.Contains(b.Center()) {
		t.Fatal("box does not contain its own center")
	}
}

func TestRangeDeviation(t *testing.T) {
	r, err := NewRange(0.5, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if d := r.CalculateDeviation(0.6); d != 0 {
		t.Fatalf("deviation inside range = %v, want 0", d)
	}
	if d := r.CalculateDeviation(0.5); d != 0 {
		t.Fatalf("deviation at lower boundary = %v, want 0", d)
	}
	if d := r.CalculateDeviation(0.7); d != 0 {
		t.Fatalf("deviation at upper boundary = %v, want 0", d)
	}
	if d := r.CalculateDeviation(0.8); d <= 0 {
		t.Fatalf("deviation outside range = %v, want > 0", d)
	}
}

func TestConfidenceRejectsOutOfRange(t *testing.T) {
	if _, err := NewConfidence(math.NaN()); err == nil {
		t.Fatal("expected error for NaN confidence")
	}
	if _, err := NewConfidence(math.Inf(1)); err == nil {
		t.Fatal("expected error for Inf confidence")
	}
	if _, err := NewConfidence(-0.1); err == nil {
		t.Fatal("expected error for negative confidence")
	}
	if _, err := NewConfidence(1.1); err == nil {
		t.Fatal("expected error for confidence > 1")
	}
	c, err := NewConfidence(0.8)
	if err != nil {
		t.Fatal(err)
	}
	if c.Float64() != 0.8 {
		t.Fatalf("Float64() = %v, want 0.8", c.Float64())
	}
}

func TestCropRectRoundTripsWithFaceBox(t *testing.T) {
	box, err := NewFaceBox(42, 84, 210, 280)
	if err != nil {
		t.Fatal(err)
	}
	const refW, refH = 420.0, 560.0

	rect, err := CropRectFromPixels(box, refW, refH)
	if err != nil {
		t.Fatal(err)
	}

	back := rect.ToPixels(refW, refH)
	if back != box {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, box)
	}
}

func TestCropRectRejectsOutOfBoundsEdges(t *testing.T) {
	if _, err := NewCropRect(0.6, 0, 0.6, 0.5); err == nil {
		t.Fatal("expected error for right edge > 1")
	}
	if _, err := NewCropRect(0, 0.6, 0.5, 0.6); err == nil {
		t.Fatal("expected error for bottom edge > 1")
	}
}

func TestFullFrameIsIdentity(t *testing.T) {
	f := FullFrame()
	box := f.ToPixels(800, 600)
	if box.X != 0 || box.Y != 0 || box.Width != 800 || box.Height != 600 {
		t.Fatalf("full frame crop = %+v, want full 800x600", box)
	}
}
