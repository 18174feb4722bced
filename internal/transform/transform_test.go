package transform

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/your-org/piv-face/internal/geometry"
)

func mustDims(t *testing.T, w, h int) ImageDimensions {
	t.Helper()
	d, err := NewImageDimensions(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPlanLevelCentredFaceHasNearZeroRotation(t *testing.T) {
	leftEye := geometry.Point2D{X: 350, Y: 250}
	rightEye := geometry.Point2D{X: 450, Y: 250}
	faceBox, err := geometry.NewFaceBox(300, 200, 200, 250)
	if err != nil {
		t.Fatal(err)
	}

	pt, err := Plan(leftEye, rightEye, faceBox, mustDims(t, 800, 600))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pt.RotationDegrees) > 1e-9 {
		t.Fatalf("expected zero rotation for level eyes, got %v", pt.RotationDegrees)
	}
	if !pt.IsPivCompliant {
		t.Fatalf("expected compliant transform, got %+v", pt)
	}
}

func TestPlanSlightTiltClampsToPreferredMax(t *testing.T) {
	// dy=10, dx=100 -> raw angle = -atan2(10,100)*180/pi ~= -5.71 degrees.
	leftEye := geometry.Point2D{X: 100, Y: 100}
	rightEye := geometry.Point2D{X: 200, Y: 110}
	faceBox, err := geometry.NewFaceBox(80, 70, 150, 180)
	if err != nil {
		t.Fatal(err)
	}

	raw := rawRotationDegrees(leftEye, rightEye)
	if raw > -5.7 || raw < -5.72 {
		t.Fatalf("expected raw angle near -5.71, got %v", raw)
	}

	pt, err := Plan(leftEye, rightEye, faceBox, mustDims(t, 800, 600))
	if err != nil {
		t.Fatal(err)
	}
	if pt.RotationDegrees != -preferredRotationDeg {
		t.Fatalf("expected rotation clamped to -%v, got %v", preferredRotationDeg, pt.RotationDegrees)
	}
}

func TestNewRejectsRotationPastMaxRange(t *testing.T) {
	dims := mustDims(t, 420, 560)
	_, err := New(90, geometry.FullFrame(), 1.0, dims, false)
	if err == nil {
		t.Fatal("expected RotationOutOfRangeError for 90 degree rotation")
	}
	if _, ok := err.(*RotationOutOfRangeError); !ok {
		t.Fatalf("expected *RotationOutOfRangeError, got %T", err)
	}

	_, err = New(-90, geometry.FullFrame(), 1.0, dims, false)
	if _, ok := err.(*RotationOutOfRangeError); !ok {
		t.Fatalf("expected *RotationOutOfRangeError, got %T", err)
	}
}

func TestRawRotationZeroForEqualYEyes(t *testing.T) {
	left := geometry.Point2D{X: 10, Y: 50}
	right := geometry.Point2D{X: 90, Y: 50}
	if got := rawRotationDegrees(left, right); got != 0 {
		t.Fatalf("expected zero raw rotation for equal-y eyes, got %v", got)
	}
}

func TestPlanFailsWhenCropCannotFitSource(t *testing.T) {
	// Eyes and face box positioned far outside the tiny source: the planned
	// crop region does not overlap the source bounds at all.
	leftEye := geometry.Point2D{X: -5000, Y: -5000}
	rightEye := geometry.Point2D{X: -4900, Y: -5000}
	faceBox, err := geometry.NewFaceBox(-5000, -5000, 50, 50)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Plan(leftEye, rightEye, faceBox, mustDims(t, 20, 20))
	if err == nil {
		t.Fatal("expected an error when the planned crop cannot fit the source")
	}
}

func TestIdentityRoundTripPreservesDimensions(t *testing.T) {
	dims := mustDims(t, 64, 48)
	pt := Identity(dims)

	src := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	for y := 0; y < dims.Height; y++ {
		for x := 0; x < dims.Width; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 10, A: 255})
		}
	}

	out := Execute(src, pt)
	if out.Bounds().Dx() != dims.Width || out.Bounds().Dy() != dims.Height {
		t.Fatalf("identity transform must preserve dimensions, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestExecuteOutputIsFullyOpaque(t *testing.T) {
	dims := mustDims(t, 420, 560)
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 10})
		}
	}

	pt, err := New(2, geometry.FullFrame(), 1.0, dims, true)
	if err != nil {
		t.Fatal(err)
	}

	out := Execute(src, pt)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 37 {
		for x := b.Min.X; x < b.Max.X; x += 37 {
			_, _, _, a := out.At(x, y).RGBA()
			if a>>8 != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a>>8)
			}
		}
	}
	if out.Bounds().Dx() != CanvasWidth || out.Bounds().Dy() != CanvasHeight {
		t.Fatalf("expected %dx%d canvas, got %dx%d", CanvasWidth, CanvasHeight, out.Bounds().Dx(), out.Bounds().Dy())
	}
}
