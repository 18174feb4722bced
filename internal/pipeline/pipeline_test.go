package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/your-org/piv-face/internal/encoding"
	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/piverr"
	"github.com/your-org/piv-face/internal/vision"
)

func mustDetection(t *testing.T, x, y, w, h, confidence float64) vision.Detection {
	t.Helper()
	box, err := geometry.NewFaceBox(x, y, w, h)
	if err != nil {
		t.Fatalf("NewFaceBox: %v", err)
	}
	conf, err := geometry.NewConfidence(confidence)
	if err != nil {
		t.Fatalf("NewConfidence: %v", err)
	}
	return vision.Detection{Box: box, Confidence: conf}
}

func TestFilterByConfidenceDropsBelowThreshold(t *testing.T) {
	detections := []vision.Detection{
		mustDetection(t, 0, 0, 10, 10, 0.9),
		mustDetection(t, 0, 0, 10, 10, 0.5),
	}
	got := filterByConfidence(detections, 0.8)
	if len(got) != 1 {
		t.Fatalf("expected 1 qualifying detection, got %d", len(got))
	}
}

func TestPrimaryFacePicksHighestConfidence(t *testing.T) {
	low := mustDetection(t, 0, 0, 10, 10, 0.81)
	high := mustDetection(t, 0, 0, 10, 10, 0.95)
	got := primaryFace([]vision.Detection{low, high})
	if got.Confidence.Float64() != 0.95 {
		t.Fatalf("expected the higher-confidence detection, got %v", got.Confidence)
	}
}

func TestPrimaryFaceTieBreaksOnArea(t *testing.T) {
	small := mustDetection(t, 0, 0, 10, 10, 0.9)
	large := mustDetection(t, 0, 0, 20, 20, 0.9)
	got := primaryFace([]vision.Detection{small, large})
	if got.Box.Area() != 400 {
		t.Fatalf("expected the larger box on a confidence tie, got area %v", got.Box.Area())
	}
}

func TestDecodeRejectsGarbageBytes(t *testing.T) {
	_, _, err := decode([]byte("not an image"))
	if err == nil {
		t.Fatal("expected an error decoding non-image bytes")
	}
}

func TestDecodeReturnsSourceDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture png: %v", err)
	}

	_, dims, err := decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dims.Width != 64 || dims.Height != 48 {
		t.Fatalf("expected 64x48, got %dx%d", dims.Width, dims.Height)
	}
}

func TestCheckSuspensionPointPassesWhenLive(t *testing.T) {
	if err := checkSuspensionPoint(context.Background()); err != nil {
		t.Fatalf("expected no error on a live context, got %v", err)
	}
}

func TestCheckSuspensionPointReportsTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	time.Sleep(5 * time.Millisecond)

	err := checkSuspensionPoint(ctx)
	pivErr, ok := err.(*piverr.Error)
	if !ok {
		t.Fatalf("expected *piverr.Error, got %T", err)
	}
	if pivErr.Kind != piverr.KindTimeout {
		t.Fatalf("expected KindTimeout, got %v", pivErr.Kind)
	}
}

func TestCheckSuspensionPointReportsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := checkSuspensionPoint(ctx)
	pivErr, ok := err.(*piverr.Error)
	if !ok {
		t.Fatalf("expected *piverr.Error, got %T", err)
	}
	if pivErr.Kind != piverr.KindCancelled {
		t.Fatalf("expected KindCancelled, got %v", pivErr.Kind)
	}
}

func TestClassifyEncodingErrorMapsCannotMeetSize(t *testing.T) {
	src := &encoding.CannotMeetSizeError{Requested: 20000, BestSize: 25000, BestRate: 1.2}
	got := classifyEncodingError(src)
	pivErr, ok := got.(*piverr.Error)
	if !ok || pivErr.Kind != piverr.KindCannotMeetSize {
		t.Fatalf("expected KindCannotMeetSize, got %#v", got)
	}
}

func TestClassifyEncodingErrorMapsUnknownToEncodingFailed(t *testing.T) {
	got := classifyEncodingError(errUnmapped{})
	pivErr, ok := got.(*piverr.Error)
	if !ok || pivErr.Kind != piverr.KindEncodingFailed {
		t.Fatalf("expected KindEncodingFailed, got %#v", got)
	}
}

type errUnmapped struct{}

func (errUnmapped) Error() string { return "boom" }
