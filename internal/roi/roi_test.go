package roi

import "testing"

func TestInnerRegionForPIVCanvas(t *testing.T) {
	set := InnerRegionFor(420, 560)
	box := set.InnerRegion.BoundingBox

	want := BoundingBox{X: 41, Y: 41, Width: 337, Height: 421}
	if box != want {
		t.Fatalf("inner region = %+v, want %+v", box, want)
	}
	if set.InnerRegion.Priority != 3 {
		t.Fatalf("priority = %d, want 3", set.InnerRegion.Priority)
	}
	if len(set.InnerRegion.LandmarkIndices) != 68 {
		t.Fatalf("expected 68 landmark indices, got %d", len(set.InnerRegion.LandmarkIndices))
	}
}

func TestInnerRegionClampsToNonStandardCanvasHeight(t *testing.T) {
	// A narrow-but-short canvas where 1.1*W - 1 would exceed H.
	set := InnerRegionFor(420, 100)
	box := set.InnerRegion.BoundingBox

	if box.Y+box.Height > 100 {
		t.Fatalf("inner region exceeds canvas height: %+v", box)
	}
}

func TestInnerRegionPositiveDimensions(t *testing.T) {
	set := InnerRegionFor(420, 560)
	box := set.InnerRegion.BoundingBox
	if box.X < 0 || box.Y < 0 || box.Width <= 0 || box.Height <= 0 {
		t.Fatalf("invalid inner region: %+v", box)
	}
}
