package landmarks

import (
	"testing"

	"github.com/your-org/piv-face/internal/geometry"
)

func gridPoints() []geometry.Point2D {
	pts := make([]geometry.Point2D, NumPoints)
	for i := range pts {
		pts[i] = geometry.Point2D{X: float64(i), Y: float64(i) * 2}
	}
	return pts
}

func TestNewRejectsWrongCount(t *testing.T) {
	if _, err := New(gridPoints()[:67]); err == nil {
		t.Fatal("expected error for 67 points")
	}
	if _, err := New(append(gridPoints(), geometry.Point2D{})); err == nil {
		t.Fatal("expected error for 69 points")
	}
}

func TestDerivedCentersAreMeans(t *testing.T) {
	pts := gridPoints()
	lm, err := New(pts)
	if err != nil {
		t.Fatal(err)
	}

	wantLeftEye := geometry.MeanPoint(pts[36:42])
	if got := lm.LeftEyeCenter(); got != wantLeftEye {
		t.Fatalf("LeftEyeCenter = %+v, want %+v", got, wantLeftEye)
	}

	wantRightEye := geometry.MeanPoint(pts[42:48])
	if got := lm.RightEyeCenter(); got != wantRightEye {
		t.Fatalf("RightEyeCenter = %+v, want %+v", got, wantRightEye)
	}

	wantNose := geometry.MeanPoint(pts[27:31])
	if got := lm.NoseCenter(); got != wantNose {
		t.Fatalf("NoseCenter = %+v, want %+v", got, wantNose)
	}

	wantMouth := geometry.MeanPoint([]geometry.Point2D{pts[48], pts[51], pts[54], pts[57]})
	if got := lm.MouthCenter(); got != wantMouth {
		t.Fatalf("MouthCenter = %+v, want %+v", got, wantMouth)
	}
}

func TestJawExtrema(t *testing.T) {
	pts := gridPoints()
	// Make point 5 the minimum-x and point 10 the maximum-x within the jaw range.
	pts[5].X = -100
	pts[10].X = 100
	lm, err := New(pts)
	if err != nil {
		t.Fatal(err)
	}
	if got := lm.LeftExtremum(); got != pts[5] {
		t.Fatalf("LeftExtremum = %+v, want %+v", got, pts[5])
	}
	if got := lm.RightExtremum(); got != pts[10] {
		t.Fatalf("RightExtremum = %+v, want %+v", got, pts[10])
	}
}
