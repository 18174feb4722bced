package piv

import (
	"testing"

	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/landmarks"
)

// buildLandmarks constructs a 68-point set where only the points that drive
// the derived centers matter; all other points are placed far from the jaw
// extrema so they never interfere with LeftExtremum/RightExtremum.
func buildLandmarks(t *testing.T, leftEye, rightEye, nose, mouth geometry.Point2D, jawLeftX, jawRightX, jawY float64) landmarks.Landmarks68 {
	t.Helper()
	pts := make([]geometry.Point2D, landmarks.NumPoints)
	for i := range pts {
		pts[i] = geometry.Point2D{X: (jawLeftX + jawRightX) / 2, Y: jawY}
	}
	pts[0] = geometry.Point2D{X: jawLeftX, Y: jawY}
	pts[16] = geometry.Point2D{X: jawRightX, Y: jawY}
	for i := 36; i <= 41; i++ {
		pts[i] = leftEye
	}
	for i := 42; i <= 47; i++ {
		pts[i] = rightEye
	}
	for i := 27; i <= 30; i++ {
		pts[i] = nose
	}
	pts[48], pts[51], pts[54], pts[57] = mouth, mouth, mouth, mouth

	lm, err := landmarks.New(pts)
	if err != nil {
		t.Fatal(err)
	}
	return lm
}

func TestFullyCompliantIffAllThreeHold(t *testing.T) {
	const w, h = 420.0, 560.0
	// Centre x = 210; eye line at 60% from bottom = y 224; head width 240 -> ratio 1.75.
	lm := buildLandmarks(t,
		geometry.Point2D{X: 190, Y: 224}, geometry.Point2D{X: 230, Y: 224},
		geometry.Point2D{X: 207, Y: 300}, geometry.Point2D{X: 213, Y: 340},
		90, 330, 250)

	lines := CalculateLines(lm)
	v := Validate(lines, w, h)

	if !(v.IsAAAligned && v.IsBBPositioned && v.IsCCRatioValid) == v.IsFullyCompliant {
		t.Fatalf("IsFullyCompliant must equal conjunction of the three checks; got %+v", v)
	}
	if !v.IsFullyCompliant {
		t.Fatalf("expected fully compliant geometry, got %+v", v)
	}
}

func TestCCRatioExactlyAtThresholdIsValid(t *testing.T) {
	const w = 420.0
	headWidth := w / 1.75 // ratio == 1.75 exactly
	lines := ComplianceLines{LineCCWidth: headWidth}
	v := Validate(lines, w, 560)
	if !v.IsCCRatioValid {
		t.Fatalf("ratio exactly 1.75 should be valid (epsilon tolerance), got CCRatio=%v", v.CCRatio)
	}
}

func TestBBBoundaryValuesAreCompliant(t *testing.T) {
	const h = 560.0
	for _, frac := range []float64{0.50, 0.70} {
		lineBBY := h - frac*h
		lines := ComplianceLines{LineBBY: lineBBY, LineCCWidth: 240}
		v := Validate(lines, 420, h)
		if !v.IsBBPositioned {
			t.Fatalf("fraction %v from bottom should be compliant, got %+v", frac, v)
		}
	}
}

func TestAAAlignmentRequiresBothChecks(t *testing.T) {
	const w, h = 420.0, 560.0
	// Centred AA line but nose/mouth x too far apart.
	lines := ComplianceLines{
		LineAAX:     w / 2,
		NoseCenter:  geometry.Point2D{X: w / 2},
		MouthCenter: geometry.Point2D{X: w/2 + 9},
		LineBBY:     224,
		LineCCWidth: 240,
	}
	v := Validate(lines, w, h)
	if v.IsAAAligned {
		t.Fatal("expected AA to fail when nose/mouth gap exceeds 8px even though centred")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityCompliant < SeverityLow && SeverityLow < SeverityMedium &&
		SeverityMedium < SeverityHigh && SeverityHigh < SeverityCritical) {
		t.Fatal("severity levels must be strictly ordered Compliant < Low < Medium < High < Critical")
	}
}

func TestCriticalWhenAllThreeFail(t *testing.T) {
	lines := ComplianceLines{
		LineAAX:     1000, // far off centre
		NoseCenter:  geometry.Point2D{X: 0},
		MouthCenter: geometry.Point2D{X: 100},
		LineBBY:     10, // far from the 50-70% band
		LineCCWidth: 400, // ratio 420/400 = 1.05, far below 1.75
	}
	v := Validate(lines, 420, 560)
	if v.Severity != SeverityCritical {
		t.Fatalf("expected Critical severity, got %v", v.Severity)
	}
	if len(v.Issues) != 3 || len(v.Recommendations) != 3 {
		t.Fatalf("expected 3 issues/recommendations, got %d/%d", len(v.Issues), len(v.Recommendations))
	}
}
