// Package piv computes and validates the INCITS 385-2004 "AA/BB/CC"
// compliance lines a PIV facial image must satisfy.
package piv

import (
	"github.com/your-org/piv-face/internal/geometry"
	"github.com/your-org/piv-face/internal/landmarks"
)

// ComplianceLines holds the three PIV geometry lines derived from a
// landmark set, per INCITS 385-2004 Appendix C.
type ComplianceLines struct {
	// LineAAX is the vertical face centre line: mean of nose/mouth centre x.
	LineAAX float64
	// LineBBY is the horizontal eye line: mean of the two eye centre y values.
	LineBBY float64
	// LineCCWidth is the head width: distance between the jaw-contour extrema.
	LineCCWidth float64
	// LevelEarY is the mean y of the jaw-contour extrema ("level ear" height).
	LevelEarY float64

	NoseCenter  geometry.Point2D
	MouthCenter geometry.Point2D
}

// CalculateLines is a pure function computing the three compliance lines
// from a validated 68-point landmark set.
func CalculateLines(lm landmarks.Landmarks68) ComplianceLines {
	nose := lm.NoseCenter()
	mouth := lm.MouthCenter()
	leftEye := lm.LeftEyeCenter()
	rightEye := lm.RightEyeCenter()
	leftExt := lm.LeftExtremum()
	rightExt := lm.RightExtremum()

	return ComplianceLines{
		LineAAX:     (nose.X + mouth.X) / 2,
		LineBBY:     (leftEye.Y + rightEye.Y) / 2,
		LineCCWidth: rightExt.X - leftExt.X,
		LevelEarY:   (leftExt.Y + rightExt.Y) / 2,
		NoseCenter:  nose,
		MouthCenter: mouth,
	}
}
