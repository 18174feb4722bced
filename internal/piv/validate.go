package piv

import (
	"fmt"
	"math"
)

// Severity ranks how far a validation result is from full compliance.
type Severity int

const (
	SeverityCompliant Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCompliant:
		return "compliant"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ccRatioEpsilon is the tolerance applied to the CC head-width ratio check.
const ccRatioEpsilon = 0.001

// aaMaxDeviationPx and aaMaxNoseMouthGapPx bound line AA compliance.
const (
	aaMaxDeviationPx    = 10.0
	aaMaxNoseMouthGapPx = 8.0
)

// bbOptimalFromBottom is the target eye-line position, fraction from the bottom.
const bbOptimalFromBottom = 0.60

// minHeadWidthRatio is the minimum required W / LineCCWidth ratio (7/4).
const minHeadWidthRatio = 1.75

// Validation is the outcome of checking ComplianceLines against an image's
// dimensions, per INCITS 385-2004.
type Validation struct {
	IsAAAligned     bool
	IsBBPositioned  bool
	IsCCRatioValid  bool
	IsFullyCompliant bool

	AADeviationPx        float64 // LineAAX - W/2
	NoseMouthGapPx       float64
	BBFractionFromBottom float64 // (H - LineBBY) / H
	CCRatio              float64 // W / LineCCWidth
	MinRequiredHeadWidth float64 // W / 1.75

	Severity        Severity
	Issues          []string
	Recommendations []string
}

// Validate checks lines against an image of the given dimensions and
// returns the full compliance validation, including human-readable
// issue/recommendation strings.
func Validate(lines ComplianceLines, width, height float64) Validation {
	v := Validation{}

	v.AADeviationPx = lines.LineAAX - width/2
	v.NoseMouthGapPx = math.Abs(lines.NoseCenter.X - lines.MouthCenter.X)
	v.IsAAAligned = math.Abs(v.AADeviationPx) <= aaMaxDeviationPx && v.NoseMouthGapPx <= aaMaxNoseMouthGapPx

	if height != 0 {
		v.BBFractionFromBottom = (height - lines.LineBBY) / height
	}
	v.IsBBPositioned = v.BBFractionFromBottom >= 0.50 && v.BBFractionFromBottom <= 0.70

	if lines.LineCCWidth != 0 {
		v.CCRatio = width / lines.LineCCWidth
	}
	v.MinRequiredHeadWidth = width / minHeadWidthRatio
	v.IsCCRatioValid = v.CCRatio >= minHeadWidthRatio-ccRatioEpsilon

	v.IsFullyCompliant = v.IsAAAligned && v.IsBBPositioned && v.IsCCRatioValid

	issueCount := 0
	if !v.IsAAAligned {
		issueCount++
	}
	if !v.IsBBPositioned {
		issueCount++
	}
	if !v.IsCCRatioValid {
		issueCount++
	}

	v.Severity = severityFor(issueCount, v.IsCCRatioValid, v.IsBBPositioned)
	v.Issues, v.Recommendations = describe(v, lines, width, height)

	return v
}

func severityFor(issueCount int, ccValid, bbValid bool) Severity {
	switch {
	case issueCount == 0:
		return SeverityCompliant
	case issueCount >= 3:
		return SeverityCritical
	case !ccValid:
		return SeverityHigh
	case !bbValid:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func describe(v Validation, lines ComplianceLines, width, height float64) (issues, recommendations []string) {
	if !v.IsAAAligned {
		issues = append(issues, fmt.Sprintf(
			"Line AA (vertical centre) is off by %.1fpx from image centre; nose/mouth x-gap is %.1fpx",
			v.AADeviationPx, v.NoseMouthGapPx))
		recommendations = append(recommendations, fmt.Sprintf(
			"Shift the crop horizontally by %.1fpx to centre the face", -v.AADeviationPx))
	}
	if !v.IsBBPositioned {
		targetY := height - bbOptimalFromBottom*height
		shift := targetY - lines.LineBBY
		issues = append(issues, fmt.Sprintf(
			"Line BB (eye line) sits at %.1f%% from the bottom; PIV requires 50-70%%",
			v.BBFractionFromBottom*100))
		recommendations = append(recommendations, fmt.Sprintf(
			"Shift the eye line vertically by %.1fpx to reach the optimal 60%% position", shift))
	}
	if !v.IsCCRatioValid {
		issues = append(issues, fmt.Sprintf(
			"Line CC (head width) ratio is %.3f; PIV requires at least %.2f", v.CCRatio, minHeadWidthRatio))
		recommendations = append(recommendations, fmt.Sprintf(
			"Increase head width to at least %.1fpx (currently %.1fpx)", v.MinRequiredHeadWidth, lines.LineCCWidth))
	}
	return issues, recommendations
}
