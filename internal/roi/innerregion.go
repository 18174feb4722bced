// Package roi computes the JPEG 2000 Region-of-Interest rectangle defined
// by INCITS 385-2004 Appendix C.6 ("Inner Region") and the region/ROI-set
// value types the encoder (internal/encoding) consumes.
package roi

import "math"

// BoundingBox is an integer-pixel rectangle within the output canvas.
// Invariants: X >= 0, Y >= 0, Width > 0, Height > 0.
type BoundingBox struct {
	X, Y, Width, Height int
}

// Region describes one named region of interest at a given encode priority.
type Region struct {
	Name            string
	Priority        int // 1, 2 or 3
	BoundingBox     BoundingBox
	LandmarkIndices []int // indices into Landmarks68, for visualisation only
}

// FacialRoiSet is the set of ROI regions computed for a PIV output canvas.
// Currently this holds a single InnerRegion at priority 3.
type FacialRoiSet struct {
	InnerRegion Region
}

// innerRegionPriority is the fixed priority of the Appendix C.6 Inner Region.
const innerRegionPriority = 3

// InnerRegionFor computes the Appendix C.6 Inner Region rectangle for an
// output canvas of the given width and height. Per the source standard,
// the y-range formulas intentionally reuse W (not H) for both axes; for
// non-standard canvases where that would run past the image, the rectangle
// is clamped to the canvas height.
func InnerRegionFor(width, height int) FacialRoiSet {
	w := float64(width)

	innerX := int(math.Floor(0.1*w - 1))
	innerY := int(math.Floor(0.1*w - 1))
	innerMaxX := int(math.Floor(0.9*w - 1))
	innerMaxY := int(math.Floor(1.1*w - 1))

	innerWidth := innerMaxX - innerX + 1
	innerHeight := innerMaxY - innerY + 1
	if maxHeight := height - innerY; innerHeight > maxHeight {
		innerHeight = maxHeight
	}

	landmarkIndices := make([]int, 68)
	for i := range landmarkIndices {
		landmarkIndices[i] = i
	}

	return FacialRoiSet{
		InnerRegion: Region{
			Name:     "InnerRegion",
			Priority: innerRegionPriority,
			BoundingBox: BoundingBox{
				X:      innerX,
				Y:      innerY,
				Width:  innerWidth,
				Height: innerHeight,
			},
			LandmarkIndices: landmarkIndices,
		},
	}
}
