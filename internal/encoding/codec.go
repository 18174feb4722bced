package encoding

import (
	"fmt"
	"image"

	"github.com/cocosip/go-dicom-codec/jpeg2000"
	"github.com/your-org/piv-face/internal/roi"
)

const (
	bitDepth       = 8
	components     = 3 // RGB, no alpha plane (the executor's output is always opaque)
	bitsPerChannel = 8
)

// encodeOnce runs a single JPEG 2000 encode of img at the given bits-per-pixel
// rate and returns the compressed bytes. When roiOpts.Enable is true, the
// Inner Region is protected via the codec's MaxShift method.
func encodeOnce(img *image.RGBA, bpp float64, rois roi.FacialRoiSet, roiOpts RoiOptions) ([]byte, error) {
	if bpp <= 0 {
		return nil, fmt.Errorf("encoding: rate must be positive, got %g bpp", bpp)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pixelData := interleaveRGB(img)

	params := jpeg2000.DefaultEncodeParams(width, height, components, bitDepth, false)
	params.Lossless = false
	params.EnableMCT = true
	params.TargetRatio = (float64(bitsPerChannel*components)) / bpp
	if roiOpts.Enable {
		params.ROIConfig = roiConfigFor(rois, roiOpts.StartLevel)
	}

	encoder := jpeg2000.NewEncoder(params)
	encoded, err := encoder.Encode(pixelData)
	if err != nil {
		return nil, fmt.Errorf("encoding: jpeg2000 encode failed: %w", err)
	}
	return encoded, nil
}

// interleaveRGB drops the alpha channel and returns RGB bytes interleaved
// per pixel (R,G,B,R,G,B,...), row-major, as the codec expects.
func interleaveRGB(img *image.RGBA) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, 0, w*h*components)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			out = append(out, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		}
	}
	return out
}

// RoiOptions controls whether and how aggressively the ROI is protected.
// StartLevel mirrors the roiStartLevel contract: 0 is the most aggressive
// protection (largest MaxShift), 3 the smoothest transition (smallest).
type RoiOptions struct {
	Enable     bool
	StartLevel int // 0..3
}

// clampLevel restricts an ROI start level to the supported range 0..3.
func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 3 {
		return 3
	}
	return level
}

// roiConfigFor translates the computed facial ROI set into the codec's
// MaxShift ROI configuration. The Inner Region is the only region currently
// produced; its priority and startLevel map to a MaxShift bit-plane shift
// (higher priority or lower startLevel => larger shift => stronger
// protection from quantization).
func roiConfigFor(rois roi.FacialRoiSet, startLevel int) *jpeg2000.ROIConfig {
	box := rois.InnerRegion.BoundingBox
	shift := rois.InnerRegion.Priority + (3 - clampLevel(startLevel)) // priority 3, level 0 -> shift 6

	return &jpeg2000.ROIConfig{
		DefaultStyle: jpeg2000.ROIStyleMaxShift,
		DefaultShift: shift,
		ROIs: []jpeg2000.ROIRegion{
			{
				ID:    rois.InnerRegion.Name,
				Style: jpeg2000.ROIStyleMaxShift,
				Rect: &jpeg2000.ROIParams{
					X0:     box.X,
					Y0:     box.Y,
					Width:  box.Width,
					Height: box.Height,
					Shift:  shift,
				},
				Shift: shift,
			},
		},
	}
}
