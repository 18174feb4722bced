package encoding

import (
	"context"
	"image"

	"github.com/your-org/piv-face/internal/roi"
)

// StrategyKind distinguishes the two ways an encode can be requested.
type StrategyKind int

const (
	// FixedRate encodes once at an explicit bits-per-pixel rate.
	FixedRate StrategyKind = iota
	// TargetSize searches the rate table for the highest quality encode
	// that fits under a byte budget.
	TargetSize
)

// safetyMargin reserves 5% of the requested byte budget as headroom: the
// search never accepts an encode larger than targetBytes*safetyMargin.
const safetyMargin = 0.95

// acceptableBandLow is the lower edge of the early-stop acceptance band,
// as a fraction of the requested byte budget.
const acceptableBandLow = 0.85

// defaultMaxRetries is used when a Strategy leaves MaxRetries unset.
const defaultMaxRetries = 3

// Strategy selects how EncodingResult is produced. Exactly one of RateBpp
// (Kind == FixedRate) or TargetBytes (Kind == TargetSize) is meaningful.
type Strategy struct {
	Kind        StrategyKind
	RateBpp     float64
	TargetBytes int
	MaxRetries  int

	// EnableRoi protects the facial Inner Region via MaxShift; RoiStartLevel
	// (0..3) sets how aggressively, 0 being the strongest protection.
	EnableRoi     bool
	RoiStartLevel int
}

// CannotMeetSizeError reports that no rate in the search window produced an
// encode at or under the requested byte budget's safety cap. BestSize and
// BestRate describe the smallest encode that exceeded the cap.
type CannotMeetSizeError struct {
	Requested int
	BestSize  int
	BestRate  float64
}

func (e *CannotMeetSizeError) Error() string {
	return "encoding: target-size strategy exhausted its rate search window without meeting the requested cap"
}

// CancelledError reports cooperative cancellation observed between encoder
// attempts inside a target-size search.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "encoding: cancelled" }

// Run executes strategy against img and its computed ROI set. ctx is
// checked before every encoder attempt inside a target-size search (the
// pipeline's third suspension point); a single FixedRate encode is not
// itself interruptible mid-call.
func Run(ctx context.Context, img *image.RGBA, rois roi.FacialRoiSet, strategy Strategy) (EncodingResult, error) {
	roiOpts := RoiOptions{Enable: strategy.EnableRoi, StartLevel: strategy.RoiStartLevel}
	if strategy.Kind == FixedRate {
		return runFixedRate(img, rois, strategy.RateBpp, roiOpts)
	}
	maxRetries := strategy.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return runTargetSize(ctx, img, rois, strategy.TargetBytes, maxRetries, roiOpts)
}

// runFixedRate performs a single encode at rate and returns its result;
// encoder failure propagates unchanged.
func runFixedRate(img *image.RGBA, rois roi.FacialRoiSet, bpp float64, roiOpts RoiOptions) (EncodingResult, error) {
	data, err := encodeOnce(img, bpp, rois, roiOpts)
	if err != nil {
		return EncodingResult{}, err
	}
	return newResult(data, bpp, nearestRateIndex(bpp), 1), nil
}

// runTargetSize searches the rate table for the highest-quality encode at
// or under targetBytes*safetyMargin. It probes a window of maxRetries+1
// indices around the rate nearest that cap, ordered from the highest rate
// in the window down to the lowest, and stops as soon as an encode lands in
// [targetBytes*0.85, targetBytes*0.95]. Per-rate encoder errors are skipped
// unless every rate in the window fails, in which case the last error
// propagates.
func runTargetSize(ctx context.Context, img *image.RGBA, rois roi.FacialRoiSet, targetBytes, maxRetries int, roiOpts RoiOptions) (EncodingResult, error) {
	sizeCap := safetyMargin * float64(targetBytes)
	bandLow := acceptableBandLow * float64(targetBytes)

	bounds := img.Bounds()
	pixels := float64(bounds.Dx() * bounds.Dy())
	estimatedBpp := sizeCap * 8 / pixels

	center := nearestRateIndex(estimatedBpp)
	indices := searchWindow(center, len(rateTable), maxRetries+1)

	var best *EncodingResult
	bestSize := -1
	var lastErr error
	attempts := 0
	failures := 0
	overSize := -1 // smallest encode that exceeded the cap, and its rate
	overRate := 0.0

	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return EncodingResult{}, &CancelledError{}
		}
		attempts++
		bpp := rateTable[idx]
		data, err := encodeOnce(img, bpp, rois, roiOpts)
		if err != nil {
			lastErr = err
			failures++
			continue // per-rate failure is recovered locally
		}
		size := len(data)

		if float64(size) <= sizeCap {
			if size > bestSize {
				result := newResult(data, bpp, idx, attempts)
				best = &result
				bestSize = size
			}
			if float64(size) >= bandLow {
				break // within the acceptance band: stop early
			}
		} else if overSize < 0 || size < overSize {
			overSize = size
			overRate = bpp
		}
	}

	if best != nil {
		return *best, nil
	}
	if lastErr != nil && failures == len(indices) {
		return EncodingResult{}, lastErr
	}
	return EncodingResult{}, &CannotMeetSizeError{Requested: targetBytes, BestSize: overSize, BestRate: overRate}
}

// searchWindow returns up to n rate-table indices centred on center: the
// upper half of the window (lower indices, higher rate) first, then the
// centre, then the lower half (higher indices, lower rate) — e.g. for
// n=3 around i* this yields i*-1, i*, i*+1. If the window is clamped
// against one edge of the table it extends further into the other side so
// the result still has n entries where the table allows.
func searchWindow(center, tableLen, n int) []int {
	if n > tableLen {
		n = tableLen
	}
	upperCount := n / 2

	start := center - upperCount
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > tableLen {
		end = tableLen
		start = end - n
		if start < 0 {
			start = 0
		}
	}

	window := make([]int, 0, n)
	for i := start; i < end; i++ {
		window = append(window, i)
	}
	return window
}
