package pipeline

import (
	"fmt"
	"time"

	"github.com/your-org/piv-face/internal/encoding"
)

// Presets only pre-fill ProcessingOptions; callers may further override
// any field before calling ProcessAsync.

// TwicMax targets the TWIC card's tighter size cap.
func TwicMax() ProcessingOptions {
	o := baseOptions()
	o.RoiStartLevel = 2
	o.Strategy = encoding.Strategy{Kind: encoding.TargetSize, TargetBytes: 14000, MaxRetries: o.MaxRetries}
	return withRoiOptions(o)
}

// PivMin applies aggressive ROI protection (start level 1) at the smallest
// accepted size budget.
func PivMin() ProcessingOptions {
	o := baseOptions()
	o.RoiStartLevel = 1
	o.Strategy = encoding.Strategy{Kind: encoding.TargetSize, TargetBytes: 12000, MaxRetries: o.MaxRetries}
	return withRoiOptions(o)
}

// PivBalanced is the default PIV preset.
func PivBalanced() ProcessingOptions {
	o := baseOptions()
	o.RoiStartLevel = 3
	o.Strategy = encoding.Strategy{Kind: encoding.TargetSize, TargetBytes: 20000, MaxRetries: o.MaxRetries}
	return withRoiOptions(o)
}

// PivHigh trades a larger size budget for higher quality.
func PivHigh() ProcessingOptions {
	o := baseOptions()
	o.RoiStartLevel = 3
	o.Strategy = encoding.Strategy{Kind: encoding.TargetSize, TargetBytes: 30000, MaxRetries: o.MaxRetries}
	return withRoiOptions(o)
}

// Archival preserves the most detail, at the cost of a fixed, larger rate
// and a stricter confidence threshold.
func Archival() ProcessingOptions {
	o := baseOptions()
	o.MinFaceConfidence = 0.95
	o.RoiStartLevel = 3
	o.Strategy = encoding.Strategy{Kind: encoding.FixedRate, RateBpp: 4.0}
	return withRoiOptions(o)
}

// Fast minimises latency: a low fixed rate, ROI start level 0 (the strongest
// protection), a relaxed confidence threshold, one retry and a short timeout.
func Fast() ProcessingOptions {
	o := baseOptions()
	o.MinFaceConfidence = 0.7
	o.RoiStartLevel = 0
	o.MaxRetries = 1
	o.ProcessingTimeout = 10 * time.Second
	o.Strategy = encoding.Strategy{Kind: encoding.FixedRate, RateBpp: 0.5}
	return withRoiOptions(o)
}

// namedPresets maps the CLI/config preset names to their constructors.
var namedPresets = map[string]func() ProcessingOptions{
	"twic-max":     TwicMax,
	"piv-min":      PivMin,
	"piv-balanced": PivBalanced,
	"piv-high":     PivHigh,
	"archival":     Archival,
	"fast":         Fast,
}

// PresetByName resolves a preset name (as accepted by config and the CLI)
// to its ProcessingOptions. An unknown name is an error, not a silent
// fallback to the default preset.
func PresetByName(name string) (ProcessingOptions, error) {
	ctor, ok := namedPresets[name]
	if !ok {
		return ProcessingOptions{}, fmt.Errorf("pipeline: unknown preset %q", name)
	}
	return ctor(), nil
}

// presetOrder lists preset names in the fixed, documented order they
// should be displayed in (`piv presets`, GET /v1/presets), since Go map
// iteration order is random.
var presetOrder = []string{"twic-max", "piv-min", "piv-balanced", "piv-high", "archival", "fast"}

// PresetNames returns the named presets in display order.
func PresetNames() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}

// withRoiOptions copies the preset's EnableRoi/RoiStartLevel down into the
// strategy it just built, since the encoder only sees the Strategy value.
func withRoiOptions(o ProcessingOptions) ProcessingOptions {
	o.Strategy.EnableRoi = o.EnableRoi
	o.Strategy.RoiStartLevel = o.RoiStartLevel
	return o
}
