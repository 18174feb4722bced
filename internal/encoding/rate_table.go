// Package encoding wraps a JPEG 2000 codec with the PIV-specific encoding
// strategies (fixed-rate and target-size) and the quantized bits-per-pixel
// rate table they search over.
package encoding

import "fmt"

// rateTable is the quantized bits-per-pixel ladder the target-size search
// walks, from highest quality (lowest compression) to lowest. The table is
// fixed at compile time; presets choose a strategy but never change it.
var rateTable = []float64{
	6.0, 5.0, 4.0, 3.0, 2.5, 2.0, 1.5, 1.2, 1.0, 0.85,
	0.75, 0.68, 0.55, 0.46, 0.36, 0.28, 0.22, 0.17, 0.13, 0.10,
}

func init() {
	if err := validateRateTable(rateTable); err != nil {
		panic("encoding: invalid rate table: " + err.Error())
	}
}

// validateRateTable enforces the invariants the target-size search relies on:
// at least 15 entries, monotonically decreasing, strictly positive, with the
// highest entry at or above 4.0 bpp and the lowest at or below 0.15 bpp.
func validateRateTable(table []float64) error {
	if len(table) < 15 {
		return fmt.Errorf("rate table must have at least 15 entries, got %d", len(table))
	}
	if table[0] < 4.0 {
		return fmt.Errorf("highest rate must be >= 4.0 bpp, got %g", table[0])
	}
	if table[len(table)-1] > 0.15 {
		return fmt.Errorf("lowest rate must be <= 0.15 bpp, got %g", table[len(table)-1])
	}
	for i, v := range table {
		if v <= 0 {
			return fmt.Errorf("rate table entry %d must be positive, got %g", i, v)
		}
		if i > 0 && table[i] >= table[i-1] {
			return fmt.Errorf("rate table must be strictly decreasing: entry %d (%g) >= entry %d (%g)", i, table[i], i-1, table[i-1])
		}
	}
	return nil
}

// nearestRateIndex returns the index of the rate table entry closest to bpp.
func nearestRateIndex(bpp float64) int {
	best := 0
	bestDiff := diff(rateTable[0], bpp)
	for i := 1; i < len(rateTable); i++ {
		if d := diff(rateTable[i], bpp); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
