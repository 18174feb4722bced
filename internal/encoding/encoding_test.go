package encoding

import "testing"

func TestRateTableIsMonotonicallyDecreasing(t *testing.T) {
	for i := 1; i < len(rateTable); i++ {
		if rateTable[i] >= rateTable[i-1] {
			t.Fatalf("rateTable[%d]=%v is not less than rateTable[%d]=%v", i, rateTable[i], i-1, rateTable[i-1])
		}
	}
}

func TestRateTableBounds(t *testing.T) {
	if len(rateTable) < 15 {
		t.Fatalf("expected at least 15 entries, got %d", len(rateTable))
	}
	if rateTable[0] < 4.0 {
		t.Fatalf("highest entry %v must be >= 4.0", rateTable[0])
	}
	if rateTable[len(rateTable)-1] > 0.15 {
		t.Fatalf("lowest entry %v must be <= 0.15", rateTable[len(rateTable)-1])
	}
}

func TestValidateRateTableRejectsNonDecreasing(t *testing.T) {
	bad := []float64{6.0, 5.0, 5.0, 1.0, 0.5, 0.4, 0.3, 0.2, 0.19, 0.18, 0.17, 0.16, 0.15, 0.14, 0.1}
	if err := validateRateTable(bad); err == nil {
		t.Fatal("expected error for non-strictly-decreasing table")
	}
}

func TestNearestRateIndexFindsClosest(t *testing.T) {
	idx := nearestRateIndex(2.0)
	if rateTable[idx] != 2.0 {
		t.Fatalf("expected exact match at 2.0, got index %d (%v)", idx, rateTable[idx])
	}
}

func TestSearchWindowMatchesSpecExampleAroundCenter(t *testing.T) {
	// n=3 around i*=5 must yield i*-1, i*, i*+1 in that order.
	window := searchWindow(5, 20, 3)
	want := []int{4, 5, 6}
	if len(window) != len(want) {
		t.Fatalf("expected %v, got %v", want, window)
	}
	for i, v := range want {
		if window[i] != v {
			t.Fatalf("expected %v, got %v", want, window)
		}
	}
}

func TestSearchWindowClampsNearTableEdges(t *testing.T) {
	window := searchWindow(0, 20, 6)
	for _, i := range window {
		if i < 0 || i >= 20 {
			t.Fatalf("index %d out of bounds", i)
		}
	}
	if len(window) != 6 {
		t.Fatalf("expected 6 indices even near the edge, got %d: %v", len(window), window)
	}
	if window[0] != 0 {
		t.Fatalf("expected window to start at 0 when clamped, got %v", window)
	}
}

func TestSearchWindowNeverExceedsTableLength(t *testing.T) {
	window := searchWindow(10, 20, 50)
	if len(window) != 20 {
		t.Fatalf("expected window capped at table length 20, got %d", len(window))
	}
}
