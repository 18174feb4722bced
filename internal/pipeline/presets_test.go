package pipeline

import (
	"testing"

	"github.com/your-org/piv-face/internal/encoding"
)

func TestPivBalancedIsDefault(t *testing.T) {
	if DefaultOptions() != PivBalanced() {
		t.Fatal("DefaultOptions must be PivBalanced")
	}
}

func TestPresetStrategiesMatchTable(t *testing.T) {
	cases := []struct {
		name          string
		opts          ProcessingOptions
		kind          encoding.StrategyKind
		targetBytes   int
		rateBpp       float64
		roiStartLevel int
		minConfidence float64
	}{
		{"TwicMax", TwicMax(), encoding.TargetSize, 14000, 0, 2, 0.8},
		{"PivMin", PivMin(), encoding.TargetSize, 12000, 0, 1, 0.8},
		{"PivBalanced", PivBalanced(), encoding.TargetSize, 20000, 0, 3, 0.8},
		{"PivHigh", PivHigh(), encoding.TargetSize, 30000, 0, 3, 0.8},
		{"Archival", Archival(), encoding.FixedRate, 0, 4.0, 3, 0.95},
		{"Fast", Fast(), encoding.FixedRate, 0, 0.5, 0, 0.7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.opts.Strategy.Kind != c.kind {
				t.Fatalf("expected kind %v, got %v", c.kind, c.opts.Strategy.Kind)
			}
			if c.opts.Strategy.TargetBytes != c.targetBytes {
				t.Fatalf("expected target bytes %d, got %d", c.targetBytes, c.opts.Strategy.TargetBytes)
			}
			if c.opts.Strategy.RateBpp != c.rateBpp {
				t.Fatalf("expected rate %v, got %v", c.rateBpp, c.opts.Strategy.RateBpp)
			}
			if c.opts.RoiStartLevel != c.roiStartLevel {
				t.Fatalf("expected roiStartLevel %d, got %d", c.roiStartLevel, c.opts.RoiStartLevel)
			}
			if c.opts.MinFaceConfidence != c.minConfidence {
				t.Fatalf("expected minConfidence %v, got %v", c.minConfidence, c.opts.MinFaceConfidence)
			}
			if !c.opts.Strategy.EnableRoi {
				t.Fatal("expected EnableRoi to carry through from the preset")
			}
			if c.opts.Strategy.RoiStartLevel != c.roiStartLevel {
				t.Fatalf("expected strategy.RoiStartLevel %d, got %d", c.roiStartLevel, c.opts.Strategy.RoiStartLevel)
			}
		})
	}
}

func TestPresetByNameResolvesKnownNames(t *testing.T) {
	opts, err := PresetByName("piv-high")
	if err != nil {
		t.Fatalf("PresetByName: %v", err)
	}
	if opts.Strategy.TargetBytes != 30000 {
		t.Fatalf("expected piv-high's 30000 byte budget, got %d", opts.Strategy.TargetBytes)
	}
}

func TestPresetByNameRejectsUnknownName(t *testing.T) {
	if _, err := PresetByName("nonexistent"); err == nil {
		t.Fatal("expected an error for an unknown preset name")
	}
}

func TestFastHasShortTimeoutAndOneRetry(t *testing.T) {
	f := Fast()
	if f.ProcessingTimeout.Seconds() != 10 {
		t.Fatalf("expected a 10s timeout, got %v", f.ProcessingTimeout)
	}
	if f.MaxRetries != 1 {
		t.Fatalf("expected 1 retry, got %d", f.MaxRetries)
	}
}
