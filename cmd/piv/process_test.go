package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/piv-face/internal/encoding"
)

// resetProcessFlags restores processFlags to the zero state cobra would
// leave it in before any flag is parsed, so tests don't leak state into
// each other through the package-level var.
func resetProcessFlags() {
	modelsDir := processFlags.modelsDir
	processFlags = processFlagsT{roiLevel: -1, modelsDir: modelsDir, detectionThresh: 0.8, intraOpThreads: 1, interOpThreads: 1}
}

func TestResolveProcessingOptions_DefaultsToBalancedPreset(t *testing.T) {
	resetProcessFlags()

	opts, err := resolveProcessingOptions()
	require.NoError(t, err)
	assert.Equal(t, encoding.TargetSize, opts.Strategy.Kind)
	assert.Equal(t, 20000, opts.Strategy.TargetBytes)
}

func TestResolveProcessingOptions_NamedPreset(t *testing.T) {
	resetProcessFlags()
	processFlags.preset = "archival"

	opts, err := resolveProcessingOptions()
	require.NoError(t, err)
	assert.Equal(t, encoding.FixedRate, opts.Strategy.Kind)
	assert.Equal(t, 4.0, opts.Strategy.RateBpp)
	assert.Equal(t, 0.95, opts.MinFaceConfidence)
}

func TestResolveProcessingOptions_UnknownPresetIsAnError(t *testing.T) {
	resetProcessFlags()
	processFlags.preset = "does-not-exist"

	_, err := resolveProcessingOptions()
	assert.Error(t, err)
}

func TestResolveProcessingOptions_StrategyOverridesPreset(t *testing.T) {
	resetProcessFlags()
	processFlags.preset = "piv-balanced"
	processFlags.strategy = "fixed-rate"
	processFlags.rate = 2.5

	opts, err := resolveProcessingOptions()
	require.NoError(t, err)
	assert.Equal(t, encoding.FixedRate, opts.Strategy.Kind)
	assert.Equal(t, 2.5, opts.Strategy.RateBpp)
	assert.Equal(t, 0, opts.Strategy.TargetBytes)
}

func TestResolveProcessingOptions_FixedRateWithoutRateIsInvalid(t *testing.T) {
	resetProcessFlags()
	processFlags.strategy = "fixed-rate"

	_, err := resolveProcessingOptions()
	assert.Error(t, err)
}

func TestResolveProcessingOptions_TargetSizeWithoutSizeIsInvalid(t *testing.T) {
	resetProcessFlags()
	processFlags.strategy = "target-size"

	_, err := resolveProcessingOptions()
	assert.Error(t, err)
}

func TestResolveProcessingOptions_NoRoiDisablesRoiEverywhere(t *testing.T) {
	resetProcessFlags()
	processFlags.noRoi = true

	opts, err := resolveProcessingOptions()
	require.NoError(t, err)
	assert.False(t, opts.EnableRoi)
	assert.False(t, opts.Strategy.EnableRoi)
}

func TestResolveProcessingOptions_RoiLevelOverride(t *testing.T) {
	resetProcessFlags()
	processFlags.roiLevel = 1

	opts, err := resolveProcessingOptions()
	require.NoError(t, err)
	assert.Equal(t, 1, opts.RoiStartLevel)
	assert.Equal(t, 1, opts.Strategy.RoiStartLevel)
}
