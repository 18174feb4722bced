package main

import (
	"context"
	"fmt"
	"os"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/spf13/cobra"

	"github.com/your-org/piv-face/internal/encoding"
	"github.com/your-org/piv-face/internal/onnxutil"
	"github.com/your-org/piv-face/internal/pipeline"
	"github.com/your-org/piv-face/internal/vision"
)

type processFlagsT struct {
	preset          string
	minConfidence   float64
	strategy        string
	targetSize      int
	rate            float64
	roiLevel        int
	noRoi           bool
	retries         int
	timeout         time.Duration
	modelsDir       string
	detectionThresh float64
	intraOpThreads  int
	interOpThreads  int
}

var processFlags processFlagsT

var processCmd = &cobra.Command{
	Use:   "process <in> <out>",
	Short: "Process a single photograph into a PIV-compliant JPEG 2000 image",
	Args:  cobra.ExactArgs(2),
	RunE:  runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	f := processCmd.Flags()
	f.StringVar(&processFlags.preset, "preset", "", "named preset (twic-max, piv-min, piv-balanced, piv-high, archival, fast)")
	f.Float64Var(&processFlags.minConfidence, "min-confidence", 0, "minimum face detection confidence (overrides preset)")
	f.StringVar(&processFlags.strategy, "strategy", "", "encoding strategy: fixed-rate or target-size (overrides preset)")
	f.IntVar(&processFlags.targetSize, "target-size", 0, "target size in bytes, for --strategy target-size")
	f.Float64Var(&processFlags.rate, "rate", 0, "fixed rate in bits per pixel, for --strategy fixed-rate")
	f.IntVar(&processFlags.roiLevel, "roi-level", -1, "ROI protection start level, 0 (strongest) to 3 (weakest)")
	f.BoolVar(&processFlags.noRoi, "no-roi", false, "disable ROI protection entirely")
	f.IntVar(&processFlags.retries, "retries", 0, "max encode retries (overrides preset)")
	f.DurationVar(&processFlags.timeout, "timeout", 0, "processing deadline (overrides preset)")
	f.StringVar(&processFlags.modelsDir, "models-dir", "models", "directory containing the detector and landmark ONNX models")
	f.Float64Var(&processFlags.detectionThresh, "detection-threshold", 0.8, "detector confidence floor applied before landmark extraction")
	f.IntVar(&processFlags.intraOpThreads, "intra-op-threads", 1, "ONNX Runtime intra-op thread count")
	f.IntVar(&processFlags.interOpThreads, "inter-op-threads", 1, "ONNX Runtime inter-op thread count")
}

func runProcess(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	opts, err := resolveProcessingOptions()
	if err != nil {
		return failInvalidArgs(err)
	}

	imageData, err := os.ReadFile(inPath)
	if err != nil {
		return failIO(fmt.Errorf("read input: %w", err))
	}

	ort.SetSharedLibraryPath(onnxutil.SharedLibraryPath())
	if err := ort.InitializeEnvironment(); err != nil {
		return failIO(fmt.Errorf("initialize onnx runtime: %w", err))
	}
	defer ort.DestroyEnvironment()

	models, err := vision.LoadModels(processFlags.modelsDir, processFlags.detectionThresh,
		processFlags.intraOpThreads, processFlags.interOpThreads)
	if err != nil {
		return failIO(fmt.Errorf("load vision models: %w", err))
	}
	defer models.Close()

	pipe := pipeline.New(models)
	defer pipe.Close()

	result, err := pipe.ProcessAsync(context.Background(), imageData, opts)
	if err != nil {
		return failProcessing(err)
	}

	if err := os.WriteFile(outPath, result.EncodedBytes, 0o644); err != nil {
		return failIO(fmt.Errorf("write output: %w", err))
	}

	v := result.ComplianceValidation
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %dx%d -> %dx%d, rotation %.2f deg, %d bytes (%.3f bpp), severity %s\n",
		inPath, outPath,
		result.SourceDimensions.Width, result.SourceDimensions.Height,
		result.TransformedDimensions.Width, result.TransformedDimensions.Height,
		result.AppliedTransform.RotationDegrees,
		result.ActualSizeBytes, result.ActualRateBpp, v.Severity)
	for _, issue := range v.Issues {
		fmt.Fprintln(cmd.OutOrStdout(), "  issue:", issue)
	}
	for _, rec := range v.Recommendations {
		fmt.Fprintln(cmd.OutOrStdout(), "  recommendation:", rec)
	}

	if !v.IsFullyCompliant {
		return failProcessing(fmt.Errorf("output is not fully PIV-compliant: severity %s", v.Severity))
	}
	return nil
}

func resolveProcessingOptions() (pipeline.ProcessingOptions, error) {
	var opts pipeline.ProcessingOptions
	if processFlags.preset != "" {
		p, err := pipeline.PresetByName(processFlags.preset)
		if err != nil {
			return pipeline.ProcessingOptions{}, err
		}
		opts = p
	} else {
		opts = pipeline.DefaultOptions()
	}

	if processFlags.minConfidence > 0 {
		opts.MinFaceConfidence = processFlags.minConfidence
	}
	if processFlags.retries > 0 {
		opts.MaxRetries = processFlags.retries
	}
	if processFlags.timeout > 0 {
		opts.ProcessingTimeout = processFlags.timeout
	}
	if processFlags.roiLevel >= 0 {
		opts.RoiStartLevel = processFlags.roiLevel
		opts.Strategy.RoiStartLevel = processFlags.roiLevel
	}
	if processFlags.noRoi {
		opts.EnableRoi = false
		opts.Strategy.EnableRoi = false
	}

	switch processFlags.strategy {
	case "":
		// keep whatever the preset (or default) already set
	case "fixed-rate":
		if processFlags.rate <= 0 {
			return pipeline.ProcessingOptions{}, fmt.Errorf("--strategy fixed-rate requires --rate > 0")
		}
		opts.Strategy.Kind = encoding.FixedRate
		opts.Strategy.RateBpp = processFlags.rate
		opts.Strategy.TargetBytes = 0
	case "target-size":
		if processFlags.targetSize <= 0 {
			return pipeline.ProcessingOptions{}, fmt.Errorf("--strategy target-size requires --target-size > 0")
		}
		opts.Strategy.Kind = encoding.TargetSize
		opts.Strategy.TargetBytes = processFlags.targetSize
		opts.Strategy.RateBpp = 0
	default:
		return pipeline.ProcessingOptions{}, fmt.Errorf("unknown strategy %q (want fixed-rate or target-size)", processFlags.strategy)
	}

	if opts.MaxRetries > 0 {
		opts.Strategy.MaxRetries = opts.MaxRetries
	}

	return opts, nil
}
