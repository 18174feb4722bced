package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/your-org/piv-face/internal/encoding"
	"github.com/your-org/piv-face/internal/pipeline"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the named processing presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range pipeline.PresetNames() {
		opts, err := pipeline.PresetByName(name)
		if err != nil {
			return err
		}
		switch opts.Strategy.Kind {
		case encoding.TargetSize:
			fmt.Fprintf(out, "%-12s  target-size %6d bytes  roi-level %d  min-confidence %.2f\n",
				name, opts.Strategy.TargetBytes, opts.RoiStartLevel, opts.MinFaceConfidence)
		case encoding.FixedRate:
			fmt.Fprintf(out, "%-12s  fixed-rate  %5.2f bpp    roi-level %d  min-confidence %.2f\n",
				name, opts.Strategy.RateBpp, opts.RoiStartLevel, opts.MinFaceConfidence)
		}
	}
	return nil
}
