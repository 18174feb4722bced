package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "piv",
	Short: "PIV/FIPS-201 facial image compliance pipeline",
	Long: `piv detects a face in a photograph, crops and aligns it to the
INCITS 385-2004 geometry FIPS 201 requires, validates the result against
that geometry, and encodes it as JPEG 2000.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "piv:", err)
		os.Exit(exitCodeFor(err))
	}
}
