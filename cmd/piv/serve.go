package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/your-org/piv-face/internal/apiserver"
	"github.com/your-org/piv-face/internal/config"
	"github.com/your-org/piv-face/internal/observability"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PIV HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "configs/config.yaml", "path to config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return failIO(fmt.Errorf("load config: %w", err))
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	if err := apiserver.Run(cfg); err != nil {
		return failIO(err)
	}
	return nil
}
