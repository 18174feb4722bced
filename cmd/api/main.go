package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/your-org/piv-face/internal/apiserver"
	"github.com/your-org/piv-face/internal/config"
	"github.com/your-org/piv-face/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	if err := apiserver.Run(cfg); err != nil {
		slog.Error("api server exited", "error", err)
		os.Exit(1)
	}
}
