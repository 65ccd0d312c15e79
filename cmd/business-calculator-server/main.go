package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/business-calculator/internal/logging"
	"github.com/iwvelando/business-calculator/internal/server"
	"github.com/iwvelando/business-calculator/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	maxUpload := flag.String("max-upload-size", "", "maximum upload size override (e.g. 256K, 1M)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *address != "" {
		cfg.Address = *address
	}
	if *maxUpload != "" {
		size, err := server.ParseSize(*maxUpload)
		if err != nil {
			logger.Fatal("invalid max upload size",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		cfg.SetUploadSizeBytes(size)
	}

	if err := server.New(cfg, logger, version).Run(context.Background()); err != nil {
		logger.Fatal("server exited with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
