package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/business-calculator/internal/config"
	"github.com/iwvelando/business-calculator/internal/forecast"
	"github.com/iwvelando/business-calculator/internal/logging"
	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/export"
	"github.com/iwvelando/business-calculator/pkg/output"
	"github.com/iwvelando/business-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file, see "+constants.ExampleConfigFile)
	envLocation := flag.String("env", constants.DefaultEnvFile, "path to dotenv file with BUSINESS_ overrides")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	xlsxPath := flag.String("xlsx", "", "also write the forecast to this XLSX workbook")
	flag.Parse()

	if err := config.LoadDotEnv(*envLocation); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file at %s\", \"error\": \"%v\"}\n", *envLocation, err)
		os.Exit(1)
	}

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := output.Write(os.Stdout, outputFormat, results); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	workbook := conf.Output.XLSX
	if *xlsxPath != "" {
		workbook = *xlsxPath
	}
	if workbook != "" {
		if err := export.SaveWorkbook(workbook, results); err != nil {
			logger.Fatal("failed to export workbook",
				zap.String("op", "main"),
				zap.String("path", workbook),
				zap.Error(err),
			)
		}
		logger.Info("workbook written",
			zap.String("op", "main"),
			zap.String("path", workbook),
		)
	}
}
