// Package config defines the data structures related to configuration and
// includes functions for loading the config and sanitising its assumptions.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for business-calculator.
type Configuration struct {
	Assumptions finance.BusinessAssumptions `yaml:"assumptions" mapstructure:"assumptions"`
	Chart       ChartConfig                 `yaml:"chart,omitempty" mapstructure:"chart"`
	Logging     LoggingConfig               `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig                `yaml:"output,omitempty" mapstructure:"output"`
}

// ChartConfig holds options for the cumulative chart series.
type ChartConfig struct {
	StartMonth string `yaml:"startMonth,omitempty" mapstructure:"startMonth"` // optional, 2006-01
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
	XLSX   string `yaml:"xlsx,omitempty" mapstructure:"xlsx"`     // optional workbook path
}

// Default returns the configuration used when no file overrides anything.
func Default() Configuration {
	return Configuration{
		Assumptions: finance.DefaultAssumptions(),
	}
}

// LoadConfiguration takes a file path as input and loads the configuration
// there. The format follows the file extension (YAML when unknown) and any
// value can be overridden with a BUSINESS_ prefixed environment variable,
// e.g. BUSINESS_ASSUMPTIONS_MONTHLYTRAFFIC.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	bindEnv(v)
	v.SetConfigFile(configPath)
	v.SetConfigType(configType(configPath))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Environment variables are not consulted, so uploaded configurations are
// taken as sent.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, "error reading config data")
	}

	return decode(v)
}

// LoadDotEnv loads environment variables from the given dotenv files.
// Missing files are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "unable to stat env file %s", path)
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "unable to load env file %s", path)
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := finance.DefaultAssumptions()
	v.SetDefault("assumptions.monthlyTraffic", defaults.MonthlyTraffic)
	v.SetDefault("assumptions.conversionRate", defaults.ConversionRate)
	v.SetDefault("assumptions.averageBasket", defaults.AverageBasket)
	v.SetDefault("assumptions.initialCapital", defaults.InitialCapital)
	v.SetDefault("assumptions.initialStock", defaults.InitialStock)
	v.SetDefault("assumptions.purchasePriceRatio", defaults.PurchasePriceRatio)
	v.SetDefault("assumptions.shippingCost", defaults.ShippingCost)
	v.SetDefault("assumptions.marketingBudget", defaults.MarketingBudget)
	v.SetDefault("chart.startMonth", "")
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.xlsx", "")

	return v
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, errors.Wrap(err, "unable to decode into struct")
	}
	return &configuration, nil
}

func configType(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, supported := range viper.SupportedExts {
		if ext == supported {
			return ext
		}
	}
	return "yaml"
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here is fatal.
func (c *Configuration) ValidateConfiguration() []string {
	warnings := validation.ValidateAssumptions(c.Assumptions)
	if warning := validation.ValidateStartMonth(c.Chart.StartMonth); warning != "" {
		warnings = append(warnings, warning)
	}
	return warnings
}
