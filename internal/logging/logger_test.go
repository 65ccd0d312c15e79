package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/business-calculator/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		expected  zapcore.Level
		wantError bool
	}{
		{name: "Empty defaults to info", level: "", expected: zapcore.InfoLevel},
		{name: "Debug", level: "debug", expected: zapcore.DebugLevel},
		{name: "Warning alias", level: "warning", expected: zapcore.WarnLevel},
		{name: "Upper case", level: "ERROR", expected: zapcore.ErrorLevel},
		{name: "Unknown", level: "verbose", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.level)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseLevel(%q) expected error but got none", tt.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) error = %v", tt.level, err)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantError bool
		enabled   zapcore.Level
		disabled  zapcore.Level
	}{
		{
			name:     "Defaults",
			config:   config.LoggingConfig{},
			enabled:  zapcore.InfoLevel,
			disabled: zapcore.DebugLevel,
		},
		{
			name:     "Console warn",
			config:   config.LoggingConfig{Level: "warn", Format: "console"},
			enabled:  zapcore.WarnLevel,
			disabled: zapcore.InfoLevel,
		},
		{
			name:     "Override wins",
			config:   config.LoggingConfig{Level: "error"},
			override: "debug",
			enabled:  zapcore.DebugLevel,
			disabled: zapcore.DebugLevel - 1,
		},
		{
			name:      "Invalid level",
			config:    config.LoggingConfig{Level: "loud"},
			wantError: true,
		},
		{
			name:      "Invalid format",
			config:    config.LoggingConfig{Format: "xml"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Errorf("NewLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("NewLogger() level %v should be enabled", tt.enabled)
			}
			if logger.Core().Enabled(tt.disabled) {
				t.Errorf("NewLogger() level %v should be disabled", tt.disabled)
			}
		})
	}
}

func TestNewLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calculator.log")

	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected log file %s to contain output", path)
	}
}
