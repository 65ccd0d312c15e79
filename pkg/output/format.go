// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/business-calculator/internal/forecast"
	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/format"
	"github.com/iwvelando/business-calculator/pkg/report"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CSV sections.
const (
	SectionKeyMetrics      = "key_metrics"
	SectionIncomeStatement = "income_statement"
	SectionCashFlow        = "cash_flow"
	SectionChart           = "chart"
)

// Write renders the forecast to w in the given output format.
func Write(w io.Writer, outputFormat string, result forecast.Forecast) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return WritePretty(w, result)
	case constants.OutputFormatCSV:
		return WriteCsv(w, result)
	case constants.OutputFormatJSON:
		return WriteJSON(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// WritePretty writes a human-readable rather than machine-readable table to w.
func WritePretty(w io.Writer, result forecast.Forecast) error {
	ew := &errWriter{w: w}

	ew.printf("--- Key metrics ---\n")
	section := ""
	for _, metric := range result.KeyMetrics {
		if metric.Section != section {
			section = metric.Section
			ew.printf("%s\n", section)
		}
		ew.printf("  %-20s | %s\n", metric.Label, metric.Display())
	}

	ew.printf("\n--- Income statement (annual) ---\n")
	for _, line := range result.IncomeStatement.Lines {
		ew.printf("%-20s | %s\n", line.Label, format.Currency(line.Amount))
	}

	ew.printf("\n--- Cash flow ---\n")
	for _, line := range result.CashFlow.Lines() {
		ew.printf("%-20s | %s\n", line.Label, format.Currency(line.Amount))
	}

	p := message.NewPrinter(language.English)
	ew.printf("\n--- %s ---\n", result.Chart.Title)
	ew.printf("Month   | Cumulative revenue | Cumulative cost\n")
	ew.printf("_____   | __________________ | _______________\n")
	for _, point := range result.Chart.Points {
		ew.printf("%s", p.Sprintf("%-7s | %.2f%s | %.2f%s\n",
			point.Label,
			point.CumulativeRevenue, constants.CurrencySymbol,
			point.CumulativeCost, constants.CurrencySymbol,
		))
	}

	if len(result.BreakEvenTargets) > 0 {
		ew.printf("\n--- Break-even targets ---\n")
		for _, target := range result.BreakEvenTargets {
			ew.printf("%-20s | %s -> %s\n", target.Label, target.OriginalDisplay, target.ValueDisplay)
			for _, note := range target.Notes {
				ew.printf("  %s\n", note)
			}
		}
	}

	if len(result.Warnings) > 0 {
		ew.printf("\n--- Warnings ---\n")
		for _, warning := range result.Warnings {
			ew.printf("%s\n", warning)
		}
	}

	return ew.err
}

// CsvString returns the comma-separated value rendering of the forecast.
func CsvString(result forecast.Forecast) string {
	var buf bytes.Buffer
	_ = WriteCsv(&buf, result)
	return buf.String()
}

// WriteCsv writes one row per reported value. Chart rows use the point label
// as their label and carry the series in the key.
func WriteCsv(w io.Writer, result forecast.Forecast) error {
	ew := &errWriter{w: w}

	ew.printf(`"section","key","label","value"` + "\n")
	for _, metric := range result.KeyMetrics {
		ew.row(SectionKeyMetrics, metric.Key, metric.Label, metric.Value)
	}
	for _, line := range result.IncomeStatement.Lines {
		ew.row(SectionIncomeStatement, line.Key, line.Label, line.Amount)
	}
	for _, line := range result.CashFlow.Lines() {
		ew.row(SectionCashFlow, line.Key, line.Label, line.Amount)
	}
	for _, point := range result.Chart.Points {
		ew.row(SectionChart, report.SeriesCumulativeRevenue, point.Label, point.CumulativeRevenue)
		ew.row(SectionChart, report.SeriesCumulativeCost, point.Label, point.CumulativeCost)
	}

	return ew.err
}

// WriteJSON writes the forecast as indented JSON.
func WriteJSON(w io.Writer, result forecast.Forecast) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	return nil
}

// errWriter stops writing after the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(layout string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, layout, args...)
}

func (ew *errWriter) row(section, key, label string, value float64) {
	ew.printf(`"%s","%s","%s","%.2f"`+"\n", section, key, quote(label), value)
}

func quote(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
