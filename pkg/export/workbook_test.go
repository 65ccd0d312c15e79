package export

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/iwvelando/business-calculator/internal/config"
	"github.com/iwvelando/business-calculator/internal/forecast"
	"github.com/iwvelando/business-calculator/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func referenceForecast(t *testing.T) forecast.Forecast {
	t.Helper()
	fc, err := forecast.GetForecast(zap.NewNop(), config.Configuration{
		Assumptions: testutil.ReferenceAssumptions(),
		Chart:       config.ChartConfig{StartMonth: "2026-01"},
	})
	require.NoError(t, err)
	return fc
}

func TestWriteWorkbook(t *testing.T) {
	fc := referenceForecast(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, fc))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	assert.Equal(t, []string{SheetSummary, SheetIncomeStatement, SheetCashFlow, SheetChart}, f.GetSheetList())

	cells := []struct {
		sheet    string
		cell     string
		expected string
	}{
		{SheetSummary, "A1", "Metric"},
		{SheetSummary, "A2", "Revenue"},
		{SheetSummary, "B2", "1600"},
		{SheetSummary, "C7", "1,083.29€"},
		{SheetSummary, "A10", "Monthly traffic"},
		{SheetSummary, "B10", "1000"},
		{SheetIncomeStatement, "A2", "Revenue"},
		{SheetIncomeStatement, "B2", "19200"},
		{SheetIncomeStatement, "B3", "-7680"},
		{SheetIncomeStatement, "A9", "Net result"},
		{SheetIncomeStatement, "B9", "2441.76"},
		{SheetCashFlow, "B2", "5654.35"},
		{SheetCashFlow, "B5", "10052.2"},
		{SheetChart, "B2", "2026-01"},
		{SheetChart, "B13", "2026-12"},
		{SheetChart, "C13", "19200"},
		{SheetChart, "D13", "16147.8"},
	}
	for _, tt := range cells {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "%s!%s", tt.sheet, tt.cell)
	}

	archive, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	var hasChart bool
	for _, file := range archive.File {
		if file.Name == "xl/charts/chart1.xml" {
			hasChart = true
		}
	}
	assert.True(t, hasChart, "workbook should contain a line chart")
}

func TestSaveWorkbook(t *testing.T) {
	fc := referenceForecast(t)
	path := filepath.Join(t.TempDir(), "forecast.xlsx")

	require.NoError(t, SaveWorkbook(path, fc))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	assert.Len(t, f.GetSheetList(), 4)
}

func TestSaveWorkbookInvalidPath(t *testing.T) {
	fc := referenceForecast(t)
	path := filepath.Join(t.TempDir(), "missing", "forecast.xlsx")

	assert.Error(t, SaveWorkbook(path, fc))
}

func TestNewWorkbookWithoutChartPoints(t *testing.T) {
	fc := referenceForecast(t)
	fc.Chart.Points = nil

	f, err := NewWorkbook(fc)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	got, err := f.GetCellValue(SheetChart, "A2")
	require.NoError(t, err)
	assert.Empty(t, got)
}
