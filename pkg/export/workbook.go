// Package export writes a forecast to an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/iwvelando/business-calculator/internal/forecast"
	"github.com/iwvelando/business-calculator/pkg/mathutil"
	"github.com/iwvelando/business-calculator/pkg/report"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook, in order.
const (
	SheetSummary         = "Summary"
	SheetIncomeStatement = "Income statement"
	SheetCashFlow        = "Cash flow"
	SheetChart           = "Chart"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// chartAnchor is where the line chart is placed on the chart sheet.
const chartAnchor = "F2"

// WriteWorkbook builds the workbook for fc and writes it to w.
func WriteWorkbook(w io.Writer, fc forecast.Forecast) error {
	f, err := NewWorkbook(fc)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

// SaveWorkbook builds the workbook for fc and saves it at path.
func SaveWorkbook(path string, fc forecast.Forecast) error {
	f, err := NewWorkbook(fc)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook to %s", path)
	}
	return nil
}

// NewWorkbook lays out every report of fc on its own sheet. Amounts are
// rounded to cents; the caller owns the returned file.
func NewWorkbook(fc forecast.Forecast) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to rename default sheet")
	}
	for _, name := range []string{SheetIncomeStatement, SheetCashFlow, SheetChart} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "failed to create sheet %s", name)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to create header style")
	}

	writers := []func(*excelize.File, forecast.Forecast) error{
		writeSummary,
		writeIncomeStatement,
		writeCashFlow,
		writeChart,
	}
	for _, write := range writers {
		if err := write(f, fc); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	for _, sheet := range f.GetSheetList() {
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "failed to style sheet %s", sheet)
		}
		if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "failed to size sheet %s", sheet)
		}
		if err := f.SetColWidth(sheet, "B", "D", 20); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "failed to size sheet %s", sheet)
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

func writeSummary(f *excelize.File, fc forecast.Forecast) error {
	rows := [][]interface{}{
		{"Metric", "Value", "Display"},
	}
	for _, metric := range fc.KeyMetrics {
		rows = append(rows, []interface{}{metric.Label, roundFor(metric), metric.Display()})
	}

	a := fc.Assumptions
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Assumption", "Value"},
		[]interface{}{"Monthly traffic", a.MonthlyTraffic},
		[]interface{}{"Conversion rate (%)", a.ConversionRate},
		[]interface{}{"Average basket", a.AverageBasket},
		[]interface{}{"Initial capital", a.InitialCapital},
		[]interface{}{"Initial stock", a.InitialStock},
		[]interface{}{"Purchase price ratio (%)", a.PurchasePriceRatio},
		[]interface{}{"Shipping cost per order", a.ShippingCost},
		[]interface{}{"Monthly marketing budget", a.MarketingBudget},
	)

	return setRows(f, SheetSummary, rows)
}

func writeIncomeStatement(f *excelize.File, fc forecast.Forecast) error {
	rows := [][]interface{}{
		{"Line", "Annual amount"},
	}
	for _, line := range fc.IncomeStatement.Lines {
		rows = append(rows, []interface{}{line.Label, mathutil.Round(line.Amount)})
	}
	return setRows(f, SheetIncomeStatement, rows)
}

func writeCashFlow(f *excelize.File, fc forecast.Forecast) error {
	rows := [][]interface{}{
		{"Line", "Amount"},
	}
	for _, line := range fc.CashFlow.Lines() {
		rows = append(rows, []interface{}{line.Label, mathutil.Round(line.Amount)})
	}
	return setRows(f, SheetCashFlow, rows)
}

func writeChart(f *excelize.File, fc forecast.Forecast) error {
	rows := [][]interface{}{
		{"Month", "Label", report.SeriesCumulativeRevenueLabel, report.SeriesCumulativeCostLabel},
	}
	for _, point := range fc.Chart.Points {
		rows = append(rows, []interface{}{
			point.Month,
			point.Label,
			mathutil.Round(point.CumulativeRevenue),
			mathutil.Round(point.CumulativeCost),
		})
	}
	if err := setRows(f, SheetChart, rows); err != nil {
		return err
	}

	if len(fc.Chart.Points) == 0 {
		return nil
	}

	last := len(fc.Chart.Points) + 1
	categories := fmt.Sprintf("'%s'!$B$2:$B$%d", SheetChart, last)
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$C$1", SheetChart),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", SheetChart, last),
			},
			{
				Name:       fmt.Sprintf("'%s'!$D$1", SheetChart),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!$D$2:$D$%d", SheetChart, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: fc.Chart.Title}},
		Legend: excelize.ChartLegend{
			Position: "bottom",
		},
	}
	if err := f.AddChart(SheetChart, chartAnchor, chart); err != nil {
		return errors.Wrap(err, "failed to add chart")
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrapf(err, "invalid row %d on sheet %s", i+1, sheet)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrapf(err, "failed to write row %d on sheet %s", i+1, sheet)
		}
	}
	return nil
}

// roundFor keeps the precision shown on screen for the metric's kind.
func roundFor(metric report.KeyMetric) float64 {
	if metric.Kind == report.KindCurrency {
		return mathutil.Round(metric.Value)
	}
	return metric.Value
}
