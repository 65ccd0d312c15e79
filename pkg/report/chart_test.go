package report

import (
	"testing"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/testutil"
)

func TestBuildChartSeries(t *testing.T) {
	monthly := finance.ComputeMonthlyMetrics(testutil.ReferenceAssumptions())

	series, err := BuildChartSeries(monthly, "")
	if err != nil {
		t.Fatalf("BuildChartSeries() error = %v", err)
	}
	if len(series.Points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(series.Points))
	}

	for i, point := range series.Points {
		month := i + 1
		if point.Month != month {
			t.Errorf("point %d month = %d, expected %d", i, point.Month, month)
		}
		testutil.AssertClose(t, "CumulativeRevenue", point.CumulativeRevenue, 1600*float64(month), 1e-6)
		testutil.AssertClose(t, "CumulativeCost", point.CumulativeCost, 1345.65*float64(month), 1e-6)
	}

	if series.Points[0].Label != "1" || series.Points[11].Label != "12" {
		t.Errorf("unexpected index labels %q .. %q", series.Points[0].Label, series.Points[11].Label)
	}
	testutil.AssertClose(t, "final revenue", series.Points[11].CumulativeRevenue, 19200, 1e-6)
	testutil.AssertClose(t, "final cost", series.Points[11].CumulativeCost, 16147.8, 1e-6)
}

func TestBuildChartSeriesMonthLabels(t *testing.T) {
	series, err := BuildChartSeries(finance.MonthlyMetrics{}, "2026-03")
	if err != nil {
		t.Fatalf("BuildChartSeries() error = %v", err)
	}

	if series.Points[0].Label != "2026-03" {
		t.Errorf("first label = %s, expected 2026-03", series.Points[0].Label)
	}
	if series.Points[11].Label != "2027-02" {
		t.Errorf("last label = %s, expected 2027-02", series.Points[11].Label)
	}
	for _, point := range series.Points {
		if point.CumulativeRevenue != 0 || point.CumulativeCost != 0 {
			t.Errorf("expected zero series for zero metrics, got %+v", point)
		}
	}
}

func TestBuildChartSeriesInvalidStartMonth(t *testing.T) {
	if _, err := BuildChartSeries(finance.MonthlyMetrics{}, "March 2026"); err == nil {
		t.Error("BuildChartSeries() expected error for malformed start month")
	}
}
