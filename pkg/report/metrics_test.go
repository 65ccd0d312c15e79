package report

import (
	"testing"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/testutil"
)

func TestBuildKeyMetrics(t *testing.T) {
	metrics := BuildKeyMetrics(finance.ComputeMonthlyMetrics(testutil.ReferenceAssumptions()))

	expected := []struct {
		section string
		key     string
		display string
	}{
		{SectionMonthlyResults, "revenue", "1,600.00€"},
		{SectionMonthlyResults, "orders", "20"},
		{SectionMonthlyResults, "net_margin", "254.35€"},
		{SectionKeyRatios, "gross_margin_rate", "49.2%"},
		{SectionKeyRatios, "marketing_ratio", "18.8%"},
		{SectionKeyRatios, "break_even", "1,083.29€"},
	}

	if len(metrics) != len(expected) {
		t.Fatalf("expected %d metrics, got %d", len(expected), len(metrics))
	}
	for i, e := range expected {
		t.Run(e.key, func(t *testing.T) {
			m := metrics[i]
			if m.Section != e.section || m.Key != e.key {
				t.Errorf("metric %d = %s/%s, expected %s/%s", i, m.Section, m.Key, e.section, e.key)
			}
			if got := m.Display(); got != e.display {
				t.Errorf("Display() = %q, expected %q", got, e.display)
			}
		})
	}
}
