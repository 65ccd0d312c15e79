package optimizer

import (
	"testing"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/optimization"
	"github.com/iwvelando/business-calculator/pkg/testutil"
	"go.uber.org/zap"
)

func summaryFor(t *testing.T, summaries []optimization.Summary, field string) optimization.Summary {
	t.Helper()
	for _, s := range summaries {
		if s.Field == field {
			return s
		}
	}
	t.Fatalf("no summary for field %s", field)
	return optimization.Summary{}
}

func TestRunnerReferenceBreakEven(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	assumptions := testutil.ReferenceAssumptions()
	summaries := NewRunner(logger, assumptions).Run()

	if len(summaries) != 4 {
		t.Fatalf("Run() returned %d summaries, expected 4", len(summaries))
	}

	tests := []struct {
		field     string
		original  float64
		expected  float64
		tolerance float64
		display   string
	}{
		// 533.25 / (0.02 * 39.38) = 677.06 visits
		{FieldMonthlyTraffic, 1000, 678, 0, "678"},
		// 533.25 / (1000 * 0.3938) = 1.3541 %
		{FieldConversionRate, 2, 1.36, 1e-6, "1.4%"},
		// 659.25 / 11.42 = 57.727 per order
		{FieldAverageBasket, 80, 57.73, 1e-6, "57.73€"},
		// 787.6 - 233.25 = 554.35 per month
		{FieldMarketingBudget, 300, 554.35, 0.011, ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			s := summaryFor(t, summaries, tt.field)

			testutil.AssertClose(t, "original", s.Original, tt.original, 0)
			testutil.AssertClose(t, "value", s.Value, tt.expected, tt.tolerance)
			if s.NetMargin < 0 {
				t.Errorf("net margin at break-even value is %v, expected >= 0", s.NetMargin)
			}
			if s.NetMargin > 1 {
				t.Errorf("net margin at break-even value is %v, expected close to 0", s.NetMargin)
			}
			if !s.Converged {
				t.Errorf("search did not converge")
			}
			if len(s.Notes) != 0 {
				t.Errorf("unexpected notes %v", s.Notes)
			}
			if tt.display != "" && s.ValueDisplay != tt.display {
				t.Errorf("ValueDisplay = %q, expected %q", s.ValueDisplay, tt.display)
			}
		})
	}
}

func TestRunnerDoesNotModifyAssumptions(t *testing.T) {
	assumptions := testutil.ReferenceAssumptions()
	runner := NewRunner(nil, assumptions)
	_ = runner.Run()

	if runner.assumptions != assumptions {
		t.Errorf("Run() modified assumptions: %+v", runner.assumptions)
	}
}

func TestRunnerInfeasible(t *testing.T) {
	// Selling at purchase price never covers shipping and fees.
	assumptions := testutil.ReferenceAssumptions()
	assumptions.PurchasePriceRatio = 100

	summaries := NewRunner(zap.NewNop(), assumptions).Run()

	for _, field := range []string{FieldMonthlyTraffic, FieldConversionRate, FieldAverageBasket, FieldMarketingBudget} {
		s := summaryFor(t, summaries, field)
		if len(s.Notes) != 1 {
			t.Errorf("%s: expected one note, got %v", field, s.Notes)
		}
		if s.Value != s.Original {
			t.Errorf("%s: infeasible search should keep the original value, got %v", field, s.Value)
		}
		if s.NetMargin >= 0 {
			t.Errorf("%s: expected a loss, got net margin %v", field, s.NetMargin)
		}
	}
}

func TestRunnerProfitableAcrossRange(t *testing.T) {
	// Fixed costs are covered even with no marketing and the smallest
	// conversion rate still sells enough.
	assumptions := finance.BusinessAssumptions{
		MonthlyTraffic:     100000,
		ConversionRate:     5,
		AverageBasket:      100,
		PurchasePriceRatio: 10,
	}

	summaries := NewRunner(zap.NewNop(), assumptions).Run()
	s := summaryFor(t, summaries, FieldMarketingBudget)

	if s.NetMargin < 0 {
		t.Errorf("expected a profitable marketing budget, got net margin %v", s.NetMargin)
	}
	if s.Value <= 0 {
		t.Errorf("expected a positive marketing budget, got %v", s.Value)
	}
}

func TestSnapFieldValue(t *testing.T) {
	tests := []struct {
		name     string
		target   target
		value    float64
		expected float64
	}{
		{
			name:     "Increasing rounds up",
			target:   target{step: 1, minValue: 0, maxValue: 100, increasing: true},
			value:    10.2,
			expected: 11,
		},
		{
			name:     "Decreasing rounds down",
			target:   target{step: 1, minValue: 0, maxValue: 100},
			value:    10.8,
			expected: 10,
		},
		{
			name:     "Clamped to bounds",
			target:   target{step: 1, minValue: 0, maxValue: 10, increasing: true},
			value:    10.5,
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapFieldValue(tt.target, tt.value)
			if got != tt.expected {
				t.Errorf("snapFieldValue(%v) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}
}
