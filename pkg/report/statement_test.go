package report

import (
	"testing"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/testutil"
)

func referenceAnnual() finance.AnnualProjection {
	return finance.ProjectAnnual(finance.ComputeMonthlyMetrics(testutil.ReferenceAssumptions()))
}

func TestBuildIncomeStatement(t *testing.T) {
	statement := BuildIncomeStatement(referenceAnnual())

	tests := []struct {
		key      string
		label    string
		expected float64
	}{
		{LineRevenue, "Revenue", 19200},
		{LinePurchaseCost, "Cost of goods sold", -7680},
		{LineShipping, "Shipping", -1440},
		{LinePaymentFees, "Shopify fees", -628.8},
		{LineFixedCosts, "Fixed costs", -6399},
		{LineOperatingResult, "Operating result", 3052.2},
		{LineTaxes, "Taxes (20%)", -610.44},
		{LineNetResult, "Net result", 2441.76},
	}

	if len(statement.Lines) != len(tests) {
		t.Fatalf("expected %d lines, got %d", len(tests), len(statement.Lines))
	}

	for i, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			line := statement.Lines[i]
			if line.Key != tt.key {
				t.Errorf("line %d key = %s, expected %s", i, line.Key, tt.key)
			}
			if line.Label != tt.label {
				t.Errorf("line %d label = %s, expected %s", i, line.Label, tt.label)
			}
			testutil.AssertClose(t, tt.key, line.Amount, tt.expected, 1e-6)
		})
	}
}

func TestBuildIncomeStatementLoss(t *testing.T) {
	a := testutil.ReferenceAssumptions()
	a.MonthlyTraffic = 0

	statement := BuildIncomeStatement(finance.ProjectAnnual(finance.ComputeMonthlyMetrics(a)))

	operating, ok := statement.Line(LineOperatingResult)
	if !ok {
		t.Fatal("missing operating result line")
	}
	if operating.Amount >= 0 {
		t.Errorf("operating result = %v, expected a loss", operating.Amount)
	}

	taxes, _ := statement.Line(LineTaxes)
	if taxes.Amount != 0 {
		t.Errorf("taxes = %v, expected 0 on a loss", taxes.Amount)
	}

	net, _ := statement.Line(LineNetResult)
	if net.Amount != operating.Amount {
		t.Errorf("net result = %v, expected %v", net.Amount, operating.Amount)
	}
}

func TestIncomeStatementLineMissing(t *testing.T) {
	if _, ok := BuildIncomeStatement(referenceAnnual()).Line("unknown"); ok {
		t.Errorf("Line(unknown) should not be found")
	}
}
