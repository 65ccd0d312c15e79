package finance

import (
	"math"
	"testing"
)

func TestProjectAnnualReferenceScenario(t *testing.T) {
	annual := ProjectAnnual(ComputeMonthlyMetrics(referenceAssumptions()))

	if math.Abs(annual.NetMargin-3052.2) > 1e-6 {
		t.Errorf("NetMargin = %v, expected 3052.2", annual.NetMargin)
	}
	if math.Abs(annual.Taxes-610.44) > 1e-6 {
		t.Errorf("Taxes = %v, expected 610.44", annual.Taxes)
	}
	if math.Abs(annual.NetProfit-2441.76) > 1e-6 {
		t.Errorf("NetProfit = %v, expected 2441.76", annual.NetProfit)
	}
	if math.Abs(annual.Revenue-19200) > 1e-6 {
		t.Errorf("Revenue = %v, expected 19200", annual.Revenue)
	}
}

func TestProjectAnnualScalesEveryField(t *testing.T) {
	m := ComputeMonthlyMetrics(BusinessAssumptions{
		MonthlyTraffic:     4321,
		ConversionRate:     2.7,
		AverageBasket:      57.5,
		PurchasePriceRatio: 37,
		ShippingCost:       5.5,
		MarketingBudget:    420,
	})
	annual := ProjectAnnual(m)

	tests := []struct {
		name    string
		monthly float64
		annual  float64
	}{
		{"orders", m.Orders, annual.Orders},
		{"revenue", m.Revenue, annual.Revenue},
		{"purchase cost", m.PurchaseCost, annual.PurchaseCost},
		{"shipping total", m.ShippingTotal, annual.ShippingTotal},
		{"shopify fees", m.ShopifyFees, annual.ShopifyFees},
		{"fixed costs", m.FixedCosts, annual.FixedCosts},
		{"gross margin", m.GrossMargin, annual.GrossMargin},
		{"net margin", m.NetMargin, annual.NetMargin},
		{"gross margin rate", m.GrossMarginRate, annual.GrossMarginRate},
		{"marketing ratio", m.MarketingRatio, annual.MarketingRatio},
		{"break even", m.BreakEven, annual.BreakEven},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.annual != tt.monthly*12 {
				t.Errorf("annual %s = %v, expected %v", tt.name, tt.annual, tt.monthly*12)
			}
		})
	}
}

func TestProjectAnnualTaxes(t *testing.T) {
	tests := []struct {
		name              string
		monthlyNetMargin  float64
		expectedTaxes     float64
		expectedNetProfit float64
	}{
		{"Profit", 100, 240, 960},
		{"Break even", 0, 0, 0},
		{"Loss", -50, 0, -600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annual := ProjectAnnual(MonthlyMetrics{NetMargin: tt.monthlyNetMargin})
			if math.Abs(annual.Taxes-tt.expectedTaxes) > tolerance {
				t.Errorf("Taxes = %v, expected %v", annual.Taxes, tt.expectedTaxes)
			}
			if math.Abs(annual.NetProfit-tt.expectedNetProfit) > tolerance {
				t.Errorf("NetProfit = %v, expected %v", annual.NetProfit, tt.expectedNetProfit)
			}
		})
	}
}

func TestProjectAnnualLossScenario(t *testing.T) {
	a := referenceAssumptions()
	a.MonthlyTraffic = 100

	annual := ProjectAnnual(ComputeMonthlyMetrics(a))
	if annual.NetMargin >= 0 {
		t.Fatalf("expected a loss, got net margin %v", annual.NetMargin)
	}
	if annual.Taxes != 0 {
		t.Errorf("Taxes = %v, expected 0 on a loss", annual.Taxes)
	}
	if annual.NetProfit != annual.NetMargin {
		t.Errorf("NetProfit = %v, expected %v", annual.NetProfit, annual.NetMargin)
	}
}
