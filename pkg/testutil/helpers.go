// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/mathutil"
)

// DefaultTolerance is the float tolerance used when comparing computed amounts.
const DefaultTolerance = 1e-9

// ReferenceAssumptions returns the worked example used across the test suite:
// 1000 visits at 2% conversion with an 80 basket.
func ReferenceAssumptions() finance.BusinessAssumptions {
	return finance.BusinessAssumptions{
		MonthlyTraffic:     1000,
		ConversionRate:     2.0,
		AverageBasket:      80.0,
		InitialCapital:     10000,
		InitialStock:       3000,
		PurchasePriceRatio: 40.0,
		ShippingCost:       6.0,
		MarketingBudget:    300.0,
	}
}

// AssertClose fails the test when got and expected differ by more than tolerance.
func AssertClose(t testing.TB, name string, got, expected, tolerance float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, expected, tolerance) {
		t.Errorf("%s = %v, expected %v (tolerance %v)", name, got, expected, tolerance)
	}
}
