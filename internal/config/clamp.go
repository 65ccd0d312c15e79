package config

import (
	"math"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/mathutil"
	"github.com/iwvelando/business-calculator/pkg/validation"
)

// ClampAssumptions brings every assumption into its accepted range and
// returns one warning per adjusted field. This is the only input validation
// performed before calculating.
func ClampAssumptions(a finance.BusinessAssumptions) (finance.BusinessAssumptions, []string) {
	warnings := validation.ValidateAssumptions(a)
	if len(warnings) == 0 {
		return a, nil
	}

	if a.MonthlyTraffic < 0 {
		a.MonthlyTraffic = 0
	}
	a.ConversionRate = clamp(a.ConversionRate, validation.ConversionRateRange)
	a.AverageBasket = clamp(a.AverageBasket, validation.AverageBasketRange)
	a.InitialCapital = clamp(a.InitialCapital, validation.InitialCapitalRange)
	a.InitialStock = clamp(a.InitialStock, validation.InitialStockRange)
	a.PurchasePriceRatio = clamp(a.PurchasePriceRatio, validation.PurchasePriceRatioRange)
	a.ShippingCost = clamp(a.ShippingCost, validation.ShippingCostRange)
	a.MarketingBudget = clamp(a.MarketingBudget, validation.MarketingBudgetRange)

	for i := range warnings {
		warnings[i] += "; clamped"
	}
	return a, warnings
}

// clamp maps NaN and -Inf to the minimum. +Inf goes to the maximum when the
// range has a finite one and to the minimum otherwise.
func clamp(value float64, r validation.Range) float64 {
	switch {
	case math.IsNaN(value), math.IsInf(value, -1):
		return r.Min
	case math.IsInf(value, 1) && math.IsInf(r.Max, 1):
		return r.Min
	}
	return mathutil.Clamp(value, r.Min, r.Max)
}
