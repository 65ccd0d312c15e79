package validation

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/finance"
)

// Range is the accepted interval of one assumption.
type Range struct {
	Field string
	Min   float64
	Max   float64
}

// Contains reports whether value is finite and lies in the range.
func (r Range) Contains(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= r.Min && value <= r.Max
}

// Warning describes why value falls outside the range.
func (r Range) Warning(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%s is %g, not a finite number", r.Field, value)
	}
	if value < r.Min {
		return fmt.Sprintf("%s is %g, below the minimum of %g", r.Field, value, r.Min)
	}
	return fmt.Sprintf("%s is %g, above the maximum of %g", r.Field, value, r.Max)
}

// Assumption ranges. Every input is non-negative; percentages are capped at 100.
var (
	MonthlyTrafficRange     = Range{Field: "monthlyTraffic", Min: 0, Max: math.Inf(1)}
	ConversionRateRange     = Range{Field: "conversionRate", Min: 0, Max: constants.MaxPercentage}
	AverageBasketRange      = Range{Field: "averageBasket", Min: 0, Max: math.Inf(1)}
	InitialCapitalRange     = Range{Field: "initialCapital", Min: 0, Max: math.Inf(1)}
	InitialStockRange       = Range{Field: "initialStock", Min: 0, Max: math.Inf(1)}
	PurchasePriceRatioRange = Range{Field: "purchasePriceRatio", Min: 0, Max: constants.MaxPercentage}
	ShippingCostRange       = Range{Field: "shippingCost", Min: 0, Max: math.Inf(1)}
	MarketingBudgetRange    = Range{Field: "marketingBudget", Min: 0, Max: math.Inf(1)}
)

// ValidateAssumptions returns one warning per assumption outside its range.
// It never rejects input; callers decide whether to clamp.
func ValidateAssumptions(a finance.BusinessAssumptions) []string {
	checks := []struct {
		r     Range
		value float64
	}{
		{MonthlyTrafficRange, float64(a.MonthlyTraffic)},
		{ConversionRateRange, a.ConversionRate},
		{AverageBasketRange, a.AverageBasket},
		{InitialCapitalRange, a.InitialCapital},
		{InitialStockRange, a.InitialStock},
		{PurchasePriceRatioRange, a.PurchasePriceRatio},
		{ShippingCostRange, a.ShippingCost},
		{MarketingBudgetRange, a.MarketingBudget},
	}

	var warnings []string
	for _, check := range checks {
		if !check.r.Contains(check.value) {
			warnings = append(warnings, check.r.Warning(check.value))
		}
	}
	return warnings
}

// ValidateStartMonth returns a warning when the chart start month is set but
// not in the 2006-01 layout.
func ValidateStartMonth(startMonth string) string {
	if startMonth == "" {
		return ""
	}
	if _, err := time.Parse(constants.DateTimeLayout, startMonth); err != nil {
		return fmt.Sprintf("chart start month %q is not in %s format", startMonth, constants.DateTimeLayout)
	}
	return ""
}
