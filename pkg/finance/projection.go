package finance

import (
	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/mathutil"
)

// AnnualProjection is a year of identical months plus the tax computation.
type AnnualProjection struct {
	Orders          float64 `json:"orders"`
	Revenue         float64 `json:"revenue"`
	PurchaseCost    float64 `json:"purchaseCost"`
	ShippingTotal   float64 `json:"shippingTotal"`
	ShopifyFees     float64 `json:"shopifyFees"`
	FixedCosts      float64 `json:"fixedCosts"`
	GrossMargin     float64 `json:"grossMargin"`
	NetMargin       float64 `json:"netMargin"`
	GrossMarginRate float64 `json:"grossMarginRate"`
	MarketingRatio  float64 `json:"marketingRatio"`
	BreakEven       float64 `json:"breakEven"`
	Taxes           float64 `json:"taxes"`
	NetProfit       float64 `json:"netProfit"`
}

// ProjectAnnual scales every monthly field by twelve, ratios included, with
// no seasonality or ramp-up. Taxes are a flat rate on the annual net margin
// and never negative.
func ProjectAnnual(m MonthlyMetrics) AnnualProjection {
	const months = constants.MonthsPerYear

	annual := AnnualProjection{
		Orders:          m.Orders * months,
		Revenue:         m.Revenue * months,
		PurchaseCost:    m.PurchaseCost * months,
		ShippingTotal:   m.ShippingTotal * months,
		ShopifyFees:     m.ShopifyFees * months,
		FixedCosts:      m.FixedCosts * months,
		GrossMargin:     m.GrossMargin * months,
		NetMargin:       m.NetMargin * months,
		GrossMarginRate: m.GrossMarginRate * months,
		MarketingRatio:  m.MarketingRatio * months,
		BreakEven:       m.BreakEven * months,
	}

	annual.Taxes = mathutil.Max(0, annual.NetMargin*constants.TaxRate)
	annual.NetProfit = annual.NetMargin - annual.Taxes

	return annual
}
