// Package finance computes the monthly profit-and-loss metrics of an online
// shop from a handful of business assumptions, and projects them over a year.
//
// Both entry points are pure functions over value types: they never fail,
// never round and never clamp their inputs.
package finance

import (
	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/mathutil"
)

// BusinessAssumptions are the inputs of a calculation.
type BusinessAssumptions struct {
	MonthlyTraffic     int     `json:"monthlyTraffic" yaml:"monthlyTraffic" mapstructure:"monthlyTraffic"`
	ConversionRate     float64 `json:"conversionRate" yaml:"conversionRate" mapstructure:"conversionRate"`             // percent
	AverageBasket      float64 `json:"averageBasket" yaml:"averageBasket" mapstructure:"averageBasket"`                // currency
	InitialCapital     float64 `json:"initialCapital" yaml:"initialCapital" mapstructure:"initialCapital"`             // currency
	InitialStock       float64 `json:"initialStock" yaml:"initialStock" mapstructure:"initialStock"`                   // currency
	PurchasePriceRatio float64 `json:"purchasePriceRatio" yaml:"purchasePriceRatio" mapstructure:"purchasePriceRatio"` // percent of sale price
	ShippingCost       float64 `json:"shippingCost" yaml:"shippingCost" mapstructure:"shippingCost"`                   // currency per order
	MarketingBudget    float64 `json:"marketingBudget" yaml:"marketingBudget" mapstructure:"marketingBudget"`          // currency per month
}

// DefaultAssumptions returns the assumptions the calculator starts from.
func DefaultAssumptions() BusinessAssumptions {
	return BusinessAssumptions{
		MonthlyTraffic:     constants.DefaultMonthlyTraffic,
		ConversionRate:     constants.DefaultConversionRate,
		AverageBasket:      constants.DefaultAverageBasket,
		InitialCapital:     constants.DefaultInitialCapital,
		InitialStock:       constants.DefaultInitialStock,
		PurchasePriceRatio: constants.DefaultPurchasePriceRatio,
		ShippingCost:       constants.DefaultShippingCost,
		MarketingBudget:    constants.DefaultMarketingBudget,
	}
}

// MonthlyMetrics holds the metrics derived for a single month.
type MonthlyMetrics struct {
	Orders          float64 `json:"orders"`
	Revenue         float64 `json:"revenue"`
	PurchaseCost    float64 `json:"purchaseCost"`
	ShippingTotal   float64 `json:"shippingTotal"`
	ShopifyFees     float64 `json:"shopifyFees"`
	FixedCosts      float64 `json:"fixedCosts"`
	GrossMargin     float64 `json:"grossMargin"`
	NetMargin       float64 `json:"netMargin"`
	GrossMarginRate float64 `json:"grossMarginRate"` // percent
	MarketingRatio  float64 `json:"marketingRatio"`  // percent
	BreakEven       float64 `json:"breakEven"`       // monthly revenue
}

// VariableCosts returns the costs that scale with orders.
func (m MonthlyMetrics) VariableCosts() float64 {
	return m.PurchaseCost + m.ShippingTotal + m.ShopifyFees
}

// TotalCosts returns fixed plus variable costs.
func (m MonthlyMetrics) TotalCosts() float64 {
	return m.FixedCosts + m.PurchaseCost + m.ShippingTotal + m.ShopifyFees
}

// FixedCost is one named line of the monthly fixed costs.
type FixedCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FixedCostBreakdown lists the monthly fixed costs in display order.
func FixedCostBreakdown(marketingBudget float64) []FixedCost {
	return []FixedCost{
		{Name: constants.FixedCostPlatform, Amount: constants.PlatformFee},
		{Name: constants.FixedCostSEO, Amount: constants.SEOFee},
		{Name: constants.FixedCostDomain, Amount: constants.DomainFee},
		{Name: constants.FixedCostMarketing, Amount: marketingBudget},
	}
}

// TotalFixedCosts sums a fixed cost breakdown.
func TotalFixedCosts(costs []FixedCost) float64 {
	total := 0.0
	for _, cost := range costs {
		total += cost.Amount
	}
	return total
}

// PaymentFees models the payment processor: a percentage of revenue plus a
// flat fee per order.
func PaymentFees(revenue, orders float64) float64 {
	return revenue*constants.PaymentFeeRate + orders*constants.PaymentFeePerOrder
}

// ComputeMonthlyMetrics derives the monthly metrics from the assumptions.
// Ratios over revenue are 0 when revenue is not positive, and break-even is 0
// when the gross margin rate is not positive.
func ComputeMonthlyMetrics(a BusinessAssumptions) MonthlyMetrics {
	var m MonthlyMetrics

	m.Orders = mathutil.ApplyPercentage(float64(a.MonthlyTraffic), a.ConversionRate)
	m.Revenue = m.Orders * a.AverageBasket

	m.PurchaseCost = mathutil.ApplyPercentage(m.Revenue, a.PurchasePriceRatio)
	m.ShippingTotal = m.Orders * a.ShippingCost
	m.ShopifyFees = PaymentFees(m.Revenue, m.Orders)

	m.FixedCosts = TotalFixedCosts(FixedCostBreakdown(a.MarketingBudget))

	m.GrossMargin = m.Revenue - m.PurchaseCost - m.ShippingTotal - m.ShopifyFees
	m.NetMargin = m.GrossMargin - m.FixedCosts

	m.GrossMarginRate = mathutil.CalculatePercentage(m.GrossMargin, m.Revenue)
	m.MarketingRatio = mathutil.CalculatePercentage(a.MarketingBudget, m.Revenue)
	if m.GrossMarginRate > 0 {
		m.BreakEven = m.FixedCosts / (m.GrossMarginRate / constants.PercentageMultiplier)
	}

	return m
}
