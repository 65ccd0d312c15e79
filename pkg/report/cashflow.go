package report

import (
	"github.com/iwvelando/business-calculator/pkg/finance"
)

// Cash-flow line keys.
const (
	LineMonthOneBalance = "month_one_balance"
	LineAnnualInflow    = "annual_inflow"
	LineAnnualOutflow   = "annual_outflow"
	LineYearEndBalance  = "year_end_balance"
)

// CashFlow is a first-year treasury snapshot.
type CashFlow struct {
	MonthOneBalance float64 `json:"monthOneBalance"`
	AnnualInflow    float64 `json:"annualInflow"`
	AnnualOutflow   float64 `json:"annualOutflow"`
	YearEndBalance  float64 `json:"yearEndBalance"`
}

// BuildCashFlow computes the snapshot. The month-one balance deducts the
// initial stock and one month of costs from the starting capital without
// crediting that month's revenue.
func BuildCashFlow(a finance.BusinessAssumptions, monthly finance.MonthlyMetrics, annual finance.AnnualProjection) CashFlow {
	var cf CashFlow

	cf.MonthOneBalance = a.InitialCapital - a.InitialStock - monthly.FixedCosts -
		monthly.PurchaseCost - monthly.ShippingTotal - monthly.ShopifyFees

	cf.AnnualInflow = a.InitialCapital + annual.Revenue
	cf.AnnualOutflow = a.InitialStock + annual.FixedCosts + annual.PurchaseCost +
		annual.ShippingTotal + annual.ShopifyFees
	cf.YearEndBalance = cf.AnnualInflow - cf.AnnualOutflow

	return cf
}

// Lines returns the snapshot as table rows.
func (cf CashFlow) Lines() []Line {
	return []Line{
		{Key: LineMonthOneBalance, Label: "Month 1 balance", Amount: cf.MonthOneBalance},
		{Key: LineAnnualInflow, Label: "Annual inflows", Amount: cf.AnnualInflow},
		{Key: LineAnnualOutflow, Label: "Annual outflows", Amount: cf.AnnualOutflow},
		{Key: LineYearEndBalance, Label: "Year-end balance", Amount: cf.YearEndBalance},
	}
}
