// Package report builds the views presented next to the raw metrics: the
// annual income statement, the cash-flow snapshot, the cumulative
// revenue/cost chart series and the dashboard's key metric tiles.
package report

import (
	"github.com/iwvelando/business-calculator/pkg/finance"
)

// Income statement line keys.
const (
	LineRevenue         = "revenue"
	LinePurchaseCost    = "purchase_cost"
	LineShipping        = "shipping"
	LinePaymentFees     = "payment_fees"
	LineFixedCosts      = "fixed_costs"
	LineOperatingResult = "operating_result"
	LineTaxes           = "taxes"
	LineNetResult       = "net_result"
)

// Line is one labelled amount of a statement.
type Line struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// IncomeStatement is the first-year profit-and-loss statement.
type IncomeStatement struct {
	Lines []Line `json:"lines"`
}

// BuildIncomeStatement lays out the annual projection with revenue positive,
// every cost line negative and the result lines signed as computed.
func BuildIncomeStatement(annual finance.AnnualProjection) IncomeStatement {
	return IncomeStatement{
		Lines: []Line{
			{Key: LineRevenue, Label: "Revenue", Amount: annual.Revenue},
			{Key: LinePurchaseCost, Label: "Cost of goods sold", Amount: -annual.PurchaseCost},
			{Key: LineShipping, Label: "Shipping", Amount: -annual.ShippingTotal},
			{Key: LinePaymentFees, Label: "Shopify fees", Amount: -annual.ShopifyFees},
			{Key: LineFixedCosts, Label: "Fixed costs", Amount: -annual.FixedCosts},
			{Key: LineOperatingResult, Label: "Operating result", Amount: annual.NetMargin},
			{Key: LineTaxes, Label: "Taxes (20%)", Amount: -annual.Taxes},
			{Key: LineNetResult, Label: "Net result", Amount: annual.NetProfit},
		},
	}
}

// Line returns the line with the given key.
func (s IncomeStatement) Line(key string) (Line, bool) {
	for _, line := range s.Lines {
		if line.Key == key {
			return line, true
		}
	}
	return Line{}, false
}
