package report

import (
	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/format"
)

// Kind selects the display precision of a key metric.
type Kind string

const (
	KindCurrency Kind = "currency"
	KindPercent  Kind = "percent"
	KindCount    Kind = "count"
)

// Key metric sections.
const (
	SectionMonthlyResults = "Monthly results"
	SectionKeyRatios      = "Key ratios"
)

// KeyMetric is one dashboard tile.
type KeyMetric struct {
	Section string  `json:"section"`
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Kind    Kind    `json:"kind"`
}

// Display formats the value according to its kind.
func (k KeyMetric) Display() string {
	switch k.Kind {
	case KindPercent:
		return format.Percent(k.Value)
	case KindCount:
		return format.Count(k.Value)
	default:
		return format.Currency(k.Value)
	}
}

// BuildKeyMetrics returns the six headline tiles.
func BuildKeyMetrics(m finance.MonthlyMetrics) []KeyMetric {
	return []KeyMetric{
		{Section: SectionMonthlyResults, Key: "revenue", Label: "Revenue", Value: m.Revenue, Kind: KindCurrency},
		{Section: SectionMonthlyResults, Key: "orders", Label: "Orders", Value: m.Orders, Kind: KindCount},
		{Section: SectionMonthlyResults, Key: "net_margin", Label: "Net margin", Value: m.NetMargin, Kind: KindCurrency},
		{Section: SectionKeyRatios, Key: "gross_margin_rate", Label: "Gross margin rate", Value: m.GrossMarginRate, Kind: KindPercent},
		{Section: SectionKeyRatios, Key: "marketing_ratio", Label: "Marketing ratio", Value: m.MarketingRatio, Kind: KindPercent},
		{Section: SectionKeyRatios, Key: "break_even", Label: "Monthly break-even", Value: m.BreakEven, Kind: KindCurrency},
	}
}
