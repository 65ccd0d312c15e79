package report

import (
	"strconv"

	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/datetime"
	"github.com/iwvelando/business-calculator/pkg/finance"
)

// Series keys and labels of the chart.
const (
	SeriesCumulativeRevenue = "cumulative_revenue"
	SeriesCumulativeCost    = "cumulative_cost"

	SeriesCumulativeRevenueLabel = "Cumulative revenue"
	SeriesCumulativeCostLabel    = "Cumulative costs"
)

// ChartPoint is one month of the cumulative series.
type ChartPoint struct {
	Month             int     `json:"month"`
	Label             string  `json:"label"`
	CumulativeRevenue float64 `json:"cumulativeRevenue"`
	CumulativeCost    float64 `json:"cumulativeCost"`
}

// ChartSeries feeds the twelve-month profitability line chart.
type ChartSeries struct {
	Title  string       `json:"title"`
	Points []ChartPoint `json:"points"`
}

// BuildChartSeries multiplies the monthly revenue and total costs by the
// month index. Points are labelled with their index, or with consecutive
// months from startMonth (2006-01) when it is set.
func BuildChartSeries(monthly finance.MonthlyMetrics, startMonth string) (ChartSeries, error) {
	var labels []string
	if startMonth != "" {
		var err error
		labels, err = datetime.MonthLabels(startMonth, constants.ChartMonths)
		if err != nil {
			return ChartSeries{}, err
		}
	}

	monthlyCost := monthly.TotalCosts()
	series := ChartSeries{
		Title:  "12-month profitability projection",
		Points: make([]ChartPoint, 0, constants.ChartMonths),
	}
	for month := 1; month <= constants.ChartMonths; month++ {
		label := strconv.Itoa(month)
		if labels != nil {
			label = labels[month-1]
		}
		series.Points = append(series.Points, ChartPoint{
			Month:             month,
			Label:             label,
			CumulativeRevenue: monthly.Revenue * float64(month),
			CumulativeCost:    monthlyCost * float64(month),
		})
	}
	return series, nil
}
