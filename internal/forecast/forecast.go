// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/iwvelando/business-calculator/internal/config"
	"github.com/iwvelando/business-calculator/internal/optimizer"
	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/optimization"
	"github.com/iwvelando/business-calculator/pkg/report"
	"go.uber.org/zap"
)

// Forecast holds all information derived from one set of assumptions.
type Forecast struct {
	Assumptions     finance.BusinessAssumptions `json:"assumptions"`
	Warnings        []string                    `json:"warnings,omitempty"`
	FixedCosts      []finance.FixedCost         `json:"fixedCosts"`
	Monthly         finance.MonthlyMetrics      `json:"monthly"`
	Annual          finance.AnnualProjection    `json:"annual"`
	KeyMetrics      []report.KeyMetric          `json:"keyMetrics"`
	IncomeStatement report.IncomeStatement      `json:"incomeStatement"`
	CashFlow        report.CashFlow             `json:"cashFlow"`
	Chart           report.ChartSeries          `json:"chart"`

	// BreakEvenTargets gives, per lever, the value at which the monthly net
	// margin reaches zero with every other assumption unchanged.
	BreakEvenTargets []optimization.Summary `json:"breakEvenTargets"`
}

// GetForecast clamps the configured assumptions and computes every report
// from them.
func GetForecast(logger *zap.Logger, conf config.Configuration) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	assumptions, warnings := config.ClampAssumptions(conf.Assumptions)
	for _, warning := range warnings {
		logger.Debug("assumption adjusted",
			zap.String("op", "forecast.GetForecast"),
			zap.String("warning", warning),
		)
	}

	monthly := finance.ComputeMonthlyMetrics(assumptions)
	annual := finance.ProjectAnnual(monthly)

	chart, err := report.BuildChartSeries(monthly, conf.Chart.StartMonth)
	if err != nil {
		return Forecast{}, fmt.Errorf("failed to build chart series: %w", err)
	}

	result := Forecast{
		Assumptions:     assumptions,
		Warnings:        warnings,
		FixedCosts:      finance.FixedCostBreakdown(assumptions.MarketingBudget),
		Monthly:         monthly,
		Annual:          annual,
		KeyMetrics:      report.BuildKeyMetrics(monthly),
		IncomeStatement: report.BuildIncomeStatement(annual),
		CashFlow:        report.BuildCashFlow(assumptions, monthly, annual),
		Chart:           chart,

		BreakEvenTargets: optimizer.NewRunner(logger, assumptions).Run(),
	}

	logger.Debug("forecast computed",
		zap.String("op", "forecast.GetForecast"),
		zap.Float64("revenue", monthly.Revenue),
		zap.Float64("netMargin", monthly.NetMargin),
		zap.Float64("breakEven", monthly.BreakEven),
		zap.Int("warnings", len(warnings)),
	)

	return result, nil
}
