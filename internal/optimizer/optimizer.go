// Package optimizer searches, one assumption at a time, for the value at
// which the monthly net margin reaches zero.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/format"
	"github.com/iwvelando/business-calculator/pkg/mathutil"
	"github.com/iwvelando/business-calculator/pkg/optimization"
	"go.uber.org/zap"
)

// Optimized fields.
const (
	FieldMonthlyTraffic  = "monthlyTraffic"
	FieldConversionRate  = "conversionRate"
	FieldAverageBasket   = "averageBasket"
	FieldMarketingBudget = "marketingBudget"
)

const maxIterations = 200

// Runner holds the assumptions every search starts from.
type Runner struct {
	logger      *zap.Logger
	assumptions finance.BusinessAssumptions
}

type target struct {
	field    string
	label    string
	minValue float64
	maxValue float64
	step     float64
	// increasing is true when raising the field raises the net margin, in
	// which case the smallest feasible value is searched for. Otherwise the
	// largest feasible value is.
	increasing bool
	get        func(finance.BusinessAssumptions) float64
	set        func(*finance.BusinessAssumptions, float64)
}

type evaluation struct {
	value     float64
	netMargin float64
}

func (e evaluation) feasible() bool {
	return e.netMargin >= 0
}

// NewRunner constructs a Runner for the provided assumptions.
func NewRunner(logger *zap.Logger, assumptions finance.BusinessAssumptions) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, assumptions: assumptions}
}

// Run searches every target and returns one summary each, in a fixed order.
// The runner's assumptions are never modified.
func (r *Runner) Run() []optimization.Summary {
	targets := r.targets()
	summaries := make([]optimization.Summary, 0, len(targets))
	for _, t := range targets {
		summary := r.optimize(t)
		summaries = append(summaries, summary)

		r.logger.Debug("optimizer searched break-even value",
			zap.String("op", "optimizer.Run"),
			zap.String("field", t.field),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("netMargin", summary.NetMargin),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}
	return summaries
}

func (r *Runner) targets() []target {
	a := r.assumptions
	return []target{
		{
			field:      FieldMonthlyTraffic,
			label:      "Monthly traffic",
			minValue:   0,
			maxValue:   math.Max(10_000_000, 100*float64(a.MonthlyTraffic)),
			step:       1,
			increasing: true,
			get:        func(a finance.BusinessAssumptions) float64 { return float64(a.MonthlyTraffic) },
			set:        func(a *finance.BusinessAssumptions, v float64) { a.MonthlyTraffic = int(v) },
		},
		{
			field:      FieldConversionRate,
			label:      "Conversion rate",
			minValue:   0,
			maxValue:   100,
			step:       0.01,
			increasing: true,
			get:        func(a finance.BusinessAssumptions) float64 { return a.ConversionRate },
			set:        func(a *finance.BusinessAssumptions, v float64) { a.ConversionRate = v },
		},
		{
			field:      FieldAverageBasket,
			label:      "Average basket",
			minValue:   0,
			maxValue:   math.Max(1_000_000, 100*a.AverageBasket),
			step:       0.01,
			increasing: true,
			get:        func(a finance.BusinessAssumptions) float64 { return a.AverageBasket },
			set:        func(a *finance.BusinessAssumptions, v float64) { a.AverageBasket = v },
		},
		{
			field:      FieldMarketingBudget,
			label:      "Marketing budget",
			minValue:   0,
			maxValue:   math.Max(10_000_000, 100*a.MarketingBudget),
			step:       0.01,
			increasing: false,
			get:        func(a finance.BusinessAssumptions) float64 { return a.MarketingBudget },
			set:        func(a *finance.BusinessAssumptions, v float64) { a.MarketingBudget = v },
		},
	}
}

// optimize bisects between the bounds, keeping lo infeasible and hi feasible
// (or the reverse for decreasing targets), until they are one step apart.
func (r *Runner) optimize(t target) optimization.Summary {
	original := t.get(r.assumptions)
	summary := optimization.Summary{
		Field:           t.field,
		Label:           t.label,
		Original:        original,
		OriginalDisplay: formatFieldDisplay(t.field, original),
	}

	lower := r.evaluate(t, t.minValue)
	upper := r.evaluate(t, t.maxValue)

	good, bad := upper, lower
	if !t.increasing {
		good, bad = lower, upper
	}

	if !good.feasible() {
		summary.Value = original
		summary.ValueDisplay = summary.OriginalDisplay
		summary.NetMargin = r.evaluate(t, original).netMargin
		summary.Notes = []string{fmt.Sprintf("unable to break even between %s and %s",
			formatFieldDisplay(t.field, t.minValue), formatFieldDisplay(t.field, t.maxValue))}
		return summary
	}
	if bad.feasible() {
		// Profitable across the whole range; the bound is the answer.
		good = bad
		summary.Notes = []string{"profitable at every value in range"}
	}

	iterations := 0
	for iterations < maxIterations && math.Abs(good.value-bad.value) > t.step && !bad.feasible() {
		mid := r.evaluate(t, (good.value+bad.value)/2)
		if mid.feasible() {
			good = mid
		} else {
			bad = mid
		}
		iterations++
	}

	final := r.evaluate(t, snapFieldValue(t, good.value))
	if !final.feasible() {
		final = good
	}

	summary.Value = final.value
	summary.ValueDisplay = formatFieldDisplay(t.field, final.value)
	summary.NetMargin = final.netMargin
	summary.Iterations = iterations
	summary.Converged = iterations < maxIterations
	return summary
}

func (r *Runner) evaluate(t target, value float64) evaluation {
	value = mathutil.Clamp(value, t.minValue, t.maxValue)
	a := r.assumptions
	t.set(&a, value)
	return evaluation{
		value:     t.get(a),
		netMargin: finance.ComputeMonthlyMetrics(a).NetMargin,
	}
}

// snapFieldValue rounds towards the feasible side to the field's precision.
func snapFieldValue(t target, value float64) float64 {
	snapped := math.Floor(value/t.step) * t.step
	if t.increasing {
		snapped = math.Ceil(value/t.step) * t.step
	}
	return mathutil.Clamp(snapped, t.minValue, t.maxValue)
}

func formatFieldDisplay(field string, value float64) string {
	switch field {
	case FieldMonthlyTraffic:
		return format.Count(value)
	case FieldConversionRate:
		return format.Percent(value)
	default:
		return format.Currency(value)
	}
}
