// Package health implements the financial health scoring engine.
//
// Four metrics are computed from a user's transactions for a calendar
// month, each normalized to an integer score from 0 to 100 with a
// red/yellow/green status. A weighted sum of the four scores yields the
// overall score. The thresholds and ramps below are product-defined and
// must not be changed without a corresponding product decision.
package health

import (
	"github.com/shopspring/decimal"
)

const (
	StatusRed    = "red"
	StatusYellow = "yellow"
	StatusGreen  = "green"
)

// Weights of the four metrics in the overall score, in percent.
const (
	WeightSavingsRate            = 35
	WeightFixedExpenses          = 25
	WeightExpenseDiversification = 20
	WeightTrend                  = 20
)

// FixedExpenseCategories is the closed set of categories counting as fixed
// expenses.
var FixedExpenseCategories = []string{"vivienda", "servicios", "transporte", "seguros"}

// MetricResult is the raw value of a metric together with its normalized
// score and status.
//
// The status of a metric comes from the threshold band its value falls
// into, not from the score: a savings rate of 19% scores 95 but is still
// yellow, because the product defines everything below 20% as such.
type MetricResult struct {
	Value  decimal.Decimal
	Score  int
	Status string
}

// Status returns the status color for a score from 0 to 100. It is used
// for the overall score; metric statuses come from their threshold bands.
func Status(score int) string {
	if score >= 70 {
		return StatusGreen
	} else if score >= 40 {
		return StatusYellow
	}
	return StatusRed
}

var hundred = decimal.NewFromInt(100)

// clampScore truncates a fractional score toward zero and limits it to the
// range from 0 to 100.
func clampScore(score decimal.Decimal) int {
	s := score.IntPart()
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return int(s)
}

// SavingsRate scores the fraction of income that is not spent:
// (income - expenses) / income * 100.
//
// A month without income cannot have a savings rate and scores as the worst
// case, not as undefined.
func SavingsRate(income, expenses decimal.Decimal) MetricResult {
	if income.IsZero() {
		return MetricResult{Value: decimal.Zero, Score: 0, Status: StatusRed}
	}

	rate := income.Sub(expenses).Div(income).Mul(hundred)

	switch {
	// 20% or more saved is ideal
	case rate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return MetricResult{Value: rate, Score: 100, Status: StatusGreen}

	// 10% to 20% ramps linearly from 50 to 100
	case rate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		score := decimal.NewFromInt(50).
			Add(rate.Sub(decimal.NewFromInt(10)).Mul(decimal.NewFromInt(5)))
		return MetricResult{Value: rate, Score: clampScore(score), Status: StatusYellow}

	// Below 10% ramps down to 0. Negative rates floor at a score of 0.
	default:
		return MetricResult{Value: rate, Score: clampScore(rate.Mul(decimal.NewFromInt(5))), Status: StatusRed}
	}
}

// FixedExpensesRatio scores the share of income going to fixed expense
// categories: fixed / income * 100. Lower is better.
func FixedExpensesRatio(income, fixed decimal.Decimal) MetricResult {
	if income.IsZero() {
		return MetricResult{Value: decimal.Zero, Score: 0, Status: StatusRed}
	}

	ratio := fixed.Div(income).Mul(hundred)

	switch {
	// Up to 40% of income on fixed expenses is healthy
	case ratio.LessThanOrEqual(decimal.NewFromInt(40)):
		return MetricResult{Value: ratio, Score: 100, Status: StatusGreen}

	// 40% to 55% ramps linearly from 100 down to 50
	case ratio.LessThanOrEqual(decimal.NewFromInt(55)):
		score := hundred.
			Sub(ratio.Sub(decimal.NewFromInt(40)).Mul(decimal.NewFromInt(50).Div(decimal.NewFromInt(15))))
		return MetricResult{Value: ratio, Score: clampScore(score), Status: StatusYellow}

	// Above 55% keeps falling at 2 points per percent
	default:
		score := decimal.NewFromInt(50).
			Sub(ratio.Sub(decimal.NewFromInt(55)).Mul(decimal.NewFromInt(2)))
		return MetricResult{Value: ratio, Score: clampScore(score), Status: StatusRed}
	}
}

// ExpenseDiversification scores how spread out expenses are over categories
// using the Herfindahl-Hirschman index of the category shares:
// diversification = (1 - sum(share^2)) * 100.
//
// A single category holding all expenses yields an HHI of 1 and a
// diversification of 0.
func ExpenseDiversification(categorySums []decimal.Decimal) MetricResult {
	total := decimal.Zero
	for _, sum := range categorySums {
		total = total.Add(sum)
	}

	if total.IsZero() {
		return MetricResult{Value: decimal.Zero, Score: 0, Status: StatusRed}
	}

	hhi := decimal.Zero
	for _, sum := range categorySums {
		share := sum.Div(total)
		hhi = hhi.Add(share.Mul(share))
	}

	diversification := decimal.NewFromInt(1).Sub(hhi).Mul(hundred)

	switch {
	case diversification.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return MetricResult{Value: diversification, Score: 100, Status: StatusGreen}

	// 40 to 60 ramps linearly from 50 to 100
	case diversification.GreaterThanOrEqual(decimal.NewFromInt(40)):
		score := decimal.NewFromInt(50).
			Add(diversification.Sub(decimal.NewFromInt(40)).Mul(decimal.NewFromInt(50).Div(decimal.NewFromInt(20))))
		return MetricResult{Value: diversification, Score: clampScore(score), Status: StatusYellow}

	default:
		score := diversification.Mul(decimal.NewFromFloat(1.25))
		return MetricResult{Value: diversification, Score: clampScore(score), Status: StatusRed}
	}
}

// Trend scores the month-over-month change in spending:
// (previous - current) / previous * 100, positive meaning improvement.
func Trend(previous, current decimal.Decimal) MetricResult {
	if previous.IsZero() {
		// No baseline and no spending is neutral-good
		if current.IsZero() {
			return MetricResult{Value: decimal.Zero, Score: 75, Status: StatusGreen}
		}

		// New spending with no baseline at all
		return MetricResult{Value: hundred.Neg(), Score: 0, Status: StatusRed}
	}

	improvement := previous.Sub(current).Div(previous).Mul(hundred)

	switch {
	// Spending 5% or more less than last month
	case improvement.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return MetricResult{Value: improvement, Score: 100, Status: StatusGreen}

	// Stability band: up to 5% change either way
	case improvement.GreaterThanOrEqual(decimal.NewFromInt(-5)):
		return MetricResult{Value: improvement, Score: 75, Status: StatusGreen}

	// Worsening by 5% to 10% ramps from 75 down to 50
	case improvement.GreaterThanOrEqual(decimal.NewFromInt(-10)):
		score := decimal.NewFromInt(50).
			Add(improvement.Add(decimal.NewFromInt(10)).Mul(decimal.NewFromInt(5)))
		return MetricResult{Value: improvement, Score: clampScore(score), Status: StatusYellow}

	// Worsening by more than 10%
	default:
		score := decimal.NewFromInt(50).
			Add(improvement.Mul(decimal.NewFromInt(2)))
		return MetricResult{Value: improvement, Score: clampScore(score), Status: StatusRed}
	}
}

// OverallScore combines the four metric scores into the weighted overall
// score and its status. The division truncates, matching integer semantics.
func OverallScore(savings, fixed, diversification, trend MetricResult) (int, string) {
	score := (savings.Score*WeightSavingsRate +
		fixed.Score*WeightFixedExpenses +
		diversification.Score*WeightExpenseDiversification +
		trend.Score*WeightTrend) / 100

	return score, Status(score)
}
