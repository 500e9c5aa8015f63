package v1

import (
	"fmt"
	"time"

	"github.com/finanzas-app/backend/internal/health"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	ez_uuid "github.com/finanzas-app/backend/internal/uuid"
)

// HealthScoreMetric is a single metric of the health score. The raw value is
// converted to a float for the JSON boundary, all computation happens on
// decimals.
type HealthScoreMetric struct {
	Value  float64 `json:"value" example:"23.5"`   // Raw value of the metric, in percent for rate metrics
	Score  int     `json:"score" example:"100"`    // Normalized score from 0 to 100
	Status string  `json:"status" example:"green"` // red, yellow or green
}

func newHealthScoreMetric(result health.MetricResult) HealthScoreMetric {
	return HealthScoreMetric{
		Value:  result.Value.InexactFloat64(),
		Score:  result.Score,
		Status: result.Status,
	}
}

type HealthScoreResponse struct {
	OverallScore           int                      `json:"overall_score" example:"78"`
	OverallStatus          string                   `json:"overall_status" example:"green"`
	NeedsOnboarding        bool                     `json:"needs_onboarding" example:"false"`
	SavingsRate            HealthScoreMetric        `json:"savings_rate"`
	FixedExpenses          HealthScoreMetric        `json:"fixed_expenses"`
	ExpenseDiversification HealthScoreMetric        `json:"expense_diversification"`
	Trend                  HealthScoreMetric        `json:"trend"`
	Month                  string                   `json:"month" example:"2026-02-01"`                               // First day of the evaluated month
	OnboardingStatus       *health.OnboardingStatus `json:"onboarding_status,omitempty"`                              // Only set when needs_onboarding is true
	Error                  *string                  `json:"error,omitempty" example:"the user parameter must be set"` // The error, if any occurred
}

func newHealthScoreResponse(result health.Result, month types.Month) HealthScoreResponse {
	response := HealthScoreResponse{
		OverallScore:           result.OverallScore,
		OverallStatus:          result.OverallStatus,
		NeedsOnboarding:        result.NeedsOnboarding,
		SavingsRate:            newHealthScoreMetric(result.SavingsRate),
		FixedExpenses:          newHealthScoreMetric(result.FixedExpenses),
		ExpenseDiversification: newHealthScoreMetric(result.ExpenseDiversification),
		Trend:                  newHealthScoreMetric(result.Trend),
		Month:                  month.FirstDay().Format("2006-01-02"),
	}

	if result.NeedsOnboarding {
		response.OnboardingStatus = result.Onboarding
	}

	return response
}

// HealthScoreHistoryEntry is one month of snapshot history, shaped for the
// frontend trend chart.
type HealthScoreHistoryEntry struct {
	Month                       string `json:"month" example:"Feb 26"`          // Localized month label
	MonthDate                   string `json:"month_date" example:"2026-02-01"` // First day of the month
	OverallScore                int    `json:"overall_score" example:"78"`
	OverallStatus               string `json:"overall_status" example:"green"`
	SavingsRateScore            int    `json:"savings_rate_score" example:"100"`
	FixedExpensesScore          int    `json:"fixed_expenses_score" example:"80"`
	ExpenseDiversificationScore int    `json:"expense_diversification_score" example:"55"`
	TrendScore                  int    `json:"trend_score" example:"75"`
}

func newHealthScoreHistoryEntry(snapshot models.HealthScoreSnapshot) HealthScoreHistoryEntry {
	return HealthScoreHistoryEntry{
		Month:                       monthLabel(snapshot.Month),
		MonthDate:                   snapshot.Month.FirstDay().Format("2006-01-02"),
		OverallScore:                snapshot.OverallScore,
		OverallStatus:               snapshot.OverallStatus,
		SavingsRateScore:            snapshot.SavingsRateScore,
		FixedExpensesScore:          snapshot.FixedExpensesScore,
		ExpenseDiversificationScore: snapshot.ExpenseDiversificationScore,
		TrendScore:                  snapshot.TrendScore,
	}
}

type HealthScoreHistoryResponse struct {
	History []HealthScoreHistoryEntry `json:"history"`
	Count   int                       `json:"count" example:"6"`
	Error   *string                   `json:"error,omitempty" example:"the user parameter must be set"` // The error, if any occurred
}

type HealthScoreAdviceResponse struct {
	Advice      string     `json:"advice" example:"Reduce tus gastos fijos renegociando los servicios."`
	GeneratedAt *time.Time `json:"generated_at" example:"2026-02-14T18:43:00.271152Z"`
	Cached      bool       `json:"cached" example:"true"`
	Error       *string    `json:"error,omitempty" example:"the user parameter must be set"` // The error, if any occurred
}

type HealthScoreQueryFilter struct {
	UserID ez_uuid.UUID `form:"user"`  // ID of the user to evaluate
	Month  string       `form:"month"` // Calendar month in YYYY-MM format. Defaults to the current month.
}

// monthsES are the Spanish month label abbreviations used by the frontend.
var monthsES = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

func monthLabel(m types.Month) string {
	first := m.FirstDay()
	return fmt.Sprintf("%s %02d", monthsES[first.Month()-1], first.Year()%100)
}
