package health

import (
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Minimum data for scores to be meaningful. Users below these counts get
// their result flagged so the frontend can show a setup prompt.
const (
	IncomeRequired  = 1
	ExpenseRequired = 3
)

// OnboardingStatus reports the transaction counts of the evaluated month
// against the required minimums.
type OnboardingStatus struct {
	IncomeCount     int64 `json:"income_count"`
	ExpenseCount    int64 `json:"expense_count"`
	IncomeRequired  int64 `json:"income_required"`
	ExpenseRequired int64 `json:"expense_required"`
}

// Result is the complete outcome of a health score computation.
type Result struct {
	SavingsRate            MetricResult
	FixedExpenses          MetricResult
	ExpenseDiversification MetricResult
	Trend                  MetricResult
	OverallScore           int
	OverallStatus          string
	NeedsOnboarding        bool
	Onboarding             *OnboardingStatus
}

// Evaluate computes the full health score for a user and month and upserts
// the snapshot for it.
//
// The four metrics are independent of each other and degrade to documented
// red/zero results on missing data; any other failure during computation is
// returned as an error, never masked with a neutral score.
func Evaluate(userID uuid.UUID, month types.Month) (Result, error) {
	needsOnboarding, onboarding, err := onboardingStatus(userID, month)
	if err != nil {
		return Result{}, err
	}

	savings, err := savingsRate(userID, month)
	if err != nil {
		return Result{}, err
	}

	fixed, err := fixedExpensesRatio(userID, month)
	if err != nil {
		return Result{}, err
	}

	diversification, err := expenseDiversification(userID, month)
	if err != nil {
		return Result{}, err
	}

	trend, err := trend(userID, month)
	if err != nil {
		return Result{}, err
	}

	overallScore, overallStatus := OverallScore(savings, fixed, diversification, trend)

	result := Result{
		SavingsRate:            savings,
		FixedExpenses:          fixed,
		ExpenseDiversification: diversification,
		Trend:                  trend,
		OverallScore:           overallScore,
		OverallStatus:          overallStatus,
		NeedsOnboarding:        needsOnboarding,
	}

	if needsOnboarding {
		result.Onboarding = &onboarding
	}

	snapshot := models.HealthScoreSnapshot{
		UserID:                      userID,
		Month:                       month,
		SavingsRateScore:            savings.Score,
		FixedExpensesScore:          fixed.Score,
		ExpenseDiversificationScore: diversification.Score,
		TrendScore:                  trend.Score,
		OverallScore:                overallScore,
		OverallStatus:               overallStatus,
	}

	err = snapshot.Upsert()
	if err != nil {
		return Result{}, err
	}

	return result, nil
}

// onboardingStatus checks whether the user has enough data in the month for
// the scores to be meaningful.
func onboardingStatus(userID uuid.UUID, month types.Month) (bool, OnboardingStatus, error) {
	incomeCount, err := models.TransactionsCount(userID, models.KindIncome, month)
	if err != nil {
		return false, OnboardingStatus{}, err
	}

	expenseCount, err := models.TransactionsCount(userID, models.KindExpense, month)
	if err != nil {
		return false, OnboardingStatus{}, err
	}

	status := OnboardingStatus{
		IncomeCount:     incomeCount,
		ExpenseCount:    expenseCount,
		IncomeRequired:  IncomeRequired,
		ExpenseRequired: ExpenseRequired,
	}

	needsOnboarding := incomeCount < IncomeRequired || expenseCount < ExpenseRequired

	return needsOnboarding, status, nil
}

func savingsRate(userID uuid.UUID, month types.Month) (MetricResult, error) {
	income, err := models.TransactionsSum(userID, models.KindIncome, month)
	if err != nil {
		return MetricResult{}, err
	}

	expenses, err := models.TransactionsSum(userID, models.KindExpense, month)
	if err != nil {
		return MetricResult{}, err
	}

	return SavingsRate(income, expenses), nil
}

func fixedExpensesRatio(userID uuid.UUID, month types.Month) (MetricResult, error) {
	income, err := models.TransactionsSum(userID, models.KindIncome, month)
	if err != nil {
		return MetricResult{}, err
	}

	fixed, err := models.TransactionsSumForCategories(userID, month, FixedExpenseCategories)
	if err != nil {
		return MetricResult{}, err
	}

	return FixedExpensesRatio(income, fixed), nil
}

func expenseDiversification(userID uuid.UUID, month types.Month) (MetricResult, error) {
	categorySums, err := models.TransactionsSumByCategory(userID, month)
	if err != nil {
		return MetricResult{}, err
	}

	sums := make([]decimal.Decimal, 0, len(categorySums))
	for _, categorySum := range categorySums {
		sums = append(sums, categorySum.Sum)
	}

	return ExpenseDiversification(sums), nil
}

func trend(userID uuid.UUID, month types.Month) (MetricResult, error) {
	current, err := models.TransactionsSum(userID, models.KindExpense, month)
	if err != nil {
		return MetricResult{}, err
	}

	previous, err := models.TransactionsSum(userID, models.KindExpense, month.AddDate(0, -1))
	if err != nil {
		return MetricResult{}, err
	}

	return Trend(previous, current), nil
}
