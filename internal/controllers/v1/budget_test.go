package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestBudget creates a test budget via the v1 API.
func createTestBudget(t *testing.T, budget v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if budget.UserID == uuid.Nil {
		budget.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if budget.Limit.IsZero() {
		budget.Limit = decimal.NewFromFloat(450)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.BudgetEditable{budget}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data[0]
}

// TestBudgetsOptions verifies that the HTTP OPTIONS response for
// /budgets/{id} is correct.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name   string        // Name for the test
		status int           // Expected HTTP status
		idFunc func() string // Function returning the ID to use
	}{
		{"Does not exist", http.StatusNotFound, func() string { return uuid.New().String() }},
		{"Invalid UUID", http.StatusBadRequest, func() string { return "NotParseableAsUUID" }},
		{"Success", http.StatusNoContent, func() string {
			return createTestBudget(suite.T(), v1.BudgetEditable{}).Data.ID.String()
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := fmt.Sprintf("http://example.com/v1/budgets/%s", tt.idFunc())

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestBudgetsCreate verifies that a budget for the same category and period
// can only exist once per user.
func (suite *TestSuiteStandard) TestBudgetsCreate() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		UserID:   user.Data.ID,
		Category: "alimentacion",
	})

	reqBody := []v1.BudgetEditable{{
		UserID:   user.Data.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromFloat(500),
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal(models.ErrBudgetNotUnique.Error(), *response.Data[0].Error)

	// The same category with another period is allowed
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		UserID:   user.Data.ID,
		Category: "alimentacion",
		Period:   models.PeriodWeekly,
	})
}

func (suite *TestSuiteStandard) TestBudgetsCreateErrors() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	reqBody := []v1.BudgetEditable{{
		UserID:   user.Data.ID,
		Category: "ocio",
		Limit:    decimal.NewFromFloat(100),
		Period:   "daily",
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal(models.ErrBudgetPeriodInvalid.Error(), *response.Data[0].Error)
}

// TestBudgetsGetFilter verifies that filtering budgets works as expected.
func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	ana := createTestUser(suite.T(), v1.UserEditable{Name: "ana"})
	benito := createTestUser(suite.T(), v1.UserEditable{Name: "benito"})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{UserID: ana.Data.ID, Name: "Groceries", Category: "alimentacion"})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{UserID: ana.Data.ID, Name: "Going out", Category: "ocio"})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{UserID: ana.Data.ID, Name: "Yearly insurance", Category: "seguros", Period: models.PeriodYearly})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{UserID: benito.Data.ID, Category: "ocio"})

	tests := []struct {
		name  string // Name for the test
		query string // The query string
		len   int    // Expected number of budgets
	}{
		{"User", fmt.Sprintf("user=%s", ana.Data.ID), 3},
		{"Category", "category=ocio", 2},
		{"Period monthly", "period=monthly", 3},
		{"Period yearly", "period=yearly", 1},
		{"Name", "name=Groceries", 1},
		{"Name substring", "name=o", 2},
		{"No filter", "", 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestBudgetsGetSorted verifies that budgets are sorted by category and
// period.
func (suite *TestSuiteStandard) TestBudgetsGetSorted() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{UserID: user.Data.ID, Category: "ocio"})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{UserID: user.Data.ID, Category: "alimentacion"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("alimentacion", response.Data[0].Category)
	suite.Assert().Equal("ocio", response.Data[1].Category)
}

// TestBudgetsUpdate verifies that partial updates keep the limit and period
// when they are not part of the request.
func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Name:     "Groceries",
		Category: "alimentacion",
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.Data.ID), map[string]any{
		"name": "Food",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("Food", response.Data.Name)
	suite.Assert().Equal("alimentacion", response.Data.Category)
	suite.Assert().True(response.Data.Limit.Equal(decimal.NewFromFloat(450)), "limit is %s", response.Data.Limit)
	suite.Assert().Equal(models.PeriodMonthly, response.Data.Period)
}

// TestBudgetsDelete verifies that deleting a budget works.
func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
