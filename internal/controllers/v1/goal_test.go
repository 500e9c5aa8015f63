package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestGoal creates a test goal via the v1 API.
func createTestGoal(t *testing.T, goal v1.GoalEditable, expectedStatus ...int) v1.GoalResponse {
	if goal.UserID == uuid.Nil {
		goal.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if goal.TargetAmount.IsZero() {
		goal.TargetAmount = decimal.NewFromFloat(9000)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.GoalEditable{goal}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.GoalCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data[0]
}

// TestGoalsOptions verifies that the HTTP OPTIONS response for /goals/{id}
// is correct.
func (suite *TestSuiteStandard) TestGoalsOptions() {
	tests := []struct {
		name   string        // Name for the test
		status int           // Expected HTTP status
		idFunc func() string // Function returning the ID to use
	}{
		{"Does not exist", http.StatusNotFound, func() string { return uuid.New().String() }},
		{"Invalid UUID", http.StatusBadRequest, func() string { return "NotParseableAsUUID" }},
		{"Success", http.StatusNoContent, func() string {
			return createTestGoal(suite.T(), v1.GoalEditable{}).Data.ID.String()
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := fmt.Sprintf("http://example.com/v1/goals/%s", tt.idFunc())

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestGoalsCreateErrors verifies that goals without a positive target amount
// are rejected.
func (suite *TestSuiteStandard) TestGoalsCreateErrors() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	reqBody := []v1.GoalEditable{{
		UserID: user.Data.ID,
		Name:   "Emergency fund",
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/goals", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.GoalCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal(models.ErrGoalAmountNotPositive.Error(), *response.Data[0].Error)
}

// TestGoalsGetFilter verifies that filtering goals works as expected.
func (suite *TestSuiteStandard) TestGoalsGetFilter() {
	ana := createTestUser(suite.T(), v1.UserEditable{Name: "ana"})
	benito := createTestUser(suite.T(), v1.UserEditable{Name: "benito"})

	deadline := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

	_ = createTestGoal(suite.T(), v1.GoalEditable{UserID: ana.Data.ID, Name: "Emergency fund", Deadline: &deadline})
	_ = createTestGoal(suite.T(), v1.GoalEditable{UserID: ana.Data.ID, Name: "Vacation", Archived: true})
	_ = createTestGoal(suite.T(), v1.GoalEditable{UserID: benito.Data.ID, Name: "New laptop"})

	tests := []struct {
		name  string // Name for the test
		query string // The query string
		len   int    // Expected number of goals
	}{
		{"User", fmt.Sprintf("user=%s", ana.Data.ID), 2},
		{"Archived", "archived=true", 1},
		{"Name", "name=Vacation", 1},
		{"No filter", "", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/goals?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.GoalListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestGoalsUpdate verifies that partial updates keep the target amount when
// it is not part of the request.
func (suite *TestSuiteStandard) TestGoalsUpdate() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{
		Name:          "Emergency fund",
		TargetAmount:  decimal.NewFromFloat(9000),
		CurrentAmount: decimal.NewFromFloat(1500),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/goals/%s", goal.Data.ID), map[string]any{
		"currentAmount": 2500,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.CurrentAmount.Equal(decimal.NewFromFloat(2500)), "current amount is %s", response.Data.CurrentAmount)
	suite.Assert().True(response.Data.TargetAmount.Equal(decimal.NewFromFloat(9000)), "target amount is %s", response.Data.TargetAmount)
	suite.Assert().Equal("Emergency fund", response.Data.Name)
}

// TestGoalsArchive verifies that goals can be archived and unarchived.
func (suite *TestSuiteStandard) TestGoalsArchive() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{Name: "Vacation"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/goals/%s", goal.Data.ID), map[string]any{
		"archived": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Archived)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/goals/%s", goal.Data.ID), map[string]any{
		"archived": false,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(response.Data.Archived)
}

// TestGoalsDelete verifies that deleting a goal works.
func (suite *TestSuiteStandard) TestGoalsDelete() {
	goal := createTestGoal(suite.T(), v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/goals/%s", goal.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/goals/%s", goal.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
