package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestTransaction creates a test transaction via the v1 API.
func createTestTransaction(t *testing.T, transaction v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if transaction.UserID == uuid.Nil {
		transaction.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if transaction.Amount.IsZero() {
		transaction.Amount = decimal.NewFromFloat(17.23)
	}

	if transaction.Kind == "" {
		transaction.Kind = models.KindExpense
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.TransactionEditable{transaction}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data[0]
}

// TestTransactionsOptions verifies that the HTTP OPTIONS response for
// /transactions/{id} is correct.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name   string        // Name for the test
		status int           // Expected HTTP status
		idFunc func() string // Function returning the ID to use
	}{
		{"Does not exist", http.StatusNotFound, func() string { return uuid.New().String() }},
		{"Invalid UUID", http.StatusBadRequest, func() string { return "NotParseableAsUUID" }},
		{"Success", http.StatusNoContent, func() string {
			return createTestTransaction(suite.T(), v1.TransactionEditable{}).Data.ID.String()
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := fmt.Sprintf("http://example.com/v1/transactions/%s", tt.idFunc())

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestTransactionsDatabaseError verifies that the endpoints return the
// appropriate error when the database is disconnected.
func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
	}{
		{"GET Collection", "", http.MethodGet},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

// TestTransactionsCreate verifies the error handling when creating multiple
// transactions in a single request.
func (suite *TestSuiteStandard) TestTransactionsCreate() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	reqBody := []v1.TransactionEditable{
		{
			UserID:   user.Data.ID,
			Amount:   decimal.NewFromFloat(1750.12),
			Kind:     models.KindIncome,
			Category: "nomina",
		},
		{
			UserID: user.Data.ID,
			Amount: decimal.NewFromFloat(-10),
			Kind:   models.KindExpense,
		},
		{
			UserID: user.Data.ID,
			Amount: decimal.NewFromFloat(10),
			Kind:   "transfer",
		},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().NotNil(response.Data[0].Data)

	suite.Require().NotNil(response.Data[1].Error)
	suite.Assert().Equal(models.ErrTransactionAmountNegative.Error(), *response.Data[1].Error)

	suite.Require().NotNil(response.Data[2].Error)
	suite.Assert().Equal(models.ErrTransactionKindInvalid.Error(), *response.Data[2].Error)
}

// TestTransactionsGet verifies that transactions are sorted by date with the
// newest first.
func (suite *TestSuiteStandard) TestTransactionsGet() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	older := createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID: user.Data.ID,
		Date:   time.Date(2026, 2, 10, 10, 11, 12, 0, time.UTC),
	})

	newer := createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID: user.Data.ID,
		Date:   time.Date(2026, 2, 10, 11, 12, 13, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(newer.Data.ID, response.Data[0].ID)
	suite.Assert().Equal(older.Data.ID, response.Data[1].ID)
}

// TestTransactionsGetFilter verifies that filtering transactions works as
// expected.
func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	ana := createTestUser(suite.T(), v1.UserEditable{Name: "ana"})
	benito := createTestUser(suite.T(), v1.UserEditable{Name: "benito"})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:   ana.Data.ID,
		Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(1750.12),
		Kind:     models.KindIncome,
		Category: "nomina",
		Note:     "Salary for February",
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:      ana.Data.ID,
		Date:        time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(650),
		Kind:        models.KindExpense,
		Category:    "vivienda",
		Note:        "Rent",
		IsRecurring: true,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:   ana.Data.ID,
		Date:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(80.5),
		Kind:     models.KindExpense,
		Category: "servicios",
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:   benito.Data.ID,
		Date:     time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(42.23),
		Kind:     models.KindExpense,
		Category: "ocio",
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID: benito.Data.ID,
		Date:   time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromFloat(12),
		Kind:   models.KindExpense,
	})

	tests := []struct {
		name  string // Name for the test
		query string // The query string
		len   int    // Expected number of transactions
	}{
		{"User", fmt.Sprintf("user=%s", ana.Data.ID), 3},
		{"Kind income", "kind=income", 1},
		{"Kind expense", "kind=expense", 4},
		{"Month", "month=2026-02", 4},
		{"Month without transactions", "month=2025-12", 0},
		{"Category exact", "category=vivienda", 1},
		{"Category empty", "category=", 1},
		{"Category glob", "category=*ci*", 2},
		{"Category glob no match", "category=alim*", 0},
		{"Note", "note=February", 1},
		{"Recurring", "recurring=true", 1},
		{"User and month", fmt.Sprintf("user=%s&month=2026-03", ana.Data.ID), 1},
		{"Limit", "limit=2", 2},
		{"Glob with limit", "category=*ci*&limit=1", 1},
		{"Glob with offset", "category=*ci*&offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestTransactionsGetFilterErrors verifies that invalid filter values are
// rejected.
func (suite *TestSuiteStandard) TestTransactionsGetFilterErrors() {
	tests := []struct {
		name  string // Name for the test
		query string // The query string
		err   string // Expected error message
	}{
		{"Invalid kind", "kind=transfer", models.ErrTransactionKindInvalid.Error()},
		{"Invalid month", "month=February", httputil.ErrInvalidMonth.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

// TestTransactionsGlobPagination verifies that the total is the number of
// pattern matches, not the page size, when filtering with a glob.
func (suite *TestSuiteStandard) TestTransactionsGlobPagination() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	for _, category := range []string{"vivienda", "servicios", "seguros", "ocio"} {
		_ = createTestTransaction(suite.T(), v1.TransactionEditable{
			UserID:   user.Data.ID,
			Category: category,
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?category=s*&limit=1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data, 1)
	suite.Assert().Equal(int64(2), response.Pagination.Total)
}

// TestTransactionsUpdate verifies that partial updates keep the amount and
// kind when they are not part of the request.
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(650),
		Category: "vivienda",
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), map[string]any{
		"category": "servicios",
		"note":     "Electricity",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("servicios", response.Data.Category)
	suite.Assert().Equal("Electricity", response.Data.Note)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(650)), "amount is %s", response.Data.Amount)
	suite.Assert().Equal(models.KindExpense, response.Data.Kind)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateErrors() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Invalid UUID", "not-a-uuid", "", http.StatusBadRequest},
		{"Does not exist", uuid.New().String(), "", http.StatusNotFound},
		{"Negative amount", transaction.Data.ID.String(), map[string]any{"amount": -10}, http.StatusBadRequest},
		{"Invalid kind", transaction.Data.ID.String(), map[string]any{"kind": "transfer"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestTransactionsDelete verifies that deleting a transaction works.
func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
