package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// createTestUser creates a test user via the v1 API.
func createTestUser(t *testing.T, user v1.UserEditable, expectedStatus ...int) v1.UserResponse {
	if user.Name == "" {
		user.Name = uuid.New().String()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.UserEditable{user}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/users", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.UserCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data[0]
}

// TestUsersOptions verifies that the HTTP OPTIONS response for /users/{id} is correct.
func (suite *TestSuiteStandard) TestUsersOptions() {
	tests := []struct {
		name   string        // Name for the test
		status int           // Expected HTTP status
		idFunc func() string // Function returning the ID to use
	}{
		{"Does not exist", http.StatusNotFound, func() string { return uuid.New().String() }},
		{"Invalid UUID", http.StatusBadRequest, func() string { return "NotParseableAsUUID" }},
		{"Success", http.StatusNoContent, func() string {
			return createTestUser(suite.T(), v1.UserEditable{}).Data.ID.String()
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := fmt.Sprintf("http://example.com/v1/users/%s", tt.idFunc())

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestUsersDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestUsersDatabaseError() {
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

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/users%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.UserListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

// TestUsersCreate verifies the error handling when creating multiple users
// in a single request.
func (suite *TestSuiteStandard) TestUsersCreate() {
	reqBody := []v1.UserEditable{
		{Name: "ana"},
		{Name: "ana"},
		{Name: "benito"},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", reqBody)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().NotNil(response.Data[0].Data)

	suite.Require().NotNil(response.Data[1].Error)
	suite.Assert().Equal(models.ErrUserNameNotUnique.Error(), *response.Data[1].Error)

	// Resources after a failed one are still created
	suite.Assert().NotNil(response.Data[2].Data)
}

func (suite *TestSuiteStandard) TestUsersCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", `{ "name": "no list" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestUsersGetFilter verifies that filtering users works as expected.
func (suite *TestSuiteStandard) TestUsersGetFilter() {
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "ana"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "benito"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "antonia"})

	tests := []struct {
		name  string // Name for the test
		query string // The query string
		len   int    // Expected number of users
	}{
		{"Name single match", "name=benito", 1},
		{"Name substring", "name=an", 2},
		{"Name no match", "name=delia", 0},
		{"No filter", "", 3},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestUsersGetSorted verifies that users are sorted by name.
func (suite *TestSuiteStandard) TestUsersGetSorted() {
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "carolina"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "ana"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "benito"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("ana", response.Data[0].Name)
	suite.Assert().Equal("benito", response.Data[1].Name)
	suite.Assert().Equal("carolina", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestUsersPagination() {
	for i := 0; i < 5; i++ {
		_ = createTestUser(suite.T(), v1.UserEditable{Name: fmt.Sprintf("user-%d", i)})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users?offset=2&limit=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data, 2)
	suite.Assert().Equal(uint(2), response.Pagination.Offset)
	suite.Assert().Equal(2, response.Pagination.Limit)
	suite.Assert().Equal(int64(5), response.Pagination.Total)
}

// TestUsersGetSingle verifies that reading a single user works.
func (suite *TestSuiteStandard) TestUsersGetSingle() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "ana", Note: "Main account"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("ana", response.Data.Name)
	suite.Assert().Equal("Main account", response.Data.Note)
}

func (suite *TestSuiteStandard) TestUsersGetSingleErrors() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Invalid UUID", "definitely-not-a-uuid", http.StatusBadRequest},
		{"Does not exist", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestUsersUpdate verifies that partial updates only change the fields that
// are set in the request.
func (suite *TestSuiteStandard) TestUsersUpdate() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "ana", Note: "Main account"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/users/%s", user.Data.ID), map[string]any{
		"note": "Shared household account",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("ana", response.Data.Name)
	suite.Assert().Equal("Shared household account", response.Data.Note)
}

func (suite *TestSuiteStandard) TestUsersUpdateErrors() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		id     string
		body   string
		status int
	}{
		{"Invalid UUID", "not-a-uuid", `{ "name": "irrelevant" }`, http.StatusBadRequest},
		{"Does not exist", uuid.New().String(), `{ "name": "irrelevant" }`, http.StatusNotFound},
		{"Invalid body", user.Data.ID.String(), `{ "name": 2 }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestUsersDelete verifies that deleting a user works and that their
// resources are deleted with them.
func (suite *TestSuiteStandard) TestUsersDelete() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{UserID: user.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/users/%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
