package v1

import (
	"github.com/finanzas-app/backend/internal/models"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name string `json:"name" example:"ana" default:""`                      // Name of the user, must be unique
	Note string `json:"note" example:"Shared household account" default:""` // Notes about the user
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type User struct {
	models.DefaultModel
	UserEditable
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name: model.Name,
			Note: model.Note,
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // List of the created users or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}
