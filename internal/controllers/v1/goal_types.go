package v1

import (
	"time"

	"github.com/finanzas-app/backend/internal/models"
	ez_uuid "github.com/finanzas-app/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalEditable represents all goal configurable parameters
type GoalEditable struct {
	UserID        uuid.UUID       `json:"userId" example:"d1b7fe0e-8714-4a34-a77b-77a6fa4a385e"` // ID of the user this goal belongs to
	Name          string          `json:"name" example:"Emergency fund" default:""`              // Name of the goal
	Note          string          `json:"note" example:"Three months of expenses" default:""`    // Notes about the goal
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"9000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount to save
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"1500" default:"0"`                                                                 // The amount saved so far
	Deadline      *time.Time      `json:"deadline" example:"2027-06-30T00:00:00Z"`                                                                  // Optional deadline for the goal
	Archived      bool            `json:"archived" example:"true" default:"false"`                                                                  // Whether the goal is still in use
}

func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		UserID:        editable.UserID,
		Name:          editable.Name,
		Note:          editable.Note,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		Deadline:      editable.Deadline,
		Archived:      editable.Archived,
	}
}

type Goal struct {
	models.DefaultModel
	GoalEditable
}

func newGoal(model models.Goal) Goal {
	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			UserID:        model.UserID,
			Name:          model.Name,
			Note:          model.Note,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			Deadline:      model.Deadline,
			Archived:      model.Archived,
		},
	}
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Data  []GoalResponse `json:"data"`                                                          // List of created goals or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // Data for the goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalQueryFilter struct {
	UserID   ez_uuid.UUID `form:"user"`                       // Filter by user ID
	Name     string       `form:"name" filterField:"false"`   // Filter by name
	Archived bool         `form:"archived"`                   // Filter archived goals
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first goal returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of goals to return. Defaults to 50.
}

// model returns the database resource for the query filter fields that gorm
// can match on directly.
func (f GoalQueryFilter) model() models.Goal {
	return models.Goal{
		UserID:   f.UserID.UUID,
		Archived: f.Archived,
	}
}
