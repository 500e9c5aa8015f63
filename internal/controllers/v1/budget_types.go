package v1

import (
	"github.com/finanzas-app/backend/internal/models"
	ez_uuid "github.com/finanzas-app/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all budget configurable parameters
type BudgetEditable struct {
	UserID   uuid.UUID           `json:"userId" example:"d1b7fe0e-8714-4a34-a77b-77a6fa4a385e"` // ID of the user this budget belongs to
	Name     string              `json:"name" example:"Groceries" default:""`                   // Name of the budget
	Category string              `json:"category" example:"alimentacion" default:""`            // The category the limit applies to
	Limit    decimal.Decimal     `json:"limit" example:"450" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The spending limit
	Period   models.BudgetPeriod `json:"period" example:"monthly" enums:"weekly,monthly,yearly" default:"monthly"`                         // The recurrence of the limit
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		UserID:   editable.UserID,
		Name:     editable.Name,
		Category: editable.Category,
		Limit:    editable.Limit,
		Period:   editable.Period,
	}
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
}

func newBudget(model models.Budget) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			UserID:   model.UserID,
			Name:     model.Name,
			Category: model.Category,
			Limit:    model.Limit,
			Period:   model.Period,
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	UserID   ez_uuid.UUID        `form:"user"`                       // Filter by user ID
	Name     string              `form:"name" filterField:"false"`   // Filter by name
	Category string              `form:"category"`                   // Filter by category
	Period   models.BudgetPeriod `form:"period" filterField:"false"` // Filter by period
	Offset   uint                `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit    int                 `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

// model returns the database resource for the query filter fields that gorm
// can match on directly.
func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		UserID:   f.UserID.UUID,
		Category: f.Category,
	}
}
