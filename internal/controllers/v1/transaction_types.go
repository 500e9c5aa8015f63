package v1

import (
	"time"

	"github.com/finanzas-app/backend/internal/models"
	ez_uuid "github.com/finanzas-app/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all transaction configurable parameters
type TransactionEditable struct {
	UserID      uuid.UUID              `json:"userId" example:"d1b7fe0e-8714-4a34-a77b-77a6fa4a385e"`       // ID of the user this transaction belongs to
	Date        time.Time              `json:"date" example:"2026-02-14T00:00:00Z"`                         // Date of the transaction. Time is currently only used for sorting
	Amount      decimal.Decimal        `json:"amount" example:"1750.12" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the transaction
	Kind        models.TransactionKind `json:"kind" example:"expense" enums:"income,expense"`               // Whether this is an income or an expense
	Category    string                 `json:"category" example:"vivienda" default:""`                      // The category of the transaction
	Note        string                 `json:"note" example:"Rent for February" default:""`                 // A note
	IsRecurring bool                   `json:"isRecurring" example:"true" default:"false"`                  // Whether the transaction repeats every month
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		UserID:      editable.UserID,
		Date:        editable.Date,
		Amount:      editable.Amount,
		Kind:        editable.Kind,
		Category:    editable.Category,
		Note:        editable.Note,
		IsRecurring: editable.IsRecurring,
	}
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			UserID:      model.UserID,
			Date:        model.Date,
			Amount:      model.Amount,
			Kind:        model.Kind,
			Category:    model.Category,
			Note:        model.Note,
			IsRecurring: model.IsRecurring,
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	UserID      ez_uuid.UUID           `form:"user"`                         // Filter by user ID
	Kind        models.TransactionKind `form:"kind" filterField:"false"`     // Filter by kind, income or expense
	Category    string                 `form:"category" filterField:"false"` // Filter by category. Supports globbing with *
	Month       string                 `form:"month" filterField:"false"`    // Filter by calendar month, format YYYY-MM
	Note        string                 `form:"note" filterField:"false"`     // Note contains this string
	IsRecurring bool                   `form:"recurring"`                    // Filter recurring transactions
	Offset      uint                   `form:"offset" filterField:"false"`   // The offset of the first transaction returned. Defaults to 0.
	Limit       int                    `form:"limit" filterField:"false"`    // Maximum number of transactions to return. Defaults to 50.
}

// model returns the database resource for the query filter fields that gorm
// can match on directly. String and date fields are handled in the
// controller function.
func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		UserID:      f.UserID.UUID,
		IsRecurring: f.IsRecurring,
	}
}
