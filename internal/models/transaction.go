package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind is the kind of a transaction, either income or expense.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the supported values.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single income or expense of a user.
type Transaction struct {
	DefaultModel
	User        User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID      uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Kind        TransactionKind
	Category    string
	Note        string
	IsRecurring bool
}

var (
	ErrTransactionAmountNegative = errors.New("transaction amounts must be zero or positive")
	ErrTransactionKindInvalid    = errors.New("transaction kind must be income or expense")
)

// BeforeSave sets the timezone for the date to UTC and normalizes strings.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if !t.Kind.Valid() {
		return ErrTransactionKindInvalid
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// monthRange returns a query scope limiting transactions to a user and a
// calendar month, first day through last day inclusive.
func monthRange(userID uuid.UUID, month types.Month) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("transactions.user_id = ?", userID).
			Where("transactions.date >= date(?)", month.FirstDay()).
			Where("transactions.date < date(?)", month.AddDate(0, 1).FirstDay())
	}
}

// TransactionsSum returns the sum of all transactions of one kind for a user
// in a calendar month. Months without transactions sum to zero.
func TransactionsSum(userID uuid.UUID, kind TransactionKind, month types.Month) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("transactions").
		Scopes(monthRange(userID, month)).
		Where("transactions.kind = ?", kind).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s transactions failed: %w", kind, err)
	}

	return sum.Decimal, nil
}

// TransactionsSumForCategories returns the sum of all expenses for a user in
// a calendar month, limited to the passed categories.
func TransactionsSumForCategories(userID uuid.UUID, month types.Month, categories []string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("transactions").
		Scopes(monthRange(userID, month)).
		Where("transactions.kind = ?", KindExpense).
		Where("transactions.category IN ?", categories).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing categorized expenses failed: %w", err)
	}

	return sum.Decimal, nil
}

// CategorySum is the total expense amount for a single category.
type CategorySum struct {
	Category string
	Sum      decimal.Decimal
}

// TransactionsSumByCategory returns the per-category expense sums for a user
// in a calendar month.
func TransactionsSumByCategory(userID uuid.UUID, month types.Month) ([]CategorySum, error) {
	var sums []CategorySum

	err := DB.Table("transactions").
		Scopes(monthRange(userID, month)).
		Where("transactions.kind = ?", KindExpense).
		Select("category, SUM(amount) AS sum").
		Group("category").
		Find(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses by category failed: %w", err)
	}

	return sums, nil
}

// TransactionsCount returns the number of transactions of one kind for a
// user in a calendar month.
func TransactionsCount(userID uuid.UUID, kind TransactionKind, month types.Month) (int64, error) {
	var count int64

	err := DB.Table("transactions").
		Scopes(monthRange(userID, month)).
		Where("transactions.kind = ?", kind).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting %s transactions failed: %w", kind, err)
	}

	return count, nil
}
