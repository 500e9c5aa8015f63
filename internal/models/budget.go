package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod is the recurrence of a budget limit.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether the period is one of the supported values.
func (p BudgetPeriod) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

// Budget represents a spending limit for a category.
//
// A user can have at most one budget per category and period.
type Budget struct {
	DefaultModel
	User     User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID   uuid.UUID `gorm:"uniqueIndex:budget_user_category_period"`
	Name     string
	Category string          `gorm:"uniqueIndex:budget_user_category_period"`
	Limit    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Period   BudgetPeriod    `gorm:"uniqueIndex:budget_user_category_period"`
}

var (
	ErrBudgetNotUnique        = errors.New("you can not create multiple budgets for the same category and period")
	ErrBudgetLimitNotPositive = errors.New("budget limits must be larger than zero")
	ErrBudgetPeriodInvalid    = errors.New("budget period must be weekly, monthly or yearly")
)

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.TrimSpace(b.Category)

	if b.Period == "" {
		b.Period = PeriodMonthly
	}

	return nil
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(b.Limit) {
		return ErrBudgetLimitNotPositive
	}

	if !b.Period.Valid() {
		return ErrBudgetPeriodInvalid
	}

	return nil
}
