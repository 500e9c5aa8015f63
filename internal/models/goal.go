package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal represents a savings target of a user.
type Goal struct {
	DefaultModel
	User          User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID        uuid.UUID
	Name          string
	Note          string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The target for the goal
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Deadline      *time.Time
	Archived      bool
}

var ErrGoalAmountNotPositive = errors.New("goal amounts must be larger than zero")

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(g.TargetAmount) {
		return ErrGoalAmountNotPositive
	}

	return nil
}
