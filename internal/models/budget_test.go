package models_test

import (
	"github.com/finanzas-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetDefaultPeriod() {
	user := suite.createTestUser(models.User{})

	budget := suite.createTestBudget(models.Budget{
		UserID:   user.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(450),
	})

	suite.Assert().Equal(models.PeriodMonthly, budget.Period)
}

func (suite *TestSuiteStandard) TestBudgetValidation() {
	user := suite.createTestUser(models.User{})

	budget := models.Budget{
		UserID:   user.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(-1),
	}
	err := models.DB.Create(&budget).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetLimitNotPositive)

	budget = models.Budget{
		UserID:   user.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(450),
		Period:   "daily",
	}
	err = models.DB.Create(&budget).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetPeriodInvalid)
}

func (suite *TestSuiteStandard) TestBudgetUnique() {
	user := suite.createTestUser(models.User{})

	suite.createTestBudget(models.Budget{
		UserID:   user.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(450),
		Period:   models.PeriodMonthly,
	})

	// Same category and period must fail
	budget := models.Budget{
		UserID:   user.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(500),
		Period:   models.PeriodMonthly,
	}
	err := models.DB.Create(&budget).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNotUnique)

	// Same category with another period is allowed
	suite.createTestBudget(models.Budget{
		UserID:   user.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(5000),
		Period:   models.PeriodYearly,
	})

	// Same category and period for another user is allowed
	other := suite.createTestUser(models.User{})
	suite.createTestBudget(models.Budget{
		UserID:   other.ID,
		Category: "alimentacion",
		Limit:    decimal.NewFromInt(450),
		Period:   models.PeriodMonthly,
	})
}
