package models_test

import (
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
)

func (suite *TestSuiteStandard) TestSnapshotUpsertIdempotent() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2026, time.March)

	snapshot := suite.createTestSnapshot(models.HealthScoreSnapshot{
		UserID:           user.ID,
		Month:            month,
		SavingsRateScore: 100,
		OverallScore:     64,
		OverallStatus:    "yellow",
	})

	// Upserting changed scores for the same month must update the row
	snapshot.SavingsRateScore = 50
	snapshot.OverallScore = 47
	err := snapshot.Upsert()
	suite.Require().Nil(err)

	stored, err := models.SnapshotForMonth(user.ID, month)
	suite.Require().Nil(err)
	suite.Assert().Equal(50, stored.SavingsRateScore)
	suite.Assert().Equal(47, stored.OverallScore)

	var count int64
	err = models.DB.Model(&models.HealthScoreSnapshot{}).Count(&count).Error
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), count, "upsert must never create a second row for the same month")
}

func (suite *TestSuiteStandard) TestSnapshotUpsertKeepsAdvice() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2026, time.March)

	snapshot := suite.createTestSnapshot(models.HealthScoreSnapshot{
		UserID:        user.ID,
		Month:         month,
		OverallScore:  64,
		OverallStatus: "yellow",
	})

	generatedAt := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	err := snapshot.SaveAdvice("Ahorra más.", generatedAt)
	suite.Require().Nil(err)

	// A score recomputation must not touch the cached advice
	recompute := models.HealthScoreSnapshot{
		UserID:        user.ID,
		Month:         month,
		OverallScore:  70,
		OverallStatus: "green",
	}
	err = recompute.Upsert()
	suite.Require().Nil(err)

	stored, err := models.SnapshotForMonth(user.ID, month)
	suite.Require().Nil(err)
	suite.Assert().Equal(70, stored.OverallScore)
	suite.Assert().Equal("Ahorra más.", stored.CachedAdvice)
	suite.Require().NotNil(stored.AdviceGeneratedAt)
	suite.Assert().True(stored.AdviceGeneratedAt.Equal(generatedAt))
}

func (suite *TestSuiteStandard) TestSnapshotSaveAdviceKeepsScores() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2026, time.March)

	snapshot := suite.createTestSnapshot(models.HealthScoreSnapshot{
		UserID:           user.ID,
		Month:            month,
		SavingsRateScore: 95,
		OverallScore:     64,
		OverallStatus:    "yellow",
	})

	err := snapshot.SaveAdvice("Reduce los gastos fijos.", time.Now().In(time.UTC))
	suite.Require().Nil(err)

	stored, err := models.SnapshotForMonth(user.ID, month)
	suite.Require().Nil(err)
	suite.Assert().Equal(95, stored.SavingsRateScore)
	suite.Assert().Equal(64, stored.OverallScore)
	suite.Assert().Equal("Reduce los gastos fijos.", stored.CachedAdvice)
}

// TestSnapshotForMonthBounds verifies that a stored snapshot is found for
// exactly the month it was written for. The month column is stored with a
// time component, so the lookup has to use a date range instead of equality.
func (suite *TestSuiteStandard) TestSnapshotForMonthBounds() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2026, time.March)

	suite.createTestSnapshot(models.HealthScoreSnapshot{
		UserID:        user.ID,
		Month:         month,
		OverallScore:  64,
		OverallStatus: "yellow",
	})

	stored, err := models.SnapshotForMonth(user.ID, month)
	suite.Require().Nil(err)
	suite.Assert().True(stored.Month.Equal(month))
	suite.Assert().Equal(64, stored.OverallScore)

	// Neighboring months must not match the stored row
	_, err = models.SnapshotForMonth(user.ID, month.AddDate(0, -1))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.SnapshotForMonth(user.ID, month.AddDate(0, 1))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSnapshotForMonthNotFound() {
	user := suite.createTestUser(models.User{})

	_, err := models.SnapshotForMonth(user.ID, types.NewMonth(2026, time.March))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSnapshotHistory() {
	user := suite.createTestUser(models.User{})
	current := types.NewMonth(2026, time.August)

	// Eight consecutive months, January through August
	for i := 0; i < 8; i++ {
		suite.createTestSnapshot(models.HealthScoreSnapshot{
			UserID:        user.ID,
			Month:         types.NewMonth(2026, time.January).AddDate(0, i),
			OverallScore:  50 + i,
			OverallStatus: "yellow",
		})
	}

	history, err := models.SnapshotHistory(user.ID, current)
	suite.Require().Nil(err)
	suite.Require().Len(history, 6, "history must be limited to the trailing six months")

	// Oldest first: March through August
	suite.Assert().True(history[0].Month.Equal(types.NewMonth(2026, time.March)))
	suite.Assert().True(history[5].Month.Equal(current))

	for i := 1; i < len(history); i++ {
		suite.Assert().True(history[i-1].Month.Before(history[i].Month), "history must be in ascending order")
	}
}

func (suite *TestSuiteStandard) TestSnapshotHistoryEmpty() {
	user := suite.createTestUser(models.User{})

	history, err := models.SnapshotHistory(user.ID, types.NewMonth(2026, time.August))
	suite.Require().Nil(err)
	suite.Assert().Len(history, 0)
}

func (suite *TestSuiteStandard) TestSnapshotUserCascade() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2026, time.March)

	suite.createTestSnapshot(models.HealthScoreSnapshot{
		UserID:        user.ID,
		Month:         month,
		OverallStatus: "red",
	})

	err := models.DB.Delete(&user).Error
	suite.Require().Nil(err)

	_, err = models.SnapshotForMonth(user.ID, month)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
