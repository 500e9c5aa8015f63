package models

import (
	"errors"
	"time"

	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// HealthScoreSnapshot is the persisted result of a health score computation
// for one user and month.
//
// It is a durable cache: recomputing for the same month upserts the score
// columns in place. The cached advice is only written by explicit advice
// generation, never by a score recomputation.
type HealthScoreSnapshot struct {
	Timestamps
	User   User        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID uuid.UUID   `gorm:"primaryKey"`
	Month  types.Month `gorm:"primaryKey"` // First day of the evaluated month

	SavingsRateScore            int
	FixedExpensesScore          int
	ExpenseDiversificationScore int
	TrendScore                  int

	OverallScore  int
	OverallStatus string

	CachedAdvice      string
	AdviceGeneratedAt *time.Time
}

var ErrSnapshotMonthNotUnique = errors.New("you can not create multiple snapshots for the same user and month")

// scoreColumns are the columns an upsert may touch. The advice cache is
// deliberately not part of this list.
var scoreColumns = []string{
	"savings_rate_score",
	"fixed_expenses_score",
	"expense_diversification_score",
	"trend_score",
	"overall_score",
	"overall_status",
	"updated_at",
}

// Upsert writes the score columns of the snapshot, inserting a new row or
// updating the existing one for the (user, month) pair. The insert-or-update
// runs as a single statement on the composite primary key, so concurrent
// computations for the same month cannot create duplicate rows.
func (s *HealthScoreSnapshot) Upsert() error {
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns(scoreColumns),
	}).Create(s).Error
}

// SaveAdvice caches generated advice on the snapshot without touching the
// score columns.
func (s *HealthScoreSnapshot) SaveAdvice(advice string, generatedAt time.Time) error {
	s.CachedAdvice = advice
	s.AdviceGeneratedAt = &generatedAt

	return DB.Model(s).Updates(map[string]interface{}{
		"cached_advice":       advice,
		"advice_generated_at": generatedAt,
	}).Error
}

// SnapshotForMonth returns the snapshot for a user and month.
func SnapshotForMonth(userID uuid.UUID, month types.Month) (HealthScoreSnapshot, error) {
	var snapshot HealthScoreSnapshot

	err := DB.
		Where("health_score_snapshots.user_id = ?", userID).
		Where("health_score_snapshots.month >= date(?)", month).
		Where("health_score_snapshots.month < date(?)", month.AddDate(0, 1)).
		First(&snapshot).Error

	return snapshot, err
}

// SnapshotHistory returns the snapshots of the trailing six calendar months
// for a user, the passed month and the five before it, oldest first.
func SnapshotHistory(userID uuid.UUID, month types.Month) ([]HealthScoreSnapshot, error) {
	var snapshots []HealthScoreSnapshot

	err := DB.
		Where("health_score_snapshots.user_id = ?", userID).
		Where("health_score_snapshots.month >= date(?)", month.AddDate(0, -5)).
		Where("health_score_snapshots.month < date(?)", month.AddDate(0, 1)).
		Order("date(health_score_snapshots.month) ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
