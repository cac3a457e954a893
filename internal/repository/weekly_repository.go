// internal/repository/weekly_repository.go
package repository

import (
	"context"

	"go_5s_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyRepository interface {
	// FindByWeek は行がなければ model.ErrNotFound
	FindByWeek(ctx context.Context, db *gorm.DB, sessionID, weekStart string) (*model.WeeklyReview, error)
	// FindRecent は week_start_date 降順で最大 limit 件
	FindRecent(ctx context.Context, db *gorm.DB, sessionID string, limit int) ([]*model.WeeklyReview, error)
	// Upsert は (session_id, week_start_date) が既にあれば3つのテキストだけを更新します
	Upsert(ctx context.Context, db *gorm.DB, review *model.WeeklyReview) error
}

type gormWeeklyRepository struct{}

func NewGormWeeklyRepository() WeeklyRepository {
	return &gormWeeklyRepository{}
}

func (r *gormWeeklyRepository) FindByWeek(ctx context.Context, db *gorm.DB, sessionID, weekStart string) (*model.WeeklyReview, error) {
	return first[model.WeeklyReview](ctx, db, scope(sessionID, Eq{"week_start_date", weekStart}))
}

func (r *gormWeeklyRepository) FindRecent(ctx context.Context, db *gorm.DB, sessionID string, limit int) ([]*model.WeeklyReview, error) {
	return find[model.WeeklyReview](ctx, db, scope(sessionID).Order("week_start_date", true).Take(limit))
}

func (r *gormWeeklyRepository) Upsert(ctx context.Context, db *gorm.DB, review *model.WeeklyReview) error {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "week_start_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"what_clearer", "what_lighter", "what_adjust", "updated_at"}),
	}).Create(review)
	if err := translateError(result.Error); err != nil {
		return err
	}
	stored, err := r.FindByWeek(ctx, db, review.SessionID, review.WeekStartDate)
	if err != nil {
		return err
	}
	*review = *stored
	return nil
}
