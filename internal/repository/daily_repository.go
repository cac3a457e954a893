// internal/repository/daily_repository.go
package repository

import (
	"context"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyRepository interface {
	// FindForDate は (session, area, date) の行を slot 順で返します
	FindForDate(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID, date string) ([]*model.DailyAction, error)
	// InsertMissing は一意キーと衝突する行を無視して挿入し、実際に挿入された件数を返します
	InsertMissing(ctx context.Context, db *gorm.DB, rows []*model.DailyAction) (int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID, status model.ActionStatus) (*model.DailyAction, error)
}

type gormDailyRepository struct{}

func NewGormDailyRepository() DailyRepository {
	return &gormDailyRepository{}
}

func (r *gormDailyRepository) FindForDate(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID, date string) ([]*model.DailyAction, error) {
	q := scope(sessionID, Eq{"area_id", areaID}, Eq{"action_date", date}).Order("slot", false)
	return find[model.DailyAction](ctx, db, q)
}

func (r *gormDailyRepository) InsertMissing(ctx context.Context, db *gorm.DB, rows []*model.DailyAction) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormDailyRepository) UpdateStatus(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID, status model.ActionStatus) (*model.DailyAction, error) {
	q := scope(sessionID, Eq{"id", id})
	if err := update[model.DailyAction](ctx, db, q, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return first[model.DailyAction](ctx, db, q)
}
