// internal/repository/progress_repository.go
package repository

import (
	"context"
	"time"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository は user_sessions (1セッション1行) へのアクセス
type ProgressRepository interface {
	// FindBySessionID は行がなければ model.ErrNotFound
	FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*model.UserSession, error)
	// Upsert は session_id の衝突時に進捗カラムを上書きします
	Upsert(ctx context.Context, db *gorm.DB, row *model.UserSession) error
	UpdateArea(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID, now time.Time) error
	UpdateStep(ctx context.Context, db *gorm.DB, sessionID string, step model.Step, now time.Time) error
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*model.UserSession, error) {
	return first[model.UserSession](ctx, db, scope(sessionID))
}

func (r *gormProgressRepository) Upsert(ctx context.Context, db *gorm.DB, row *model.UserSession) error {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_area_id", "current_step", "onboarding_completed", "updated_at"}),
	}).Create(row)
	return translateError(result.Error)
}

func (r *gormProgressRepository) UpdateArea(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID, now time.Time) error {
	return update[model.UserSession](ctx, db, scope(sessionID), map[string]interface{}{
		"current_area_id": areaID,
		"updated_at":      now,
	})
}

func (r *gormProgressRepository) UpdateStep(ctx context.Context, db *gorm.DB, sessionID string, step model.Step, now time.Time) error {
	return update[model.UserSession](ctx, db, scope(sessionID), map[string]interface{}{
		"current_step": step,
		"updated_at":   now,
	})
}
