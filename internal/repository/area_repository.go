// internal/repository/area_repository.go
package repository

import (
	"context"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AreaRepository は life_areas カタログ (読み取り専用) へのアクセス
type AreaRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.LifeArea, error) // sort_order 昇順
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.LifeArea, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.LifeArea, error)
	// Upsert はシーダー専用 (name で衝突した場合は表示項目を更新)。area は保存された行で上書きされる
	Upsert(ctx context.Context, db *gorm.DB, area *model.LifeArea) error
}

type gormAreaRepository struct{}

func NewGormAreaRepository() AreaRepository {
	return &gormAreaRepository{}
}

func (r *gormAreaRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.LifeArea, error) {
	return find[model.LifeArea](ctx, db, Query{}.Order("sort_order", false))
}

func (r *gormAreaRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.LifeArea, error) {
	return first[model.LifeArea](ctx, db, Where(Eq{"id", id}))
}

func (r *gormAreaRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.LifeArea, error) {
	return first[model.LifeArea](ctx, db, Where(Eq{"name", name}))
}

func (r *gormAreaRepository) Upsert(ctx context.Context, db *gorm.DB, area *model.LifeArea) error {
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "emoji", "description", "sort_order"}),
	}).Create(area)
	if err := translateError(result.Error); err != nil {
		return err
	}
	// 既存行と衝突した場合、area.ID は保存されていない。name で読み直す
	stored, err := r.FindByName(ctx, db, area.Name)
	if err != nil {
		return err
	}
	*area = *stored
	return nil
}
