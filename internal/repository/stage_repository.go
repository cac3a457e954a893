// internal/repository/stage_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StageRepository は S1〜S5 の各コレクションに共通するアクセス (session + area でスコープ)
type StageRepository[T any] interface {
	List(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID) ([]*T, error)
	Create(ctx context.Context, db *gorm.DB, row *T) error
	// Update は id とセッションで行を特定してカラムを部分更新し、更新後の行を返します
	Update(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID) error
}

type gormStageRepository[T any] struct {
	orderBy string // 降順で並べるカラム
}

// NewGormStageRepository は orderBy カラムの降順で一覧を返すリポジトリを作ります
// (S1/S2/S4/S5 は created_at、S3 は reflection_date)
func NewGormStageRepository[T any](orderBy string) StageRepository[T] {
	return &gormStageRepository[T]{orderBy: orderBy}
}

func (r *gormStageRepository[T]) List(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID) ([]*T, error) {
	return find[T](ctx, db, scope(sessionID, Eq{"area_id", areaID}).Order(r.orderBy, true))
}

func (r *gormStageRepository[T]) Create(ctx context.Context, db *gorm.DB, row *T) error {
	return insert(ctx, db, row)
}

func (r *gormStageRepository[T]) Update(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID, fields map[string]interface{}) (*T, error) {
	q := scope(sessionID, Eq{"id", id})
	if err := update[T](ctx, db, q, fields); err != nil {
		return nil, err
	}
	return first[T](ctx, db, q)
}

func (r *gormStageRepository[T]) Delete(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID) error {
	return remove[T](ctx, db, scope(sessionID, Eq{"id", id}))
}
