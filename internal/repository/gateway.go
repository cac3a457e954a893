// internal/repository/gateway.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5s_keep/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Eq は完全一致のフィルタ条件
type Eq struct {
	Column string
	Value  interface{}
}

// Query はすべてのコレクションに共通する問い合わせの形
// (完全一致フィルタ複数、単一カラムでの並び替え、任意の件数制限)
type Query struct {
	Filters []Eq
	OrderBy string
	Desc    bool
	Limit   int
}

func Where(filters ...Eq) Query {
	return Query{Filters: filters}
}

func (q Query) Order(column string, desc bool) Query {
	q.OrderBy = column
	q.Desc = desc
	return q
}

func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}

// scope はセッション (+領域) での絞り込み条件を作る
func scope(sessionID string, extra ...Eq) Query {
	return Where(append([]Eq{{Column: "session_id", Value: sessionID}}, extra...)...)
}

func (q Query) apply(db *gorm.DB) *gorm.DB {
	for _, f := range q.Filters {
		db = db.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	if q.OrderBy != "" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Desc})
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}

func find[T any](ctx context.Context, db *gorm.DB, q Query) ([]*T, error) {
	rows := make([]*T, 0)
	if err := q.apply(db.WithContext(ctx).Model(new(T))).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// first は条件に一致する1行を返します。なければ model.ErrNotFound
func first[T any](ctx context.Context, db *gorm.DB, q Query) (*T, error) {
	var row T
	if err := q.apply(db.WithContext(ctx).Model(new(T))).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

func insert[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return translateError(db.WithContext(ctx).Create(row).Error)
}

// update は条件に一致する行のカラムを部分更新します。一致する行がなければ model.ErrNotFound
func update[T any](ctx context.Context, db *gorm.DB, q Query, fields map[string]interface{}) error {
	if len(q.Filters) == 0 {
		return fmt.Errorf("update without filters: %w", model.ErrInvalidInput)
	}
	result := q.apply(db.WithContext(ctx).Model(new(T))).Updates(fields)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// remove は条件に一致する行を削除します。一致する行がなければ model.ErrNotFound
func remove[T any](ctx context.Context, db *gorm.DB, q Query) error {
	if len(q.Filters) == 0 {
		return fmt.Errorf("delete without filters: %w", model.ErrInvalidInput)
	}
	result := q.apply(db.WithContext(ctx)).Delete(new(T))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// translateError はドライバ固有のエラーをアプリケーションのエラーに変換します
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", model.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
