// Package mocks はリポジトリインターフェースの testify モックです。
package mocks

import (
	"context"
	"time"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- AreaRepository ---

type AreaRepository struct {
	mock.Mock
}

func (m *AreaRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.LifeArea, error) {
	ret := m.Called(ctx, db)
	areas, _ := ret.Get(0).([]*model.LifeArea)
	return areas, ret.Error(1)
}

func (m *AreaRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.LifeArea, error) {
	ret := m.Called(ctx, db, id)
	area, _ := ret.Get(0).(*model.LifeArea)
	return area, ret.Error(1)
}

func (m *AreaRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.LifeArea, error) {
	ret := m.Called(ctx, db, name)
	area, _ := ret.Get(0).(*model.LifeArea)
	return area, ret.Error(1)
}

func (m *AreaRepository) Upsert(ctx context.Context, db *gorm.DB, area *model.LifeArea) error {
	return m.Called(ctx, db, area).Error(0)
}

// --- ProgressRepository ---

type ProgressRepository struct {
	mock.Mock
}

func (m *ProgressRepository) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*model.UserSession, error) {
	ret := m.Called(ctx, db, sessionID)
	row, _ := ret.Get(0).(*model.UserSession)
	return row, ret.Error(1)
}

func (m *ProgressRepository) Upsert(ctx context.Context, db *gorm.DB, row *model.UserSession) error {
	return m.Called(ctx, db, row).Error(0)
}

func (m *ProgressRepository) UpdateArea(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID, now time.Time) error {
	return m.Called(ctx, db, sessionID, areaID, now).Error(0)
}

func (m *ProgressRepository) UpdateStep(ctx context.Context, db *gorm.DB, sessionID string, step model.Step, now time.Time) error {
	return m.Called(ctx, db, sessionID, step, now).Error(0)
}

// --- DailyRepository ---

type DailyRepository struct {
	mock.Mock
}

func (m *DailyRepository) FindForDate(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID, date string) ([]*model.DailyAction, error) {
	ret := m.Called(ctx, db, sessionID, areaID, date)
	rows, _ := ret.Get(0).([]*model.DailyAction)
	return rows, ret.Error(1)
}

func (m *DailyRepository) InsertMissing(ctx context.Context, db *gorm.DB, rows []*model.DailyAction) (int64, error) {
	ret := m.Called(ctx, db, rows)
	n, _ := ret.Get(0).(int64)
	return n, ret.Error(1)
}

func (m *DailyRepository) UpdateStatus(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID, status model.ActionStatus) (*model.DailyAction, error) {
	ret := m.Called(ctx, db, sessionID, id, status)
	row, _ := ret.Get(0).(*model.DailyAction)
	return row, ret.Error(1)
}

// --- WeeklyRepository ---

type WeeklyRepository struct {
	mock.Mock
}

func (m *WeeklyRepository) FindByWeek(ctx context.Context, db *gorm.DB, sessionID, weekStart string) (*model.WeeklyReview, error) {
	ret := m.Called(ctx, db, sessionID, weekStart)
	row, _ := ret.Get(0).(*model.WeeklyReview)
	return row, ret.Error(1)
}

func (m *WeeklyRepository) FindRecent(ctx context.Context, db *gorm.DB, sessionID string, limit int) ([]*model.WeeklyReview, error) {
	ret := m.Called(ctx, db, sessionID, limit)
	rows, _ := ret.Get(0).([]*model.WeeklyReview)
	return rows, ret.Error(1)
}

func (m *WeeklyRepository) Upsert(ctx context.Context, db *gorm.DB, review *model.WeeklyReview) error {
	return m.Called(ctx, db, review).Error(0)
}

// --- StageRepository ---

type StageRepository[T any] struct {
	mock.Mock
}

func (m *StageRepository[T]) List(ctx context.Context, db *gorm.DB, sessionID string, areaID uuid.UUID) ([]*T, error) {
	ret := m.Called(ctx, db, sessionID, areaID)
	rows, _ := ret.Get(0).([]*T)
	return rows, ret.Error(1)
}

func (m *StageRepository[T]) Create(ctx context.Context, db *gorm.DB, row *T) error {
	return m.Called(ctx, db, row).Error(0)
}

func (m *StageRepository[T]) Update(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID, fields map[string]interface{}) (*T, error) {
	ret := m.Called(ctx, db, sessionID, id, fields)
	row, _ := ret.Get(0).(*T)
	return row, ret.Error(1)
}

func (m *StageRepository[T]) Delete(ctx context.Context, db *gorm.DB, sessionID string, id uuid.UUID) error {
	return m.Called(ctx, db, sessionID, id).Error(0)
}
