// Package mocks はサービスインターフェースの testify モックです。
package mocks

import (
	"context"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- AreaService ---

type AreaService struct {
	mock.Mock
}

func (m *AreaService) ListAreas(ctx context.Context) ([]*model.LifeArea, error) {
	ret := m.Called(ctx)
	areas, _ := ret.Get(0).([]*model.LifeArea)
	return areas, ret.Error(1)
}

// --- ProgressService ---

type ProgressService struct {
	mock.Mock
}

func (m *ProgressService) LoadState(ctx context.Context, sessionID string) (model.ProgressState, error) {
	ret := m.Called(ctx, sessionID)
	state, _ := ret.Get(0).(model.ProgressState)
	return state, ret.Error(1)
}

func (m *ProgressService) GetProgress(ctx context.Context, sessionID string) (*model.ProgressView, error) {
	ret := m.Called(ctx, sessionID)
	view, _ := ret.Get(0).(*model.ProgressView)
	return view, ret.Error(1)
}

func (m *ProgressService) GetOnboarding(ctx context.Context, sessionID string) (*model.OnboardingView, error) {
	ret := m.Called(ctx, sessionID)
	view, _ := ret.Get(0).(*model.OnboardingView)
	return view, ret.Error(1)
}

func (m *ProgressService) CompleteOnboarding(ctx context.Context, sessionID string, areaID uuid.UUID) (*model.DashboardView, error) {
	ret := m.Called(ctx, sessionID, areaID)
	view, _ := ret.Get(0).(*model.DashboardView)
	return view, ret.Error(1)
}

func (m *ProgressService) SwitchArea(ctx context.Context, sessionID string, areaID uuid.UUID) (*model.DashboardView, error) {
	ret := m.Called(ctx, sessionID, areaID)
	view, _ := ret.Get(0).(*model.DashboardView)
	return view, ret.Error(1)
}

func (m *ProgressService) AdvanceStep(ctx context.Context, sessionID string) (*model.ProgressView, error) {
	ret := m.Called(ctx, sessionID)
	view, _ := ret.Get(0).(*model.ProgressView)
	return view, ret.Error(1)
}

// --- DailyService ---

type DailyService struct {
	mock.Mock
}

func (m *DailyService) EnsureActions(ctx context.Context, sessionID string, areaID uuid.UUID, date string) ([]*model.DailyAction, error) {
	ret := m.Called(ctx, sessionID, areaID, date)
	rows, _ := ret.Get(0).([]*model.DailyAction)
	return rows, ret.Error(1)
}

func (m *DailyService) SetStatus(ctx context.Context, sessionID string, actionID uuid.UUID, status model.ActionStatus) (*model.DailyAction, error) {
	ret := m.Called(ctx, sessionID, actionID, status)
	row, _ := ret.Get(0).(*model.DailyAction)
	return row, ret.Error(1)
}

// --- DashboardService ---

type DashboardService struct {
	mock.Mock
}

func (m *DashboardService) Load(ctx context.Context, sessionID string) (*model.DashboardView, error) {
	ret := m.Called(ctx, sessionID)
	view, _ := ret.Get(0).(*model.DashboardView)
	return view, ret.Error(1)
}

// --- WeeklyService ---

type WeeklyService struct {
	mock.Mock
}

func (m *WeeklyService) Load(ctx context.Context, sessionID string) (*model.WeeklyReviewView, error) {
	ret := m.Called(ctx, sessionID)
	view, _ := ret.Get(0).(*model.WeeklyReviewView)
	return view, ret.Error(1)
}

func (m *WeeklyService) Save(ctx context.Context, sessionID string, req *model.SaveWeeklyReviewRequest) (*model.WeeklyReviewView, error) {
	ret := m.Called(ctx, sessionID, req)
	view, _ := ret.Get(0).(*model.WeeklyReviewView)
	return view, ret.Error(1)
}

// --- StageService ---

type StageService[T any] struct {
	mock.Mock
}

func (m *StageService[T]) Load(ctx context.Context, sessionID, areaName string) (*model.StageView[T], error) {
	ret := m.Called(ctx, sessionID, areaName)
	view, _ := ret.Get(0).(*model.StageView[T])
	return view, ret.Error(1)
}

func (m *StageService[T]) Create(ctx context.Context, sessionID, areaName string, row *T) (*T, error) {
	ret := m.Called(ctx, sessionID, areaName, row)
	created, _ := ret.Get(0).(*T)
	return created, ret.Error(1)
}

func (m *StageService[T]) Update(ctx context.Context, sessionID string, id uuid.UUID, fields map[string]interface{}) (*T, error) {
	ret := m.Called(ctx, sessionID, id, fields)
	row, _ := ret.Get(0).(*T)
	return row, ret.Error(1)
}

func (m *StageService[T]) Delete(ctx context.Context, sessionID string, id uuid.UUID) error {
	return m.Called(ctx, sessionID, id).Error(0)
}
