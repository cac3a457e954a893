// internal/service/weekly_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"go_5s_keep/internal/config"
	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyService は週ごとの振り返り (1セッション1週1件) を扱います。
// 書き込めるのは今週の分だけです。
type WeeklyService interface {
	Load(ctx context.Context, sessionID string) (*model.WeeklyReviewView, error)
	Save(ctx context.Context, sessionID string, req *model.SaveWeeklyReviewRequest) (*model.WeeklyReviewView, error)
}

type weeklyService struct {
	db           *gorm.DB
	weeklyRepo   repository.WeeklyRepository
	progressRepo repository.ProgressRepository
	areaRepo     repository.AreaRepository
	cfg          *config.Config
	cal          Calendar
}

func NewWeeklyService(
	db *gorm.DB,
	weeklyRepo repository.WeeklyRepository,
	progressRepo repository.ProgressRepository,
	areaRepo repository.AreaRepository,
	cfg *config.Config,
	cal Calendar,
) WeeklyService {
	return &weeklyService{
		db:           db,
		weeklyRepo:   weeklyRepo,
		progressRepo: progressRepo,
		areaRepo:     areaRepo,
		cfg:          cfg,
		cal:          cal,
	}
}

func (s *weeklyService) Load(ctx context.Context, sessionID string) (*model.WeeklyReviewView, error) {
	logger := middleware.GetLogger(ctx)
	week := s.cal.weekStart(ctx)

	view := &model.WeeklyReviewView{
		WeekStartDate: week,
		History:       []*model.WeeklyReview{},
	}

	current, err := s.weeklyRepo.FindByWeek(ctx, s.db, sessionID, week)
	switch {
	case err == nil:
		view.Current = current
	case errors.Is(err, model.ErrNotFound):
	default:
		logger.Error("Failed to load current weekly review, treating as no data", "week_start_date", week, "error", err)
	}

	history, err := s.weeklyRepo.FindRecent(ctx, s.db, sessionID, s.cfg.App.ReviewHistoryLimit)
	if err != nil {
		logger.Error("Failed to load weekly review history, treating as no data", "error", err)
	} else {
		view.History = history
	}

	view.Area = s.currentArea(ctx, sessionID)
	return view, nil
}

// currentArea は見出し用の現在の領域。見つからなければ nil
func (s *weeklyService) currentArea(ctx context.Context, sessionID string) *model.LifeArea {
	row, err := s.progressRepo.FindBySessionID(ctx, s.db, sessionID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("Failed to load progress for weekly review", "error", err)
		}
		return nil
	}
	state := model.StateOf(row)
	if state.NeedsOnboarding() || state.AreaID == uuid.Nil {
		return nil
	}
	area, err := s.areaRepo.FindByID(ctx, s.db, state.AreaID)
	if err != nil {
		return nil
	}
	return area
}

func (s *weeklyService) Save(ctx context.Context, sessionID string, req *model.SaveWeeklyReviewRequest) (*model.WeeklyReviewView, error) {
	week := s.cal.weekStart(ctx)
	logger := middleware.GetLogger(ctx).With("week_start_date", week)

	review := &model.WeeklyReview{
		ID:            uuid.New(),
		SessionID:     sessionID,
		WeekStartDate: week,
		WhatClearer:   strings.TrimSpace(req.WhatClearer),
		WhatLighter:   strings.TrimSpace(req.WhatLighter),
		WhatAdjust:    strings.TrimSpace(req.WhatAdjust),
		UpdatedAt:     s.cal.now(ctx),
	}
	if err := s.weeklyRepo.Upsert(ctx, s.db, review); err != nil {
		logger.Error("Failed to save weekly review", "error", err)
		return nil, internalError("Không thể lưu bài đánh giá tuần.", err)
	}
	logger.Info("Weekly review saved")

	return s.Load(ctx, sessionID)
}
