// internal/service/dashboard_service.go
package service

import (
	"context"
	"errors"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/navigation"
	"go_5s_keep/internal/repository"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardService はダッシュボード / デイリーモードのスナップショットを組み立てます。
// 領域切り替え後の「全体の再読み込み」もこのスナップショットで行います。
type DashboardService interface {
	Load(ctx context.Context, sessionID string) (*model.DashboardView, error)
}

type dashboardService struct {
	db           *gorm.DB
	progressRepo repository.ProgressRepository
	areaRepo     repository.AreaRepository
	daily        DailyService
	cal          Calendar
}

func NewDashboardService(db *gorm.DB, progressRepo repository.ProgressRepository, areaRepo repository.AreaRepository, daily DailyService, cal Calendar) DashboardService {
	return &dashboardService{
		db:           db,
		progressRepo: progressRepo,
		areaRepo:     areaRepo,
		daily:        daily,
		cal:          cal,
	}
}

func (s *dashboardService) Load(ctx context.Context, sessionID string) (*model.DashboardView, error) {
	logger := middleware.GetLogger(ctx)

	var (
		row                   *model.UserSession
		areas                 []*model.LifeArea
		progressErr, areasErr error
	)

	// 片方の失敗でもう片方を止めないよう、errgroup にはエラーを返さない。
	// 失敗は Wait の後で「データなし」として扱う
	var g errgroup.Group
	g.Go(func() error {
		row, progressErr = s.progressRepo.FindBySessionID(ctx, s.db, sessionID)
		return nil
	})
	g.Go(func() error {
		areas, areasErr = s.areaRepo.FindAll(ctx, s.db)
		return nil
	})
	g.Wait()

	if progressErr != nil && !errors.Is(progressErr, model.ErrNotFound) {
		logger.Error("Failed to load progress for dashboard, treating as no data", "error", progressErr)
		row = nil
	}
	if areasErr != nil {
		logger.Error("Failed to load life areas for dashboard, treating as no data", "error", areasErr)
		areas = nil
	}

	state := model.StateOf(row)
	view := &model.DashboardView{
		Progress: model.NewProgressView(sessionID, state),
		Date:     s.cal.today(ctx),
		Actions:  []*model.DailyAction{},
	}

	if state.NeedsOnboarding() {
		view.Areas = navigation.AreaEntries(areas, nil)
		return view, nil
	}

	// 領域がカタログにない場合は「未知」としてラベルなしで表示する
	view.Area = model.FindArea(areas, state.AreaID)
	view.Areas = navigation.AreaEntries(areas, view.Area)
	view.Steps = navigation.StepLinks(view.Area)

	if view.Area == nil {
		logger.Warn("Current area not found in catalog", "area_id", state.AreaID)
		return view, nil
	}

	actions, err := s.daily.EnsureActions(ctx, sessionID, view.Area.ID, view.Date)
	if err != nil {
		// 今日のアクションが読めなくても画面は表示する (次の訪問で再生成)
		logger.Error("Failed to ensure daily actions, showing empty list", "date", view.Date, "error", err)
		return view, nil
	}
	view.Actions = actions
	view.Counter = model.CountProgress(actions)
	return view, nil
}
