// internal/service/progress_service.go
package service

import (
	"context"
	"errors"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService はセッションの進捗状態 (Onboarding | Active{area, step}) を管理します
type ProgressService interface {
	// LoadState は行がなければオンボーディング状態を返します。読み込み失敗時はエラーも返します
	LoadState(ctx context.Context, sessionID string) (model.ProgressState, error)
	GetProgress(ctx context.Context, sessionID string) (*model.ProgressView, error)
	GetOnboarding(ctx context.Context, sessionID string) (*model.OnboardingView, error)
	CompleteOnboarding(ctx context.Context, sessionID string, areaID uuid.UUID) (*model.DashboardView, error)
	SwitchArea(ctx context.Context, sessionID string, areaID uuid.UUID) (*model.DashboardView, error)
	AdvanceStep(ctx context.Context, sessionID string) (*model.ProgressView, error)
}

type progressService struct {
	db           *gorm.DB
	progressRepo repository.ProgressRepository
	areaRepo     repository.AreaRepository
	daily        DailyService
	dashboard    DashboardService
	cal          Calendar
}

func NewProgressService(
	db *gorm.DB,
	progressRepo repository.ProgressRepository,
	areaRepo repository.AreaRepository,
	daily DailyService,
	dashboard DashboardService,
	cal Calendar,
) ProgressService {
	return &progressService{
		db:           db,
		progressRepo: progressRepo,
		areaRepo:     areaRepo,
		daily:        daily,
		dashboard:    dashboard,
		cal:          cal,
	}
}

func (s *progressService) LoadState(ctx context.Context, sessionID string) (model.ProgressState, error) {
	row, err := s.progressRepo.FindBySessionID(ctx, s.db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.StateOf(nil), nil
		}
		return model.StateOf(nil), err
	}
	return model.StateOf(row), nil
}

func (s *progressService) GetProgress(ctx context.Context, sessionID string) (*model.ProgressView, error) {
	state, err := s.LoadState(ctx, sessionID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load progress, treating as no data", "error", err)
	}
	view := model.NewProgressView(sessionID, state)
	return &view, nil
}

func (s *progressService) GetOnboarding(ctx context.Context, sessionID string) (*model.OnboardingView, error) {
	logger := middleware.GetLogger(ctx)

	areas, err := s.areaRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to load life areas for onboarding, treating as no data", "error", err)
		areas = []*model.LifeArea{}
	}
	progress, _ := s.GetProgress(ctx, sessionID)
	return &model.OnboardingView{Progress: *progress, Areas: areas}, nil
}

// resolveArea はカタログに存在する領域かどうかを確認します
func (s *progressService) resolveArea(ctx context.Context, areaID uuid.UUID) (*model.LifeArea, error) {
	area, err := s.areaRepo.FindByID(ctx, s.db, areaID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("AREA_NOT_FOUND", "Lĩnh vực không tồn tại.", "area_id", model.ErrInvalidInput)
		}
		return nil, internalError("Không thể tải lĩnh vực.", err)
	}
	return area, nil
}

func (s *progressService) CompleteOnboarding(ctx context.Context, sessionID string, areaID uuid.UUID) (*model.DashboardView, error) {
	logger := middleware.GetLogger(ctx).With("area_id", areaID)

	area, err := s.resolveArea(ctx, areaID)
	if err != nil {
		logger.Warn("Onboarding aborted: area could not be resolved", "error", err)
		return nil, err
	}

	// オンボーディング画面は常に到達可能なので、現在の状態に関係なく完了できる
	next, err := model.StateOf(nil).CompleteOnboarding(area.ID)
	if err != nil {
		return nil, model.NewAppError("INVALID_AREA", "Lĩnh vực không hợp lệ.", "area_id", err)
	}

	if err := s.progressRepo.Upsert(ctx, s.db, next.ToRow(sessionID, s.cal.now(ctx))); err != nil {
		// 進捗の保存に失敗した場合は完了処理を中断する (日次アクションも生成しない)
		logger.Error("Failed to upsert progress, onboarding aborted", "error", err)
		return nil, internalError("Không thể lưu tiến trình. Vui lòng thử lại.", err)
	}
	logger.Info("Onboarding completed", "area", area.Name)

	if _, err := s.daily.EnsureActions(ctx, sessionID, area.ID, s.cal.today(ctx)); err != nil {
		// 次のダッシュボード表示で再度生成される
		logger.Warn("Daily action generation after onboarding failed", "error", err)
	}

	return s.dashboard.Load(ctx, sessionID)
}

func (s *progressService) SwitchArea(ctx context.Context, sessionID string, areaID uuid.UUID) (*model.DashboardView, error) {
	logger := middleware.GetLogger(ctx).With("area_id", areaID)

	state, err := s.LoadState(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load progress before switching area", "error", err)
		return nil, internalError("Không thể tải tiến trình.", err)
	}
	if _, err := state.SwitchArea(areaID); err != nil {
		if errors.Is(err, model.ErrOnboardingRequired) {
			return nil, model.NewAppError("ONBOARDING_REQUIRED", "Vui lòng hoàn thành bước khởi đầu trước.", "", err)
		}
		return nil, model.NewAppError("INVALID_AREA", "Lĩnh vực không hợp lệ.", "area_id", err)
	}

	area, err := s.resolveArea(ctx, areaID)
	if err != nil {
		return nil, err
	}

	if err := s.progressRepo.UpdateArea(ctx, s.db, sessionID, area.ID, s.cal.now(ctx)); err != nil {
		logger.Error("Failed to switch area", "error", err)
		return nil, internalError("Không thể chuyển lĩnh vực.", err)
	}
	logger.Info("Switched area, reloading snapshot", "area", area.Name)

	// 部分的な無効化はせず、進捗と依存するビューをすべて読み直す
	return s.dashboard.Load(ctx, sessionID)
}

func (s *progressService) AdvanceStep(ctx context.Context, sessionID string) (*model.ProgressView, error) {
	logger := middleware.GetLogger(ctx)

	state, err := s.LoadState(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load progress before advancing step", "error", err)
		return nil, internalError("Không thể tải tiến trình.", err)
	}
	next, err := state.AdvanceStep()
	if err != nil {
		return nil, model.NewAppError("ONBOARDING_REQUIRED", "Vui lòng hoàn thành bước khởi đầu trước.", "", err)
	}
	if next.Step != state.Step {
		if err := s.progressRepo.UpdateStep(ctx, s.db, sessionID, next.Step, s.cal.now(ctx)); err != nil {
			logger.Error("Failed to advance step", "error", err)
			return nil, internalError("Không thể cập nhật bước.", err)
		}
		logger.Info("Advanced step", "from", state.Step, "to", next.Step)
	}
	view := model.NewProgressView(sessionID, next)
	return &view, nil
}
