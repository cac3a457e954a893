// internal/service/stage_service.go
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

// StageService は S1〜S5 の各ステップに共通する一覧・作成・部分更新・削除を提供します。
// 領域はルートのスラッグで指定します。
type StageService[T any] interface {
	// Load は未知のスラッグに対しては Area が nil の空ビューを返します
	Load(ctx context.Context, sessionID, areaName string) (*model.StageView[T], error)
	// Create は空白のみの入力の場合は何もせず nil, nil を返します
	Create(ctx context.Context, sessionID, areaName string, row *T) (*T, error)
	Update(ctx context.Context, sessionID string, id uuid.UUID, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, sessionID string, id uuid.UUID) error
}

// StageOptions はステップごとの違い
type StageOptions[T any] struct {
	Step model.Step
	// Updatable は部分更新を許可するカラムと、その値の検証関数 (nil なら検証なし)
	Updatable map[string]func(v interface{}) bool
	// Partition は一覧の分割 (S1: keep/remove、S2: 優先度バケット)
	Partition func(items []*T) map[string][]*T
}

type stageService[T any, PT model.StageRecord[T]] struct {
	db       *gorm.DB
	repo     repository.StageRepository[T]
	areaRepo repository.AreaRepository
	opts     StageOptions[T]
	cal      Calendar
}

func NewStageService[T any, PT model.StageRecord[T]](
	db *gorm.DB,
	repo repository.StageRepository[T],
	areaRepo repository.AreaRepository,
	opts StageOptions[T],
	cal Calendar,
) StageService[T] {
	return &stageService[T, PT]{db: db, repo: repo, areaRepo: areaRepo, opts: opts, cal: cal}
}

func (s *stageService[T, PT]) findArea(ctx context.Context, areaName string) (*model.LifeArea, error) {
	area, err := s.areaRepo.FindByName(ctx, s.db, areaName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return area, nil
}

func (s *stageService[T, PT]) Load(ctx context.Context, sessionID, areaName string) (*model.StageView[T], error) {
	logger := middleware.GetLogger(ctx).With("step", s.opts.Step, "area", areaName)

	view := &model.StageView[T]{
		Step:  s.opts.Step,
		Title: s.opts.Step.Title(),
		Items: []*T{},
	}

	area, err := s.findArea(ctx, areaName)
	if err != nil {
		logger.Error("Failed to resolve area, treating as no data", "error", err)
	}
	view.Area = area

	if area != nil {
		items, err := s.repo.List(ctx, s.db, sessionID, area.ID)
		if err != nil {
			logger.Error("Failed to load stage items, treating as no data", "error", err)
		} else {
			view.Items = items
		}
	}
	if s.opts.Partition != nil {
		view.Partitions = s.opts.Partition(view.Items)
	}
	return view, nil
}

func (s *stageService[T, PT]) Create(ctx context.Context, sessionID, areaName string, row *T) (*T, error) {
	logger := middleware.GetLogger(ctx).With("step", s.opts.Step, "area", areaName)

	area, err := s.findArea(ctx, areaName)
	if err != nil {
		logger.Error("Failed to resolve area", "error", err)
		return nil, internalError("Không thể tải lĩnh vực.", err)
	}
	if area == nil {
		return nil, model.NewAppError("AREA_NOT_FOUND", "Lĩnh vực không tồn tại.", "area_name", model.ErrNotFound)
	}

	if !PT(row).Prepare(sessionID, area.ID, s.cal.today(ctx)) {
		logger.Debug("Blank input, skipping create")
		return nil, nil
	}

	if err := s.repo.Create(ctx, s.db, row); err != nil {
		logger.Error("Failed to create stage item", "error", err)
		return nil, internalError("Không thể lưu mục mới.", err)
	}
	logger.Info("Stage item created")
	return row, nil
}

func (s *stageService[T, PT]) Update(ctx context.Context, sessionID string, id uuid.UUID, fields map[string]interface{}) (*T, error) {
	logger := middleware.GetLogger(ctx).With("step", s.opts.Step, "item_id", id)

	if len(fields) == 0 {
		return nil, model.NewAppError("NO_FIELDS", "Không có trường nào để cập nhật.", "", model.ErrInvalidInput)
	}
	for col, v := range fields {
		check, ok := s.opts.Updatable[col]
		if !ok {
			return nil, model.NewAppError("FIELD_NOT_UPDATABLE", "Không thể cập nhật trường này.", col, model.ErrInvalidInput)
		}
		if check != nil && !check(v) {
			return nil, model.NewAppError("INVALID_VALUE", "Giá trị không hợp lệ.", col, model.ErrInvalidInput)
		}
	}

	row, err := s.repo.Update(ctx, s.db, sessionID, id, fields)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ITEM_NOT_FOUND", "Không tìm thấy mục.", "id", model.ErrNotFound)
		}
		logger.Error("Failed to update stage item", "error", err)
		return nil, internalError("Không thể cập nhật mục.", err)
	}
	logger.Info("Stage item updated")
	return row, nil
}

func (s *stageService[T, PT]) Delete(ctx context.Context, sessionID string, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("step", s.opts.Step, "item_id", id)

	if err := s.repo.Delete(ctx, s.db, sessionID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("ITEM_NOT_FOUND", "Không tìm thấy mục.", "id", model.ErrNotFound)
		}
		logger.Error("Failed to delete stage item", "error", err)
		return internalError("Không thể xóa mục.", err)
	}
	logger.Info("Stage item deleted")
	return nil
}
