// internal/service/daily_service.go
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

// DailyService は日次アクションの生成と状態更新を扱います
type DailyService interface {
	// EnsureActions は (session, area, date) の行がなければ設定されたプロンプトを pending で生成し、slot 順で返します
	EnsureActions(ctx context.Context, sessionID string, areaID uuid.UUID, date string) ([]*model.DailyAction, error)
	SetStatus(ctx context.Context, sessionID string, actionID uuid.UUID, status model.ActionStatus) (*model.DailyAction, error)
}

type dailyService struct {
	db        *gorm.DB
	dailyRepo repository.DailyRepository
	cfg       *config.Config
}

func NewDailyService(db *gorm.DB, dailyRepo repository.DailyRepository, cfg *config.Config) DailyService {
	return &dailyService{db: db, dailyRepo: dailyRepo, cfg: cfg}
}

func (s *dailyService) EnsureActions(ctx context.Context, sessionID string, areaID uuid.UUID, date string) ([]*model.DailyAction, error) {
	logger := middleware.GetLogger(ctx).With("area_id", areaID, "date", date)

	var actions []*model.DailyAction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.dailyRepo.FindForDate(ctx, tx, sessionID, areaID, date)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			actions = existing
			return nil
		}

		rows := make([]*model.DailyAction, 0, len(s.cfg.App.DailyPrompts))
		for slot, prompt := range s.cfg.App.DailyPrompts {
			prompt = strings.TrimSpace(prompt)
			if prompt == "" {
				continue
			}
			rows = append(rows, &model.DailyAction{
				ID:         uuid.New(),
				SessionID:  sessionID,
				AreaID:     areaID,
				ActionDate: date,
				Slot:       slot,
				ActionText: prompt,
				Status:     model.StatusPending,
			})
		}
		inserted, err := s.dailyRepo.InsertMissing(ctx, tx, rows)
		if err != nil {
			return err
		}
		logger.Info("Generated daily actions", "inserted", inserted)

		// 生成されたIDを得るため再取得 (同時生成で先を越された場合もここで揃う)
		actions, err = s.dailyRepo.FindForDate(ctx, tx, sessionID, areaID, date)
		return err
	})
	if err != nil {
		logger.Error("Failed to ensure daily actions", "error", err)
		return nil, internalError("Không thể tạo hành động hằng ngày.", err)
	}
	return actions, nil
}

func (s *dailyService) SetStatus(ctx context.Context, sessionID string, actionID uuid.UUID, status model.ActionStatus) (*model.DailyAction, error) {
	logger := middleware.GetLogger(ctx).With("action_id", actionID, "status", status)

	if !status.Valid() {
		return nil, model.NewAppError("INVALID_STATUS", "Trạng thái không hợp lệ.", "status", model.ErrInvalidInput)
	}

	action, err := s.dailyRepo.UpdateStatus(ctx, s.db, sessionID, actionID, status)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Daily action not found for status update")
			return nil, model.NewAppError("ACTION_NOT_FOUND", "Không tìm thấy hành động.", "action_id", model.ErrNotFound)
		}
		logger.Error("Failed to update daily action status", "error", err)
		return nil, internalError("Không thể cập nhật trạng thái.", err)
	}
	logger.Info("Daily action status updated")
	return action, nil
}
