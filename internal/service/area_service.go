// internal/service/area_service.go
package service

import (
	"context"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/repository"

	"gorm.io/gorm"
)

// AreaService は生活領域カタログ (sort_order 順) を提供します
type AreaService interface {
	ListAreas(ctx context.Context) ([]*model.LifeArea, error)
}

type areaService struct {
	db       *gorm.DB
	areaRepo repository.AreaRepository
}

func NewAreaService(db *gorm.DB, areaRepo repository.AreaRepository) AreaService {
	return &areaService{db: db, areaRepo: areaRepo}
}

func (s *areaService) ListAreas(ctx context.Context) ([]*model.LifeArea, error) {
	logger := middleware.GetLogger(ctx)

	areas, err := s.areaRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list life areas", "error", err)
		return nil, internalError("Không thể tải danh sách lĩnh vực.", err)
	}
	logger.Debug("Listed life areas", "count", len(areas))
	return areas, nil
}
