// internal/repository/catalog.go
package repository

import (
	"context"
	"fmt"

	"go_5s_keep/internal/model"

	"gorm.io/gorm"
)

// DefaultCatalog は cmd/seed が投入する生活領域の一覧 (sort_order 順)
func DefaultCatalog() []*model.LifeArea {
	return []*model.LifeArea{
		{Name: "work", DisplayName: "Công việc", Emoji: "💼", Description: "Email, cuộc họp, dự án và thói quen làm việc", SortOrder: 1},
		{Name: "home", DisplayName: "Nhà cửa", Emoji: "🏠", Description: "Không gian sống, đồ đạc và việc nhà", SortOrder: 2},
		{Name: "health", DisplayName: "Sức khỏe", Emoji: "💪", Description: "Giấc ngủ, ăn uống và vận động", SortOrder: 3},
		{Name: "finance", DisplayName: "Tài chính", Emoji: "💰", Description: "Chi tiêu, đăng ký dịch vụ và giấy tờ", SortOrder: 4},
		{Name: "relationships", DisplayName: "Các mối quan hệ", Emoji: "🤝", Description: "Gia đình, bạn bè và thời gian dành cho nhau", SortOrder: 5},
		{Name: "mind", DisplayName: "Tâm trí", Emoji: "🧠", Description: "Suy nghĩ, lo lắng và thông tin tiếp nhận mỗi ngày", SortOrder: 6},
	}
}

// SeedCatalog は1トランザクションでカタログを投入します。何度実行しても同じ結果になる
func SeedCatalog(ctx context.Context, db *gorm.DB, repo AreaRepository, areas []*model.LifeArea) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range areas {
			if err := repo.Upsert(ctx, tx, a); err != nil {
				return fmt.Errorf("seed area %q: %w", a.Name, err)
			}
		}
		return nil
	})
}
