// internal/model/area.go
package model

import "github.com/google/uuid"

// LifeArea は改善対象の生活領域 (カタログ、読み取り専用)
// 行はアプリ外 (cmd/seed) で投入される
type LifeArea struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"` // URLで使うスラッグ
	DisplayName string    `gorm:"not null" json:"display_name"`
	Emoji       string    `gorm:"type:varchar(16)" json:"emoji"`
	Description string    `json:"description"`
	SortOrder   int       `gorm:"not null;index" json:"sort_order"`
}

func (LifeArea) TableName() string {
	return "life_areas"
}

// FindArea はIDでカタログを検索します。見つからない場合は nil (未知の領域として扱う)
func FindArea(areas []*LifeArea, id uuid.UUID) *LifeArea {
	for _, a := range areas {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// FindAreaByName はスラッグでカタログを検索します
func FindAreaByName(areas []*LifeArea, name string) *LifeArea {
	for _, a := range areas {
		if a.Name == name {
			return a
		}
	}
	return nil
}
