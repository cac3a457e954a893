// internal/model/weekly.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyReview は週に1件の振り返り ((session_id, week_start_date) で一意)
type WeeklyReview struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     string    `gorm:"type:varchar(128);not null;uniqueIndex:uq_weekly_review_week,priority:1" json:"session_id"`
	WeekStartDate string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_weekly_review_week,priority:2" json:"week_start_date"` // 月曜日 (YYYY-MM-DD)
	WhatClearer   string    `gorm:"not null" json:"what_clearer"`
	WhatLighter   string    `gorm:"not null" json:"what_lighter"`
	WhatAdjust    string    `gorm:"not null" json:"what_adjust"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (WeeklyReview) TableName() string {
	return "weekly_reviews"
}

// SaveWeeklyReviewRequest は今週の振り返り保存リクエスト
type SaveWeeklyReviewRequest struct {
	WhatClearer string `json:"what_clearer" validate:"max=4000"`
	WhatLighter string `json:"what_lighter" validate:"max=4000"`
	WhatAdjust  string `json:"what_adjust" validate:"max=4000"`
}

// WeeklyReviewView は振り返り画面のレスポンスDTO
type WeeklyReviewView struct {
	WeekStartDate string          `json:"week_start_date"`
	Area          *LifeArea       `json:"area"`
	Current       *WeeklyReview   `json:"current"`
	History       []*WeeklyReview `json:"history"`
}
