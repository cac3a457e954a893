// internal/model/daily.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ActionStatus は日次アクションの状態
type ActionStatus string

const (
	StatusPending ActionStatus = "pending"
	StatusDone    ActionStatus = "done"
	StatusSkipped ActionStatus = "skipped"
)

func (s ActionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDone, StatusSkipped:
		return true
	}
	return false
}

// DailyAction は (session, area, date) ごとに生成される固定プロンプトの1件
// (session_id, area_id, action_date, slot) の複合ユニークインデックスで二重生成を防ぐ
type DailyAction struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  string       `gorm:"type:varchar(128);not null;uniqueIndex:uq_daily_action_slot,priority:1" json:"session_id"`
	AreaID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_daily_action_slot,priority:2" json:"area_id"`
	ActionDate string       `gorm:"type:varchar(10);not null;uniqueIndex:uq_daily_action_slot,priority:3" json:"action_date"` // YYYY-MM-DD
	Slot       int          `gorm:"not null;uniqueIndex:uq_daily_action_slot,priority:4" json:"slot"`
	ActionText string       `gorm:"not null" json:"action_text"`
	Status     ActionStatus `gorm:"type:varchar(8);not null;index" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (DailyAction) TableName() string {
	return "daily_actions"
}

// DailyProgress は「完了数 / 全体数」のカウンタ (done のみを完了とみなす)
type DailyProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func CountProgress(actions []*DailyAction) DailyProgress {
	p := DailyProgress{Total: len(actions)}
	for _, a := range actions {
		if a.Status == StatusDone {
			p.Completed++
		}
	}
	return p
}

// UpdateActionStatusRequest は日次アクションの状態更新リクエスト
type UpdateActionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending done skipped"`
}
