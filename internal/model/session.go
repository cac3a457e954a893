// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const (
	SessionIDKey      ContextKey = "sessionID"
	ClientLocationKey ContextKey = "clientLocation"
	ClientDateKey     ContextKey = "clientDate"
)

// SessionHeader はセッションIDを運ぶHTTPヘッダー名
// DateHeader はクライアントのローカル日付 (YYYY-MM-DD)
const (
	SessionHeader  = "X-Session-ID"
	TimezoneHeader = "X-Client-Timezone"
	DateHeader     = "X-Client-Date"
)

// MaxSessionIDLength はセッションIDとして受け付ける最大長
const MaxSessionIDLength = 128

// UserSession はセッションごとの進捗状態 (1セッション1行)
type UserSession struct {
	SessionID           string     `gorm:"type:varchar(128);primaryKey" json:"session_id"`
	CurrentAreaID       *uuid.UUID `gorm:"type:uuid" json:"current_area_id"`
	CurrentStep         Step       `gorm:"type:varchar(8);not null" json:"current_step"`
	OnboardingCompleted bool       `gorm:"not null" json:"onboarding_completed"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
