// internal/model/stage.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StageRecord は S1〜S5 の各行が満たすインターフェース
// Prepare は入力をトリムしてデフォルト値とスコープを設定し、
// 空入力 (空白のみを含む) の場合は false を返します。
type StageRecord[T any] interface {
	*T
	Prepare(sessionID string, areaID uuid.UUID, today string) bool
}

// PriorityLevel は S2 の優先度
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "high"
	PriorityMedium PriorityLevel = "medium"
	PriorityLow    PriorityLevel = "low"
)

func (p PriorityLevel) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// --- S1: Sàng lọc ---

type FilterItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  string    `gorm:"type:varchar(128);not null;index:idx_s1_scope" json:"session_id"`
	AreaID     uuid.UUID `gorm:"type:uuid;not null;index:idx_s1_scope" json:"area_id"`
	ItemText   string    `gorm:"not null" json:"item_text"`
	ShouldKeep bool      `gorm:"not null" json:"should_keep"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FilterItem) TableName() string {
	return "s1_filter_items"
}

func (i *FilterItem) Prepare(sessionID string, areaID uuid.UUID, _ string) bool {
	i.ItemText = strings.TrimSpace(i.ItemText)
	if i.ItemText == "" {
		return false
	}
	i.ID = uuid.New()
	i.SessionID = sessionID
	i.AreaID = areaID
	i.ShouldKeep = true
	return true
}

// PartitionFilterItems は should_keep だけで keep / remove に振り分けます
func PartitionFilterItems(items []*FilterItem) (keep, remove []*FilterItem) {
	keep = make([]*FilterItem, 0, len(items))
	remove = make([]*FilterItem, 0)
	for _, it := range items {
		if it.ShouldKeep {
			keep = append(keep, it)
		} else {
			remove = append(remove, it)
		}
	}
	return keep, remove
}

// --- S2: Sắp xếp ---

type OrganizeItem struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     string        `gorm:"type:varchar(128);not null;index:idx_s2_scope" json:"session_id"`
	AreaID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_s2_scope" json:"area_id"`
	ItemText      string        `gorm:"not null" json:"item_text"`
	PriorityLevel PriorityLevel `gorm:"type:varchar(8);not null" json:"priority_level"`
	FixedPosition string        `gorm:"not null" json:"fixed_position"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (OrganizeItem) TableName() string {
	return "s2_organize_items"
}

func (i *OrganizeItem) Prepare(sessionID string, areaID uuid.UUID, _ string) bool {
	i.ItemText = strings.TrimSpace(i.ItemText)
	if i.ItemText == "" {
		return false
	}
	i.ID = uuid.New()
	i.SessionID = sessionID
	i.AreaID = areaID
	i.PriorityLevel = PriorityMedium
	i.FixedPosition = ""
	return true
}

// BucketOrganizeItems は優先度ごとに3つのバケットへ振り分けます (順序は維持)
func BucketOrganizeItems(items []*OrganizeItem) map[PriorityLevel][]*OrganizeItem {
	buckets := map[PriorityLevel][]*OrganizeItem{
		PriorityHigh:   {},
		PriorityMedium: {},
		PriorityLow:    {},
	}
	for _, it := range items {
		if !it.PriorityLevel.Valid() {
			continue
		}
		buckets[it.PriorityLevel] = append(buckets[it.PriorityLevel], it)
	}
	return buckets
}

// --- S3: Sạch sẽ ---

type CleanReflection struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      string    `gorm:"type:varchar(128);not null;index:idx_s3_scope" json:"session_id"`
	AreaID         uuid.UUID `gorm:"type:uuid;not null;index:idx_s3_scope" json:"area_id"`
	ReflectionText string    `gorm:"not null" json:"reflection_text"`
	ActionTaken    string    `gorm:"not null" json:"action_taken"`
	ReflectionDate string    `gorm:"type:varchar(10);not null;index" json:"reflection_date"` // YYYY-MM-DD
	CreatedAt      time.Time `json:"created_at"`
}

func (CleanReflection) TableName() string {
	return "s3_clean_reflections"
}

func (r *CleanReflection) Prepare(sessionID string, areaID uuid.UUID, today string) bool {
	r.ReflectionText = strings.TrimSpace(r.ReflectionText)
	if r.ReflectionText == "" {
		return false
	}
	r.ID = uuid.New()
	r.SessionID = sessionID
	r.AreaID = areaID
	r.ActionTaken = ""
	r.ReflectionDate = today
	return true
}

// --- S4: Tiêu chuẩn ---

type Standard struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(128);not null;index:idx_s4_scope" json:"session_id"`
	AreaID    uuid.UUID `gorm:"type:uuid;not null;index:idx_s4_scope" json:"area_id"`
	Trigger   string    `gorm:"column:trigger;not null" json:"trigger"`
	Action    string    `gorm:"column:action;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

func (Standard) TableName() string {
	return "s4_standards"
}

// Prepare はトリガーとアクションの両方が入力されている場合のみ true
func (s *Standard) Prepare(sessionID string, areaID uuid.UUID, _ string) bool {
	s.Trigger = strings.TrimSpace(s.Trigger)
	s.Action = strings.TrimSpace(s.Action)
	if s.Trigger == "" || s.Action == "" {
		return false
	}
	s.ID = uuid.New()
	s.SessionID = sessionID
	s.AreaID = areaID
	return true
}

// --- S5: Tâm thế ---

type SustainReminder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(128);not null;index:idx_s5_scope" json:"session_id"`
	AreaID    uuid.UUID `gorm:"type:uuid;not null;index:idx_s5_scope" json:"area_id"`
	WhyText   string    `gorm:"not null" json:"why_text"`
	CreatedAt time.Time `json:"created_at"`
}

func (SustainReminder) TableName() string {
	return "s5_sustain_reminders"
}

func (r *SustainReminder) Prepare(sessionID string, areaID uuid.UUID, _ string) bool {
	r.WhyText = strings.TrimSpace(r.WhyText)
	if r.WhyText == "" {
		return false
	}
	r.ID = uuid.New()
	r.SessionID = sessionID
	r.AreaID = areaID
	return true
}

// --- リクエストDTO ---

type CreateFilterItemRequest struct {
	ItemText string `json:"item_text" validate:"max=500"`
}

type PatchFilterItemRequest struct {
	ShouldKeep *bool `json:"should_keep" validate:"required"`
}

type CreateOrganizeItemRequest struct {
	ItemText string `json:"item_text" validate:"max=500"`
}

type PatchOrganizeItemRequest struct {
	PriorityLevel *string `json:"priority_level,omitempty" validate:"omitempty,oneof=high medium low"`
	FixedPosition *string `json:"fixed_position,omitempty" validate:"omitempty,max=200"`
}

type CreateCleanReflectionRequest struct {
	ReflectionText string `json:"reflection_text" validate:"max=2000"`
}

type PatchCleanReflectionRequest struct {
	ActionTaken *string `json:"action_taken" validate:"required,max=2000"`
}

type CreateStandardRequest struct {
	Trigger string `json:"trigger" validate:"max=500"`
	Action  string `json:"action" validate:"max=500"`
}

type CreateSustainReminderRequest struct {
	WhyText string `json:"why_text" validate:"max=2000"`
}

// StageView は各ステップ画面のレスポンスDTO
// Area が nil の場合はスラッグに対応する領域が見つからなかったことを示す
type StageView[T any] struct {
	Step       Step            `json:"step"`
	Title      string          `json:"title"`
	Area       *LifeArea       `json:"area"`
	Items      []*T            `json:"items"`
	Partitions map[string][]*T `json:"partitions,omitempty"`
}
