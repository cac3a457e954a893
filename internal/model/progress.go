// internal/model/progress.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Step は5Sのステップ (s1〜s5)
type Step string

const (
	StepFilter      Step = "s1" // Sàng lọc
	StepOrganize    Step = "s2" // Sắp xếp
	StepClean       Step = "s3" // Sạch sẽ
	StepStandardize Step = "s4" // Tiêu chuẩn
	StepSustain     Step = "s5" // Tâm thế
)

// Steps は表示順のステップ一覧
var Steps = []Step{StepFilter, StepOrganize, StepClean, StepStandardize, StepSustain}

var stepTitles = map[Step]string{
	StepFilter:      "Sàng lọc",
	StepOrganize:    "Sắp xếp",
	StepClean:       "Sạch sẽ",
	StepStandardize: "Tiêu chuẩn",
	StepSustain:     "Tâm thế",
}

func (s Step) Valid() bool {
	_, ok := stepTitles[s]
	return ok
}

func (s Step) Title() string {
	return stepTitles[s]
}

// Next は次のステップを返します。s5 は s5 のまま
func (s Step) Next() Step {
	for i, st := range Steps {
		if st == s && i+1 < len(Steps) {
			return Steps[i+1]
		}
	}
	return StepSustain
}

// Phase は進捗状態のタグ
type Phase string

const (
	PhaseOnboarding Phase = "onboarding"
	PhaseActive     Phase = "active"
)

// ProgressState は user_sessions 行から導出される明示的な状態
//
//	Onboarding            -- CompleteOnboarding --> Active{area, s1}
//	Active{area, step}    -- SwitchArea          --> Active{area', step}
//	Active{area, step}    -- AdvanceStep         --> Active{area, step.Next()}
//
// Active の AreaID が uuid.Nil の場合は「未知の領域」として扱う。
type ProgressState struct {
	Phase  Phase
	AreaID uuid.UUID
	Step   Step
}

// StateOf は行 (nil 可) から状態を作ります
func StateOf(row *UserSession) ProgressState {
	if row == nil || !row.OnboardingCompleted {
		return ProgressState{Phase: PhaseOnboarding}
	}
	st := ProgressState{Phase: PhaseActive, Step: row.CurrentStep}
	if !st.Step.Valid() {
		st.Step = StepFilter
	}
	if row.CurrentAreaID != nil {
		st.AreaID = *row.CurrentAreaID
	}
	return st
}

func (s ProgressState) NeedsOnboarding() bool {
	return s.Phase != PhaseActive
}

// CompleteOnboarding はどの状態からでも呼べる (オンボーディング画面は常に到達可能)
func (s ProgressState) CompleteOnboarding(areaID uuid.UUID) (ProgressState, error) {
	if areaID == uuid.Nil {
		return s, fmt.Errorf("complete onboarding: %w", ErrInvalidInput)
	}
	return ProgressState{Phase: PhaseActive, AreaID: areaID, Step: StepFilter}, nil
}

func (s ProgressState) SwitchArea(areaID uuid.UUID) (ProgressState, error) {
	if s.NeedsOnboarding() {
		return s, fmt.Errorf("switch area: %w", ErrOnboardingRequired)
	}
	if areaID == uuid.Nil {
		return s, fmt.Errorf("switch area: %w", ErrInvalidInput)
	}
	s.AreaID = areaID
	return s, nil
}

func (s ProgressState) AdvanceStep() (ProgressState, error) {
	if s.NeedsOnboarding() {
		return s, fmt.Errorf("advance step: %w", ErrOnboardingRequired)
	}
	s.Step = s.Step.Next()
	return s, nil
}

// ToRow は状態を永続化用の行に変換します
func (s ProgressState) ToRow(sessionID string, now time.Time) *UserSession {
	row := &UserSession{
		SessionID:           sessionID,
		CurrentStep:         s.Step,
		OnboardingCompleted: s.Phase == PhaseActive,
		UpdatedAt:           now,
	}
	if s.AreaID != uuid.Nil {
		id := s.AreaID
		row.CurrentAreaID = &id
	}
	if row.CurrentStep == "" {
		row.CurrentStep = StepFilter
	}
	return row
}

// ProgressView は進捗状態のレスポンスDTO
type ProgressView struct {
	SessionID       string     `json:"session_id"`
	Phase           Phase      `json:"phase"`
	NeedsOnboarding bool       `json:"needs_onboarding"`
	CurrentAreaID   *uuid.UUID `json:"current_area_id,omitempty"`
	CurrentStep     Step       `json:"current_step,omitempty"`
}

func NewProgressView(sessionID string, s ProgressState) ProgressView {
	v := ProgressView{
		SessionID:       sessionID,
		Phase:           s.Phase,
		NeedsOnboarding: s.NeedsOnboarding(),
	}
	if !s.NeedsOnboarding() {
		v.CurrentStep = s.Step
		if s.AreaID != uuid.Nil {
			id := s.AreaID
			v.CurrentAreaID = &id
		}
	}
	return v
}

// CompleteOnboardingRequest はオンボーディング完了リクエストのDTO
type CompleteOnboardingRequest struct {
	AreaID string `json:"area_id" validate:"required,uuid"`
}

// SwitchAreaRequest は領域切り替えリクエストのDTO
type SwitchAreaRequest struct {
	AreaID string `json:"area_id" validate:"required,uuid"`
}
