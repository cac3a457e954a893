package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go_5s_keep/internal/model"
)

const (
	IconDone    = "✅"
	IconSkip    = "⏭️"
	IconPending = "⬜"
	IconArrow   = "➜"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCalm    = "🌿"
	IconReview  = "📝"
)

var (
	cPrimary = lipgloss.Color("36")  // teal
	cAccent  = lipgloss.Color("214") // orange
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.Color("244")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	Current = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
)

func Heading(icon, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// AreaLabel は「絵文字 表示名」。領域が不明な場合はプレースホルダー
func AreaLabel(a *model.LifeArea) string {
	if a == nil {
		return Muted.Render("(chưa rõ lĩnh vực)")
	}
	if a.Emoji == "" {
		return a.DisplayName
	}
	return a.Emoji + " " + a.DisplayName
}

func StatusIcon(s model.ActionStatus) string {
	switch s {
	case model.StatusDone:
		return IconDone
	case model.StatusSkipped:
		return IconSkip
	default:
		return IconPending
	}
}

func StatusText(s model.ActionStatus) string {
	switch s {
	case model.StatusDone:
		return Good.Render(string(s))
	case model.StatusSkipped:
		return Muted.Render(string(s))
	default:
		return Warn.Render(string(s))
	}
}

func PriorityText(p model.PriorityLevel) string {
	switch p {
	case model.PriorityHigh:
		return Bad.Render(string(p))
	case model.PriorityMedium:
		return Warn.Render(string(p))
	default:
		return Muted.Render(string(p))
	}
}

// Counter は「完了数/全体数」
func Counter(p model.DailyProgress) string {
	text := fmt.Sprintf("%d/%d", p.Completed, p.Total)
	if p.Total > 0 && p.Completed == p.Total {
		return Good.Render(text)
	}
	return Key.Render(text)
}

// Warning は処理を止めない警告行
func Warning(msg string) string {
	return Warn.Render(IconWarn + " " + msg)
}
