// internal/service/helpers.go
package service

import (
	"context"
	"fmt"
	"time"

	"go_5s_keep/internal/clock"
	"go_5s_keep/internal/config"
	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
)

// internalError はクライアントには汎用メッセージを返し、原因は ErrInternalServer と共に保持します
func internalError(message string, err error) *model.AppError {
	return model.NewAppError("INTERNAL_SERVER_ERROR", message, "", fmt.Errorf("%w: %v", model.ErrInternalServer, err))
}

// Calendar はリクエストごとの「今」と「今日」を求めます。
// 今日はクライアントが送ったローカル日付。なければクライアントのタイムゾーン (なければ設定値) で求める
type Calendar struct {
	clock clock.Clock
	cfg   *config.Config
}

func (c Calendar) location(ctx context.Context) *time.Location {
	return middleware.GetClientLocation(ctx, c.cfg.Location())
}

func (c Calendar) now(ctx context.Context) time.Time {
	return c.clock.Now().In(c.location(ctx))
}

func (c Calendar) today(ctx context.Context) string {
	if date, ok := middleware.GetClientDate(ctx); ok && c.plausible(date) {
		return date
	}
	return clock.Today(c.clock, c.location(ctx))
}

// plausible は日付が現在時刻のいずれかのタイムゾーン (UTC-12 .. UTC+14) での日付かどうか
func (c Calendar) plausible(date string) bool {
	now := c.clock.Now().UTC()
	earliest := model.FormatDate(now.Add(-12 * time.Hour))
	latest := model.FormatDate(now.Add(14 * time.Hour))
	return date >= earliest && date <= latest
}

func (c Calendar) weekStart(ctx context.Context) string {
	day, err := model.ParseDate(c.today(ctx), time.UTC)
	if err != nil {
		return model.WeekStartDate(c.now(ctx))
	}
	return model.WeekStartDate(day)
}

func NewCalendar(c clock.Clock, cfg *config.Config) Calendar {
	return Calendar{clock: c, cfg: cfg}
}
