// internal/model/calendar.go
package model

import "time"

// DateLayout は保存・比較に使う日付形式 (ISO 8601 の日付部分)
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate は YYYY-MM-DD を loc の0時として解釈します
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// WeekStart は t を含む週の月曜日 (t のロケーションでの0時) を返します
// 日曜日 (0) は6日前、それ以外は weekday-1 日前
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	diff := wd - 1
	if wd == 0 {
		diff = 6
	}
	y, m, d := t.Date()
	return time.Date(y, m, d-diff, 0, 0, 0, 0, t.Location())
}

func WeekStartDate(t time.Time) string {
	return FormatDate(WeekStart(t))
}
