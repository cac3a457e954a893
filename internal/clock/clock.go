// Package clock は「今日」の判定をテストで固定できるように時刻を抽象化します。
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed は常に同じ時刻を返す (テスト用)
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Today は loc でのローカル日付 (YYYY-MM-DD) を返します
func Today(c Clock, loc *time.Location) string {
	return c.Now().In(loc).Format("2006-01-02")
}
