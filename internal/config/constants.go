// internal/config/constants.go
package config

import "strings"

// アプリケーション情報
const (
	AppName    = "5S cho bản thân"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort         = ":8080"
	DefaultLogLevel           = "info"
	DefaultDatabaseDriver     = "postgres"
	DefaultTimezone           = "Local"
	DefaultReviewHistoryLimit = 5
)

// DefaultDailyPrompts は毎日生成される3つのアクション (表示順)
var DefaultDailyPrompts = []string{
	"Xác định 1 thứ không cần thiết và loại bỏ",
	"Làm rõ 1 ưu tiên quan trọng nhất hôm nay",
	"Dành 5 phút suy ngẫm về điều gì đang làm bạn cảm thấy nặng nề",
}

// database.url -> APP_DATABASE_URL
var envKeyReplacer = strings.NewReplacer(".", "_")
