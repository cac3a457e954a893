// internal/middleware/session.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go_5s_keep/internal/model"
	"go_5s_keep/internal/webutil"
)

// SessionContextMiddleware は X-Session-ID ヘッダーからセッションIDを取り出し、コンテキストに設定します。
// セッションIDはクライアント側で生成される不透明な文字列で、認証は行いません (持っている人がそのデータを読み書きできる)。
func SessionContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		sessionID := strings.TrimSpace(r.Header.Get(model.SessionHeader))
		if sessionID == "" {
			logger.Warn("Session check failed: X-Session-ID header missing")
			appErr := model.NewAppError("SESSION_MISSING", "Thiếu mã phiên (X-Session-ID).", "", model.ErrSessionMissing)
			webutil.HandleError(w, logger, appErr)
			return
		}
		if len(sessionID) > model.MaxSessionIDLength {
			logger.Warn("Session check failed: X-Session-ID too long", "length", len(sessionID))
			appErr := model.NewAppError("SESSION_INVALID", "Mã phiên không hợp lệ.", "", model.ErrSessionMissing)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ctx := context.WithValue(r.Context(), model.SessionIDKey, sessionID)
		ctx = WithLogger(ctx, logger.With("session_id", sessionID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetSessionIDFromContext(ctx context.Context) (string, error) {
	value, ok := ctx.Value(model.SessionIDKey).(string)
	if !ok || value == "" {
		// ミドルウェアが正しく動作していない等
		return "", model.NewAppError("SESSION_MISSING", "Không tìm thấy mã phiên.", "", model.ErrSessionMissing)
	}
	return value, nil
}

// WithSessionID はテストやCLIからサービスを直接呼ぶ場合に使います
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, model.SessionIDKey, sessionID)
}

// ClientTimezoneMiddleware は X-Client-Timezone (IANA名) と X-Client-Date (YYYY-MM-DD) を解釈して
// コンテキストに設定します。「今日」はクライアントのローカル日付で決まるため。
// 不正な値は無視して設定のタイムゾーンを使います。
func ClientTimezoneMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := GetLogger(ctx)

		if tz := strings.TrimSpace(r.Header.Get(model.TimezoneHeader)); tz != "" {
			if loc, err := time.LoadLocation(tz); err != nil {
				logger.Debug("Ignoring invalid client timezone", "timezone", tz, "error", err)
			} else {
				ctx = WithClientLocation(ctx, loc)
			}
		}
		if date := strings.TrimSpace(r.Header.Get(model.DateHeader)); date != "" {
			if _, err := model.ParseDate(date, time.UTC); err != nil {
				logger.Debug("Ignoring invalid client date", "date", date, "error", err)
			} else {
				ctx = WithClientDate(ctx, date)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithClientDate(ctx context.Context, date string) context.Context {
	return context.WithValue(ctx, model.ClientDateKey, date)
}

// GetClientDate はクライアントが送ったローカル日付を返します
func GetClientDate(ctx context.Context) (string, bool) {
	date, ok := ctx.Value(model.ClientDateKey).(string)
	return date, ok && date != ""
}

func WithClientLocation(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, model.ClientLocationKey, loc)
}

// GetClientLocation はコンテキストのタイムゾーンを返します。なければ fallback
func GetClientLocation(ctx context.Context, fallback *time.Location) *time.Location {
	if loc, ok := ctx.Value(model.ClientLocationKey).(*time.Location); ok && loc != nil {
		return loc
	}
	if fallback == nil {
		return time.Local
	}
	return fallback
}
