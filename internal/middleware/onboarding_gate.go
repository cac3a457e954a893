// internal/middleware/onboarding_gate.go
package middleware

import (
	"context"
	"net/http"

	"go_5s_keep/internal/model"
	"go_5s_keep/internal/navigation"
	"go_5s_keep/internal/webutil"
)

// ProgressChecker はオンボーディングが必要かどうかを判定します (service.ProgressService が実装)
type ProgressChecker interface {
	LoadState(ctx context.Context, sessionID string) (model.ProgressState, error)
}

// OnboardingGate は保護されたルートの前に置き、オンボーディング未完了なら
// リクエストされたパスに関係なくオンボーディングへリダイレクトします。
// 状態の読み込みに失敗した場合は「データなし」として扱います。
func OnboardingGate(checker ProgressChecker, prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			sessionID, err := GetSessionIDFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}

			state, err := checker.LoadState(r.Context(), sessionID)
			if err != nil {
				logger.Error("Failed to load progress state, treating as no data", "error", err)
				state = model.StateOf(nil)
			}

			target := navigation.Resolve(state, navigation.Trim(prefix, r.URL.Path))
			if target == navigation.RouteOnboarding {
				logger.Info("Onboarding required, redirecting", "path", r.URL.Path)
				w.Header().Set("Location", prefix+string(navigation.RouteOnboarding))
				webutil.RespondWithJSON(w, http.StatusSeeOther, map[string]string{
					"redirect": string(navigation.RouteOnboarding),
				}, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
