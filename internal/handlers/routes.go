// internal/handlers/routes.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// APIPrefix はすべての API ルートのプレフィックス
const APIPrefix = "/api/v1"

// Handlers はルーティングに必要なハンドラ一式
type Handlers struct {
	Area      *AreaHandler
	Progress  *ProgressHandler
	Dashboard *DashboardHandler
	Review    *ReviewHandler
	Filter    *StageHandler[model.FilterItem]
	Organize  *StageHandler[model.OrganizeItem]
	Clean     *StageHandler[model.CleanReflection]
	Standard  *StageHandler[model.Standard]
	Sustain   *StageHandler[model.SustainReminder]
}

// Services はハンドラの依存するサービス一式
type Services struct {
	Area      service.AreaService
	Progress  service.ProgressService
	Daily     service.DailyService
	Dashboard service.DashboardService
	Weekly    service.WeeklyService
	Stages    *service.StageServices
}

func NewHandlers(s Services) *Handlers {
	return &Handlers{
		Area:      NewAreaHandler(s.Area),
		Progress:  NewProgressHandler(s.Progress, APIPrefix),
		Dashboard: NewDashboardHandler(s.Dashboard, s.Daily),
		Review:    NewReviewHandler(s.Weekly),
		Filter:    NewFilterHandler(s.Stages.Filter),
		Organize:  NewOrganizeHandler(s.Stages.Organize),
		Clean:     NewCleanHandler(s.Stages.Clean),
		Standard:  NewStandardHandler(s.Stages.Standardize),
		Sustain:   NewSustainHandler(s.Stages.Sustain),
	}
}

// Mount は APIPrefix 配下のルートを登録します。
// すべてのルートで X-Session-ID が必要で、保護されたルートはオンボーディング完了まで
// オンボーディングへリダイレクトされます。
func (h *Handlers) Mount(r chi.Router, checker middleware.ProgressChecker) {
	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.SessionContextMiddleware)
		r.Use(middleware.ClientTimezoneMiddleware)

		// 常に到達可能
		r.Get("/", h.Progress.Root)
		r.Get("/areas", h.Area.ListAreas)
		r.Get("/onboarding", h.Progress.GetOnboarding)
		r.Post("/onboarding", h.Progress.CompleteOnboarding)
		r.Get("/progress", h.Progress.GetProgress)

		// 保護されたルート
		r.Group(func(r chi.Router) {
			r.Use(middleware.OnboardingGate(checker, APIPrefix))

			r.Get("/dashboard", h.Dashboard.GetDashboard)
			r.Get("/daily", h.Dashboard.GetDashboard)
			r.Patch("/daily/{action_id}", h.Dashboard.UpdateActionStatus)

			r.Get("/review", h.Review.GetReview)
			r.Put("/review", h.Review.SaveReview)

			r.Put("/progress/area", h.Progress.SwitchArea)
			r.Post("/progress/step", h.Progress.AdvanceStep)

			r.Route("/areas/{area_name}", func(r chi.Router) {
				r.Route("/"+string(model.StepFilter), h.Filter.Mount)
				r.Route("/"+string(model.StepOrganize), h.Organize.Mount)
				r.Route("/"+string(model.StepClean), h.Clean.Mount)
				r.Route("/"+string(model.StepStandardize), h.Standard.Mount)
				r.Route("/"+string(model.StepSustain), h.Sustain.Mount)
			})
		})
	})
}

// Health はヘルスチェック用 (セッション不要)
func Health(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, middleware.GetLogger(r.Context()))
}
