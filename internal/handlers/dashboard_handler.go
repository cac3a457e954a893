// internal/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// DashboardHandler はダッシュボードとデイリーモードを扱います
type DashboardHandler struct {
	dashboard service.DashboardService
	daily     service.DailyService
}

func NewDashboardHandler(dashboard service.DashboardService, daily service.DailyService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, daily: daily}
}

// GetDashboard は表示のたびに今日のアクションを (なければ) 生成します。デイリーモードも同じ内容
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.dashboard.Load(r.Context(), sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *DashboardHandler) UpdateActionStatus(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	actionIDStr := chi.URLParam(r, "action_id")
	actionID, err := parseID(actionIDStr, "action_id")
	if err != nil {
		logger.Warn("Invalid action ID format", "action_id", actionIDStr)
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateActionStatusRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	action, err := h.daily.SetStatus(r.Context(), sessionID, actionID, model.ActionStatus(req.Status))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, action, logger)
}
