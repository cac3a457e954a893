// internal/handlers/progress_handler.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/navigation"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
	prefix  string
}

// NewProgressHandler の prefix はリダイレクト先の Location に付ける API プレフィックス
func NewProgressHandler(s service.ProgressService, prefix string) *ProgressHandler {
	return &ProgressHandler{service: s, prefix: prefix}
}

// Root は進捗状態に応じてオンボーディングかダッシュボードへリダイレクトします
func (h *ProgressHandler) Root(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	state, err := h.service.LoadState(r.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to load progress state, treating as no data", "error", err)
	}
	target := navigation.Resolve(state, string(navigation.RouteRoot))

	w.Header().Set("Location", h.prefix+string(target))
	webutil.RespondWithJSON(w, http.StatusSeeOther, map[string]string{"redirect": string(target)}, logger)
}

func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.GetProgress(r.Context(), sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// GetOnboarding はオンボーディング画面 (sort_order 順のカタログ) を返します。常に到達可能
func (h *ProgressHandler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.GetOnboarding(r.Context(), sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *ProgressHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CompleteOnboardingRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid onboarding request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	areaID, err := parseID(req.AreaID, "area_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.CompleteOnboarding(r.Context(), sessionID, areaID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// SwitchArea は現在の領域を切り替え、再読み込みしたダッシュボードを返します
func (h *ProgressHandler) SwitchArea(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SwitchAreaRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid switch area request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	areaID, err := parseID(req.AreaID, "area_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.SwitchArea(r.Context(), sessionID, areaID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *ProgressHandler) AdvanceStep(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.AdvanceStep(r.Context(), sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}
