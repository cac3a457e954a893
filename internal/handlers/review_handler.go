// internal/handlers/review_handler.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"
)

// ReviewHandler は週ごとの振り返りを扱います
type ReviewHandler struct {
	service service.WeeklyService
}

func NewReviewHandler(s service.WeeklyService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.Load(r.Context(), sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// SaveReview は今週の振り返りを保存し、再読み込みした状態を返します
func (h *ReviewHandler) SaveReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SaveWeeklyReviewRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.Save(r.Context(), sessionID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}
