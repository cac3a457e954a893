// internal/handlers/stage_handler.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// StageHandler は S1〜S5 共通のハンドラ。リクエストボディの形だけがステップごとに違う
type StageHandler[T any] struct {
	service service.StageService[T]
	// decodeCreate は作成リクエストを行に変換します
	decodeCreate func(r *http.Request) (*T, error)
	// decodePatch は部分更新リクエストをカラム -> 値に変換します (nil なら更新不可)
	decodePatch func(r *http.Request) (map[string]interface{}, error)
}

func (h *StageHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.Load(r.Context(), sessionID, chi.URLParam(r, "area_name"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// Create は空白のみの入力の場合 204 を返します
func (h *StageHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	row, err := h.decodeCreate(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	created, err := h.service.Create(r.Context(), sessionID, chi.URLParam(r, "area_name"), row)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if created == nil {
		webutil.RespondNoContent(w)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, created, logger)
}

func (h *StageHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if h.decodePatch == nil {
		webutil.HandleError(w, logger, model.NewAppError("NOT_UPDATABLE", "Mục này không thể cập nhật.", "", model.ErrInvalidInput))
		return
	}

	id, err := parseID(chi.URLParam(r, "item_id"), "item_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	fields, err := h.decodePatch(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	row, err := h.service.Update(r.Context(), sessionID, id, fields)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, row, logger)
}

func (h *StageHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	sessionID, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := parseID(chi.URLParam(r, "item_id"), "item_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), sessionID, id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

// Mount は一覧・作成・(更新)・削除のルートを登録します
func (h *StageHandler[T]) Mount(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	if h.decodePatch != nil {
		r.Patch("/{item_id}", h.Update)
	}
	r.Delete("/{item_id}", h.Delete)
}
