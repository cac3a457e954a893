// internal/handlers/area_handler.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"
)

type AreaHandler struct {
	service service.AreaService
}

func NewAreaHandler(s service.AreaService) *AreaHandler {
	return &AreaHandler{service: s}
}

func (h *AreaHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	areas, err := h.service.ListAreas(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if areas == nil {
		areas = []*model.LifeArea{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, areas, logger)
}
