package handler

import (
	"encoding/json"
	"net/http"

	"github.com/veneneux711/steam-game-recommendation/internal/service"
)

type TrainHandler struct {
	svc *service.ContentService
}

func NewTrainHandler(s *service.ContentService) *TrainHandler { return &TrainHandler{svc: s} }

// @Summary Entrenar el modelo content-based desde el catálogo
// @Tags train
// @Produce json
// @Success 200 {object} service.TrainReport
// @Failure 409 {string} string "ya hay un entrenamiento en curso"
// @Router /train/cb [post]
func (h *TrainHandler) TrainCB(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	report, err := h.svc.Train(r.Context())
	if err == service.ErrBusy {
		http.Error(w, err.Error(), 409)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(report)
}
