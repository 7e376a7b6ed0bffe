package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/service"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler { return &RatingHandler{svc: s} }

type knnRatingRequest struct {
	GameID int     `json:"gameId"`
	Review float64 `json:"review"`
}

type cbRatingRequest struct {
	AppID  int `json:"appId"`
	Rating int `json:"rating"`
}

// @Summary Listar valoraciones del motor colaborativo
// @Tags ratings
// @Produce json
// @Param id path int true "userId"
// @Success 200 {array} models.UserGameRating
// @Router /users/{id}/ratings/knn [get]
func (h *RatingHandler) GetKNNRatings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	list, err := h.svc.GetKNNRatings(userID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if list == nil {
		list = []models.UserGameRating{}
	}
	_ = json.NewEncoder(w).Encode(list)
}

// @Summary Crear/actualizar valoración colaborativa (1, 0.5, -0.5, -1)
// @Tags ratings
// @Accept json
// @Param id path int true "userId"
// @Param body body knnRatingRequest true "rating"
// @Success 204
// @Router /users/{id}/ratings/knn [post]
func (h *RatingHandler) PostKNNRating(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var req knnRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := h.svc.RateKNN(r.Context(), userID, req.GameID, req.Review); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Quitar valoración colaborativa
// @Tags ratings
// @Param id path int true "userId"
// @Param gameId path int true "gameId"
// @Success 204
// @Router /users/{id}/ratings/knn/{gameId} [delete]
func (h *RatingHandler) DeleteKNNRating(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	gameID, _ := strconv.Atoi(chi.URLParam(r, "gameId"))
	if err := h.svc.RemoveKNN(r.Context(), userID, gameID); err != nil {
		http.Error(w, err.Error(), 404)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Listar valoraciones del motor content-based
// @Tags ratings
// @Produce json
// @Param id path int true "userId"
// @Success 200 {array} models.ContentRating
// @Router /users/{id}/ratings/cb [get]
func (h *RatingHandler) GetCBRatings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	list, err := h.svc.GetCBRatings(userID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if list == nil {
		list = []models.ContentRating{}
	}
	_ = json.NewEncoder(w).Encode(list)
}

// @Summary Crear/actualizar valoración content-based (escala 1-5)
// @Tags ratings
// @Accept json
// @Param id path int true "userId"
// @Param body body cbRatingRequest true "rating"
// @Success 204
// @Router /users/{id}/ratings/cb [post]
func (h *RatingHandler) PostCBRating(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var req cbRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := h.svc.RateCB(r.Context(), userID, req.AppID, req.Rating); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Quitar valoración content-based
// @Tags ratings
// @Param id path int true "userId"
// @Param appId path int true "appId"
// @Success 204
// @Router /users/{id}/ratings/cb/{appId} [delete]
func (h *RatingHandler) DeleteCBRating(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	appID, _ := strconv.Atoi(chi.URLParam(r, "appId"))
	if err := h.svc.RemoveCB(r.Context(), userID, appID); err != nil {
		http.Error(w, err.Error(), 404)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Listar marcadores favorite / avoid
// @Tags ratings
// @Produce json
// @Param id path int true "userId"
// @Success 200 {object} map[string][]int
// @Router /users/{id}/markers [get]
func (h *RatingHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	favs, avoids, err := h.svc.GetMarkers(userID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string][]int{
		"favorites": sortedKeys(favs),
		"avoids":    sortedKeys(avoids),
	})
}

// @Summary Marcar juego como favorito
// @Tags ratings
// @Param id path int true "userId"
// @Param gameId path int true "gameId"
// @Success 204
// @Router /users/{id}/favorites/{gameId} [put]
func (h *RatingHandler) PutFavorite(w http.ResponseWriter, r *http.Request) {
	h.setMarker(w, r, h.svc.SetFavorite, true)
}

// @Summary Quitar marcador de favorito
// @Tags ratings
// @Param id path int true "userId"
// @Param gameId path int true "gameId"
// @Success 204
// @Router /users/{id}/favorites/{gameId} [delete]
func (h *RatingHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	h.setMarker(w, r, h.svc.SetFavorite, false)
}

// @Summary Marcar juego como evitado
// @Tags ratings
// @Param id path int true "userId"
// @Param gameId path int true "gameId"
// @Success 204
// @Router /users/{id}/avoids/{gameId} [put]
func (h *RatingHandler) PutAvoid(w http.ResponseWriter, r *http.Request) {
	h.setMarker(w, r, h.svc.SetAvoid, true)
}

// @Summary Quitar marcador de evitado
// @Tags ratings
// @Param id path int true "userId"
// @Param gameId path int true "gameId"
// @Success 204
// @Router /users/{id}/avoids/{gameId} [delete]
func (h *RatingHandler) DeleteAvoid(w http.ResponseWriter, r *http.Request) {
	h.setMarker(w, r, h.svc.SetAvoid, false)
}

func (h *RatingHandler) setMarker(
	w http.ResponseWriter,
	r *http.Request,
	set func(ctx context.Context, userID, gameID int, on bool) error,
	on bool,
) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	gameID, _ := strconv.Atoi(chi.URLParam(r, "gameId"))
	if err := set(r.Context(), userID, gameID, on); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
