// internal/handler/game_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/veneneux711/steam-game-recommendation/internal/service"
)

type GameHandler struct {
	svc *service.GameService
}

func NewGameHandler(s *service.GameService) *GameHandler { return &GameHandler{svc: s} }

// @Summary Ficha de un juego
// @Tags games
// @Produce json
// @Param id path int true "appId"
// @Success 200 {object} models.GameDoc
// @Router /games/{id} [get]
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if g == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(g)
}

// @Summary Buscar / listar juegos (paginado)
// @Tags games
// @Produce json
// @Param q query string false "búsqueda por nombre"
// @Param genre query string false "filtrar por género"
// @Param limit query int false "límite"
// @Param offset query int false "offset"
// @Success 200 {array} models.GameDoc
// @Router /games/search [get]
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query().Get("q")
	genre := r.URL.Query().Get("genre")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	games, err := h.svc.Search(r.Context(), q, genre, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

// @Summary Top juegos por cantidad de reseñas
// @Tags games
// @Produce json
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.GameDoc
// @Router /games/top [get]
func (h *GameHandler) Top(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	games, err := h.svc.Top(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}
