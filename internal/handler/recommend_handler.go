package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/veneneux711/steam-game-recommendation/internal/service"
)

type RecommendHandler struct {
	knn    *service.KNNService
	cb     *service.ContentService
	hybrid *service.HybridService
}

func NewRecommendHandler(k *service.KNNService, c *service.ContentService, hy *service.HybridService) *RecommendHandler {
	return &RecommendHandler{knn: k, cb: c, hybrid: hy}
}

func parseRecQuery(r *http.Request) (userID, n int, maxPrice float64, refresh bool) {
	userID, _ = strconv.Atoi(chi.URLParam(r, "id"))
	n, _ = strconv.Atoi(r.URL.Query().Get("n"))
	maxPrice, _ = strconv.ParseFloat(r.URL.Query().Get("max_price"), 64)
	refresh = r.URL.Query().Get("refresh") == "true"
	return
}

func clampN(n int) int {
	if n <= 0 {
		return service.DefaultN
	}
	if n > service.MaxN {
		return service.MaxN
	}
	return n
}

// @Summary Recomendaciones del motor colaborativo
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.KNNItem
// @Router /users/{id}/recommendations/knn [get]
func (h *RecommendHandler) GetKNN(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, n, _, refresh := parseRecQuery(r)

	items, err := h.knn.Recommend(r.Context(), userID, clampN(n), refresh)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Recomendaciones del motor content-based
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param max_price query number false "presupuesto máximo (0 = sin filtro)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.CBItem
// @Failure 409 {string} string "motor ocupado"
// @Router /users/{id}/recommendations/cb [get]
func (h *RecommendHandler) GetCB(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, n, maxPrice, refresh := parseRecQuery(r)

	items, err := h.cb.Recommend(r.Context(), userID, clampN(n), maxPrice, refresh)
	if err == service.ErrBusy {
		http.Error(w, err.Error(), 409)
		return
	}
	if err == service.ErrNoModel {
		http.Error(w, err.Error(), 400)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Recomendaciones híbridas (knn + content-based)
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param max_price query number false "presupuesto máximo (0 = sin filtro)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.HybridItem
// @Router /users/{id}/recommendations/hybrid [get]
func (h *RecommendHandler) GetHybrid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, n, maxPrice, refresh := parseRecQuery(r)

	items, err := h.hybrid.Recommend(r.Context(), service.HybridRequest{
		UserID:   userID,
		N:        n,
		MaxPrice: maxPrice,
		Refresh:  refresh,
	}, nil)
	if err == service.ErrBusy {
		http.Error(w, err.Error(), 409)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Historial de corridas híbridas del usuario
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param limit query int false "límite (default 10)"
// @Success 200 {array} models.Recommendation
// @Router /users/{id}/recommendations/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := h.hybrid.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(recs)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Pipeline híbrido con progreso en tiempo real (WebSocket)
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/pipeline/ws [get]
func (h *RecommendHandler) PipelineWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	userID, n, maxPrice, refresh := parseRecQuery(r)

	// cada etapa del pipeline real genera un mensaje de progreso
	progress := func(stage string) {
		conn.WriteJSON(map[string]any{
			"type":  "progress",
			"stage": stage,
		})
	}

	items, err := h.hybrid.Recommend(r.Context(), service.HybridRequest{
		UserID:   userID,
		N:        n,
		MaxPrice: maxPrice,
		Refresh:  refresh,
	}, progress)
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"items":       items,
		"generatedAt": time.Now(),
	})
}
