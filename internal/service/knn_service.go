package service

import (
	"context"
	"fmt"
	"log"

	"github.com/veneneux711/steam-game-recommendation/internal/cache"
	"github.com/veneneux711/steam-game-recommendation/internal/config"
	"github.com/veneneux711/steam-game-recommendation/internal/knn"
	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/ratings"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
)

// KNNService corre el motor colaborativo para un usuario: selecciona
// vecinos en Mongo, puntúa en memoria y enriquece con el catálogo.
type KNNService struct {
	games   *repository.GameRepository
	reviews *repository.ReviewRepository
	dataDir string
	params  knn.Params
}

func NewKNNService(g *repository.GameRepository, r *repository.ReviewRepository, cfg *config.Config) *KNNService {
	p := knn.DefaultParams()
	p.MatchFraction = cfg.MatchFraction
	p.FavBoost = cfg.FavBoost
	p.AvoidDiscount = cfg.AvoidDiscount

	return &KNNService{
		games:   g,
		reviews: r,
		dataDir: cfg.DataDir,
		params:  p,
	}
}

// Recommend devuelve el top-N colaborativo. Usuario sin ratings o sin
// vecinos → lista vacía, nunca error: cold start no es una falla.
func (s *KNNService) Recommend(ctx context.Context, userID, topN int, refresh bool) ([]models.KNNItem, error) {
	// el prefijo rec:user:<id>: lo comparte la invalidación por rating
	key := fmt.Sprintf("rec:user:%d:knn:n:%d", userID, topN)
	var cached []models.KNNItem
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	st := ratings.NewStore(s.dataDir, userID)

	myRatings, err := st.LoadKNNRatings()
	if err != nil {
		return nil, err
	}
	if len(myRatings) == 0 {
		return []models.KNNItem{}, nil
	}

	favs, err := st.LoadFavorites()
	if err != nil {
		return nil, err
	}
	avoids, err := st.LoadAvoids()
	if err != nil {
		return nil, err
	}

	myGameIDs := make([]int, 0, len(myRatings))
	myGameSet := make(map[int]bool, len(myRatings))
	for _, r := range myRatings {
		myGameIDs = append(myGameIDs, r.GameID)
		myGameSet[r.GameID] = true
	}

	// selección de vecinos del lado de Mongo: primero los userIds que
	// superan el umbral de overlap, después su historial completo
	threshold := knn.Threshold(len(myGameIDs), s.params.MatchFraction)
	neighborIDs, err := s.reviews.NeighborUserIDs(ctx, myGameIDs, threshold)
	if err != nil {
		return nil, err
	}
	if len(neighborIDs) == 0 {
		log.Printf("[knn] usuario %d sin vecinos (umbral %d sobre %d juegos)", userID, threshold, len(myGameIDs))
		return []models.KNNItem{}, nil
	}

	raw, err := s.reviews.ByUsers(ctx, neighborIDs)
	if err != nil {
		return nil, err
	}

	// la regla del umbral vive en SelectNeighbors; el pipeline de Mongo es
	// solo el prefiltro que evita traer la colección entera. Re-aplicarla
	// acá mantiene una única fuente de verdad para el criterio de vecino
	filtered := knn.SelectNeighbors(raw, myGameSet, s.params.MatchFraction)

	scored := knn.Score(filtered, myRatings, favs, avoids, s.params)
	if len(scored) == 0 {
		return []models.KNNItem{}, nil
	}

	catalog, err := s.games.All(ctx)
	if err != nil {
		return nil, err
	}
	items := knn.Enrich(scored, catalog, topN)

	if err := cache.SetJSON(ctx, key, items, 60*60); err != nil {
		log.Printf("[knn] error cacheando en Redis: %v", err)
	}
	return items, nil
}
