package service

import (
	"context"
	"fmt"
	"log"

	"github.com/veneneux711/steam-game-recommendation/internal/cache"
	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/ratings"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
)

// RatingService maneja los snapshots de valoraciones del usuario activo.
// Cada mutación reescribe el snapshot completo en disco e invalida el
// cache de recomendaciones del usuario: un rating nuevo cambia el perfil.
type RatingService struct {
	games   *repository.GameRepository
	dataDir string
}

func NewRatingService(g *repository.GameRepository, dataDir string) *RatingService {
	return &RatingService{games: g, dataDir: dataDir}
}

func (s *RatingService) store(userID int) *ratings.Store {
	return ratings.NewStore(s.dataDir, userID)
}

func (s *RatingService) invalidate(ctx context.Context, userID int) {
	if err := cache.DeletePrefix(ctx, fmt.Sprintf("rec:user:%d:", userID)); err != nil {
		log.Printf("[ratings] error invalidando cache del usuario %d: %v", userID, err)
	}
}

func validKNNReview(v float64) bool {
	switch v {
	case models.ReviewLike, models.ReviewInterested, models.ReviewNeutral, models.ReviewDislike:
		return true
	}
	return false
}

// ---------------- motor KNN ----------------

func (s *RatingService) GetKNNRatings(userID int) ([]models.UserGameRating, error) {
	return s.store(userID).LoadKNNRatings()
}

func (s *RatingService) RateKNN(ctx context.Context, userID, gameID int, review float64) error {
	if !validKNNReview(review) {
		return fmt.Errorf("review %v inválido: los valores son 1, 0.5, -0.5 y -1", review)
	}

	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("juego %d no encontrado", gameID)
	}

	st := s.store(userID)
	list, err := st.LoadKNNRatings()
	if err != nil {
		return err
	}

	found := false
	for i := range list {
		if list[i].GameID == gameID {
			list[i].Review = review
			list[i].GameName = game.Name
			found = true
			break
		}
	}
	if !found {
		list = append(list, models.UserGameRating{GameID: gameID, GameName: game.Name, Review: review})
	}

	if err := st.SaveKNNRatings(list); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *RatingService) RemoveKNN(ctx context.Context, userID, gameID int) error {
	st := s.store(userID)
	list, err := st.LoadKNNRatings()
	if err != nil {
		return err
	}

	out := list[:0]
	for _, r := range list {
		if r.GameID != gameID {
			out = append(out, r)
		}
	}
	if len(out) == len(list) {
		return fmt.Errorf("el usuario %d no tiene valorado el juego %d", userID, gameID)
	}

	if err := st.SaveKNNRatings(out); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// ---------------- marcadores favorite / avoid ----------------

func (s *RatingService) SetFavorite(ctx context.Context, userID, gameID int, on bool) error {
	st := s.store(userID)
	favs, err := st.LoadFavorites()
	if err != nil {
		return err
	}
	if on {
		favs[gameID] = true
	} else {
		delete(favs, gameID)
	}
	if err := st.SaveFavorites(favs); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *RatingService) SetAvoid(ctx context.Context, userID, gameID int, on bool) error {
	st := s.store(userID)
	avoids, err := st.LoadAvoids()
	if err != nil {
		return err
	}
	if on {
		avoids[gameID] = true
	} else {
		delete(avoids, gameID)
	}
	if err := st.SaveAvoids(avoids); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *RatingService) GetMarkers(userID int) (favs, avoids map[int]bool, err error) {
	st := s.store(userID)
	favs, err = st.LoadFavorites()
	if err != nil {
		return nil, nil, err
	}
	avoids, err = st.LoadAvoids()
	if err != nil {
		return nil, nil, err
	}
	return favs, avoids, nil
}

// ---------------- motor content-based (escala 1-5) ----------------

func (s *RatingService) GetCBRatings(userID int) ([]models.ContentRating, error) {
	return s.store(userID).LoadCBRatings()
}

func (s *RatingService) RateCB(ctx context.Context, userID, appID, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating %d inválido: la escala es 1-5", rating)
	}

	game, err := s.games.GetByID(ctx, appID)
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("juego %d no encontrado", appID)
	}

	st := s.store(userID)
	list, err := st.LoadCBRatings()
	if err != nil {
		return err
	}

	found := false
	for i := range list {
		if list[i].AppID == appID {
			list[i].Rating = rating
			list[i].Name = game.Name
			found = true
			break
		}
	}
	if !found {
		list = append(list, models.ContentRating{AppID: appID, Name: game.Name, Rating: rating})
	}

	if err := st.SaveCBRatings(list); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *RatingService) RemoveCB(ctx context.Context, userID, appID int) error {
	st := s.store(userID)
	list, err := st.LoadCBRatings()
	if err != nil {
		return err
	}

	out := list[:0]
	for _, r := range list {
		if r.AppID != appID {
			out = append(out, r)
		}
	}
	if len(out) == len(list) {
		return fmt.Errorf("el usuario %d no tiene valorado el juego %d", userID, appID)
	}

	if err := st.SaveCBRatings(out); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}
