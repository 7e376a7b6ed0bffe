package service

import (
	"context"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
)

// GameService expone el catálogo de solo lectura.
type GameService struct {
	games *repository.GameRepository
}

func NewGameService(g *repository.GameRepository) *GameService {
	return &GameService{games: g}
}

func (s *GameService) Get(ctx context.Context, appID int) (*models.GameDoc, error) {
	return s.games.GetByID(ctx, appID)
}

func (s *GameService) Search(ctx context.Context, q, genre string, limit, offset int) ([]models.GameDoc, error) {
	games, err := s.games.Search(ctx, q, genre, limit, offset)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []models.GameDoc{}
	}
	return games, nil
}

func (s *GameService) Top(ctx context.Context, limit int) ([]models.GameDoc, error) {
	games, err := s.games.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []models.GameDoc{}
	}
	return games, nil
}
