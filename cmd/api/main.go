package main

import (
	"log"
	"net/http"

	_ "github.com/veneneux711/steam-game-recommendation/docs" // swagger docs

	"github.com/veneneux711/steam-game-recommendation/internal/cache"
	"github.com/veneneux711/steam-game-recommendation/internal/config"
	"github.com/veneneux711/steam-game-recommendation/internal/db"
	"github.com/veneneux711/steam-game-recommendation/internal/handler"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
	"github.com/veneneux711/steam-game-recommendation/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Steam Hybrid Recommender API
// @version 1.0
// @description API del recomendador híbrido de juegos (knn + content-based, Mongo, Redis)
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	gameRepo := repository.NewGameRepository()
	reviewRepo := repository.NewReviewRepository()
	recRepo := repository.NewRecommendationRepository()

	// services
	gameSvc := service.NewGameService(gameRepo)
	ratingSvc := service.NewRatingService(gameRepo, cfg.DataDir)
	knnSvc := service.NewKNNService(gameRepo, reviewRepo, cfg)
	contentSvc := service.NewContentService(gameRepo, cfg)
	hybridSvc := service.NewHybridService(knnSvc, contentSvc, recRepo, cfg)

	// handlers
	gameH := handler.NewGameHandler(gameSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	trainH := handler.NewTrainHandler(contentSvc)
	recH := handler.NewRecommendHandler(knnSvc, contentSvc, hybridSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handler.Health)

	// catálogo
	r.Get("/games/search", gameH.Search)
	r.Get("/games/top", gameH.Top)
	r.Get("/games/{id}", gameH.GetGame)

	// entrenamiento content-based
	r.Post("/train/cb", trainH.TrainCB)

	r.Route("/users/{id}", func(r chi.Router) {
		// valoraciones por motor
		r.Get("/ratings/knn", ratingH.GetKNNRatings)
		r.Post("/ratings/knn", ratingH.PostKNNRating)
		r.Delete("/ratings/knn/{gameId}", ratingH.DeleteKNNRating)

		r.Get("/ratings/cb", ratingH.GetCBRatings)
		r.Post("/ratings/cb", ratingH.PostCBRating)
		r.Delete("/ratings/cb/{appId}", ratingH.DeleteCBRating)

		// marcadores favorite / avoid
		r.Get("/markers", ratingH.GetMarkers)
		r.Put("/favorites/{gameId}", ratingH.PutFavorite)
		r.Delete("/favorites/{gameId}", ratingH.DeleteFavorite)
		r.Put("/avoids/{gameId}", ratingH.PutAvoid)
		r.Delete("/avoids/{gameId}", ratingH.DeleteAvoid)

		// recomendaciones
		r.Get("/recommendations/knn", recH.GetKNN)
		r.Get("/recommendations/cb", recH.GetCB)
		r.Get("/recommendations/hybrid", recH.GetHybrid)
		r.Get("/recommendations/history", recH.GetHistory)

		// WebSocket con progreso del pipeline
		r.Get("/pipeline/ws", recH.PipelineWS)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
