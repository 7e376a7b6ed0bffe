// ETL: importa los CSV crudos (catálogo y reseñas) a Mongo y,
// opcionalmente, entrena el modelo content-based de una vez.
//
// Uso:
//
//	etl -games games.csv -reviews reviews.csv -train
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/veneneux711/steam-game-recommendation/internal/cache"
	"github.com/veneneux711/steam-game-recommendation/internal/config"
	"github.com/veneneux711/steam-game-recommendation/internal/db"
	"github.com/veneneux711/steam-game-recommendation/internal/ingest"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
	"github.com/veneneux711/steam-game-recommendation/internal/service"
)

func main() {
	gamesPath := flag.String("games", "", "ruta al CSV del catálogo de juegos")
	reviewsPath := flag.String("reviews", "", "ruta al CSV de reseñas históricas")
	train := flag.Bool("train", false, "entrenar el modelo content-based después de importar")
	flag.Parse()

	if *gamesPath == "" && *reviewsPath == "" && !*train {
		log.Fatal("[etl] nada que hacer: pasa -games, -reviews o -train")
	}

	cfg := config.Load()
	db.InitMongo(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	defer db.Disconnect(context.Background())

	gameRepo := repository.NewGameRepository()
	reviewRepo := repository.NewReviewRepository()

	if *gamesPath != "" {
		start := time.Now()
		games, report, err := ingest.LoadCatalogCSV(*gamesPath)
		if err != nil {
			log.Fatalf("[etl] error leyendo catálogo: %v", err)
		}
		log.Printf("[etl] catálogo: %d filas (%d saltadas, %d celdas coaccionadas, transpuesto=%v)",
			report.Rows, report.Skipped, report.Coerced, report.Transposed)
		if report.EmptyGenres > 0 || report.EmptyTags > 0 {
			log.Printf("[etl] catálogo: %d juegos sin géneros, %d sin tags", report.EmptyGenres, report.EmptyTags)
		}

		if err := gameRepo.ReplaceAll(ctx, games); err != nil {
			log.Fatalf("[etl] error insertando catálogo en Mongo: %v", err)
		}
		log.Printf("[etl] catálogo importado: %d juegos en %v", len(games), time.Since(start))
	}

	if *reviewsPath != "" {
		start := time.Now()
		reviews, report, err := ingest.LoadReviewsCSV(*reviewsPath)
		if err != nil {
			log.Fatalf("[etl] error leyendo reseñas: %v", err)
		}
		log.Printf("[etl] reseñas: %d filas (%d saltadas)", report.Rows, report.Skipped)

		if err := reviewRepo.ReplaceAll(ctx, reviews); err != nil {
			log.Fatalf("[etl] error insertando reseñas en Mongo: %v", err)
		}
		log.Printf("[etl] reseñas importadas: %d votos en %v", len(reviews), time.Since(start))
	}

	if *train {
		// el train invalida cache, así que Redis también se inicializa
		cache.InitRedis(cfg)

		contentSvc := service.NewContentService(gameRepo, cfg)
		report, err := contentSvc.Train(ctx)
		if err != nil {
			log.Fatalf("[etl] error entrenando modelo: %v", err)
		}
		log.Printf("[etl] modelo entrenado: %d juegos, vocab %d, %d dims",
			report.Games, report.VocabSize, report.LatentDims)
	}

	log.Println("[etl] listo")
}
