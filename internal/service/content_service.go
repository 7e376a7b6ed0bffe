package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/veneneux711/steam-game-recommendation/internal/cache"
	"github.com/veneneux711/steam-game-recommendation/internal/config"
	"github.com/veneneux711/steam-game-recommendation/internal/content"
	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/ratings"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
)

// ErrBusy: ya hay un entrenamiento o recomendación content-based en curso.
// El caller lo traduce a 409.
var ErrBusy = errors.New("el motor content-based está ocupado, intenta de nuevo")

// ErrNoModel: nadie entrenó todavía y no hay blob en disco.
var ErrNoModel = errors.New("no hay modelo entrenado: corre POST /train/cb primero")

const ModelFile = "cb_model.gob"

// ContentService es dueño del modelo entrenado. Una operación a la vez:
// el TryLock evita que dos trains (o un train y un recommend) pisen el
// modelo a medias. El blob en disco lleva un contador de generación;
// si otro proceso re-entrenó, lo detectamos y recargamos.
type ContentService struct {
	games   *repository.GameRepository
	dataDir string
	cfg     *config.Config

	mu    sync.Mutex
	model *content.Model
}

func NewContentService(g *repository.GameRepository, cfg *config.Config) *ContentService {
	return &ContentService{games: g, dataDir: cfg.DataDir, cfg: cfg}
}

func (s *ContentService) modelPath() string {
	return filepath.Join(s.dataDir, ModelFile)
}

// TrainReport resume un entrenamiento para la respuesta HTTP.
type TrainReport struct {
	Games      int           `json:"games"`
	VocabSize  int           `json:"vocabSize"`
	LatentDims int           `json:"latentDims"`
	Elapsed    time.Duration `json:"elapsedMs"`
}

// Train reconstruye el modelo desde el catálogo en Mongo y lo persiste.
func (s *ContentService) Train(ctx context.Context) (*TrainReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	start := time.Now()

	catalog, err := s.games.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("catálogo vacío: importa juegos antes de entrenar")
	}

	m, err := content.Train(catalog, s.cfg.MaxVocab, s.cfg.LatentDims, s.cfg.SVDSeed)
	if err != nil {
		return nil, err
	}

	if err := content.Save(m, s.modelPath()); err != nil {
		return nil, err
	}
	s.model = m

	// el modelo nuevo invalida todo lo cacheado del motor content-based
	// y del híbrido que lo consume
	if err := cache.DeletePrefix(ctx, "rec:"); err != nil {
		log.Printf("[content] error invalidando cache tras entrenar: %v", err)
	}

	log.Printf("[content] modelo entrenado: %d juegos, vocab %d, %d dims en %v",
		len(catalog), len(m.Vectorizer.Vocab), m.SVD.K, time.Since(start))

	return &TrainReport{
		Games:      len(catalog),
		VocabSize:  len(m.Vectorizer.Vocab),
		LatentDims: m.SVD.K,
		Elapsed:    time.Since(start) / time.Millisecond,
	}, nil
}

// ensureModel carga el blob si no hay modelo en memoria o si la
// generación en disco es más nueva (otro proceso re-entrenó).
func (s *ContentService) ensureModel() (*content.Model, error) {
	gen, err := content.ReadGeneration(s.modelPath())
	if os.IsNotExist(err) {
		if s.model != nil {
			return s.model, nil
		}
		return nil, ErrNoModel
	}
	if err != nil {
		return nil, err
	}

	if s.model != nil && s.model.Generation == gen {
		return s.model, nil
	}

	m, err := content.Load(s.modelPath())
	if err != nil {
		return nil, err
	}
	s.model = m
	return m, nil
}

// Recommend corre el motor content-based para un usuario.
// maxPrice <= 0 apaga el filtro de presupuesto.
func (s *ContentService) Recommend(ctx context.Context, userID, topN int, maxPrice float64, refresh bool) ([]models.CBItem, error) {
	// maxPrice cambia el resultado, así que entra en la key
	key := fmt.Sprintf("rec:user:%d:cb:n:%d:mp:%g", userID, topN, maxPrice)
	var cached []models.CBItem
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	m, err := s.ensureModel()
	if err != nil {
		return nil, err
	}

	rated, err := ratings.NewStore(s.dataDir, userID).LoadCBRatings()
	if err != nil {
		return nil, err
	}
	if len(rated) == 0 {
		return []models.CBItem{}, nil
	}

	catalog, err := s.games.All(ctx)
	if err != nil {
		return nil, err
	}

	p := content.DefaultParams()
	p.TopN = topN
	p.MaxPrice = maxPrice

	items := content.Recommend(m, catalog, rated, p)
	if items == nil {
		items = []models.CBItem{}
	}

	if err := cache.SetJSON(ctx, key, items, 60*60); err != nil {
		log.Printf("[content] error cacheando en Redis: %v", err)
	}
	return items, nil
}
