package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/veneneux711/steam-game-recommendation/internal/cache"
	"github.com/veneneux711/steam-game-recommendation/internal/config"
	"github.com/veneneux711/steam-game-recommendation/internal/export"
	"github.com/veneneux711/steam-game-recommendation/internal/hybrid"
	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/repository"
)

const (
	DefaultN = 20
	MaxN     = 50 // por seguridad, no deja pedir 1000 ítems
)

// HybridService corre el pipeline completo: los dos motores, los
// exports CSV y el merge. El merger NO consume las listas en memoria
// sino los CSV releídos del disco: los exports son el contrato del
// pipeline, no un efecto secundario.
type HybridService struct {
	knn     *KNNService
	cb      *ContentService
	recRepo *repository.RecommendationRepository
	dataDir string
	params  hybrid.Params

	// candidatos que se piden a cada motor; el top-n del usuario se aplica
	// recién después del merge, para que la sinergia vea listas profundas
	poolSize int
}

func NewHybridService(
	k *KNNService,
	c *ContentService,
	recRepo *repository.RecommendationRepository,
	cfg *config.Config,
) *HybridService {
	p := hybrid.DefaultParams()
	p.KNNWeight = cfg.KNNWeight
	p.CBWeight = cfg.CBWeight
	p.SynergyMultiplier = cfg.SynergyMultiplier
	p.SingleSourcePenalty = cfg.SingleSourcePenalty

	pool := cfg.HybridPoolSize
	if pool < MaxN {
		pool = MaxN
	}

	return &HybridService{
		knn:      k,
		cb:       c,
		recRepo:  recRepo,
		dataDir:  cfg.DataDir,
		params:   p,
		poolSize: pool,
	}
}

type HybridRequest struct {
	UserID   int
	N        int
	MaxPrice float64
	Refresh  bool
}

// Etapas que reporta el pipeline (las consume el websocket de progreso).
const (
	StageStart  = "start"
	StageKNN    = "knn_done"
	StageCB     = "cb_done"
	StageMerged = "merged"
)

func cacheKey(req HybridRequest) string {
	// Cachea por usuario + n + presupuesto (no incluye refresh, refresh
	// solo decide si usar cache)
	return fmt.Sprintf("rec:user:%d:hybrid:n:%d:mp:%g", req.UserID, req.N, req.MaxPrice)
}

func (s *HybridService) userDir(userID int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("user_%d", userID))
}

// Recommend corre el pipeline híbrido. progress puede ser nil.
func (s *HybridService) Recommend(ctx context.Context, req HybridRequest, progress func(stage string)) ([]models.HybridItem, error) {
	if req.N <= 0 {
		req.N = DefaultN
	} else if req.N > MaxN {
		req.N = MaxN
	}

	notify := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}
	notify(StageStart)

	// 1) Cache Redis (solo si refresh = false)
	var cached []models.HybridItem
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, cacheKey(req), &cached); err == nil && ok {
			notify(StageMerged)
			return cached, nil
		}
	}

	dir := s.userDir(req.UserID)

	// 2) Motor colaborativo → rcm_games.csv. Se le pide el pool completo,
	// no el n del usuario: el truncado llega después del merge
	knnItems, err := s.knn.Recommend(ctx, req.UserID, s.poolSize, req.Refresh)
	if err != nil {
		return nil, fmt.Errorf("motor knn: %w", err)
	}
	if err := export.WriteKNN(filepath.Join(dir, export.KNNFile), knnItems); err != nil {
		return nil, err
	}
	notify(StageKNN)

	// 3) Motor content-based → cb_recommendations.csv.
	// ErrNoModel no aborta el pipeline: el híbrido degrada a una sola fuente.
	cbItems, err := s.cb.Recommend(ctx, req.UserID, s.poolSize, req.MaxPrice, req.Refresh)
	if err == ErrNoModel {
		log.Printf("[hybrid] usuario %d sin modelo content-based, sigo solo con knn", req.UserID)
		cbItems = []models.CBItem{}
	} else if err != nil {
		return nil, fmt.Errorf("motor content-based: %w", err)
	}
	if err := export.WriteCB(filepath.Join(dir, export.CBFile), cbItems); err != nil {
		return nil, err
	}
	notify(StageCB)

	// 4) Releer los exports y mergear
	knnBack, err := export.ReadKNN(filepath.Join(dir, export.KNNFile))
	if err != nil {
		return nil, err
	}
	cbBack, err := export.ReadCB(filepath.Join(dir, export.CBFile))
	if err != nil {
		return nil, err
	}

	p := s.params
	p.TopN = req.N
	merged := hybrid.Merge(knnBack, cbBack, p)

	if err := export.WriteHybrid(filepath.Join(dir, export.HybridFile), merged); err != nil {
		return nil, err
	}
	notify(StageMerged)

	// 5) Guardar historial en Mongo (no rompemos la respuesta si falla)
	if s.recRepo != nil {
		hist := &models.Recommendation{
			UserID: req.UserID,
			Algo:   "hybrid",
			Params: map[string]any{
				"n":             req.N,
				"refresh":       req.Refresh,
				"knnWeight":     p.KNNWeight,
				"cbWeight":      p.CBWeight,
				"synergy":       p.SynergyMultiplier,
				"singlePenalty": p.SingleSourcePenalty,
			},
			Items:     merged,
			CreatedAt: time.Now(),
		}
		if err := s.recRepo.Insert(ctx, hist); err != nil {
			log.Printf("[hybrid] error guardando historial en Mongo: %v", err)
		}
	}

	// 6) Cachear en Redis (1 hora)
	if err := cache.SetJSON(ctx, cacheKey(req), merged, 60*60); err != nil {
		log.Printf("[hybrid] error cacheando en Redis: %v", err)
	}

	return merged, nil
}

// History devuelve las últimas corridas híbridas del usuario.
func (s *HybridService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.recRepo.FindByUser(ctx, userID, limit)
}
