package knn

import (
	"math"
	"sort"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

// Params son los tunables del scoring colaborativo. Los multiplicadores de
// favorite/avoid son heurísticos, no ley: por eso viven acá y no inline.
type Params struct {
	MatchFraction float64
	FavBoost      float64 // ×4 por cada favorito que el vecino recomienda
	AvoidDiscount float64 // ÷2 por cada juego evitado que el vecino recomienda
	Epsilon       float64 // evita dividir por cero con distancia exacta 0
}

func DefaultParams() Params {
	return Params{
		MatchFraction: 0.7,
		FavBoost:      4.0,
		AvoidDiscount: 2.0,
		Epsilon:       1e-9,
	}
}

// ScoredGame es una fila cruda del ranking colaborativo, antes de
// enriquecerla con metadata del catálogo.
type ScoredGame struct {
	AppID     int
	Relevance float64
}

// Score agrega los votos ±1 de los vecinos en un score de relevancia por
// juego. filtered debe venir de SelectNeighbors. Los juegos ya valorados
// quedan fuera del resultado, salvo los marcados "interested" (0.5):
// interesado no es jugado, el juego sigue siendo elegible.
func Score(filtered []models.ReviewDoc, myRatings []models.UserGameRating, favs, avoids map[int]bool, p Params) []ScoredGame {
	if len(filtered) == 0 || len(myRatings) == 0 {
		return nil
	}

	myReview := make(map[int]float64, len(myRatings))
	for _, r := range myRatings {
		myReview[r.GameID] = r.Review
	}

	// filas esparsas por vecino: appID → voto ±1
	neighborRows := map[int]map[int]float64{}
	columns := map[int]bool{}
	for _, r := range filtered {
		row := neighborRows[r.UserID]
		if row == nil {
			row = map[int]float64{}
			neighborRows[r.UserID] = row
		}
		if r.Recommended {
			row[r.AppID] = 1
		} else {
			row[r.AppID] = -1
		}
		columns[r.AppID] = true
	}

	// mi vector vive en el mismo espacio de columnas que los vecinos:
	// juegos míos que ningún vecino reseñó no entran en la distancia
	myVec := make(map[int]float64, len(myReview))
	for appID, v := range myReview {
		if columns[appID] {
			myVec[appID] = v
		}
	}

	// peso base: si el usuario tiene muchos favoritos lo escalamos hacia
	// abajo, para que un mega-fan no termine dominando la suma
	baseWeight := 1.0
	if len(favs) > 0 {
		baseWeight = 1.0 / math.Pow(10, float64(int(math.Sqrt(float64(len(favs))))))
	}

	scores := map[int]float64{}
	for _, row := range neighborRows {
		dist := cosineDistance(row, myVec)

		weight := baseWeight
		for appID, vote := range row {
			if vote != 1 {
				continue
			}
			if favs[appID] {
				weight *= p.FavBoost
			} else if avoids[appID] {
				// este vecino recomienda cosas que yo evito: descuento
				weight /= p.AvoidDiscount
			}
		}

		influence := weight / (dist + p.Epsilon)
		for appID, vote := range row {
			scores[appID] += influence * vote
		}
	}

	var out []ScoredGame
	for appID, s := range scores {
		if s <= 0 {
			continue
		}
		// ya valorado → fuera, salvo "interested"
		if rv, rated := myReview[appID]; rated && rv != models.ReviewInterested {
			continue
		}
		out = append(out, ScoredGame{AppID: appID, Relevance: s})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Relevance != out[j].Relevance {
			return out[i].Relevance > out[j].Relevance
		}
		return out[i].AppID < out[j].AppID
	})
	return out
}

// cosineDistance = 1 - coseno entre dos vectores esparsos sobre el mismo
// espacio de columnas. Vector nulo → distancia máxima 1.
func cosineDistance(a, b map[int]float64) float64 {
	var dot, na, nb float64
	for k, va := range a {
		na += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// Enrich agrega título/fecha/precio/reviews del catálogo a las filas
// crudas, para que el merger pueda joinear por nombre.
func Enrich(scored []ScoredGame, catalog []models.GameDoc, topN int) []models.KNNItem {
	byID := make(map[int]*models.GameDoc, len(catalog))
	for i := range catalog {
		byID[catalog[i].AppID] = &catalog[i]
	}

	out := make([]models.KNNItem, 0, len(scored))
	for _, s := range scored {
		item := models.KNNItem{AppID: s.AppID, Relevance: s.Relevance}
		if g, ok := byID[s.AppID]; ok {
			item.Title = g.Name
			item.Release = g.Release
			item.Price = g.Price
			item.UserReviews = g.TotalReviews()
		}
		out = append(out, item)
		if topN > 0 && len(out) >= topN {
			break
		}
	}
	return out
}
