package content

import (
	"math"
	"sort"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/titles"
)

// Params son los tunables del scoring content-based. Los defaults vienen
// del comportamiento observado del sistema; ninguno es ley.
type Params struct {
	TopN              int
	SimilarityFloor   float64 // debajo de esto el candidato no cuenta
	ShovelwareReviews int     // menos reviews que esto = juego sin señal de calidad
	CheapPrice        float64
	HeavyPenalty      float64 // shovelware barato y no casi-idéntico
	LightPenalty      float64
	NearExactSim      float64 // similitud casi exacta escapa a la pena fuerte
	SimWeight         float64
	PopWeight         float64
	PricePenalty      float64 // castigo por superar el precio máximo del usuario
	MaxPrice          float64 // 0 = sin preferencia de precio
}

func DefaultParams() Params {
	return Params{
		TopN:              20,
		SimilarityFloor:   0.1,
		ShovelwareReviews: 100,
		CheapPrice:        9.99,
		HeavyPenalty:      0.25,
		LightPenalty:      0.9,
		NearExactSim:      0.8,
		SimWeight:         0.85,
		PopWeight:         0.15,
		PricePenalty:      0.5,
	}
}

// ProfileWeight es el peso de un juego valorado dentro del perfil:
// rating 5→3, 4→2, 3→1 (monótono no decreciente).
func ProfileWeight(rating int) float64 {
	return math.Max(1, float64(rating-2))
}

// Recommend arma el perfil del usuario como promedio ponderado de los
// juegos que le gustaron (rating ≥ 3), escanea todo el catálogo por coseno
// en el espacio latente y aplica los filtros de calidad. Lista vacía no es
// error: significa "corrió bien y no encontró nada".
func Recommend(m *Model, catalog []models.GameDoc, rated []models.ContentRating, p Params) []models.CBItem {
	if m == nil || len(m.Features) == 0 {
		return nil
	}

	byID := make(map[int]*models.GameDoc, len(catalog))
	for i := range catalog {
		byID[catalog[i].AppID] = &catalog[i]
	}
	rowOf := make(map[int]int, len(m.Index))
	for row, id := range m.Index {
		rowOf[id] = row
	}

	// los catálogos pueden usar esquemas de ID distintos, así que la
	// exclusión de "ya valorado" va por título normalizado
	ratedTitles := make(map[string]bool, len(rated))
	dims := len(m.Features[0])
	profile := make([]float64, dims)
	var totalWeight float64

	for _, r := range rated {
		name := r.Name
		if g, ok := byID[r.AppID]; ok && g.Name != "" {
			name = g.Name
		}
		if name != "" {
			ratedTitles[titles.Normalize(name)] = true
		}

		if r.Rating < 3 {
			continue
		}
		row, ok := rowOf[r.AppID]
		if !ok {
			continue
		}
		w := ProfileWeight(r.Rating)
		for d, v := range m.Features[row] {
			profile[d] += w * v
		}
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil
	}
	for d := range profile {
		profile[d] /= totalWeight
	}

	var results []models.CBItem
	for row, feat := range m.Features {
		sim := cosine(profile, feat)
		if sim < p.SimilarityFloor {
			continue
		}

		appID := m.Index[row]
		g, ok := byID[appID]
		if !ok {
			continue
		}
		if ratedTitles[titles.Normalize(g.Name)] {
			continue
		}

		total := float64(g.TotalReviews())
		final := sim
		if total < float64(p.ShovelwareReviews) {
			if g.Price < p.CheapPrice && sim < p.NearExactSim {
				final *= p.HeavyPenalty
			} else {
				final *= p.LightPenalty
			}
		}

		// mezcla con popularidad en escala log
		pop := math.Log10(total+1) / 10.0
		final = final*p.SimWeight + pop*p.PopWeight

		if p.MaxPrice > 0 && g.Price > p.MaxPrice {
			final *= p.PricePenalty
		}

		results = append(results, models.CBItem{
			AppID:      appID,
			Name:       g.Name,
			Score:      final,
			Similarity: sim,
			Price:      g.Price,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].AppID < results[j].AppID
	})
	if p.TopN > 0 && len(results) > p.TopN {
		results = results[:p.TopN]
	}
	return results
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
