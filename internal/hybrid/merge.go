// Package hybrid reconcilia los rankings de los dos motores en uno solo.
// Los dos dominios usan esquemas de ID independientes, así que el join va
// por título normalizado; los scores se llevan a [0,1] dividiendo por el
// máximo de cada lista porque las escalas no son comparables (el KNN suma
// sin cota, el content-based es una similitud acotada).
package hybrid

import (
	"math"
	"sort"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
	"github.com/veneneux711/steam-game-recommendation/internal/titles"
)

// Params del merger. Synergy y SingleSourcePenalty son heurísticos
// configurables: lo único que importa es que synergy > 0 y penalty < 1
// para que un pick validado por los dos motores le gane a uno de una
// sola fuente con fuerza comparable.
type Params struct {
	KNNWeight           float64
	CBWeight            float64
	SynergyMultiplier   float64
	SingleSourcePenalty float64
	TopN                int
}

func DefaultParams() Params {
	return Params{
		KNNWeight:           0.5,
		CBWeight:            0.5,
		SynergyMultiplier:   0.5,
		SingleSourcePenalty: 0.7,
		TopN:                20,
	}
}

type joined struct {
	knnID, cbID     int
	title           string
	knnNorm, cbNorm float64
}

// Merge junta los top-N de ambos motores en el ranking final.
// Ambas listas vacías → resultado vacío, no error.
func Merge(knnItems []models.KNNItem, cbItems []models.CBItem, p Params) []models.HybridItem {
	if len(knnItems) == 0 && len(cbItems) == 0 {
		return nil
	}

	var knnMax float64
	for _, it := range knnItems {
		if it.Relevance > knnMax {
			knnMax = it.Relevance
		}
	}
	var cbMax float64
	for _, it := range cbItems {
		if it.Score > cbMax {
			cbMax = it.Score
		}
	}

	// outer join por título normalizado
	byKey := map[string]*joined{}
	order := []string{} // para iterar determinístico

	for _, it := range knnItems {
		key := titles.Normalize(it.Title)
		if key == "" {
			continue
		}
		j, ok := byKey[key]
		if !ok {
			j = &joined{title: it.Title}
			byKey[key] = j
			order = append(order, key)
		}
		j.knnID = it.AppID
		if knnMax > 0 {
			j.knnNorm = it.Relevance / knnMax
		}
	}
	for _, it := range cbItems {
		key := titles.Normalize(it.Name)
		if key == "" {
			continue
		}
		j, ok := byKey[key]
		if !ok {
			j = &joined{title: it.Name}
			byKey[key] = j
			order = append(order, key)
		}
		j.cbID = it.AppID
		if j.title == "" {
			j.title = it.Name
		}
		if cbMax > 0 {
			j.cbNorm = it.Score / cbMax
		}
	}

	out := make([]models.HybridItem, 0, len(order))
	for _, key := range order {
		j := byKey[key]

		base := j.knnNorm*p.KNNWeight + j.cbNorm*p.CBWeight

		var score float64
		if j.knnNorm > 0 && j.cbNorm > 0 {
			// validado por los dos motores: bonus proporcional a la
			// media geométrica de los scores normalizados
			score = base + math.Sqrt(j.knnNorm*j.cbNorm)*p.SynergyMultiplier
		} else {
			score = base * p.SingleSourcePenalty
		}

		// el ID del dominio content-based es el canónico cuando existe
		appID := j.cbID
		if appID == 0 {
			appID = j.knnID
		}

		out = append(out, models.HybridItem{
			AppID:       appID,
			Title:       j.title,
			HybridScore: score,
			KNNScore:    j.knnNorm,
			CBScore:     j.cbNorm,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].HybridScore != out[j].HybridScore {
			return out[i].HybridScore > out[j].HybridScore
		}
		return out[i].Title < out[j].Title
	})

	if p.TopN > 0 && len(out) > p.TopN {
		out = out[:p.TopN]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
