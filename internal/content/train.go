package content

import (
	"errors"
	"log"
	"time"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

// Train entrena el modelo completo sobre el catálogo: texto sintético por
// juego → TF-IDF → SVD truncado → matriz latente. Catálogo vacío o sin
// filas útiles devuelve error, nunca un modelo a medias.
func Train(catalog []models.GameDoc, maxVocab, latentDims int, seed int64) (*Model, error) {
	if len(catalog) == 0 {
		return nil, errors.New("catálogo vacío, no se puede entrenar")
	}

	// juegos sin géneros ni tags no aportan features: quedan fuera del modelo
	docs := make([]string, 0, len(catalog))
	index := make([]int, 0, len(catalog))
	for _, g := range catalog {
		text := BuildFeatureText(g.Genres, g.Tags)
		if text == "" {
			continue
		}
		docs = append(docs, text)
		index = append(index, g.AppID)
	}
	if len(docs) == 0 {
		return nil, errors.New("ningún juego del catálogo tiene géneros/tags")
	}

	log.Printf("[content] entrenando: %d juegos con features de %d en catálogo", len(docs), len(catalog))
	start := time.Now()

	vec := NewVectorizer(maxVocab)
	if err := vec.Fit(docs); err != nil {
		return nil, err
	}

	rows := make([]map[int]float64, len(docs))
	for i, d := range docs {
		rows[i] = vec.Transform(d)
	}

	svd := &TruncatedSVD{K: latentDims, Seed: seed}
	if err := svd.Fit(rows, len(vec.IDF)); err != nil {
		return nil, err
	}

	features := make([][]float64, len(rows))
	for i, r := range rows {
		features[i] = svd.Transform(r)
	}

	m := &Model{
		Vectorizer: vec,
		SVD:        svd,
		Features:   features,
		Index:      index,
		Generation: time.Now().UnixNano(),
	}
	log.Printf("[content] entrenado: %d juegos × %d dims, vocab=%d, en %s",
		len(features), svd.K, len(vec.IDF), time.Since(start))
	return m, nil
}
