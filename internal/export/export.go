// Package export escribe y relee los artefactos CSV de cada corrida.
// El merger híbrido consume estos archivos (no las listas en memoria),
// así que el formato es un contrato: orden fijo de columnas y floats
// con %.6f para que re-exportar la misma lista dé bytes idénticos.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

const (
	KNNFile    = "rcm_games.csv"
	CBFile     = "cb_recommendations.csv"
	HybridFile = "hybrid_ranking.csv"
)

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// writeCSV escribe a un temporal y renombra para que un lector nunca
// vea un archivo a medias.
func writeCSV(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteKNN sobreescribe rcm_games.csv con el top del motor colaborativo.
func WriteKNN(path string, items []models.KNNItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.AppID),
			it.Title,
			formatFloat(it.Relevance),
			formatFloat(it.Price),
			strconv.Itoa(it.UserReviews),
		})
	}
	return writeCSV(path, []string{"app_id", "title", "relevance", "price", "user_reviews"}, rows)
}

// WriteCB sobreescribe cb_recommendations.csv con el top content-based.
func WriteCB(path string, items []models.CBItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.AppID),
			it.Name,
			formatFloat(it.Score),
			formatFloat(it.Similarity),
			formatFloat(it.Price),
		})
	}
	return writeCSV(path, []string{"app_id", "name", "score", "similarity", "price"}, rows)
}

// WriteHybrid sobreescribe hybrid_ranking.csv con el ranking final.
func WriteHybrid(path string, items []models.HybridItem) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.Rank),
			strconv.Itoa(it.AppID),
			it.Title,
			formatFloat(it.HybridScore),
			formatFloat(it.KNNScore),
			formatFloat(it.CBScore),
		})
	}
	return writeCSV(path, []string{"rank", "app_id", "title", "hybrid_score", "knn_score", "cb_score"}, rows)
}

func readCSV(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantCols
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: %s sin encabezado", filepath.Base(path))
	}
	return records[1:], nil
}

// ReadKNN relee rcm_games.csv. Valores numéricos malformados son error:
// estos archivos los escribimos nosotros, no son entrada externa.
func ReadKNN(path string) ([]models.KNNItem, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	out := make([]models.KNNItem, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("export: app_id inválido %q: %w", row[0], err)
		}
		rel, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("export: relevance inválida %q: %w", row[2], err)
		}
		price, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("export: price inválido %q: %w", row[3], err)
		}
		reviews, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("export: user_reviews inválido %q: %w", row[4], err)
		}
		out = append(out, models.KNNItem{
			AppID:       id,
			Title:       row[1],
			Relevance:   rel,
			Price:       price,
			UserReviews: reviews,
		})
	}
	return out, nil
}

// ReadCB relee cb_recommendations.csv.
func ReadCB(path string) ([]models.CBItem, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	out := make([]models.CBItem, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("export: app_id inválido %q: %w", row[0], err)
		}
		score, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("export: score inválido %q: %w", row[2], err)
		}
		sim, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("export: similarity inválida %q: %w", row[3], err)
		}
		price, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("export: price inválido %q: %w", row[4], err)
		}
		out = append(out, models.CBItem{
			AppID:      id,
			Name:       row[1],
			Score:      score,
			Similarity: sim,
			Price:      price,
		})
	}
	return out, nil
}

// ReadHybrid relee hybrid_ranking.csv.
func ReadHybrid(path string) ([]models.HybridItem, error) {
	rows, err := readCSV(path, 6)
	if err != nil {
		return nil, err
	}
	out := make([]models.HybridItem, 0, len(rows))
	for _, row := range rows {
		rank, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("export: rank inválido %q: %w", row[0], err)
		}
		id, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("export: app_id inválido %q: %w", row[1], err)
		}
		hs, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("export: hybrid_score inválido %q: %w", row[3], err)
		}
		ks, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("export: knn_score inválido %q: %w", row[4], err)
		}
		cs, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("export: cb_score inválido %q: %w", row[5], err)
		}
		out = append(out, models.HybridItem{
			Rank:        rank,
			AppID:       id,
			Title:       row[2],
			HybridScore: hs,
			KNNScore:    ks,
			CBScore:     cs,
		})
	}
	return out, nil
}
