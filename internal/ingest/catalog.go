package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

// LoadReport resume qué pasó durante una carga: filas buenas, filas
// descartadas y campos numéricos coercionados a 0.
type LoadReport struct {
	Rows        int
	Skipped     int
	Coerced     int
	Transposed  bool
	EmptyGenres int
	EmptyTags   int
}

func (r *LoadReport) String() string {
	return fmt.Sprintf(
		"filas=%d descartadas=%d coercionadas=%d transpuesto=%v genres_vacios=%d tags_vacios=%d",
		r.Rows, r.Skipped, r.Coerced, r.Transposed, r.EmptyGenres, r.EmptyTags)
}

// columnas que esperamos en el CSV del catálogo (case-insensitive)
type catalogColumns struct {
	appID, name, release, price, positive, negative, genres, tags int
}

func findColumn(header []string, names ...string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

// LoadCatalogCSV lee el catálogo de juegos y lo normaliza una sola vez a
// GameDoc tipado. Toda la reparación heurística de columnas vive acá:
// el resto del core nunca vuelve a dudar del significado de un campo.
//
// Peligro conocido del dataset: hay dumps donde la columna "AppID" trae el
// nombre del juego y "Name" trae la fecha de release (columnas corridas).
// Lo detectamos probando si la celda de AppID es numérica en las primeras
// filas; si no lo es, asumimos el layout corrido y el ID real es el
// ordinal de la fila (o la columna índice sin nombre si existe).
func LoadCatalogCSV(path string) ([]models.GameDoc, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("abriendo catálogo: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leyendo header del catálogo: %w", err)
	}

	cols := catalogColumns{
		appID:    findColumn(header, "appid", "app_id", "id"),
		name:     findColumn(header, "name", "title"),
		release:  findColumn(header, "release_date", "release", "date_release"),
		price:    findColumn(header, "price"),
		positive: findColumn(header, "positive"),
		negative: findColumn(header, "negative"),
		genres:   findColumn(header, "genres", "genre"),
		tags:     findColumn(header, "tags"),
	}
	if cols.appID < 0 || cols.name < 0 {
		return nil, nil, fmt.Errorf("catálogo sin columnas AppID/Name reconocibles: %v", header)
	}

	// columna índice sin nombre (pandas la exporta así)
	idxCol := -1
	if strings.TrimSpace(header[0]) == "" {
		idxCol = 0
	}

	report := &LoadReport{}
	var games []models.GameDoc
	transposedChecked := false

	rowNum := 0
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped++
			continue
		}
		rowNum++

		get := func(i int) string {
			if i < 0 || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		// detección de columnas corridas, una sola vez con la primera fila útil
		if !transposedChecked {
			if _, err := strconv.Atoi(get(cols.appID)); err != nil && get(cols.appID) != "" {
				report.Transposed = true
				log.Printf("[ingest] columna AppID no numérica (%q): layout transpuesto detectado", get(cols.appID))
			}
			transposedChecked = true
		}

		var g models.GameDoc
		if report.Transposed {
			// AppID trae el nombre, Name trae la fecha; el ID real es el índice
			g.Name = get(cols.appID)
			g.Release = get(cols.name)
			if idxCol >= 0 {
				g.AppID = coerceInt(get(idxCol), report)
			} else {
				g.AppID = rowNum
			}
		} else {
			g.AppID = coerceInt(get(cols.appID), report)
			g.Name = get(cols.name)
			g.Release = get(cols.release)
		}

		if g.Name == "" {
			report.Skipped++
			continue
		}

		g.Price = coerceFloat(get(cols.price), report)
		g.Positive = coerceInt(get(cols.positive), report)
		g.Negative = coerceInt(get(cols.negative), report)
		g.Genres = SplitList(get(cols.genres))
		g.Tags = SplitList(get(cols.tags))

		if len(g.Genres) == 0 {
			report.EmptyGenres++
		}
		if len(g.Tags) == 0 {
			report.EmptyTags++
		}

		games = append(games, g)
		report.Rows++
	}

	return games, report, nil
}

// SplitList parte un campo "A,B, C" en tokens limpios, preservando el orden.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// coerceInt convierte a int; si no se puede, 0 y se cuenta la coerción.
// Preferimos seguir procesando antes que abortar toda la carga.
func coerceInt(s string, rep *LoadReport) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// a veces vienen floats tipo "123.0"
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		rep.Coerced++
		return 0
	}
	return n
}

func coerceFloat(s string, rep *LoadReport) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		rep.Coerced++
		return 0
	}
	return f
}
