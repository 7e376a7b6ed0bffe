package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

// LoadReviewsCSV lee la tabla de reviews (user_id, app_id, is_recommended).
// is_recommended viene "boolean-like": True/False, true/false, 1/0.
// Filas malformadas se descartan y se cuentan, no abortan la carga.
func LoadReviewsCSV(path string) ([]models.ReviewDoc, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("abriendo reviews: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leyendo header de reviews: %w", err)
	}

	userCol := findColumn(header, "user_id", "userid")
	appCol := findColumn(header, "app_id", "appid", "game_id")
	recCol := findColumn(header, "is_recommended", "recommended")
	if userCol < 0 || appCol < 0 || recCol < 0 {
		return nil, nil, fmt.Errorf("reviews sin columnas user_id/app_id/is_recommended: %v", header)
	}

	report := &LoadReport{}
	var out []models.ReviewDoc

	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped++
			continue
		}
		if userCol >= len(rec) || appCol >= len(rec) || recCol >= len(rec) {
			report.Skipped++
			continue
		}

		uid, err1 := strconv.Atoi(strings.TrimSpace(rec[userCol]))
		aid, err2 := strconv.Atoi(strings.TrimSpace(rec[appCol]))
		if err1 != nil || err2 != nil {
			report.Skipped++
			continue
		}

		recommended, ok := parseBoolish(rec[recCol])
		if !ok {
			report.Skipped++
			continue
		}

		out = append(out, models.ReviewDoc{UserID: uid, AppID: aid, Recommended: recommended})
		report.Rows++
	}

	return out, report, nil
}

func parseBoolish(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes":
		return true, true
	case "false", "f", "0", "no":
		return false, true
	default:
		return false, false
	}
}
