// Package ratings persiste los snapshots planos del usuario activo:
// un archivo por motor, sin historial (se reescribe completo en cada save).
// Archivo ausente o vacío no es error: es "todavía no valoraste nada".
package ratings

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

const (
	KNNFile   = "your_games.csv"
	FavFile   = "fav_games.csv"
	AvoidFile = "bad_games.csv"
	CBFile    = "cb_ratings.json"
)

// Store agrupa las rutas de los snapshots de un usuario.
// El layout en disco es dataDir/user_<id>/<archivo>.
type Store struct {
	dir string
}

func NewStore(dataDir string, userID int) *Store {
	return &Store{dir: filepath.Join(dataDir, fmt.Sprintf("user_%d", userID))}
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// ---------------- motor KNN (escala -1 / -0.5 / 0.5 / 1) ----------------

func (s *Store) LoadKNNRatings() ([]models.UserGameRating, error) {
	f, err := os.Open(s.path(KNNFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	// header gameID,gameName,review
	if _, err := rd.Read(); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var out []models.UserGameRating
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) < 3 {
			continue
		}
		id, err1 := strconv.Atoi(rec[0])
		val, err2 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, models.UserGameRating{GameID: id, GameName: rec[1], Review: val})
	}
	return out, nil
}

func (s *Store) SaveKNNRatings(list []models.UserGameRating) error {
	return s.writeAtomic(KNNFile, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"gameID", "gameName", "review"}); err != nil {
			return err
		}
		for _, r := range list {
			rec := []string{strconv.Itoa(r.GameID), r.GameName, formatReview(r.Review)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// formatReview evita "0.5000000" en el CSV: valores discretos, texto corto.
func formatReview(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ---------------- marcadores favorite / avoid ----------------

func (s *Store) LoadFavorites() (map[int]bool, error) { return s.loadIDSet(FavFile) }
func (s *Store) LoadAvoids() (map[int]bool, error)    { return s.loadIDSet(AvoidFile) }

func (s *Store) SaveFavorites(ids map[int]bool) error { return s.saveIDSet(FavFile, ids) }
func (s *Store) SaveAvoids(ids map[int]bool) error    { return s.saveIDSet(AvoidFile, ids) }

func (s *Store) loadIDSet(name string) (map[int]bool, error) {
	f, err := os.Open(s.path(name))
	if os.IsNotExist(err) {
		return map[int]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	if _, err := rd.Read(); err == io.EOF {
		return map[int]bool{}, nil
	} else if err != nil {
		return nil, err
	}

	out := map[int]bool{}
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) < 1 {
			continue
		}
		if id, err := strconv.Atoi(rec[0]); err == nil {
			out[id] = true
		}
	}
	return out, nil
}

func (s *Store) saveIDSet(name string, ids map[int]bool) error {
	// orden estable para que el archivo sea reproducible
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)

	return s.writeAtomic(name, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"gameID"}); err != nil {
			return err
		}
		for _, id := range sorted {
			if err := cw.Write([]string{strconv.Itoa(id)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// ---------------- motor content-based (escala 1-5) ----------------

func (s *Store) LoadCBRatings() ([]models.ContentRating, error) {
	b, err := os.ReadFile(s.path(CBFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}

	var out []models.ContentRating
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("cb_ratings.json inválido: %w", err)
	}
	return out, nil
}

func (s *Store) SaveCBRatings(list []models.ContentRating) error {
	return s.writeAtomic(CBFile, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	})
}

// writeAtomic escribe a un temp y renombra: nunca dejamos un snapshot
// a medio escribir en disco.
func (s *Store) writeAtomic(name string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(name))
}
