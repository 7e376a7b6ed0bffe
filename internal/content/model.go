package content

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Model es el bundle entrenado del motor content-based: vocabulario+IDF,
// proyección SVD, matriz latente (juegos × dims) y el índice fila→AppID.
// Inmutable una vez entrenado; si el catálogo cambia hay que reentrenar.
//
// Generation reemplaza al flag global "recién entrenado": es el instante
// (unix nano) en que terminó el train. La capa de orquestación compara la
// Generation en disco contra la del modelo en memoria y recarga cuando
// difieren; así un recommend nunca usa un modelo viejo con otras
// dimensiones.
type Model struct {
	Vectorizer *Vectorizer
	SVD        *TruncatedSVD
	Features   [][]float64
	Index      []int
	Generation int64
}

// RowOf devuelve la fila de un AppID, -1 si el juego no está en el modelo.
func (m *Model) RowOf(appID int) int {
	for i, id := range m.Index {
		if id == appID {
			return i
		}
	}
	return -1
}

// Save persiste el modelo como blob gob opaco: primero la Generation sola
// (para que ReadGeneration no tenga que decodificar todo el blob) y después
// el modelo completo. Escribe a temp + rename: nunca queda un blob a medias.
func Save(m *Model, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := gob.NewEncoder(tmp)
	if err := enc.Encode(m.Generation); err != nil {
		tmp.Close()
		return fmt.Errorf("serializando generation: %w", err)
	}
	if err := enc.Encode(m); err != nil {
		tmp.Close()
		return fmt.Errorf("serializando modelo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load lee el blob completo.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	var gen int64
	if err := dec.Decode(&gen); err != nil {
		return nil, fmt.Errorf("blob de modelo corrupto (header): %w", err)
	}
	var m Model
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("blob de modelo corrupto: %w", err)
	}
	return &m, nil
}

// ReadGeneration lee solo el header del blob, sin cargar la matriz.
func ReadGeneration(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var gen int64
	if err := gob.NewDecoder(f).Decode(&gen); err != nil {
		return 0, fmt.Errorf("blob de modelo corrupto (header): %w", err)
	}
	return gen, nil
}
