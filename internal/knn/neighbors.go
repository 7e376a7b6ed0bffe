// Package knn implementa el motor colaborativo user-based: selección de
// vecinos sobre la tabla de reviews y agregación de votos ponderados por
// confianza.
package knn

import (
	"math"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

// Threshold calcula cuántos de los juegos del usuario activo tiene que
// haber reseñado un reviewer para contar como vecino:
// max(1, round(n * fraction)).
func Threshold(numGames int, fraction float64) int {
	t := int(math.Round(float64(numGames) * fraction))
	if t < 1 {
		t = 1
	}
	return t
}

// SelectNeighbors filtra la tabla de reviews a los reviewers que comparten
// suficientes juegos con el usuario activo. Cero juegos valorados o cero
// reviewers que lleguen al umbral devuelve vacío, no error: el caller
// distingue "sin vecinos" de "no pude correr".
func SelectNeighbors(reviews []models.ReviewDoc, myGameIDs map[int]bool, fraction float64) []models.ReviewDoc {
	if len(myGameIDs) == 0 {
		return nil
	}

	threshold := Threshold(len(myGameIDs), fraction)

	// cuántos de MIS juegos reseñó cada reviewer
	overlap := map[int]int{}
	for _, r := range reviews {
		if myGameIDs[r.AppID] {
			overlap[r.UserID]++
		}
	}

	qualifies := map[int]bool{}
	for uid, n := range overlap {
		if n >= threshold {
			qualifies[uid] = true
		}
	}
	if len(qualifies) == 0 {
		return nil
	}

	// nos quedamos con TODAS las reviews de los vecinos, no solo las de
	// mis juegos: sus otras reviews son justamente los candidatos
	var out []models.ReviewDoc
	for _, r := range reviews {
		if qualifies[r.UserID] {
			out = append(out, r)
		}
	}
	return out
}
