package knn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

func TestThreshold(t *testing.T) {
	// max(1, round(n * fraction))
	assert.Equal(t, 1, Threshold(1, 0.7))
	assert.Equal(t, 1, Threshold(2, 0.7)) // round(1.4) = 1
	assert.Equal(t, 2, Threshold(3, 0.7)) // round(2.1) = 2
	assert.Equal(t, 7, Threshold(10, 0.7))
	assert.Equal(t, 5, Threshold(10, 0.5))
	assert.Equal(t, 1, Threshold(1, 0.1), "nunca menos de 1")
}

func rev(user, app int, rec bool) models.ReviewDoc {
	return models.ReviewDoc{UserID: user, AppID: app, Recommended: rec}
}

func TestSelectNeighborsThresholdIff(t *testing.T) {
	// usuario activo con 3 juegos y fraction 0.7 → umbral 2:
	// un reviewer es vecino sii reseñó ≥ 2 de mis juegos
	myGames := map[int]bool{1: true, 2: true, 3: true}

	reviews := []models.ReviewDoc{
		// user 100: 3 de mis juegos → vecino
		rev(100, 1, true), rev(100, 2, true), rev(100, 3, false), rev(100, 50, true),
		// user 200: exactamente 2 → vecino (borde inclusive)
		rev(200, 1, true), rev(200, 3, true), rev(200, 60, true),
		// user 300: solo 1 → fuera
		rev(300, 2, true), rev(300, 70, true), rev(300, 80, true),
	}

	out := SelectNeighbors(reviews, myGames, 0.7)

	users := map[int]bool{}
	for _, r := range out {
		users[r.UserID] = true
	}
	assert.True(t, users[100])
	assert.True(t, users[200])
	assert.False(t, users[300])
}

func TestSelectNeighborsKeepsAllReviewsOfQualifiers(t *testing.T) {
	myGames := map[int]bool{1: true}
	reviews := []models.ReviewDoc{
		rev(100, 1, true), rev(100, 99, true), // el 99 es candidato, se conserva
	}
	out := SelectNeighbors(reviews, myGames, 0.7)
	require.Len(t, out, 2)
}

func TestSelectNeighborsIdempotentOnQualified(t *testing.T) {
	// el caller prefiltra en Mongo a los reviewers que superan el umbral y
	// después pasa sus historiales por acá; sobre filas ya calificadas la
	// función tiene que ser un no-op, no recortar más
	myGames := map[int]bool{1: true, 2: true, 3: true}
	reviews := []models.ReviewDoc{
		rev(100, 1, true), rev(100, 2, true), rev(100, 50, true),
		rev(200, 2, false), rev(200, 3, true), rev(200, 60, true), rev(200, 70, false),
	}

	once := SelectNeighbors(reviews, myGames, 0.7)
	require.Equal(t, reviews, once)

	twice := SelectNeighbors(once, myGames, 0.7)
	assert.Equal(t, once, twice)
}

func TestSelectNeighborsEmptyCases(t *testing.T) {
	reviews := []models.ReviewDoc{rev(100, 1, true)}

	// cero juegos valorados → vacío, no error
	assert.Empty(t, SelectNeighbors(reviews, nil, 0.7))

	// nadie llega al umbral → vacío
	assert.Empty(t, SelectNeighbors(reviews, map[int]bool{7: true, 8: true}, 0.7))
}
