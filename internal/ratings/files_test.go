package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

func TestMissingFilesAreEmptyNotError(t *testing.T) {
	s := NewStore(t.TempDir(), 1)

	knn, err := s.LoadKNNRatings()
	require.NoError(t, err)
	assert.Empty(t, knn)

	cb, err := s.LoadCBRatings()
	require.NoError(t, err)
	assert.Empty(t, cb)

	favs, err := s.LoadFavorites()
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestKNNRatingsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), 7)

	in := []models.UserGameRating{
		{GameID: 10, GameName: "Counter-Strike", Review: models.ReviewLike},
		{GameID: 20, GameName: "Half-Life", Review: models.ReviewInterested},
		{GameID: 30, GameName: "Juego Malo", Review: models.ReviewDislike},
	}
	require.NoError(t, s.SaveKNNRatings(in))

	out, err := s.LoadKNNRatings()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestKNNRatingsSnapshotOverwrites(t *testing.T) {
	// el snapshot no guarda historial: el último save gana completo
	s := NewStore(t.TempDir(), 1)

	require.NoError(t, s.SaveKNNRatings([]models.UserGameRating{
		{GameID: 10, GameName: "A", Review: models.ReviewLike},
		{GameID: 20, GameName: "B", Review: models.ReviewDislike},
	}))
	require.NoError(t, s.SaveKNNRatings([]models.UserGameRating{
		{GameID: 10, GameName: "A", Review: models.ReviewNeutral},
	}))

	out, err := s.LoadKNNRatings()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.ReviewNeutral, out[0].Review)
}

func TestCBRatingsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), 2)

	in := []models.ContentRating{
		{AppID: 100, Name: "Portal", Rating: 5},
		{AppID: 200, Name: "Dota 2", Rating: 3},
	}
	require.NoError(t, s.SaveCBRatings(in))

	out, err := s.LoadCBRatings()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestIDSetRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), 3)

	require.NoError(t, s.SaveFavorites(map[int]bool{30: true, 10: true}))
	require.NoError(t, s.SaveAvoids(map[int]bool{99: true}))

	favs, err := s.LoadFavorites()
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{10: true, 30: true}, favs)

	avoids, err := s.LoadAvoids()
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{99: true}, avoids)
}
