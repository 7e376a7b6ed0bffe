package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

func TestKNNRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), KNNFile)
	items := []models.KNNItem{
		{AppID: 730, Title: "Counter-Strike 2", Relevance: 12.345678, Price: 0, UserReviews: 4200},
		{AppID: 440, Title: "Team Fortress 2", Relevance: 3.5, Price: 9.99, UserReviews: 900},
	}
	require.NoError(t, WriteKNN(path, items))

	got, err := ReadKNN(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 730, got[0].AppID)
	require.Equal(t, "Counter-Strike 2", got[0].Title)
	require.InDelta(t, 12.345678, got[0].Relevance, 1e-6)
	require.Equal(t, 4200, got[0].UserReviews)
}

func TestCBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), CBFile)
	items := []models.CBItem{
		{AppID: 620, Name: "Portal 2", Score: 0.91, Similarity: 0.88, Price: 9.99},
	}
	require.NoError(t, WriteCB(path, items))

	got, err := ReadCB(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.InDelta(t, 0.88, got[0].Similarity, 1e-6)
}

func TestHybridRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), HybridFile)
	items := []models.HybridItem{
		{Rank: 1, AppID: 620, Title: "Portal 2", HybridScore: 1.5, KNNScore: 1.0, CBScore: 0.9},
		{Rank: 2, AppID: 730, Title: "Counter-Strike 2", HybridScore: 0.35, KNNScore: 0.5, CBScore: 0},
	}
	require.NoError(t, WriteHybrid(path, items))

	got, err := ReadHybrid(path)
	require.NoError(t, err)
	require.Equal(t, items[0].Rank, got[0].Rank)
	require.InDelta(t, items[1].HybridScore, got[1].HybridScore, 1e-6)
}

func TestReExportIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, HybridFile)
	items := []models.HybridItem{
		{Rank: 1, AppID: 10, Title: "Alpha", HybridScore: 0.123456789, KNNScore: 0.5, CBScore: 0.25},
	}
	require.NoError(t, WriteHybrid(path, items))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteHybrid(path, items))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestWriteOverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), KNNFile)
	require.NoError(t, WriteKNN(path, []models.KNNItem{
		{AppID: 1, Title: "A", Relevance: 1},
		{AppID: 2, Title: "B", Relevance: 2},
	}))
	require.NoError(t, WriteKNN(path, []models.KNNItem{
		{AppID: 3, Title: "C", Relevance: 3},
	}))

	got, err := ReadKNN(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].AppID)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadKNN(filepath.Join(t.TempDir(), "no-existe.csv"))
	require.Error(t, err)
}

func TestTitlesWithCommasSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), CBFile)
	items := []models.CBItem{
		{AppID: 1, Name: "Warhammer 40,000: Dawn of War", Score: 0.5, Similarity: 0.4, Price: 19.99},
	}
	require.NoError(t, WriteCB(path, items))

	got, err := ReadCB(path)
	require.NoError(t, err)
	require.Equal(t, "Warhammer 40,000: Dawn of War", got[0].Name)
}
