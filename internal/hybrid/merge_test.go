package hybrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

func knnItem(id int, title string, rel float64) models.KNNItem {
	return models.KNNItem{AppID: id, Title: title, Relevance: rel}
}

func cbItem(id int, name string, score float64) models.CBItem {
	return models.CBItem{AppID: id, Name: name, Score: score}
}

func TestMergeEmptyInputs(t *testing.T) {
	require.Empty(t, Merge(nil, nil, DefaultParams()))
}

func TestMergeSingleEngineCoverage(t *testing.T) {
	p := DefaultParams()

	soloKNN := Merge([]models.KNNItem{knnItem(10, "Portal", 5.0)}, nil, p)
	require.Len(t, soloKNN, 1)
	require.Equal(t, "Portal", soloKNN[0].Title)
	require.Equal(t, 10, soloKNN[0].AppID)
	// una sola fuente: base*penalty con score normalizado 1.0
	require.InDelta(t, 1.0*p.KNNWeight*p.SingleSourcePenalty, soloKNN[0].HybridScore, 1e-12)
	require.Zero(t, soloKNN[0].CBScore)

	soloCB := Merge(nil, []models.CBItem{cbItem(400, "Portal", 0.9)}, p)
	require.Len(t, soloCB, 1)
	require.Equal(t, 400, soloCB[0].AppID)
	require.InDelta(t, 1.0*p.CBWeight*p.SingleSourcePenalty, soloCB[0].HybridScore, 1e-12)
}

func TestMergeJoinsByNormalizedTitle(t *testing.T) {
	knn := []models.KNNItem{knnItem(10, "Half-Life 2", 8.0)}
	cb := []models.CBItem{cbItem(220, "Half-Life 2", 0.95)}

	out := Merge(knn, cb, DefaultParams())
	require.Len(t, out, 1)
	// el ID canónico es el del dominio content-based
	require.Equal(t, 220, out[0].AppID)
	require.Equal(t, 1.0, out[0].KNNScore)
	require.Equal(t, 1.0, out[0].CBScore)
}

func TestMergeJoinIgnoresCaseAndPunctuation(t *testing.T) {
	knn := []models.KNNItem{knnItem(1, "PORTAL: 2", 3.0)}
	cb := []models.CBItem{cbItem(620, "Portal 2", 0.8)}

	out := Merge(knn, cb, DefaultParams())
	require.Len(t, out, 1)
	require.Positive(t, out[0].KNNScore)
	require.Positive(t, out[0].CBScore)
}

func TestMergeNormalizesByListMax(t *testing.T) {
	knn := []models.KNNItem{
		knnItem(1, "Alpha", 40.0),
		knnItem(2, "Beta", 10.0),
	}
	out := Merge(knn, nil, DefaultParams())
	require.Len(t, out, 2)
	byTitle := map[string]models.HybridItem{}
	for _, it := range out {
		byTitle[it.Title] = it
	}
	require.Equal(t, 1.0, byTitle["Alpha"].KNNScore)
	require.InDelta(t, 0.25, byTitle["Beta"].KNNScore, 1e-12)
}

func TestMergeHybridDominance(t *testing.T) {
	// un juego validado por ambos motores con scores medios le gana a
	// los tops de una sola fuente
	knn := []models.KNNItem{
		knnItem(1, "Solo KNN", 10.0),
		knnItem(2, "Ambos", 9.0),
	}
	cb := []models.CBItem{
		cbItem(100, "Solo CB", 0.9),
		cbItem(200, "Ambos", 0.8),
	}

	out := Merge(knn, cb, DefaultParams())
	require.Len(t, out, 3)
	require.Equal(t, "Ambos", out[0].Title)
	require.Equal(t, 1, out[0].Rank)
}

func TestMergeRanksAreDense(t *testing.T) {
	knn := []models.KNNItem{
		knnItem(1, "A", 5.0),
		knnItem(2, "B", 3.0),
		knnItem(3, "C", 1.0),
	}
	out := Merge(knn, nil, DefaultParams())
	require.Len(t, out, 3)
	for i, it := range out {
		require.Equal(t, i+1, it.Rank)
	}
	for i := 1; i < len(out); i++ {
		require.GreaterOrEqual(t, out[i-1].HybridScore, out[i].HybridScore)
	}
}

func TestMergeTruncatesToTopN(t *testing.T) {
	p := DefaultParams()
	p.TopN = 2
	knn := []models.KNNItem{
		knnItem(1, "A", 5.0),
		knnItem(2, "B", 3.0),
		knnItem(3, "C", 1.0),
	}
	out := Merge(knn, nil, p)
	require.Len(t, out, 2)
	require.Equal(t, 2, out[1].Rank)
}

func TestMergeDeepPoolCandidateKeepsSynergy(t *testing.T) {
	// las listas de entrada son pools más profundos que el top-n pedido:
	// un juego puesto #25 por un motor y #3 por el otro tiene que entrar
	// al top-n final con su bonus de sinergia, no perderse en el truncado
	p := DefaultParams()
	p.TopN = 5

	knn := make([]models.KNNItem, 0, 30)
	for i := 0; i < 30; i++ {
		knn = append(knn, knnItem(1000+i, fmt.Sprintf("Solo KNN %02d", i), float64(30-i)))
	}
	knn[24] = knnItem(1024, "Joya Compartida", knn[24].Relevance) // puesto #25

	cb := []models.CBItem{
		cbItem(1, "Solo CB A", 0.95),
		cbItem(2, "Solo CB B", 0.90),
		cbItem(3, "Joya Compartida", 0.85), // puesto #3
	}

	out := Merge(knn, cb, p)
	require.Len(t, out, 5)

	var joya *models.HybridItem
	for i := range out {
		if out[i].Title == "Joya Compartida" {
			joya = &out[i]
		}
	}
	require.NotNil(t, joya, "el candidato profundo del pool quedó fuera del top-n")
	require.Positive(t, joya.KNNScore)
	require.Positive(t, joya.CBScore)

	// con sinergia le gana a cualquier candidato de una sola fuente
	base := joya.KNNScore*p.KNNWeight + joya.CBScore*p.CBWeight
	require.Greater(t, joya.HybridScore, base)
	require.Equal(t, 1, joya.Rank)
}

func TestMergeSynergyExceedsWeightedBase(t *testing.T) {
	p := DefaultParams()
	knn := []models.KNNItem{knnItem(1, "X", 4.0)}
	cb := []models.CBItem{cbItem(9, "X", 0.5)}

	out := Merge(knn, cb, p)
	require.Len(t, out, 1)
	base := 1.0*p.KNNWeight + 1.0*p.CBWeight
	require.Greater(t, out[0].HybridScore, base)
}
