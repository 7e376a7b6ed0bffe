package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRows() []map[int]float64 {
	// 6 docs × 5 features, dos clusters bien separados
	return []map[int]float64{
		{0: 0.8, 1: 0.6},
		{0: 0.7, 1: 0.7, 2: 0.14},
		{0: 0.6, 1: 0.8},
		{3: 0.9, 4: 0.43},
		{3: 0.8, 4: 0.6},
		{2: 0.1, 3: 0.7, 4: 0.7},
	}
}

func TestSVDDeterministicWithSameSeed(t *testing.T) {
	rows := testRows()

	a := &TruncatedSVD{K: 3, Seed: 42}
	require.NoError(t, a.Fit(rows, 5))
	b := &TruncatedSVD{K: 3, Seed: 42}
	require.NoError(t, b.Fit(rows, 5))

	require.Equal(t, a.K, b.K)
	for i := range a.Components {
		for j := range a.Components[i] {
			assert.InDelta(t, a.Components[i][j], b.Components[i][j], 1e-9)
		}
	}
}

func TestSVDPreservesClusterStructure(t *testing.T) {
	rows := testRows()

	svd := &TruncatedSVD{K: 2, Seed: 42}
	require.NoError(t, svd.Fit(rows, 5))

	lat := make([][]float64, len(rows))
	for i, r := range rows {
		lat[i] = svd.Transform(r)
	}

	// docs del mismo cluster deben quedar más cerca entre sí que
	// docs de clusters distintos
	sameCluster := cosine(lat[0], lat[1])
	crossCluster := cosine(lat[0], lat[3])
	assert.Greater(t, sameCluster, crossCluster)
}

func TestSVDCapsComponentsToMatrixRank(t *testing.T) {
	rows := []map[int]float64{
		{0: 1},
		{1: 1},
	}
	svd := &TruncatedSVD{K: 100, Seed: 1}
	require.NoError(t, svd.Fit(rows, 3))
	assert.LessOrEqual(t, svd.K, 2)
	for _, comp := range svd.Components {
		assert.Len(t, comp, 3)
	}
}

func TestSVDEmptyMatrix(t *testing.T) {
	svd := &TruncatedSVD{K: 10, Seed: 1}
	assert.Error(t, svd.Fit(nil, 5))
	assert.Error(t, svd.Fit([]map[int]float64{{0: 1}}, 0))
}
