package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizerFitAppliesMinDF(t *testing.T) {
	docs := []string{
		"action shooter",
		"action shooter",
		"action puzzle",
		"action unico", // "unico" aparece una sola vez → fuera por min_df=2
	}
	v := NewVectorizer(100)
	// max_df alto para que "action" (universal) no interfiera en este test
	v.MaxDF = 1.0
	require.NoError(t, v.Fit(docs))

	_, hasUnico := v.Vocab["unico"]
	assert.False(t, hasUnico)
	_, hasShooter := v.Vocab["shooter"]
	assert.True(t, hasShooter)
}

func TestVectorizerFitDropsNearUniversalTokens(t *testing.T) {
	docs := []string{
		"action rpg", "action rpg", "action shooter", "action shooter",
		"action puzzle", "action puzzle", "action cards", "action cards",
		"action sim", "action sim",
	}
	v := NewVectorizer(100)
	require.NoError(t, v.Fit(docs))

	// "action" está en el 100% de los docs > max_df=0.7 → fuera
	_, hasAction := v.Vocab["action"]
	assert.False(t, hasAction)
	_, hasRPG := v.Vocab["rpg"]
	assert.True(t, hasRPG)
}

func TestVectorizerVocabBound(t *testing.T) {
	docs := []string{
		"aa bb cc dd ee",
		"aa bb cc dd ee",
	}
	v := NewVectorizer(3)
	v.MaxDF = 1.0
	require.NoError(t, v.Fit(docs))
	assert.LessOrEqual(t, len(v.Vocab), 3)
	assert.Len(t, v.IDF, len(v.Vocab))
}

func TestVectorizerIncludesBigrams(t *testing.T) {
	docs := []string{
		"open world rpg",
		"open world shooter",
	}
	v := NewVectorizer(100)
	v.MaxDF = 1.0
	require.NoError(t, v.Fit(docs))

	_, ok := v.Vocab["open world"]
	assert.True(t, ok, "el bigrama 'open world' aparece en 2 docs")
}

func TestVectorizerTransformL2Normalized(t *testing.T) {
	docs := []string{
		"rpg fantasy dragons",
		"rpg fantasy swords",
		"shooter guns fast",
		"shooter guns slow",
	}
	v := NewVectorizer(100)
	v.MaxDF = 1.0
	require.NoError(t, v.Fit(docs))

	vec := v.Transform("rpg fantasy dragons")
	require.NotEmpty(t, vec)

	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestVectorizerFitEmptyCorpus(t *testing.T) {
	v := NewVectorizer(100)
	assert.Error(t, v.Fit(nil))
	assert.Error(t, v.Fit([]string{"", ""}))
}

func TestVectorizerDeterministic(t *testing.T) {
	docs := []string{
		"rpg fantasy dragons magic",
		"rpg fantasy swords magic",
		"shooter guns fast rpg",
	}
	a := NewVectorizer(50)
	a.MaxDF = 1.0
	b := NewVectorizer(50)
	b.MaxDF = 1.0
	require.NoError(t, a.Fit(docs))
	require.NoError(t, b.Fit(docs))
	assert.Equal(t, a.Vocab, b.Vocab)
	assert.Equal(t, a.IDF, b.IDF)
}
