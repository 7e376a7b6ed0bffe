package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countToken(text, tok string) int {
	n := 0
	for _, t := range strings.Fields(text) {
		if t == tok {
			n++
		}
	}
	return n
}

func TestBuildFeatureTextWeights(t *testing.T) {
	genres := []string{"Action"}
	tags := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10", "t11"}

	text := BuildFeatureText(genres, tags)

	assert.Equal(t, 4, countToken(text, "Action"), "género repetido 4x")
	assert.Equal(t, 3, countToken(text, "t1"), "tag top repetido 3x")
	assert.Equal(t, 3, countToken(text, "t3"))
	assert.Equal(t, 2, countToken(text, "t4"), "tag medio repetido 2x")
	assert.Equal(t, 2, countToken(text, "t10"))
	assert.Equal(t, 1, countToken(text, "t11"), "tag de cola repetido 1x")
}

func TestBuildFeatureTextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildFeatureText(nil, nil))
	assert.Equal(t, "", BuildFeatureText([]string{"", "  "}, nil))
}

func TestBuildFeatureTextMultiWordTokens(t *testing.T) {
	text := BuildFeatureText([]string{"Free to Play"}, nil)
	assert.Equal(t, 4, countToken(text, "Free"))
}
