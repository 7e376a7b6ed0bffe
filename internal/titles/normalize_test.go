package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Half-Life 2":            "halflife2",
		"PORTAL":                 "portal",
		"  Team Fortress 2  ":    "teamfortress2",
		"Baba Is You":            "babaisyou",
		"NieR:Automata™":         "nierautomata",
		"100% Orange Juice":      "100orangejuice",
		"":                       "",
		"!!!":                    "",
		"Counter-Strike: Source": "counterstrikesource",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeJoinsAcrossCatalogs(t *testing.T) {
	// el mismo juego escrito distinto en los dos catálogos debe producir
	// la misma clave
	assert.Equal(t, Normalize("Half-Life: 2"), Normalize("half life 2"))
	assert.NotEqual(t, Normalize("Portal"), Normalize("Portal 2"))
}
