package content

import "strings"

// Pesos de la bolsa de tokens: los géneros pesan 4x, los primeros tags 3x
// (los tags vienen ordenados por representatividad), los del medio 2x y el
// resto 1x.
const (
	genreRepeat   = 4
	topTagRepeat  = 3
	midTagRepeat  = 2
	tailTagRepeat = 1
	topTagCutoff  = 3
	midTagCutoff  = 10
)

// BuildFeatureText arma el "texto sintético" de un juego a partir de sus
// géneros y tags, repitiendo cada token según su peso. Sobre estos textos
// se entrena el TF-IDF.
func BuildFeatureText(genres, tags []string) string {
	var b strings.Builder

	appendRepeated := func(tok string, times int) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return
		}
		for i := 0; i < times; i++ {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(tok)
		}
	}

	for _, g := range genres {
		appendRepeated(g, genreRepeat)
	}
	for i, t := range tags {
		switch {
		case i < topTagCutoff:
			appendRepeated(t, topTagRepeat)
		case i < midTagCutoff:
			appendRepeated(t, midTagRepeat)
		default:
			appendRepeated(t, tailTagRepeat)
		}
	}

	return b.String()
}
