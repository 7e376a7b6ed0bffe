package content

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// stop words mínimas: suficientes para tokens de géneros/tags en inglés
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"with": true,
}

// Vectorizer es un TF-IDF clásico con vocabulario acotado:
// unigramas + bigramas, min_df para tokens raros, max_df para tokens
// casi universales que no discriminan nada.
type Vectorizer struct {
	Vocab       map[string]int // término → columna
	IDF         []float64      // por columna
	MaxFeatures int
	MinDF       int
	MaxDF       float64
	NumDocs     int
}

func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 5000
	}
	return &Vectorizer{
		MaxFeatures: maxFeatures,
		MinDF:       2,
		MaxDF:       0.7,
	}
}

// tokenize baja a minúsculas, parte por no-alfanuméricos, filtra stop words
// y genera unigramas + bigramas sobre el stream filtrado.
func tokenize(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	uni := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) < 2 && !(t >= "0" && t <= "9") {
			continue
		}
		if stopWords[t] {
			continue
		}
		uni = append(uni, t)
	}

	out := make([]string, 0, 2*len(uni))
	out = append(out, uni...)
	for i := 0; i+1 < len(uni); i++ {
		out = append(out, uni[i]+" "+uni[i+1])
	}
	return out
}

// Fit construye el vocabulario y los pesos IDF sobre el corpus completo.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("corpus vacío")
	}

	df := map[string]int{}    // en cuántos docs aparece cada término
	total := map[string]int{} // frecuencia total en el corpus (para el recorte)

	for _, doc := range docs {
		seen := map[string]bool{}
		for _, tok := range tokenize(doc) {
			total[tok]++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	maxDF := int(v.MaxDF * float64(len(docs)))
	if maxDF < v.MinDF {
		maxDF = v.MinDF
	}

	kept := make([]string, 0, len(df))
	for term, d := range df {
		if d < v.MinDF || d > maxDF {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return errors.New("vocabulario vacío tras aplicar min_df/max_df")
	}

	// recorte al tope de vocabulario: los términos más frecuentes primero,
	// desempate alfabético para que el fit sea determinístico
	sort.Slice(kept, func(i, j int) bool {
		if total[kept[i]] != total[kept[j]] {
			return total[kept[i]] > total[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if len(kept) > v.MaxFeatures {
		kept = kept[:v.MaxFeatures]
	}

	// columnas en orden alfabético (independiente del orden de recorte)
	sort.Strings(kept)

	v.Vocab = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	v.NumDocs = len(docs)
	n := float64(len(docs))
	for i, term := range kept {
		v.Vocab[term] = i
		// idf suavizado: ln((1+n)/(1+df)) + 1
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Transform devuelve el vector TF-IDF esparso (columna → peso) del doc,
// normalizado L2.
func (v *Vectorizer) Transform(doc string) map[int]float64 {
	tf := map[int]float64{}
	for _, tok := range tokenize(doc) {
		if col, ok := v.Vocab[tok]; ok {
			tf[col]++
		}
	}
	if len(tf) == 0 {
		return tf
	}

	var norm float64
	for col := range tf {
		tf[col] *= v.IDF[col]
		norm += tf[col] * tf[col]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for col := range tf {
			tf[col] /= norm
		}
	}
	return tf
}
