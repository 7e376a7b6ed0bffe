package content

import (
	"errors"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// TruncatedSVD reduce la matriz TF-IDF esparsa a ~100 dimensiones latentes
// con SVD truncado aleatorizado (Halko et al.): proyección gaussiana +
// una iteración de potencia + SVD densa del problema chico. Con la misma
// semilla el resultado es reproducible bit a bit.
type TruncatedSVD struct {
	Components [][]float64 // k × características (filas = componentes)
	K          int
	Seed       int64
}

const oversampling = 10

// Fit aprende la proyección a partir de las filas TF-IDF esparsas.
// nFeatures es el ancho del vocabulario.
func (t *TruncatedSVD) Fit(rows []map[int]float64, nFeatures int) error {
	n := len(rows)
	if n == 0 || nFeatures == 0 {
		return errors.New("matriz vacía, no hay nada que descomponer")
	}

	k := t.K
	if k <= 0 {
		k = 100
	}
	l := k + oversampling
	if l > n {
		l = n
	}
	if l > nFeatures {
		l = nFeatures
	}
	if k > l {
		k = l
	}

	rng := rand.New(rand.NewSource(t.Seed))

	// proyección gaussiana Omega (features × l)
	omega := mat.NewDense(nFeatures, l, nil)
	for j := 0; j < nFeatures; j++ {
		for c := 0; c < l; c++ {
			omega.Set(j, c, rng.NormFloat64())
		}
	}

	// Y = A·Omega, ortonormalizado
	y := sparseTimesDense(rows, omega, n, l)
	q := orthonormalize(y)

	// una iteración de potencia para afinar el subespacio
	z := sparseTTimesDense(rows, q, nFeatures)
	qz := orthonormalize(z)
	y = sparseTimesDense(rows, qz, n, qz.RawMatrix().Cols)
	q = orthonormalize(y)

	// B = Qᵀ·A  (l × features), problema chico → SVD densa exacta
	b := denseTTimesSparse(q, rows, nFeatures)

	var svd mat.SVD
	if ok := svd.Factorize(b, mat.SVDThin); !ok {
		return errors.New("la factorización SVD no convergió")
	}
	var v mat.Dense
	svd.VTo(&v) // features × l

	if cols := v.RawMatrix().Cols; k > cols {
		k = cols
	}

	t.K = k
	t.Components = make([][]float64, k)
	for i := 0; i < k; i++ {
		t.Components[i] = make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			t.Components[i][j] = v.At(j, i)
		}
	}
	return nil
}

// Transform proyecta un vector TF-IDF esparso al espacio latente.
func (t *TruncatedSVD) Transform(vec map[int]float64) []float64 {
	out := make([]float64, len(t.Components))
	for i, comp := range t.Components {
		var s float64
		for j, val := range vec {
			if j < len(comp) {
				s += val * comp[j]
			}
		}
		out[i] = s
	}
	return out
}

// ---- kernels chicos sobre la matriz esparsa ----

// A (n×m esparsa) · M (m×l) → n×l
func sparseTimesDense(rows []map[int]float64, m *mat.Dense, n, l int) *mat.Dense {
	out := mat.NewDense(n, l, nil)
	for i, row := range rows {
		for j, val := range row {
			for c := 0; c < l; c++ {
				out.Set(i, c, out.At(i, c)+val*m.At(j, c))
			}
		}
	}
	return out
}

// Aᵀ (m×n) · N (n×l) → m×l
func sparseTTimesDense(rows []map[int]float64, nMat *mat.Dense, nFeatures int) *mat.Dense {
	l := nMat.RawMatrix().Cols
	out := mat.NewDense(nFeatures, l, nil)
	for i, row := range rows {
		for j, val := range row {
			for c := 0; c < l; c++ {
				out.Set(j, c, out.At(j, c)+val*nMat.At(i, c))
			}
		}
	}
	return out
}

// Qᵀ (l×n) · A (n×m esparsa) → l×m
func denseTTimesSparse(q *mat.Dense, rows []map[int]float64, nFeatures int) *mat.Dense {
	l := q.RawMatrix().Cols
	out := mat.NewDense(l, nFeatures, nil)
	for i, row := range rows {
		for j, val := range row {
			for c := 0; c < l; c++ {
				out.Set(c, j, out.At(c, j)+q.At(i, c)*val)
			}
		}
	}
	return out
}

// orthonormalize devuelve una base ortonormal de las columnas de X
// (la U de su SVD thin; más estable que Gram-Schmidt).
func orthonormalize(x *mat.Dense) *mat.Dense {
	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		// degenerado: devolvemos X tal cual, el SVD final va a lidiar con eso
		return x
	}
	var u mat.Dense
	svd.UTo(&u)
	return &u
}
