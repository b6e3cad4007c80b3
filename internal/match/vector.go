package match

import "math"

// TermVector is a sparse term-frequency mapping over distinct tokens.
type TermVector map[string]int

// VectorOf builds a term-frequency vector from a token sequence.
func VectorOf(tokens []string) TermVector {
	v := make(TermVector, len(tokens))
	for _, t := range tokens {
		v[t]++
	}
	return v
}

// Norm returns the Euclidean norm of the count vector.
func (v TermVector) Norm() float64 {
	var sum float64
	for _, c := range v {
		sum += float64(c) * float64(c)
	}
	return math.Sqrt(sum)
}

// Cosine computes the cosine similarity between two term vectors. It is 0.0
// when either vector is empty or has zero norm — never a division by zero.
func Cosine(a, b TermVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	// Iterate the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for t, ca := range a {
		if cb, ok := b[t]; ok {
			dot += float64(ca) * float64(cb)
		}
	}
	if dot == 0 {
		return 0.0
	}

	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0.0
	}
	return dot / (na * nb)
}
