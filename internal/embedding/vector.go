package embedding

import (
	"math"
	"sort"

	"assistd/pkg/types"
)

// Cosine returns the cosine similarity of a and b. Inputs need not be
// unit length; a zero vector yields 0.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / ((math.Sqrt(na) + 1e-8) * (math.Sqrt(nb) + 1e-8))
}

// Normalize scales v to unit length in place and returns it. A zero
// vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var n float64
	for _, x := range v {
		n += float64(x) * float64(x)
	}
	if n == 0 {
		return v
	}
	inv := 1 / math.Sqrt(n)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
	return v
}

// SearchTopK ranks candidates by cosine similarity to query and
// returns the best k, highest first. Ties keep candidate order.
func SearchTopK(query []float32, candidates [][]float32, k int) []types.SearchResult {
	results := make([]types.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = types.SearchResult{Index: i, Similarity: Cosine(query, c)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if k < len(results) {
		results = results[:k]
	}
	return results
}
