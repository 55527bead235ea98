// Package similarity scores how close two documents are in embedding space.
package similarity

import (
	"fmt"
	"math"
)

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A zero vector has similarity 0 with everything.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionError{Left: len(a), Right: len(b)}
	}
	var dot, na, nb float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// DimensionError reports embeddings of different lengths.
type DimensionError struct {
	Left, Right int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimensions differ: %d vs %d", e.Left, e.Right)
}

// EmbeddingError wraps a failure to embed one side of a comparison.
type EmbeddingError struct {
	Side  string
	Cause error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("failed to embed %s text: %v", e.Side, e.Cause)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
