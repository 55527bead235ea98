package similarity

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Scorer computes a 0-100 semantic similarity score between two texts.
type Scorer struct {
	embedder Embedder
}

// NewScorer creates a Scorer backed by embedder.
func NewScorer(embedder Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score embeds job and resume text concurrently and returns their cosine
// similarity scaled to [0, 100] and rounded to two decimals. Negative
// similarity is reported as 0.
func (s *Scorer) Score(ctx context.Context, jobText, resumeText string) (float64, error) {
	var jobVec, resumeVec []float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.embedder.Embed(gctx, jobText)
		if err != nil {
			return &EmbeddingError{Side: "job", Cause: err}
		}
		jobVec = v
		return nil
	})
	g.Go(func() error {
		v, err := s.embedder.Embed(gctx, resumeText)
		if err != nil {
			return &EmbeddingError{Side: "resume", Cause: err}
		}
		resumeVec = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	cos, err := Cosine(jobVec, resumeVec)
	if err != nil {
		return 0, err
	}
	return toPercent(cos), nil
}

func toPercent(cos float64) float64 {
	pct := math.Round(cos*100*100) / 100
	return math.Max(0, math.Min(100, pct))
}
