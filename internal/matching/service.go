// Package matching compares a job posting with a resume: skill extraction on
// both texts, semantic similarity, and the skill engine.
package matching

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// Extractor pulls a skill list out of free text. An extractor never fails;
// it returns an empty list when it cannot do better.
type Extractor interface {
	ExtractSkills(ctx context.Context, text string, ec llm.ExtractionContext) []string
}

// SimilarityScorer scores two texts from 0 to 100.
type SimilarityScorer interface {
	Score(ctx context.Context, jobText, resumeText string) (float64, error)
}

// JobFetcher resolves a job posting URL to its description text.
type JobFetcher interface {
	FetchJobText(ctx context.Context, url string) (*ingestion.JobPosting, error)
}

// Service runs full job/resume comparisons.
type Service struct {
	extractor Extractor
	scorer    SimilarityScorer
	matcher   *skills.Matcher
	jobs      JobFetcher
}

// Option configures a Service.
type Option func(*Service)

// WithJobFetcher enables comparisons against a job posting URL.
func WithJobFetcher(jobs JobFetcher) Option {
	return func(s *Service) {
		s.jobs = jobs
	}
}

// NewService creates a Service. A nil matcher uses the built-in synonym table.
// The extractor and scorer may both be nil, in which case full comparisons
// fail with an UpstreamError.
func NewService(extractor Extractor, scorer SimilarityScorer, matcher *skills.Matcher, opts ...Option) *Service {
	if matcher == nil {
		matcher = skills.NewMatcher(skills.DefaultSynonyms())
	}
	s := &Service{
		extractor: extractor,
		scorer:    scorer,
		matcher:   matcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Matcher returns the skill engine used by the service.
func (s *Service) Matcher() *skills.Matcher {
	return s.matcher
}

// ModelConfigured reports whether the service can extract skills and score
// similarity. Without a model only CompareSkills is available.
func (s *Service) ModelConfigured() bool {
	return s.extractor != nil && s.scorer != nil
}

func (s *Service) requireModel() error {
	if s.ModelConfigured() {
		return nil
	}
	return &UpstreamError{Service: "model", Message: "no language model configured; set GEMINI_API_KEY to enable comparisons"}
}

// Compare extracts skills from both texts and scores their similarity
// concurrently, then matches the two skill lists.
func (s *Service) Compare(ctx context.Context, jobText, resumeText string) (*types.JobMatchResult, error) {
	if err := s.requireModel(); err != nil {
		return nil, err
	}
	start := time.Now()

	var (
		jobSkills    []string
		resumeSkills []string
		similarity   float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		jobSkills = s.extractor.ExtractSkills(gctx, jobText, llm.ContextJob)
		return nil
	})
	g.Go(func() error {
		resumeSkills = s.extractor.ExtractSkills(gctx, resumeText, llm.ContextResume)
		return nil
	})
	g.Go(func() error {
		score, err := s.scorer.Score(gctx, jobText, resumeText)
		if err != nil {
			return &UpstreamError{Service: "similarity", Message: "failed to score texts", Cause: err}
		}
		similarity = score
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("[match] Comparison failed after %v: %v", time.Since(start), err)
		return nil, err
	}

	result := s.matcher.Evaluate(jobSkills, resumeSkills)
	log.Printf("[match] Compared %d job skills with %d resume skills in %v (similarity %.2f, matched %.2f%%)",
		len(jobSkills), len(resumeSkills), time.Since(start), similarity, result.MatchedSkillPercentage)

	return &types.JobMatchResult{
		SimilarityScore:        similarity,
		MatchedSkillPercentage: result.MatchedSkillPercentage,
		MatchedSkills:          result.MatchedSkills,
		MissingSkills:          result.MissingSkills,
		ExtraSkills:            result.ExtraSkills,
	}, nil
}

// CompareRequest compares a validated request, fetching the job posting first
// when only its URL was given.
func (s *Service) CompareRequest(ctx context.Context, req *types.JobMatchRequest) (*types.JobMatchResult, error) {
	if err := s.requireModel(); err != nil {
		return nil, err
	}
	jobText, err := s.ResolveJobText(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.Compare(ctx, jobText, req.ResumeText)
}

// ResolveJobText returns the request's job text, or the text of the posting at
// its job URL when no text was given.
func (s *Service) ResolveJobText(ctx context.Context, req *types.JobMatchRequest) (string, error) {
	if req.JobText != "" || req.JobURL == "" {
		return req.JobText, nil
	}
	if s.jobs == nil {
		return "", &UpstreamError{Service: "job fetch", Message: "fetching job postings by URL is not enabled"}
	}
	posting, err := s.jobs.FetchJobText(ctx, req.JobURL)
	if err != nil {
		return "", &UpstreamError{Service: "job fetch", Message: "failed to fetch job posting", Cause: err}
	}
	return posting.Text, nil
}

// CompareSkills runs the skill engine alone on two explicit skill lists.
func (s *Service) CompareSkills(jobSkills, resumeSkills []string, explain bool) (*skills.Result, *skills.Explanation) {
	partition := s.matcher.Match(jobSkills, resumeSkills)
	if !explain {
		return partition.Result(), nil
	}
	return partition.Result(), s.matcher.Explain(partition)
}
