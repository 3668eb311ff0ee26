// Copyright 2025 Theralab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package match

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

const (
	// DefaultMaxCandidates bounds how many stored candidates one request scores.
	DefaultMaxCandidates = 5000

	// DefaultTopResults is how many ranked matches a request returns.
	DefaultTopResults = 20
)

// Service matches challenges against the candidate store.
type Service struct {
	candidateRepository storage.CandidateRepository
	modelRepository     storage.ModelRepository
	embedder            ai.Embedder
	scoringPool         *ants.Pool
	weights             Weights
	maxCandidates       int
	topResults          int
	logger              *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent candidate scoring.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Service) error {
		if size < 1 {
			size = 1
		}

		if s.scoringPool != nil {
			s.scoringPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.scoringPool = pool
		return nil
	}
}

// WithWeights sets the blend of semantic similarity and model prediction.
// Default is DefaultWeights.
func WithWeights(weights Weights) Option {
	return func(s *Service) error {
		s.weights = weights
		return nil
	}
}

// WithMaxCandidates caps how many candidates one request scores.
func WithMaxCandidates(limit int) Option {
	return func(s *Service) error {
		if limit > 0 {
			s.maxCandidates = limit
		}
		return nil
	}
}

// WithTopResults sets how many ranked matches a request returns.
func WithTopResults(n int) Option {
	return func(s *Service) error {
		if n > 0 {
			s.topResults = n
		}
		return nil
	}
}

// NewService creates a new matching service.
func NewService(
	candidateRepository storage.CandidateRepository,
	modelRepository storage.ModelRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Service, error) {
	if candidateRepository == nil {
		return nil, ErrCandidateRepositoryRequired
	}
	if modelRepository == nil {
		return nil, ErrModelRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		candidateRepository: candidateRepository,
		modelRepository:     modelRepository,
		embedder:            embedder,
		scoringPool:         pool,
		weights:             DefaultWeights(),
		maxCandidates:       DefaultMaxCandidates,
		topResults:          DefaultTopResults,
		logger:              slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release frees the scoring pool.
func (s *Service) Release() {
	if s.scoringPool != nil {
		s.scoringPool.Release()
	}
}

// FindMatches scores the candidate store against the challenge and returns
// the top matches ranked by final score.
func (s *Service) FindMatches(ctx context.Context, challenge *core.Challenge) (*core.MatchResponse, error) {
	return s.FindMatchesWithMonitor(ctx, challenge, nil)
}

// FindMatchesWithMonitor runs a match with monitoring. The monitor receives
// callbacks at each stage of the match process.
func (s *Service) FindMatchesWithMonitor(ctx context.Context, challenge *core.Challenge, monitor MatchMonitor) (*core.MatchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if challenge == nil || strings.TrimSpace(challenge.Text) == "" {
		return nil, ErrEmptyChallengeText
	}

	monitor.Start(challenge.Text)

	// Embedding failure is fatal: nothing downstream can score without it
	challengeEmbedding, err := s.embedder.EmbedText(ctx, challenge.Text)
	if err != nil {
		s.logger.Error("error embedding challenge text", "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(len(challengeEmbedding))

	scorer := s.loadScorer(ctx)

	candidates, err := s.candidateRepository.QueryCandidates(ctx, storage.CandidateFilter{
		Industry: challenge.Industry,
		Country:  challenge.Country,
		Limit:    s.maxCandidates,
	})
	if err != nil {
		s.logger.Error("error querying candidates", "err", err)
		return nil, err
	}
	monitor.AfterCandidateQuery(len(candidates))

	s.logger.Info("scoring candidates", "count", len(candidates), "model_version", scorer.Artifact().Version)

	// Each worker writes only its own slot; no shared mutable state
	slots := make([]*core.MatchResult, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slots[i] = s.scoreCandidate(scorer, challenge.Text, challengeEmbedding, candidate)
		}
		if err := s.scoringPool.Submit(task); err != nil {
			// Pool unavailable; score on the calling goroutine
			task()
		}
	}
	wg.Wait()

	results := make([]*core.MatchResult, 0, len(slots))
	for i, result := range slots {
		if result == nil {
			monitor.CandidateSkipped(candidates[i].CompanyKey)
			continue
		}
		monitor.CandidateScored(result)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	if len(results) > s.topResults {
		results = results[:s.topResults]
	}
	for i, result := range results {
		result.Rank = i + 1
	}

	response := &core.MatchResponse{
		Matches:           results,
		MatchesFound:      len(results),
		AverageSimilarity: averageFinalScore(results),
	}
	monitor.Finish(response)

	return response, nil
}

// loadScorer resolves the deployed model, falling back to the default
// artifact so serving continues when no model has been promoted.
func (s *Service) loadScorer(ctx context.Context) *Scorer {
	artifact, err := s.modelRepository.Deployed(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoDeployedModel) {
			s.logger.Warn("error loading deployed model, using default", "err", err)
		}
		artifact = DefaultArtifact()
	}
	return NewScorer(artifact, s.weights)
}

// scoreCandidate scores one candidate, returning nil when the candidate
// cannot be scored (no stored embedding, or one whose dimensions do not
// match the challenge embedding).
func (s *Service) scoreCandidate(scorer *Scorer, challengeText string, challengeEmbedding []float32, candidate *core.Candidate) *core.MatchResult {
	if len(candidate.Embedding) == 0 {
		s.logger.Debug("skipping candidate without embedding", "company_key", candidate.CompanyKey)
		return nil
	}
	if len(candidate.Embedding) != len(challengeEmbedding) {
		s.logger.Warn("skipping candidate with malformed embedding",
			"company_key", candidate.CompanyKey,
			"dimensions", len(candidate.Embedding),
			"expected", len(challengeEmbedding))
		return nil
	}

	embeddingSim := CosineSimilarity(challengeEmbedding, candidate.Embedding)
	ruleFeatures := ExtractRuleFeatures(challengeText, candidate)
	mlScore := scorer.MLScore(ServingFeatures(embeddingSim, ruleFeatures, candidate))
	finalScore := scorer.FinalScore(embeddingSim, mlScore)

	return &core.MatchResult{
		CompanyKey:          candidate.CompanyKey,
		Name:                candidate.Name,
		Industry:            candidate.Industry,
		Country:             candidate.Country,
		EmbeddingSimilarity: embeddingSim,
		MLScore:             mlScore,
		FinalScore:          finalScore,
		RuleFeatures:        ruleFeatures,
		Reason:              Reason(embeddingSim, ruleFeatures, mlScore),
	}
}

func averageFinalScore(results []*core.MatchResult) float64 {
	if len(results) == 0 {
		return 0.0
	}
	var sum float64
	for _, r := range results {
		sum += r.FinalScore
	}
	return sum / float64(len(results))
}
