package ingest

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// Pipeline orchestrates the ingestion of candidate company profiles.
// Profile writes are synchronous; description embedding happens on a
// worker pool after the write returns.
type Pipeline struct {
	candidates storage.CandidateRepository
	pool       *ants.Pool
	proc       *embeddingProcessor
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(candidates storage.CandidateRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if candidates == nil {
		return nil, ErrCandidateRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		candidates: candidates,
		pool:       pool,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied so it gets the final logger
	proc, err := newEmbeddingProcessor(candidates, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.proc = proc

	return p, nil
}

// AddCandidates validates and stores candidate profiles, then embeds their
// descriptions asynchronously. Candidates that already carry an embedding,
// or have no description to embed, are stored as-is.
// Errors during async embedding are logged but do not fail the ingestion.
// Returns the stored records with timestamps populated.
func (p *Pipeline) AddCandidates(ctx context.Context, candidates ...*core.Candidate) ([]*core.Candidate, error) {
	for _, candidate := range candidates {
		if err := core.ValidateCandidate(candidate); err != nil {
			return nil, err
		}
	}

	stored, err := p.candidates.PutCandidates(ctx, candidates...)
	if err != nil {
		return nil, err
	}

	// Collect the keys that still need an embedding
	var pending []string
	for _, candidate := range stored {
		if len(candidate.Embedding) == 0 && candidate.Description != "" {
			pending = append(pending, candidate.CompanyKey)
		}
	}

	if len(pending) == 0 {
		return stored, nil
	}

	keys := pending
	if err := p.pool.Submit(func() {
		if err := p.proc.process(context.Background(), keys...); err != nil {
			p.logger.Error("error embedding candidate descriptions", "err", err)
		}
	}); err != nil {
		// Pool rejected the task; embed inline rather than drop the work.
		p.logger.Warn("embedding pool rejected task, processing inline", "err", err)
		if procErr := p.proc.process(ctx, keys...); procErr != nil {
			p.logger.Error("error embedding candidate descriptions", "err", procErr)
		}
	}

	return stored, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
