package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// BatchProcessor handles embedding generation for batches of candidates.
type BatchProcessor struct {
	repo           storage.CandidateRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.CandidateRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process reembeds the descriptions of a batch of candidates and writes the
// updated records back. Candidates without a description keep whatever
// embedding they already have. Vectors are normalized after embedding so
// cosine similarity stays a dot product.
// Returns the number of candidates actually reembedded.
func (bp *BatchProcessor) Process(ctx context.Context, candidates []*core.Candidate) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	embeddable := make([]*core.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Description != "" {
			embeddable = append(embeddable, candidate)
		}
	}

	if len(embeddable) == 0 {
		return 0, nil
	}

	texts := make([]string, len(embeddable))
	for i, candidate := range embeddable {
		texts[i] = candidate.Description
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(embeddable) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(embeddable), len(embeddings))
	}

	for i := range embeddable {
		embeddable[i].Embedding = core.NormalizeVector(embeddings[i])
	}

	if _, err := bp.repo.PutCandidates(ctx, embeddable...); err != nil {
		return 0, fmt.Errorf("failed to update candidates: %w", err)
	}

	return len(embeddable), nil
}
