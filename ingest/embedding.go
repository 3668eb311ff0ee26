package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// embeddingProcessor generates description embeddings for candidate records.
type embeddingProcessor struct {
	candidates storage.CandidateRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(candidates storage.CandidateRepository, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if candidates == nil {
		return nil, ErrCandidateRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		candidates: candidates,
		embedder:   embedder,
		logger:     logger.With("processor", "embeddings"),
	}, nil
}

// process embeds the descriptions of the candidates identified by the given
// company keys and writes the vectors back. A key that has disappeared from
// the store is logged and skipped.
func (ep *embeddingProcessor) process(ctx context.Context, companyKeys ...string) error {
	ep.logger.Info("processing candidates for embeddings", "candidates", len(companyKeys))

	records := make([]*core.Candidate, 0, len(companyKeys))
	for _, key := range companyKeys {
		candidate, err := ep.candidates.GetCandidate(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				ep.logger.Warn("candidate vanished before embedding", "companyKey", key)
				continue
			}
			ep.logger.Error("error retrieving candidate", "companyKey", key, "err", err)
			return err
		}
		records = append(records, candidate)
	}

	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Description
	}

	ep.logger.Debug("generating embeddings for candidate descriptions", "candidates", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(records), len(embeddings))
	}

	for i := range embeddings {
		records[i].Embedding = core.NormalizeVector(embeddings[i])
	}

	_, err = ep.candidates.PutCandidates(ctx, records...)
	return err
}
