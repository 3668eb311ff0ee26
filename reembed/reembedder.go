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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of candidates to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of candidates)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the reembedding of every candidate in the store.
// It is run after switching embedding models, so that stored description
// vectors and fresh challenge vectors live in the same embedding space.
type Reembedder struct {
	repo      storage.CandidateRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *CandidateIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.CandidateRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewCandidateIterator(repo, config.BatchSize),
	}
}

// Run executes the reembedding operation.
// Every candidate with a description is reembedded with the configured
// embedder. Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	total, err := r.repo.CountCandidates(ctx)
	if err != nil {
		return fmt.Errorf("failed to count candidates: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No candidates found in store (0 candidates)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d candidates (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	reembedded := 0

	err = r.iterator.ForEach(ctx, func(candidates []*core.Candidate) error {
		n, err := r.processor.Process(ctx, candidates)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		reembedded += n
		tracker.Increment(len(candidates))

		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Updated %d of %d candidates in %v (%.1f candidates/sec)\n",
		reembedded, total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
