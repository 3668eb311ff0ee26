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

	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

const (
	// DefaultBatchSize is the default number of candidates to collect per batch
	DefaultBatchSize = 100
)

// CandidateIterator walks the full candidate store in batches.
type CandidateIterator struct {
	repo      storage.CandidateRepository
	batchSize int
}

// NewCandidateIterator creates a new candidate iterator.
// batchSize: number of candidates to hand to fn at a time (must be > 0)
func NewCandidateIterator(repo storage.CandidateRepository, batchSize int) *CandidateIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &CandidateIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all stored candidates, calling fn once per batch.
// Iteration stops on the first error from fn or from the store.
// Context cancellation is checked between batches.
func (it *CandidateIterator) ForEach(ctx context.Context, fn func([]*core.Candidate) error) error {
	batch := make([]*core.Candidate, 0, it.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		// Fresh slice so fn may retain the batch it was given
		batch = make([]*core.Candidate, 0, it.batchSize)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	err := it.repo.ForEachCandidate(ctx, func(candidate *core.Candidate) error {
		batch = append(batch, candidate)
		if len(batch) >= it.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Trailing partial batch
	return flush()
}
