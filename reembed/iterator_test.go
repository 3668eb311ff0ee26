package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
	"github.com/theralab/startmatch/storage/badger"
)

func setupCandidateStore(t *testing.T, count int) storage.CandidateRepository {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	candidates := make([]*core.Candidate, count)
	for i := range candidates {
		candidates[i] = &core.Candidate{
			CompanyKey:  fmt.Sprintf("company-%03d", i),
			Name:        fmt.Sprintf("Company %d", i),
			Description: fmt.Sprintf("description for company %d", i),
		}
	}
	if count > 0 {
		_, err = repos.Candidates.PutCandidates(context.Background(), candidates...)
		require.NoError(t, err)
	}

	return repos.Candidates
}

func TestCandidateIterator_Batching(t *testing.T) {
	repo := setupCandidateStore(t, 25)
	it := NewCandidateIterator(repo, 10)

	var batchSizes []int
	var seen []string
	err := it.ForEach(context.Background(), func(batch []*core.Candidate) error {
		batchSizes = append(batchSizes, len(batch))
		for _, candidate := range batch {
			seen = append(seen, candidate.CompanyKey)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 10, 5}, batchSizes, "trailing partial batch expected")
	require.Len(t, seen, 25)

	// Key order, each candidate exactly once
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i], "iteration should follow key order")
	}
}

func TestCandidateIterator_EmptyStore(t *testing.T) {
	repo := setupCandidateStore(t, 0)
	it := NewCandidateIterator(repo, 10)

	calls := 0
	err := it.ForEach(context.Background(), func(batch []*core.Candidate) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls, "fn should not be called for an empty store")
}

func TestCandidateIterator_StopsOnError(t *testing.T) {
	repo := setupCandidateStore(t, 25)
	it := NewCandidateIterator(repo, 10)

	batchErr := errors.New("batch failed")
	calls := 0
	err := it.ForEach(context.Background(), func(batch []*core.Candidate) error {
		calls++
		if calls == 2 {
			return batchErr
		}
		return nil
	})
	require.ErrorIs(t, err, batchErr)
	assert.Equal(t, 2, calls, "iteration should stop at the failing batch")
}

func TestCandidateIterator_ContextCanceled(t *testing.T) {
	repo := setupCandidateStore(t, 25)
	it := NewCandidateIterator(repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := it.ForEach(ctx, func(batch []*core.Candidate) error {
		calls++
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "cancellation should be observed between batches")
}

func TestCandidateIterator_DefaultBatchSize(t *testing.T) {
	repo := setupCandidateStore(t, 3)
	it := NewCandidateIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
