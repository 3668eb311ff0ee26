package reembed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage/badger"
)

// testEmbedder implements ai.Embedder for testing
type testEmbedder struct {
	mu       sync.Mutex
	calls    int
	failures int // Number of leading calls that return an error
}

func (m *testEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not used by reembedding")
}

func (m *testEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return nil, errors.New("embedder error")
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{3, 4}
	}
	return result, nil
}

func TestBatchProcessor_Process(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	ctx := context.Background()

	stored, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "a", Name: "A", Description: "first", Embedding: []float32{1, 0}},
		&core.Candidate{CompanyKey: "b", Name: "B", Description: "second", Embedding: []float32{0, 1}},
	)
	require.NoError(t, err)

	bp := NewBatchProcessor(repos.Candidates, &testEmbedder{}, 3, time.Millisecond)
	n, err := bp.Process(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, key := range []string{"a", "b"} {
		candidate, err := repos.Candidates.GetCandidate(ctx, key)
		require.NoError(t, err)
		require.Len(t, candidate.Embedding, 2)
		assert.InDelta(t, 0.6, candidate.Embedding[0], 1e-6)
		assert.InDelta(t, 0.8, candidate.Embedding[1], 1e-6)
	}
}

func TestBatchProcessor_SkipsEmptyDescriptions(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	ctx := context.Background()

	stored, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "texted", Name: "Texted", Description: "has text"},
		&core.Candidate{CompanyKey: "bare", Name: "Bare", Embedding: []float32{1, 0}},
	)
	require.NoError(t, err)

	bp := NewBatchProcessor(repos.Candidates, &testEmbedder{}, 3, time.Millisecond)
	n, err := bp.Process(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the candidate with a description is reembedded")

	bare, err := repos.Candidates.GetCandidate(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, bare.Embedding, "existing vector untouched")
}

func TestBatchProcessor_RetriesTransientFailures(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	ctx := context.Background()

	stored, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "retry", Name: "Retry", Description: "text"},
	)
	require.NoError(t, err)

	embedder := &testEmbedder{failures: 2}
	bp := NewBatchProcessor(repos.Candidates, embedder, 3, time.Millisecond)
	n, err := bp.Process(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, embedder.calls, "two failures then a success")
}

func TestBatchProcessor_ExhaustedRetries(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	ctx := context.Background()

	stored, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "doomed", Name: "Doomed", Description: "text"},
	)
	require.NoError(t, err)

	bp := NewBatchProcessor(repos.Candidates, &testEmbedder{failures: 10}, 2, time.Millisecond)
	_, err = bp.Process(ctx, stored)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	bp := NewBatchProcessor(repos.Candidates, &testEmbedder{}, 3, time.Millisecond)
	n, err := bp.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
