package reembed

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage/badger"
)

func TestReembedder_EmptyStore(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	var buf bytes.Buffer
	r := NewReembedder(repos.Candidates, &testEmbedder{}, nil, &buf)
	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, buf.String(), "No candidates found")
}

func TestReembedder_Run(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	ctx := context.Background()

	candidates := make([]*core.Candidate, 12)
	for i := range candidates {
		candidates[i] = &core.Candidate{
			CompanyKey:  fmt.Sprintf("company-%02d", i),
			Name:        fmt.Sprintf("Company %d", i),
			Description: fmt.Sprintf("description %d", i),
			Embedding:   []float32{1, 0}, // Stale vector to be replaced
		}
	}
	_, err = repos.Candidates.PutCandidates(ctx, candidates...)
	require.NoError(t, err)

	config := &Config{BatchSize: 5, ReportInterval: 5, MaxRetries: 2, RetryDelay: time.Millisecond}
	var buf bytes.Buffer
	r := NewReembedder(repos.Candidates, &testEmbedder{}, config, &buf)
	require.NoError(t, r.Run(ctx))

	// Every candidate got the new normalized vector
	for i := range candidates {
		candidate, err := repos.Candidates.GetCandidate(ctx, fmt.Sprintf("company-%02d", i))
		require.NoError(t, err)
		require.Len(t, candidate.Embedding, 2)
		assert.InDelta(t, 0.6, candidate.Embedding[0], 1e-6)
		assert.InDelta(t, 0.8, candidate.Embedding[1], 1e-6)
	}

	output := buf.String()
	assert.Contains(t, output, "Starting reembedding of 12 candidates")
	assert.Contains(t, output, "Updated 12 of 12 candidates")
}

func TestReembedder_DefaultConfig(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	var buf bytes.Buffer
	r := NewReembedder(repos.Candidates, &testEmbedder{}, nil, &buf)
	assert.Equal(t, 100, r.config.BatchSize)
	assert.Equal(t, 3, r.config.MaxRetries)
}
