package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theralab/startmatch/ai/mock"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage/badger"
)

func newTestService(t *testing.T, opts ...Option) (*Service, *badger.Repositories, *mock.MockEmbedder) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	service, err := NewService(repos.Candidates, repos.Models, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(service.Release)

	return service, repos, embedder
}

func TestNewService(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		service, err := NewService(repos.Candidates, repos.Models, embedder)
		require.NoError(t, err)
		assert.NotNil(t, service)
		service.Release()
	})

	t.Run("nil candidate repository", func(t *testing.T) {
		_, err := NewService(nil, repos.Models, embedder)
		assert.Equal(t, ErrCandidateRepositoryRequired, err)
	})

	t.Run("nil model repository", func(t *testing.T) {
		_, err := NewService(repos.Candidates, nil, embedder)
		assert.Equal(t, ErrModelRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewService(repos.Candidates, repos.Models, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestFindMatches_EmptyChallengeText(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.FindMatches(context.Background(), &core.Challenge{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyChallengeText)

	_, err = service.FindMatches(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyChallengeText)
}

func TestFindMatches_EmptyStore(t *testing.T) {
	service, _, _ := newTestService(t)

	response, err := service.FindMatches(context.Background(), &core.Challenge{Text: "logistics software"})
	require.NoError(t, err)
	assert.Empty(t, response.Matches)
	assert.Equal(t, 0, response.MatchesFound)
	assert.Equal(t, 0.0, response.AverageSimilarity)
}

func TestFindMatches_EmbeddingFailureIsFatal(t *testing.T) {
	service, _, embedder := newTestService(t)

	wantErr := errors.New("embedding service down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, wantErr
	}

	_, err := service.FindMatches(context.Background(), &core.Challenge{Text: "logistics software"})
	assert.ErrorIs(t, err, wantErr)
}

func TestFindMatches_RanksBySimilarity(t *testing.T) {
	service, repos, _ := newTestService(t)
	ctx := context.Background()

	candidates := []*core.Candidate{
		{CompanyKey: "orthogonal", Name: "Orthogonal", Embedding: []float32{0, 1}},
		{CompanyKey: "aligned", Name: "Aligned", Embedding: []float32{1, 0}},
		{CompanyKey: "diagonal", Name: "Diagonal", Embedding: []float32{0.7, 0.7}},
	}
	_, err := repos.Candidates.PutCandidates(ctx, candidates...)
	require.NoError(t, err)

	response, err := service.FindMatches(ctx, &core.Challenge{Text: "logistics software"})
	require.NoError(t, err)
	require.Len(t, response.Matches, 3)

	assert.Equal(t, "aligned", response.Matches[0].CompanyKey)
	assert.Equal(t, "diagonal", response.Matches[1].CompanyKey)
	assert.Equal(t, "orthogonal", response.Matches[2].CompanyKey)

	// Ranks are 1-based and scores descend
	for i, match := range response.Matches {
		assert.Equal(t, i+1, match.Rank)
		if i > 0 {
			assert.LessOrEqual(t, match.FinalScore, response.Matches[i-1].FinalScore)
		}
		assert.NotEmpty(t, match.Reason)
	}

	assert.Equal(t, 3, response.MatchesFound)
	assert.Greater(t, response.AverageSimilarity, 0.0)
}

func TestFindMatches_SkipsCandidatesWithoutEmbedding(t *testing.T) {
	service, repos, _ := newTestService(t)
	ctx := context.Background()

	_, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "embedded", Name: "Embedded", Embedding: []float32{1, 0}},
		&core.Candidate{CompanyKey: "pending", Name: "Pending"},
	)
	require.NoError(t, err)

	response, err := service.FindMatches(ctx, &core.Challenge{Text: "logistics software"})
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "embedded", response.Matches[0].CompanyKey)
}

func TestFindMatches_SkipsMalformedEmbedding(t *testing.T) {
	service, repos, _ := newTestService(t)
	ctx := context.Background()

	// A stored vector from an older model with a different dimensionality
	// must not be ranked against the 2-dim challenge embedding
	_, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "current", Name: "Current", Embedding: []float32{1, 0}},
		&core.Candidate{CompanyKey: "stale", Name: "Stale", Embedding: []float32{0.5, 0.5, 0.5}},
	)
	require.NoError(t, err)

	response, err := service.FindMatches(ctx, &core.Challenge{Text: "logistics software"})
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "current", response.Matches[0].CompanyKey)
	assert.Equal(t, 1, response.MatchesFound)
}

func TestFindMatches_TruncatesToTopResults(t *testing.T) {
	service, repos, _ := newTestService(t, WithTopResults(2))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repos.Candidates.PutCandidates(ctx, &core.Candidate{
			CompanyKey: fmt.Sprintf("company-%d", i),
			Name:       fmt.Sprintf("Company %d", i),
			Embedding:  []float32{1, float32(i) * 0.1},
		})
		require.NoError(t, err)
	}

	response, err := service.FindMatches(ctx, &core.Challenge{Text: "logistics software"})
	require.NoError(t, err)
	assert.Len(t, response.Matches, 2)
	assert.Equal(t, 2, response.MatchesFound)
}

func TestFindMatches_UsesDeployedModel(t *testing.T) {
	service, repos, _ := newTestService(t, WithWeights(Weights{Embedding: 0.0, ML: 1.0}))
	ctx := context.Background()

	_, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "acme-corp", Name: "Acme Corp", Embedding: []float32{1, 0}},
	)
	require.NoError(t, err)

	// A model with a huge positive intercept pushes every prediction to ~1
	artifact := &core.ModelArtifact{
		ModelType:    "logistic_regression",
		Coefficients: []float64{0.0},
		Intercept:    50.0,
		FeatureOrder: []string{"embedding_similarity"},
		Version:      "v-test",
	}
	require.NoError(t, repos.Models.PutArtifact(ctx, artifact))
	require.NoError(t, repos.Models.Promote(ctx, "v-test"))

	response, err := service.FindMatches(ctx, &core.Challenge{Text: "logistics software"})
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.InDelta(t, 1.0, response.Matches[0].MLScore, 1e-6)
	assert.InDelta(t, 1.0, response.Matches[0].FinalScore, 1e-6)
}

func TestFindMatches_FilterPassthrough(t *testing.T) {
	service, repos, _ := newTestService(t)
	ctx := context.Background()

	a := &core.Candidate{CompanyKey: "us-co", Name: "US Co", Industry: "technology", Country: "united states", Embedding: []float32{1, 0}}
	b := &core.Candidate{CompanyKey: "de-co", Name: "DE Co", Industry: "technology", Country: "germany", Embedding: []float32{1, 0}}
	_, err := repos.Candidates.PutCandidates(ctx, a, b)
	require.NoError(t, err)

	response, err := service.FindMatches(ctx, &core.Challenge{Text: "logistics software", Country: "germany"})
	require.NoError(t, err)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "de-co", response.Matches[0].CompanyKey)
}

func TestFindMatchesWithMonitor(t *testing.T) {
	service, repos, _ := newTestService(t)
	ctx := context.Background()

	_, err := repos.Candidates.PutCandidates(ctx,
		&core.Candidate{CompanyKey: "embedded", Name: "Embedded", Embedding: []float32{1, 0}},
		&core.Candidate{CompanyKey: "pending", Name: "Pending"},
		&core.Candidate{CompanyKey: "stale", Name: "Stale", Embedding: []float32{1, 0, 0}},
	)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	response, err := service.FindMatchesWithMonitor(ctx, &core.Challenge{Text: "logistics software"}, monitor)
	require.NoError(t, err)

	assert.Equal(t, "logistics software", monitor.started)
	assert.Equal(t, 2, monitor.embeddingDims)
	assert.Equal(t, 3, monitor.queried)
	assert.Equal(t, 1, monitor.scored)
	assert.ElementsMatch(t, []string{"pending", "stale"}, monitor.skipped)
	assert.Equal(t, response, monitor.finished)
}

type recordingMonitor struct {
	started       string
	embeddingDims int
	queried       int
	scored        int
	skipped       []string
	finished      *core.MatchResponse
}

func (m *recordingMonitor) Start(text string)                   { m.started = text }
func (m *recordingMonitor) AfterEmbedding(dims int)             { m.embeddingDims = dims }
func (m *recordingMonitor) AfterCandidateQuery(n int)           { m.queried = n }
func (m *recordingMonitor) CandidateScored(_ *core.MatchResult) { m.scored++ }
func (m *recordingMonitor) CandidateSkipped(key string)         { m.skipped = append(m.skipped, key) }
func (m *recordingMonitor) Finish(r *core.MatchResponse)        { m.finished = r }
