package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

func testArtifact(version string) *core.ModelArtifact {
	return &core.ModelArtifact{
		ModelType:       "logistic_regression",
		Coefficients:    []float64{0.5, 0.3, 0.2},
		Intercept:       0.1,
		FeatureOrder:    []string{"embedding_similarity", "industry_match", "geo_match"},
		TrainingSamples: 800,
		TestSamples:     200,
		AUCScore:        0.78,
		Accuracy:        0.81,
		TrainedAt:       time.Now().UTC(),
		Version:         version,
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	artifact := testArtifact("v1000")
	require.NoError(t, repos.Models.PutArtifact(ctx, artifact))

	got, err := repos.Models.GetArtifact(ctx, "v1000")
	require.NoError(t, err)
	assert.Equal(t, artifact.Coefficients, got.Coefficients)
	assert.Equal(t, artifact.FeatureOrder, got.FeatureOrder)
	assert.InDelta(t, artifact.AUCScore, got.AUCScore, 1e-12)
}

func TestArtifactImmutable(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	require.NoError(t, repos.Models.PutArtifact(ctx, testArtifact("v1000")))

	err = repos.Models.PutArtifact(ctx, testArtifact("v1000"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestArtifactNotFound(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Models.GetArtifact(context.Background(), "v-missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeployedPointer(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	// No promotion yet
	_, err = repos.Models.Deployed(ctx)
	assert.ErrorIs(t, err, storage.ErrNoDeployedModel)

	require.NoError(t, repos.Models.PutArtifact(ctx, testArtifact("v1000")))
	require.NoError(t, repos.Models.PutArtifact(ctx, testArtifact("v2000")))

	require.NoError(t, repos.Models.Promote(ctx, "v1000"))

	deployed, err := repos.Models.Deployed(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1000", deployed.Version)

	// Advancing the pointer swaps the active version
	require.NoError(t, repos.Models.Promote(ctx, "v2000"))

	deployed, err = repos.Models.Deployed(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2000", deployed.Version)
}

func TestPromoteUnknownVersion(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	err = repos.Models.Promote(context.Background(), "v-missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReportHistory(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		report := &core.EvaluationReport{
			ModelVersion: fmt.Sprintf("v%d", i),
			Accuracy:     0.7 + float64(i)*0.01,
			EvaluatedAt:  now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repos.Reports.AddReport(ctx, report))
	}

	reports, err := repos.Reports.ListReports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reports, 4)

	// Newest first
	assert.Equal(t, "v3", reports[0].ModelVersion)
	assert.Equal(t, "v0", reports[3].ModelVersion)

	limited, err := repos.Reports.ListReports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "v3", limited[0].ModelVersion)
	assert.Equal(t, "v2", limited[1].ModelVersion)
}

func TestReportStampsEvaluatedAt(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	report := &core.EvaluationReport{ModelVersion: "v1", Accuracy: 0.8}
	require.NoError(t, repos.Reports.AddReport(context.Background(), report))
	assert.False(t, report.EvaluatedAt.IsZero())
}
