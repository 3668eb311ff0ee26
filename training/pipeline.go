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


package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/evaluation"
	"github.com/theralab/startmatch/storage"
)

const (
	// DefaultLookback is how far back outcome mining reaches.
	DefaultLookback = 14 * 24 * time.Hour

	// DefaultMinExamples is the smallest dataset a run will train on.
	// Smaller runs succeed as no-ops with ModelSaved=false.
	DefaultMinExamples = 100

	// DefaultImprovementThreshold is how much AUC or accuracy must improve
	// over the deployed model before a new artifact is promoted.
	DefaultImprovementThreshold = 0.01

	defaultTestFraction = 0.2
	defaultSeed         = 42
)

// Result summarizes one training run.
type Result struct {
	TrainingSamples int
	TestSamples     int
	ModelSaved      bool
	Promoted        bool
	ModelVersion    string
	AUCScore        float64
	Accuracy        float64
	Reason          string
}

// Pipeline is the offline training job: mine outcomes, fit, evaluate, and
// decide promotion. A mutex enforces the single-writer discipline; two
// concurrent Run calls serialize rather than race on the deployed pointer.
type Pipeline struct {
	outcomeRepository   storage.OutcomeRepository
	candidateRepository storage.CandidateRepository
	modelRepository     storage.ModelRepository
	reportRepository    storage.ReportRepository
	reporter            *evaluation.Reporter
	lookback            time.Duration
	minExamples         int
	improvement         float64
	testFraction        float64
	seed                int64
	logger              *slog.Logger

	mu sync.Mutex
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLookback sets how far back outcome mining reaches.
// Default is DefaultLookback.
func WithLookback(lookback time.Duration) Option {
	return func(p *Pipeline) error {
		if lookback > 0 {
			p.lookback = lookback
		}
		return nil
	}
}

// WithMinExamples sets the smallest dataset a run will train on.
// Default is DefaultMinExamples.
func WithMinExamples(n int) Option {
	return func(p *Pipeline) error {
		if n > 0 {
			p.minExamples = n
		}
		return nil
	}
}

// WithImprovementThreshold sets the promotion margin on AUC and accuracy.
// Default is DefaultImprovementThreshold.
func WithImprovementThreshold(threshold float64) Option {
	return func(p *Pipeline) error {
		if threshold > 0 {
			p.improvement = threshold
		}
		return nil
	}
}

// WithSeed fixes the split and cross-validation randomness.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) error {
		p.seed = seed
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

// NewPipeline creates a new training pipeline.
func NewPipeline(
	outcomeRepository storage.OutcomeRepository,
	candidateRepository storage.CandidateRepository,
	modelRepository storage.ModelRepository,
	reportRepository storage.ReportRepository,
	opts ...Option,
) (*Pipeline, error) {
	if outcomeRepository == nil {
		return nil, ErrOutcomeRepositoryRequired
	}
	if candidateRepository == nil {
		return nil, ErrCandidateRepositoryRequired
	}
	if modelRepository == nil {
		return nil, ErrModelRepositoryRequired
	}
	if reportRepository == nil {
		return nil, ErrReportRepositoryRequired
	}

	p := &Pipeline{
		outcomeRepository:   outcomeRepository,
		candidateRepository: candidateRepository,
		modelRepository:     modelRepository,
		reportRepository:    reportRepository,
		lookback:            DefaultLookback,
		minExamples:         DefaultMinExamples,
		improvement:         DefaultImprovementThreshold,
		testFraction:        defaultTestFraction,
		seed:                defaultSeed,
		logger:              slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.reporter = evaluation.NewReporter(
		evaluation.WithSeed(p.seed),
		evaluation.WithLogger(p.logger),
	)

	return p, nil
}

// Run executes one full training cycle. A run either completes or leaves
// the deployed model exactly as it was; there is no partial promotion.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	examples, err := p.mineExamples(ctx)
	if err != nil {
		return nil, err
	}

	if len(examples) < p.minExamples {
		p.logger.Warn("insufficient training data", "examples", len(examples), "required", p.minExamples)
		return &Result{
			TrainingSamples: len(examples),
			ModelSaved:      false,
			Reason:          fmt.Sprintf("insufficient training data: %d examples", len(examples)),
		}, nil
	}

	X, y, featureNames := PrepareFeatures(examples)
	trainIdx, testIdx := StratifiedSplit(y, p.testFraction, p.seed)
	trainX, trainY := selectRows(X, y, trainIdx)
	testX, testY := selectRows(X, y, testIdx)

	coefficients, intercept, err := FitLogistic(trainX, trainY)
	if err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}

	artifact := &core.ModelArtifact{
		ModelType:       "logistic_regression",
		Coefficients:    coefficients,
		Intercept:       intercept,
		FeatureOrder:    featureNames,
		TrainingSamples: len(trainY),
		TestSamples:     len(testY),
		TrainedAt:       time.Now().UTC(),
		Version:         fmt.Sprintf("v%d", time.Now().UnixNano()),
	}

	report, err := p.reporter.Evaluate(artifact, testX, testY, fitPredictor)
	if err != nil {
		return nil, fmt.Errorf("evaluating model: %w", err)
	}

	artifact.AUCScore = report.AUCScore
	artifact.Accuracy = report.Accuracy
	artifact.Precision = report.Precision
	artifact.Recall = report.Recall
	artifact.F1Score = report.F1Score
	artifact.FeatureImportance = report.FeatureImportance

	if err := p.modelRepository.PutArtifact(ctx, artifact); err != nil {
		return nil, fmt.Errorf("saving artifact: %w", err)
	}

	promoted, reason, err := p.decidePromotion(ctx, artifact)
	if err != nil {
		return nil, err
	}

	if err := p.reportRepository.AddReport(ctx, report); err != nil {
		return nil, fmt.Errorf("saving evaluation report: %w", err)
	}

	p.logger.Info("training run complete",
		"model_version", artifact.Version,
		"training_samples", artifact.TrainingSamples,
		"test_samples", artifact.TestSamples,
		"auc", artifact.AUCScore,
		"accuracy", artifact.Accuracy,
		"promoted", promoted)

	return &Result{
		TrainingSamples: artifact.TrainingSamples,
		TestSamples:     artifact.TestSamples,
		ModelSaved:      true,
		Promoted:        promoted,
		ModelVersion:    artifact.Version,
		AUCScore:        artifact.AUCScore,
		Accuracy:        artifact.Accuracy,
		Reason:          reason,
	}, nil
}

// mineExamples loads outcomes over the lookback window and joins each with
// its candidate profile. Outcomes whose candidate is gone are skipped.
func (p *Pipeline) mineExamples(ctx context.Context) ([]*core.TrainingExample, error) {
	end := time.Now().UTC()
	start := end.Add(-p.lookback)

	outcomes, err := p.outcomeRepository.GetOutcomesByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading outcomes: %w", err)
	}

	examples := make([]*core.TrainingExample, 0, len(outcomes))
	for _, outcome := range outcomes {
		candidate, err := p.candidateRepository.GetCandidate(ctx, outcome.CompanyKey)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				p.logger.Warn("skipping outcome without candidate", "company_key", outcome.CompanyKey)
				continue
			}
			return nil, fmt.Errorf("loading candidate %s: %w", outcome.CompanyKey, err)
		}
		examples = append(examples, BuildExample(outcome, candidate))
	}
	return examples, nil
}

// decidePromotion advances the deployed pointer when the new artifact beats
// the deployed one by the improvement threshold on AUC or accuracy, or when
// nothing is deployed yet.
func (p *Pipeline) decidePromotion(ctx context.Context, artifact *core.ModelArtifact) (bool, string, error) {
	deployed, err := p.modelRepository.Deployed(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoDeployedModel) {
			return false, "", fmt.Errorf("loading deployed model: %w", err)
		}
		if err := p.modelRepository.Promote(ctx, artifact.Version); err != nil {
			return false, "", fmt.Errorf("promoting model: %w", err)
		}
		return true, "no previously deployed model", nil
	}

	aucGain := artifact.AUCScore - deployed.AUCScore
	accuracyGain := artifact.Accuracy - deployed.Accuracy

	if aucGain > p.improvement || accuracyGain > p.improvement {
		if err := p.modelRepository.Promote(ctx, artifact.Version); err != nil {
			return false, "", fmt.Errorf("promoting model: %w", err)
		}
		return true, fmt.Sprintf("auc %+.4f, accuracy %+.4f over %s", aucGain, accuracyGain, deployed.Version), nil
	}

	return false, fmt.Sprintf("no significant improvement over %s", deployed.Version), nil
}
