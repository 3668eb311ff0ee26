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


package evaluation

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/theralab/startmatch/core"
)

const (
	// DefaultCVFolds is the number of cross-validation folds.
	DefaultCVFolds = 5

	// DefaultTopKFeatures caps how many feature importances a report keeps.
	DefaultTopKFeatures = 10
)

// Reporter evaluates model artifacts against held-out labeled data.
type Reporter struct {
	cvFolds      int
	topKFeatures int
	seed         int64
	logger       *slog.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithCVFolds sets the number of cross-validation folds.
// Default is DefaultCVFolds.
func WithCVFolds(folds int) Option {
	return func(r *Reporter) {
		if folds >= 2 {
			r.cvFolds = folds
		}
	}
}

// WithTopKFeatures sets how many feature importances a report keeps.
// Default is DefaultTopKFeatures.
func WithTopKFeatures(k int) Option {
	return func(r *Reporter) {
		if k > 0 {
			r.topKFeatures = k
		}
	}
}

// WithSeed fixes the cross-validation fold assignment.
func WithSeed(seed int64) Option {
	return func(r *Reporter) {
		r.seed = seed
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewReporter creates a new evaluation reporter.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		cvFolds:      DefaultCVFolds,
		topKFeatures: DefaultTopKFeatures,
		seed:         42,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Evaluate scores the artifact over the held-out matrix and builds the full
// metric report. Columns of X must follow artifact.FeatureOrder. The fit
// function powers cross-validation; pass nil to skip it.
//
// A single-class label set produces a degenerate report with empty curves
// and zero AUCs, not an error.
func (r *Reporter) Evaluate(artifact *core.ModelArtifact, X [][]float64, y []int, fit FitFunc) (*core.EvaluationReport, error) {
	if err := core.ValidateArtifact(artifact); err != nil {
		return nil, err
	}
	if len(X) != len(y) || len(X) == 0 {
		return nil, fmt.Errorf("evaluation requires a non-empty matrix with one label per row, got %d rows and %d labels", len(X), len(y))
	}
	if len(X[0]) != len(artifact.FeatureOrder) {
		return nil, fmt.Errorf("matrix has %d columns for %d model features", len(X[0]), len(artifact.FeatureOrder))
	}

	scores := make([]float64, len(X))
	predictions := make([]int, len(X))
	for i, row := range X {
		scores[i] = predictProbability(artifact, row)
		if scores[i] >= 0.5 {
			predictions[i] = 1
		}
	}

	precision, recall, f1 := WeightedPRF1(y, predictions)
	prCurve := PRCurve(y, scores)

	report := &core.EvaluationReport{
		ModelVersion:      artifact.Version,
		ModelType:         artifact.ModelType,
		Accuracy:          Accuracy(y, predictions),
		Precision:         precision,
		Recall:            recall,
		F1Score:           f1,
		AUCScore:          ROCAUC(y, scores),
		PRAUCScore:        PRAUC(prCurve),
		ConfusionMatrix:   ConfusionMatrix(y, predictions),
		ROCCurve:          ROCCurve(y, scores),
		PRCurve:           prCurve,
		FeatureImportance: TopKImportance(artifact.FeatureOrder, artifact.Coefficients, r.topKFeatures),
		EvaluatedAt:       time.Now().UTC(),
	}

	if fit != nil {
		mean, std, err := CrossValidate(X, y, r.cvFolds, r.seed, fit)
		if err != nil {
			return nil, err
		}
		report.CrossValMean = mean
		report.CrossValStd = std
	}

	r.logger.Info("model evaluated",
		"model_version", report.ModelVersion,
		"accuracy", report.Accuracy,
		"auc", report.AUCScore,
		"samples", len(y))

	return report, nil
}

// predictProbability applies the logistic model to one feature row.
func predictProbability(artifact *core.ModelArtifact, row []float64) float64 {
	z := artifact.Intercept
	for i, coef := range artifact.Coefficients {
		z += coef * row[i]
	}
	return 1.0 / (1.0 + math.Exp(-z))
}
