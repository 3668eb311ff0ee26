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


package startmatch

import (
	"context"
	"io"
	"log/slog"

	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/ai/openai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/ingest"
	"github.com/theralab/startmatch/match"
	"github.com/theralab/startmatch/reembed"
	"github.com/theralab/startmatch/storage"
	"github.com/theralab/startmatch/storage/badger"
	"github.com/theralab/startmatch/training"
)

// System wires the candidate store, the embedding provider, the matching
// service and the training pipeline into one openable unit.
type System struct {
	repos    *badger.Repositories
	embedder ai.Embedder
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects an embedder directly, bypassing the OpenAI-compatible
// provider. Used by tests and by deployments that bring their own client.
func WithEmbedder(embedder ai.Embedder) SystemOption {
	return func(o *systemOptions) {
		o.embedder = embedder
	}
}

// NewSystem opens the store at filePath and wires all components.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	repos, err := badger.OpenRepositories(filePath, false)
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	return &System{
		repos:    repos,
		embedder: embedder,
		logger:   slog.Default(),
	}, nil
}

// Close releases the store and resources held by the system.
func (s *System) Close() error {
	if err := s.repos.Close(); err != nil {
		s.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

func (s *System) CandidateRepository() storage.CandidateRepository {
	return s.repos.Candidates
}

func (s *System) OutcomeRepository() storage.OutcomeRepository {
	return s.repos.Outcomes
}

func (s *System) ModelRepository() storage.ModelRepository {
	return s.repos.Models
}

func (s *System) ReportRepository() storage.ReportRepository {
	return s.repos.Reports
}

// RecordOutcomes appends shortlist rows to the outcome history. Outcomes
// feed the next training run; they are never updated in place except to
// attach an engagement signal by re-adding the row with EngagedAt set.
func (s *System) RecordOutcomes(ctx context.Context, outcomes ...*core.Outcome) error {
	return s.repos.Outcomes.AddOutcomes(ctx, outcomes...)
}

// NewMatchService creates a matching service over the system's store and
// embedder.
func (s *System) NewMatchService(opts ...match.Option) (*match.Service, error) {
	return match.NewService(s.repos.Candidates, s.repos.Models, s.embedder, opts...)
}

// NewTrainingPipeline creates a training pipeline over the system's store.
func (s *System) NewTrainingPipeline(opts ...training.Option) (*training.Pipeline, error) {
	return training.NewPipeline(s.repos.Outcomes, s.repos.Candidates, s.repos.Models, s.repos.Reports, opts...)
}

// NewIngestPipeline creates a candidate ingestion pipeline.
func (s *System) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(s.repos.Candidates, s.embedder, opts...)
}

// NewReembedder creates a reembedder writing progress to the given writer.
func (s *System) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(s.repos.Candidates, s.embedder, config, progress)
}
