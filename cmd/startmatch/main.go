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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/theralab/startmatch"
	"github.com/theralab/startmatch/ai"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/match"
	"github.com/theralab/startmatch/reembed"
	"github.com/theralab/startmatch/training"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "startmatch",
		Usage: "Challenge to startup matching and model lifecycle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Rank stored candidates against a challenge description",
				ArgsUsage: "<challenge text>",
				Action:    matchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					embeddingHostFlag(),
					embeddingModelFlag(),
					&cli.StringFlag{
						Name:  "industry",
						Usage: "Restrict candidates to an industry",
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Restrict candidates to a country",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of results to return",
						Value: match.DefaultTopResults,
					},
				},
			},
			{
				Name:   "train",
				Usage:  "Run one training cycle over the recorded outcomes",
				Action: trainCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "lookback-days",
						Usage: "How many days of outcomes to train on",
						Value: 14,
					},
					&cli.IntFlag{
						Name:  "min-examples",
						Usage: "Minimum examples required before training",
						Value: training.DefaultMinExamples,
					},
					&cli.Float64Flag{
						Name:  "improvement-threshold",
						Usage: "AUC or accuracy gain required to promote over the deployed model",
						Value: training.DefaultImprovementThreshold,
					},
				},
			},
			{
				Name:   "evaluate",
				Usage:  "Show recent model evaluation reports",
				Action: evaluateCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of reports to show, newest first",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print full reports as JSON",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all candidate descriptions with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					dbFlag(),
					embeddingHostFlag(),
					embeddingModelFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of candidates to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N candidates",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB store directory",
		EnvVars:  []string{"STARTMATCH_DB"},
		Required: true,
	}
}

func embeddingHostFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "embedding-host",
		Usage:   "Embedding service host URL",
		EnvVars: []string{"STARTMATCH_EMBEDDING_HOST"},
		Value:   "http://localhost:11434/v1",
	}
}

func embeddingModelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "embedding-model",
		Usage:    "Embedding model name",
		EnvVars:  []string{"STARTMATCH_EMBEDDING_MODEL"},
		Required: true,
	}
}

func openSystem(c *cli.Context) (*startmatch.System, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	sys, err := startmatch.NewSystem(c.String("db"), startmatch.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return sys, nil
}

func matchCommand(c *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("challenge text is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	matcher, err := sys.NewMatchService(match.WithTopResults(c.Int("top")))
	if err != nil {
		return fmt.Errorf("failed to create match service: %w", err)
	}
	defer matcher.Release()

	response, err := matcher.FindMatches(context.Background(), &core.Challenge{
		Text:     text,
		Industry: c.String("industry"),
		Country:  c.String("country"),
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	encoded, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func trainCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	lookbackDays := c.Int("lookback-days")
	if lookbackDays <= 0 {
		return fmt.Errorf("lookback-days must be greater than 0")
	}

	pipeline, err := sys.NewTrainingPipeline(
		training.WithLookback(time.Duration(lookbackDays)*24*time.Hour),
		training.WithMinExamples(c.Int("min-examples")),
		training.WithImprovementThreshold(c.Float64("improvement-threshold")),
	)
	if err != nil {
		return fmt.Errorf("failed to create training pipeline: %w", err)
	}

	result, err := pipeline.Run(context.Background())
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if !result.ModelSaved {
		fmt.Printf("No model trained: %s\n", result.Reason)
		return nil
	}

	fmt.Printf("Model %s trained on %d examples (%d held out)\n",
		result.ModelVersion, result.TrainingSamples, result.TestSamples)
	fmt.Printf("AUC %.4f, accuracy %.4f\n", result.AUCScore, result.Accuracy)
	if result.Promoted {
		fmt.Printf("Promoted: %s\n", result.Reason)
	} else {
		fmt.Printf("Retained deployed model: %s\n", result.Reason)
	}
	return nil
}

func evaluateCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	reports, err := sys.ReportRepository().ListReports(context.Background(), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(reports) == 0 {
		fmt.Println("No evaluation reports recorded")
		return nil
	}

	if c.Bool("json") {
		encoded, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	for _, report := range reports {
		fmt.Printf("%s  %s  auc=%.4f  acc=%.4f  f1=%.4f\n",
			report.EvaluatedAt.Format(time.RFC3339),
			report.ModelVersion,
			report.AUCScore,
			report.Accuracy,
			report.F1Score,
		)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	fmt.Fprintf(os.Stderr, "Store: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	reembedder := sys.NewReembedder(reembedConfig, os.Stderr)
	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
