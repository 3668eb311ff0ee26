package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findStringFlag(cmd *cli.Command, name string) *cli.StringFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func findIntFlag(cmd *cli.Command, name string) *cli.IntFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestAppCommands(t *testing.T) {
	app := newApp()

	for _, name := range []string{"match", "train", "evaluate", "reembed"} {
		assert.NotNil(t, findCommand(t, app, name), "command %s should exist", name)
	}
}

func TestReembedCommandFlags(t *testing.T) {
	app := newApp()
	cmd := findCommand(t, app, "reembed")

	t.Run("db is required with env fallback", func(t *testing.T) {
		dbFlag := findStringFlag(cmd, "db")
		require.NotNil(t, dbFlag)
		assert.True(t, dbFlag.Required)
		assert.Equal(t, []string{"STARTMATCH_DB"}, dbFlag.EnvVars)
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		hostFlag := findStringFlag(cmd, "embedding-host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
		assert.Equal(t, []string{"STARTMATCH_EMBEDDING_HOST"}, hostFlag.EnvVars)
	})

	t.Run("embedding-model is required", func(t *testing.T) {
		modelFlag := findStringFlag(cmd, "embedding-model")
		require.NotNil(t, modelFlag)
		assert.Empty(t, modelFlag.Value)
		assert.True(t, modelFlag.Required)
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		batchFlag := findIntFlag(cmd, "batch-size")
		require.NotNil(t, batchFlag)
		assert.Equal(t, 100, batchFlag.Value)
	})

	t.Run("report-interval has default value of 100", func(t *testing.T) {
		reportFlag := findIntFlag(cmd, "report-interval")
		require.NotNil(t, reportFlag)
		assert.Equal(t, 100, reportFlag.Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		retriesFlag := findIntFlag(cmd, "max-retries")
		require.NotNil(t, retriesFlag)
		assert.Equal(t, 3, retriesFlag.Value)
	})

	t.Run("missing embedding-model flag fails", func(t *testing.T) {
		err := newApp().Run([]string{"startmatch", "reembed", "--db", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding-model")
	})
}

func TestTrainCommandFlags(t *testing.T) {
	app := newApp()
	cmd := findCommand(t, app, "train")

	t.Run("lookback-days defaults to 14", func(t *testing.T) {
		lookbackFlag := findIntFlag(cmd, "lookback-days")
		require.NotNil(t, lookbackFlag)
		assert.Equal(t, 14, lookbackFlag.Value)
	})

	t.Run("min-examples defaults to 100", func(t *testing.T) {
		minFlag := findIntFlag(cmd, "min-examples")
		require.NotNil(t, minFlag)
		assert.Equal(t, 100, minFlag.Value)
	})

	t.Run("missing db flag fails", func(t *testing.T) {
		err := newApp().Run([]string{"startmatch", "train"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})
}

func TestMatchCommandRequiresText(t *testing.T) {
	// The db flag is satisfied; the command should still fail before
	// opening the store because no challenge text was given
	err := newApp().Run([]string{"startmatch", "match",
		"--db", t.TempDir(), "--embedding-model", "test-model"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "challenge text")
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				assert.Equal(t, "debug", c.String("log-level"))
				return nil
			},
		}

		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
