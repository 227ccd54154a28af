// Package cli implements the graphalign command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphalign/pkg/align"
	"github.com/matzehuels/graphalign/pkg/buildinfo"
	"github.com/matzehuels/graphalign/pkg/cache"
	"github.com/matzehuels/graphalign/pkg/config"
	"github.com/matzehuels/graphalign/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "graphalign"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	refresh    bool
	metrics    bool

	// shutdown flushes the metrics pipeline; nil unless --metrics is set.
	shutdown func(context.Context) error
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graphalign builds and aligns against sequence graphs",
		Long:         `graphalign aligns sequences to sequence graphs under an affine gap model and grows graphs that spell every input sequence.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.metrics {
				return c.setupMetrics(cmd.Context())
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.shutdown == nil {
				return nil
			}
			return c.shutdown(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")
	flags.BoolVar(&c.refresh, "refresh", false, "recompute results even when cached")
	flags.BoolVar(&c.metrics, "metrics", false, "print OpenTelemetry metrics to stderr on exit")

	root.AddCommand(c.alignCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.minimizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Configuration & Factories
// =============================================================================

// loadConfig reads --config, or returns the defaults when it is unset.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}

// newAligner creates an aligner for the configured scoring scheme.
func (c *CLI) newAligner(cfg config.Config) (*align.Aligner, error) {
	scoring, err := cfg.Scoring.Build()
	if err != nil {
		return nil, err
	}
	return align.New(scoring, align.WithLogger(c.Logger))
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	aligner, err := c.newAligner(cfg)
	if err != nil {
		return nil, err
	}
	cc, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cache.Instrument(cc), aligner, c.Logger)
	r.Refresh = c.refresh || cfg.Pipeline.Refresh
	return r, nil
}

// newCache opens the configured backend. An unusable file cache directory
// degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.Redis.RedisConfig())
	case config.BackendFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// cacheDir returns the configured file cache directory, falling back to the
// per-user cache directory.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
