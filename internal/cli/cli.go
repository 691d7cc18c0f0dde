// Package cli implements the posetrank command-line interface.
//
// This package provides commands for analyzing comparability relations,
// deriving them from graphs, rendering Hasse diagrams, serving the HTTP API,
// and managing the result cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Compute rank probabilities, expected ranks, and spreads
//   - count: Count linear extensions without enumerating them
//   - intervals: Compute possible rank intervals (fast, no enumeration)
//   - enumerate: List linear extensions one by one
//   - hasse: Render the relation's Hasse diagram
//   - serve: Run the HTTP API server
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/pkg/buildinfo"
	"github.com/posetrank/posetrank/pkg/cache"
	"github.com/posetrank/posetrank/pkg/config"
	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "posetrank"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the user's config.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.Load("")
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("ignoring config", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "posetrank",
		Short:        "Posetrank analyzes rank uncertainty in partial orders",
		Long:         `Posetrank computes rank statistics for partially ordered sets: given a comparability relation (or a graph it can derive one from), it enumerates linear extensions to determine where each element can rank and how likely each rank is.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Subcommands pick the logger back up with loggerFromContext, so
			// deeply nested helpers never need a *CLI handle.
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.intervalsCommand())
	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.hasseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use, honoring the configured
// cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/posetrank/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// inputOpts holds the flags shared by commands that load a relation.
type inputOpts struct {
	derivation  string // graph derivation: neighborhood or distance
	maxElements int    // enumeration element limit
	maxSteps    int64  // enumeration step budget
	refresh     bool   // recompute even on cache hit
	noCache     bool   // disable caching entirely
}

// registerInputFlags adds the shared input flags to cmd.
func (c *CLI) registerInputFlags(cmd *cobra.Command, opts *inputOpts) {
	cmd.Flags().StringVarP(&opts.derivation, "derive", "d", "",
		"derive the relation from a graph file: neighborhood, distance")
	cmd.Flags().IntVar(&opts.maxElements, "max-elements", c.Config.Enumeration.MaxElements,
		"largest ground set enumerated exhaustively (0 = built-in default)")
	cmd.Flags().Int64Var(&opts.maxSteps, "max-steps", c.Config.Enumeration.MaxSteps,
		"enumeration step budget (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
}

// pipelineOptions builds pipeline options from an input file and flags.
// The file is sniffed: a document with a "nodes" key is treated as a graph,
// anything else as a relation. --derive forces graph treatment.
func (o *inputOpts) pipelineOptions(path string, logger *log.Logger) (pipeline.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}

	opts := pipeline.Options{
		MaxElements: o.maxElements,
		MaxSteps:    o.maxSteps,
		Refresh:     o.refresh,
		Logger:      logger,
	}
	if o.derivation != "" || isGraphDoc(data) {
		opts.Graph = string(data)
		opts.Derivation = o.derivation
	} else {
		opts.Relation = string(data)
	}
	return opts, nil
}

// isGraphDoc reports whether the document looks like a graph rather than a
// relation.
func isGraphDoc(data []byte) bool {
	var probe struct {
		Nodes json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return len(probe.Nodes) > 0
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
