package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/archive"
	"github.com/matzehuels/chromabench/pkg/buildinfo"
	"github.com/matzehuels/chromabench/pkg/cache"
	"github.com/matzehuels/chromabench/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chromabench"
)

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

	// configPath is the --config flag shared by every command.
	configPath string
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
		Use:   "chromabench",
		Short: "Chromabench benchmarks randomized greedy graph colouring",
		Long: `Chromabench colours DIMACS graphs with a degree-ordered greedy heuristic,
restarted many times with randomized tie-breaking, and reports how close the
best colouring gets to the known chromatic number.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file (flags override its values)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.optimalCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options
// =============================================================================

// loadOptions reads the --config file, if any. Command flags are applied on
// top of the result by the caller.
func (c *CLI) loadOptions() (pipeline.Options, error) {
	var opts pipeline.Options
	if c.configPath != "" {
		var err error
		if opts, err = pipeline.LoadConfig(c.configPath); err != nil {
			return opts, err
		}
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	opts.Logger = c.Logger
	return opts, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for the cache and archive selected in
// opts. The returned function releases both.
func (c *CLI) newRunner(ctx context.Context, opts pipeline.Options) (*pipeline.Runner, func(), error) {
	if err := opts.ValidateForSearch(); err != nil {
		return nil, nil, err
	}

	store, err := newCache(ctx, opts.Cache)
	if err != nil {
		return nil, nil, err
	}
	var keyer cache.Keyer
	if opts.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.Cache.Prefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	c.Logger.Debug("cache", "backend", opts.Cache.Backend)

	var arc *archive.MongoArchive
	if opts.Archive.URI != "" {
		arc, err = archive.Connect(ctx, opts.Archive.URI, opts.Archive.Database, opts.Archive.Collection)
		if err != nil {
			runner.Close()
			return nil, nil, err
		}
		runner.Archive = arc
		c.Logger.Debug("archiving runs", "database", opts.Archive.Database, "collection", opts.Archive.Collection)
	}

	closeFn := func() {
		if err := runner.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
		if arc != nil {
			if err := arc.Close(context.Background()); err != nil {
				c.Logger.Warn("close archive", "err", err)
			}
		}
	}
	return runner, closeFn, nil
}

func newCache(ctx context.Context, opts pipeline.CacheOptions) (cache.Cache, error) {
	switch opts.Backend {
	case pipeline.CacheFile:
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case pipeline.CacheRedis:
		return cache.NewRedisCache(ctx, opts.URL)
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chromabench/).
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

// basePath derives an output path stem from the input file: the directory
// is dropped and the last extension removed, so "graphs/myciel3.col.txt"
// becomes "myciel3.col".
func basePath(input string) string {
	name := filepath.Base(input)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// openOutput returns a writer for path, or stdout when path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// isCancelled reports whether err stems from an interrupted command.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
