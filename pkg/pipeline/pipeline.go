// Package pipeline runs a benchmark over a corpus of DIMACS graphs.
//
// This package implements the complete list → load → search → report flow
// that is used by the CLI and the HTTP service. By centralizing this logic,
// both entry points apply the same defaults, caching and error policy.
//
// # Architecture
//
// A run consists of four stages:
//
//  1. List: collect the graph files of the input directory
//  2. Load: parse each file and build its adjacency model
//  3. Search: run the restart search per graph, graphs in parallel
//  4. Report: turn each best colouring into a result row and write outputs
//
// Stages 2 and 3 run inside one task per graph. A graph that cannot be read
// or parsed becomes a [report.Failure] and does not stop the run; an invalid
// colouring does.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.Options{
//	    InputDir: "./input_files",
//	    Trials:   5000,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := pipeline.WriteOutputs(result, opts)
//
// Colour a single graph:
//
//	gr, err := runner.ColorFile(ctx, "input_files/myciel3.col.txt", opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromabench/pkg/cache"
	"github.com/matzehuels/chromabench/pkg/coloring/ordering"
	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/report"
	"github.com/matzehuels/chromabench/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultInputDir is the corpus directory.
	DefaultInputDir = "./input_files"

	// DefaultTrials is the number of restart trials per graph.
	DefaultTrials = search.DefaultTrials

	// DefaultOutput is the CSV result file.
	DefaultOutput = report.DefaultCSVName

	// DefaultSeed is the run seed used when none is given.
	DefaultSeed = ordering.DefaultSeed

	// DefaultTrialWorkers runs the trials of a graph sequentially.
	DefaultTrialWorkers = 1

	// MaxTrials bounds the trial count of a single graph.
	MaxTrials = 10_000_000
)

// Format constants for output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatCSV:  true,
	FormatJSON: true,
}

// Cache backend names.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// ValidCacheBackends is the set of supported cache backends.
var ValidCacheBackends = map[string]bool{
	CacheNone:  true,
	CacheFile:  true,
	CacheRedis: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// CacheOptions selects the result cache.
type CacheOptions struct {
	// Backend is "none", "file" or "redis".
	Backend string `toml:"backend" json:"backend,omitempty"`
	// Dir is the FileCache directory. Empty means the user cache directory.
	Dir string `toml:"dir" json:"dir,omitempty"`
	// URL is the Redis URL, e.g. "redis://localhost:6379/0".
	URL string `toml:"url" json:"url,omitempty"`
	// Prefix namespaces keys in a shared backend.
	Prefix string `toml:"prefix" json:"prefix,omitempty"`
}

// ArchiveOptions selects where run summaries are archived.
type ArchiveOptions struct {
	// URI is the MongoDB connection string. Empty disables archiving.
	URI        string `toml:"uri" json:"uri,omitempty"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
}

// Options contains all configuration for a benchmark run.
// It is decoded from the TOML config file and from JSON requests.
type Options struct {
	InputDir     string   `toml:"input_dir" json:"input_dir,omitempty"`
	Trials       int      `toml:"trials" json:"trials,omitempty"`
	Output       string   `toml:"output" json:"output,omitempty"`
	Formats      []string `toml:"formats" json:"formats,omitempty"`
	Workers      int      `toml:"workers" json:"workers,omitempty"`             // Graphs searched in parallel (0 = GOMAXPROCS)
	TrialWorkers int      `toml:"trial_workers" json:"trial_workers,omitempty"` // Goroutines per graph
	Seed         uint64   `toml:"seed" json:"seed,omitempty"`
	OptimalFile  string   `toml:"optimal_file" json:"optimal_file,omitempty"`
	Refresh      bool     `toml:"refresh" json:"refresh,omitempty"` // Ignore cached results

	Cache   CacheOptions   `toml:"cache" json:"cache"`
	Archive ArchiveOptions `toml:"archive" json:"archive"`

	// Runtime options (not serialized)
	Logger  *log.Logger   `toml:"-" json:"-"`
	Optimal optimal.Table `toml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a benchmark run.
type Result struct {
	report.Summary

	// CacheHits counts graphs whose result came from the cache.
	CacheHits int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// GraphResult is the outcome of one graph's search.
type GraphResult struct {
	Name      string
	Vertices  int
	Edges     int
	GraphHash string
	Best      *search.Best
	CacheHit  bool
}

// Row converts the result into a report row.
func (g *GraphResult) Row(table optimal.Table) report.Row {
	r := report.NewRow(g.Name, g.Best, table)
	r.Vertices = g.Vertices
	r.Edges = g.Edges
	r.Cached = g.CacheHit
	return r
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: csv, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCacheBackend checks that a cache backend is valid.
func ValidateCacheBackend(backend string) error {
	if !ValidCacheBackends[backend] {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: none, file, redis)", backend)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults for a
// corpus run. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSearch(); err != nil {
		return err
	}
	if o.InputDir == "" {
		o.InputDir = DefaultInputDir
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatCSV}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "workers must not be negative, got %d", o.Workers)
	}
	o.validated = true
	return nil
}

// ValidateForSearch checks and defaults the options that affect a single
// graph's search.
func (o *Options) ValidateForSearch() error {
	if o.Trials == 0 {
		o.Trials = DefaultTrials
	}
	if err := errs.ValidateTrials(o.Trials, MaxTrials); err != nil {
		return err
	}
	if o.TrialWorkers == 0 {
		o.TrialWorkers = DefaultTrialWorkers
	}
	if o.TrialWorkers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "trial_workers must not be negative, got %d", o.TrialWorkers)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Cache.Backend == "" {
		o.Cache.Backend = CacheNone
	}
	if err := ValidateCacheBackend(o.Cache.Backend); err != nil {
		return err
	}
	if o.Cache.Backend == CacheRedis && o.Cache.URL == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.url is required for the redis backend")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// WantsFormat reports whether format is among the requested outputs.
func (o *Options) WantsFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// SearchOptions returns the search options for the graph called name.
// Each graph gets its own seed derived from the run seed and its name, so
// results do not depend on which other graphs are in the corpus.
func (o *Options) SearchOptions(name string) search.Options {
	return search.Options{
		Name:    name,
		Trials:  o.Trials,
		Seed:    ordering.SeedFor(o.Seed, name),
		Workers: o.TrialWorkers,
	}
}

// SearchKeyOpts returns cache key options for the graph called name.
func (o *Options) SearchKeyOpts(name string) cache.SearchKeyOpts {
	return cache.SearchKeyOpts{
		Trials: o.Trials,
		Seed:   ordering.SeedFor(o.Seed, name),
	}
}
