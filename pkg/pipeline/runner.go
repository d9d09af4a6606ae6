package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chromabench/pkg/cache"
	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/dimacs"
	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/graph"
	"github.com/matzehuels/chromabench/pkg/observability"
	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/report"
	"github.com/matzehuels/chromabench/pkg/search"
)

// Archive stores finished run summaries.
type Archive interface {
	Save(ctx context.Context, s *report.Summary) error
}

// Runner encapsulates benchmark execution with caching.
// Both CLI and server use this to avoid duplicating the search policy.
//
// The Runner is stateless except for the cache, archive and logger - it
// doesn't store run results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive Archive
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete list → load → search → report pipeline.
//
// Graphs that fail to load are listed in Result.Failures. A fatal error
// (invalid colouring, cancellation) aborts the run and is returned.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	table, err := r.optimalTable(opts)
	if err != nil {
		return nil, err
	}
	opts.Optimal = table

	names, err := dimacs.ListDir(opts.InputDir)
	if err != nil {
		return nil, err
	}

	result := &Result{Summary: report.Summary{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Trials:  opts.Trials,
		Seed:    opts.Seed,
	}}
	logger := r.Logger.With("run", result.RunID)
	logger.Info("starting run",
		"dir", opts.InputDir,
		"graphs", len(names),
		"trials", opts.Trials,
		"seed", opts.Seed)

	outcomes, err := search.Fanout(ctx, names, opts.Workers, func(ctx context.Context, name string) (*GraphResult, error) {
		return r.colorFile(ctx, filepath.Join(opts.InputDir, name), name, opts, logger)
	})
	if err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		if !o.OK() {
			logger.Warn("skipped graph", "graph", o.Name, "err", errs.UserMessage(o.Err))
			result.Failures = append(result.Failures, report.Failure{
				Filename: o.Name,
				Code:     string(errs.GetCode(o.Err)),
				Error:    errs.UserMessage(o.Err),
			})
			continue
		}
		if o.Value.CacheHit {
			result.CacheHits++
		}
		result.Rows = append(result.Rows, o.Value.Row(table))
	}
	report.SortRows(result.Rows)

	result.Finished = time.Now().UTC()
	result.Duration = result.Finished.Sub(result.Started)
	logger.Info("finished run",
		"graphs", len(result.Rows),
		"failed", len(result.Failures),
		"solved", result.SolvedCount(),
		"cache_hits", result.CacheHits,
		"duration", result.Duration)

	if r.Archive != nil {
		if err := r.Archive.Save(ctx, &result.Summary); err != nil {
			logger.Warn("archive failed", "err", err)
		} else {
			logger.Debug("archived run")
		}
	}
	return result, nil
}

// ColorFile loads the DIMACS file at path and searches it. The graph is
// named after the file's base name.
func (r *Runner) ColorFile(ctx context.Context, path string, opts Options) (*GraphResult, error) {
	if err := opts.ValidateForSearch(); err != nil {
		return nil, err
	}
	return r.colorFile(ctx, path, filepath.Base(path), opts, r.Logger)
}

func (r *Runner) colorFile(ctx context.Context, path, name string, opts Options, logger *log.Logger) (*GraphResult, error) {
	g, err := dimacs.LoadGraph(path)
	if err != nil {
		return nil, err
	}
	return r.colorGraph(ctx, name, g, opts, logger)
}

// ColorGraph searches g with caching. name selects the graph's seed and
// keys hook events.
func (r *Runner) ColorGraph(ctx context.Context, name string, g *graph.Graph, opts Options) (*GraphResult, error) {
	if err := opts.ValidateForSearch(); err != nil {
		return nil, err
	}
	return r.colorGraph(ctx, name, g, opts, r.Logger)
}

func (r *Runner) colorGraph(ctx context.Context, name string, g *graph.Graph, opts Options, logger *log.Logger) (*GraphResult, error) {
	res := &GraphResult{
		Name:     name,
		Vertices: g.Len(),
		Edges:    g.EdgeCount(),
	}

	_, noCache := r.Cache.(*cache.NullCache)
	var cacheKey string
	if !noCache {
		res.GraphHash = GraphHash(g)
		cacheKey = r.Keyer.SearchKey(res.GraphHash, opts.SearchKeyOpts(name))
	}

	// Try cache first (unless refresh requested)
	if !noCache && !opts.Refresh {
		if best, ok := r.cachedBest(ctx, cacheKey, g); ok {
			observability.Cache().OnCacheHit(ctx, "search")
			hooks := observability.Search()
			hooks.OnSearchStart(ctx, name, g.Len(), g.EdgeCount(), best.Trials)
			hooks.OnSearchComplete(ctx, name, best.Colors, 0, nil)
			logger.Debug("cache hit", "graph", name, "colors", best.Colors)
			res.Best = best
			res.CacheHit = true
			return res, nil
		}
		observability.Cache().OnCacheMiss(ctx, "search")
	}

	best, err := search.Search(ctx, g, opts.SearchOptions(name))
	if err != nil {
		return nil, err
	}
	res.Best = best
	logger.Info("searched graph",
		"graph", name,
		"vertices", g.Len(),
		"edges", g.EdgeCount(),
		"colors", best.Colors,
		"best_trial", best.Index,
		"duration", best.Duration)

	// Cache the result
	if !noCache {
		if data, err := json.Marshal(best); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLSearch); err != nil {
				logger.Debug("cache write failed", "graph", name, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "search", len(data))
			}
		}
	}
	return res, nil
}

// cachedBest returns the cached best colouring if present and still a valid
// partition and proper colouring of g.
func (r *Runner) cachedBest(ctx context.Context, key string, g *graph.Graph) (*search.Best, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var best search.Best
	if err := json.Unmarshal(data, &best); err != nil {
		return nil, false
	}
	if best.Coloring.Count() != best.Colors {
		return nil, false
	}
	if coloring.CheckPartition(best.Coloring, g.Len()) != nil || coloring.Validate(best.Coloring, g) != coloring.Pass {
		return nil, false
	}
	return &best, true
}

// optimalTable returns opts.Optimal, or the built-in table overlaid with
// opts.OptimalFile.
func (r *Runner) optimalTable(opts Options) (optimal.Table, error) {
	if opts.Optimal != nil {
		return opts.Optimal, nil
	}
	return optimal.LoadWithDefault(opts.OptimalFile)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// GraphHash returns the content hash of g's canonical DIMACS form, so files
// that differ only in comments, edge order or duplicate edges share a hash.
func GraphHash(g *graph.Graph) string {
	var buf bytes.Buffer
	_ = dimacs.Write(&buf, g)
	return cache.Hash(buf.Bytes())
}
