package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/pipeline"
)

// searchFlags are the flags shared by every command that runs a search.
// A flag overrides the config file only when it was set explicitly.
type searchFlags struct {
	trials       int
	seed         uint64
	trialWorkers int
	optimalFile  string
	cacheBackend string
	cacheDir     string
	redisURL     string
	refresh      bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.trials, "trials", "n", pipeline.DefaultTrials, "randomized restarts per graph")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "run seed (per-graph seeds derive from it)")
	fs.IntVar(&f.trialWorkers, "trial-workers", pipeline.DefaultTrialWorkers, "goroutines sharing one graph's trials")
	fs.StringVar(&f.optimalFile, "optimal", "", "TOML file of extra known chromatic numbers")
	fs.StringVar(&f.cacheBackend, "cache", "", "result cache: none (default), file, redis")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "directory of the file cache")
	fs.StringVar(&f.redisURL, "redis-url", "", "Redis URL of the redis cache")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	_ = cmd.RegisterFlagCompletionFunc("cache", completeValues(pipeline.ValidCacheBackends, false))
}

func (f *searchFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("trials") {
		opts.Trials = f.trials
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("trial-workers") {
		opts.TrialWorkers = f.trialWorkers
	}
	if fs.Changed("optimal") {
		opts.OptimalFile = f.optimalFile
	}
	if fs.Changed("cache") {
		opts.Cache.Backend = f.cacheBackend
	}
	if fs.Changed("cache-dir") {
		opts.Cache.Dir = f.cacheDir
		if opts.Cache.Backend == "" {
			opts.Cache.Backend = pipeline.CacheFile
		}
	}
	if fs.Changed("redis-url") {
		opts.Cache.URL = f.redisURL
		if opts.Cache.Backend == "" {
			opts.Cache.Backend = pipeline.CacheRedis
		}
	}
	if fs.Changed("refresh") {
		opts.Refresh = f.refresh
	}
}

// searchOptions loads the config file and applies the search flags.
func (c *CLI) searchOptions(cmd *cobra.Command, f *searchFlags) (pipeline.Options, error) {
	opts, err := c.loadOptions()
	if err != nil {
		return opts, err
	}
	f.apply(cmd, &opts)
	return opts, nil
}
