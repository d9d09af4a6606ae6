// Package search drives the randomized restart search: many independent
// greedy colouring trials per graph, keeping the colouring with the fewest
// colours, and the parallel fan-out of such searches over a corpus of graphs.
//
// # Single graph
//
// [Search] runs opts.Trials trials. Trial i draws its vertex order from
// [ordering.Stream](opts.Seed, i), colours it with [coloring.Greedy] and checks
// the result with [coloring.Validate]. A trial replaces the current best only
// when it uses strictly fewer colours, so the best colour count never
// increases and ties keep the earliest trial.
//
// By default trials run sequentially in the calling goroutine, which is what
// lets the compare-and-replace step go unsynchronized. With opts.Workers > 1
// the trials are split across goroutines, each keeping a private best, and the
// private bests are reduced after all of them finish using the same
// (fewest colours, lowest trial index) rule. Both modes return the same
// result for the same seed.
//
// # Many graphs
//
// [Fanout] runs one task per graph on a bounded pool. Each task writes only
// its own result slot, and the slots are returned after every task joined.
package search

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/coloring/ordering"
	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/graph"
	"github.com/matzehuels/chromabench/pkg/observability"
)

// DefaultTrials is the number of trials per graph when Options.Trials is zero.
const DefaultTrials = 5000

// cancelCheckInterval is how many trials run between context checks.
const cancelCheckInterval = 64

// Options configures a single graph's search.
type Options struct {
	// Name identifies the graph in hook events.
	Name string

	// Trials is the number of trials to run. Zero means DefaultTrials.
	Trials int

	// Seed selects the random streams of the trials. Use
	// [ordering.SeedFor] to derive it from a run seed and a graph name.
	Seed uint64

	// Workers is the number of goroutines sharing the trials.
	// Values below 2 run the trials sequentially.
	Workers int
}

func (o Options) trials() int {
	if o.Trials <= 0 {
		return DefaultTrials
	}
	return o.Trials
}

// Trial is the outcome of one colouring attempt.
type Trial struct {
	Index    int               `json:"index"`
	Coloring coloring.Coloring `json:"coloring"`
	Colors   int               `json:"colors"`
	Elapsed  time.Duration     `json:"elapsed"`
	Outcome  coloring.Outcome  `json:"outcome"`
}

// Improvement records a trial that lowered the best colour count.
type Improvement struct {
	Trial  int `json:"trial"`
	Colors int `json:"colors"`
}

// Best is the result of a search: the winning trial plus bookkeeping.
type Best struct {
	Trial

	// Trials is the number of trials executed.
	Trials int `json:"trials"`

	// History lists every improvement in trial order. Colour counts are
	// strictly decreasing along it.
	History []Improvement `json:"history"`

	// Duration is the wall time of the whole search.
	Duration time.Duration `json:"duration"`
}

// RunTrial performs trial index of the search seeded with seed.
// It is deterministic in (g, seed, index).
func RunTrial(g *graph.Graph, seed uint64, index int) Trial {
	start := time.Now()
	order := ordering.ByDegree(g.Degrees(), ordering.Stream(seed, index))
	c := coloring.Greedy(order, g)
	elapsed := time.Since(start)

	return Trial{
		Index:    index,
		Coloring: c,
		Colors:   c.Count(),
		Elapsed:  elapsed,
		Outcome:  coloring.Validate(c, g),
	}
}

// Search runs the restart search on g and returns the best trial.
//
// It returns an error with code INVALID_COLORING if any trial fails
// validation, and ctx.Err() if ctx is cancelled before the trials finish.
func Search(ctx context.Context, g *graph.Graph, opts Options) (*Best, error) {
	hooks := observability.Search()
	trials := opts.trials()
	hooks.OnSearchStart(ctx, opts.Name, g.Len(), g.EdgeCount(), trials)

	start := time.Now()
	var (
		best *Best
		err  error
	)
	improved := func(trial, colors int) { hooks.OnImprovement(ctx, opts.Name, trial, colors) }
	if opts.Workers > 1 {
		best, err = searchParallel(ctx, g, opts.Seed, trials, opts.Workers, improved)
	} else {
		best, err = searchSequential(ctx, g, opts.Seed, trials, improved)
	}
	if err != nil {
		hooks.OnSearchComplete(ctx, opts.Name, 0, time.Since(start), err)
		return nil, err
	}
	best.Duration = time.Since(start)
	hooks.OnSearchComplete(ctx, opts.Name, best.Colors, best.Duration, nil)
	return best, nil
}

func searchSequential(ctx context.Context, g *graph.Graph, seed uint64, trials int, improved func(trial, colors int)) (*Best, error) {
	best := &Best{Trial: Trial{Colors: math.MaxInt}}
	for i := 0; i < trials; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		t := RunTrial(g, seed, i)
		if err := checkTrial(t, g); err != nil {
			return nil, err
		}
		best.Trials++
		if t.Colors < best.Colors {
			best.Trial = t
			best.History = append(best.History, Improvement{Trial: i, Colors: t.Colors})
			improved(i, t.Colors)
		}
	}
	return best, nil
}

// searchParallel stripes trials over workers. Each worker keeps its own best
// and records the colour count of every trial it runs, so the reduction and
// the improvement history match the sequential search exactly. improved sees
// the running best across workers in the order workers find it.
func searchParallel(ctx context.Context, g *graph.Graph, seed uint64, trials, workers int, improved func(trial, colors int)) (*Best, error) {
	workers = min(workers, trials)
	counts := make([]int, trials)
	locals := make([]Trial, workers)
	failures := make([]error, workers)

	var (
		mu     sync.Mutex
		lowest = math.MaxInt
	)
	report := func(trial, colors int) {
		mu.Lock()
		defer mu.Unlock()
		if colors < lowest {
			lowest = colors
			improved(trial, colors)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := Trial{Index: -1, Colors: math.MaxInt}
			for i, n := w, 0; i < trials; i, n = i+workers, n+1 {
				if n%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						failures[w] = err
						return
					}
				}
				t := RunTrial(g, seed, i)
				if err := checkTrial(t, g); err != nil {
					failures[w] = err
					cancel()
					return
				}
				counts[i] = t.Colors
				if t.Colors < local.Colors {
					local = t
					report(i, t.Colors)
				}
			}
			locals[w] = local
		}()
	}
	wg.Wait()

	if err := firstFailure(failures); err != nil {
		return nil, err
	}

	best := &Best{Trial: Trial{Index: -1, Colors: math.MaxInt}, Trials: trials}
	for _, t := range locals {
		if t.Colors < best.Colors || (t.Colors == best.Colors && t.Index < best.Index) {
			best.Trial = t
		}
	}

	running := math.MaxInt
	for i, c := range counts {
		if c < running {
			running = c
			best.History = append(best.History, Improvement{Trial: i, Colors: c})
		}
	}
	return best, nil
}

// firstFailure prefers a validation failure over the cancellations it caused.
func firstFailure(failures []error) error {
	var first error
	for _, err := range failures {
		if err == nil {
			continue
		}
		if errs.IsFatal(err) {
			return err
		}
		if first == nil {
			first = err
		}
	}
	return first
}

// checkTrial turns a failed validation into a fatal error.
func checkTrial(t Trial, g *graph.Graph) error {
	if t.Outcome == coloring.Pass {
		return nil
	}
	if c, ok := coloring.FindConflict(t.Coloring, g); ok {
		return errs.New(errs.ErrCodeInvalidColoring, "trial %d: %s", t.Index, c)
	}
	return errs.New(errs.ErrCodeInvalidColoring, "trial %d failed validation", t.Index)
}
