package search

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/chromabench/pkg/errors"
)

// Outcome is the result of one graph's task in [Fanout].
type Outcome[T any] struct {
	Name  string
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// TaskFunc processes one named graph: typically load it, search it and return
// the result. It owns everything it allocates; nothing is shared between
// tasks except read-only inputs captured by the closure.
type TaskFunc[T any] func(ctx context.Context, name string) (T, error)

// Fanout runs fn once per name on at most workers goroutines and returns the
// outcomes in the order of names. Zero workers means GOMAXPROCS.
//
// Per-graph failures, such as unreadable or malformed input, are recorded in
// the outcome and do not affect other tasks. Fatal errors (see
// [errs.IsFatal]) and context cancellation stop the remaining tasks and are
// returned alongside the partial outcomes.
func Fanout[T any](ctx context.Context, names []string, workers int, fn TaskFunc[T]) ([]Outcome[T], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]Outcome[T], len(names))
	for i, name := range names {
		out[i].Name = name
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := fn(gctx, name)
			out[i] = Outcome[T]{Name: name, Value: v, Err: err}
			if err != nil && (errs.IsFatal(err) || isCancellation(err)) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
