// Package sweep evaluates a model over many parameter values concurrently.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Map applies fn to every value of xs with at most workers goroutines and
// returns the results in input order. The first error cancels the remaining
// work and is returned wrapped with the offending input value. workers <= 0
// uses GOMAXPROCS.
func Map[T any](ctx context.Context, xs []float64, fn func(x float64) (T, error), workers int) ([]T, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]T, len(xs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, x := range xs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(x)
			if err != nil {
				return fmt.Errorf("x=%g: %w", x, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
