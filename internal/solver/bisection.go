package solver

import (
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/charmbracelet/log"
)

// Bisection halves the bracket [Lo, Hi] until the residual at the midpoint
// meets the tolerance. It is the strategy of choice when the residual is
// known to be monotonic on the bracket. The initial guess passed to Solve is
// ignored.
type Bisection struct {
	Lo            float64
	Hi            float64
	Tolerance     float64
	MaxIterations int
	Logger        *log.Logger
}

// Solve finds the root of f inside the bracket.
func (b Bisection) Solve(f Func, _ float64) (Result, error) {
	tol := tolerance(b.Tolerance)
	maxIter := b.MaxIterations
	if maxIter <= 0 {
		maxIter = 2 * DefaultMaxIterations
	}

	lo, hi := b.Lo, b.Hi
	if lo > hi {
		lo, hi = hi, lo
	}
	flo, fhi := f(lo), f(hi)
	if !finite(flo) || !finite(fhi) {
		return Result{}, errs.Numericalf("bisection", "non-finite residual at bracket ends [%.6g, %.6g]", lo, hi)
	}
	if math.Abs(flo) <= tol {
		return Result{Root: lo, Residual: flo, Converged: true}, nil
	}
	if math.Abs(fhi) <= tol {
		return Result{Root: hi, Residual: fhi, Converged: true}, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return Result{}, errs.Domainf("bisection", "residual does not change sign on [%.6g, %.6g]", lo, hi)
	}

	var mid, fmid float64
	for iter := 1; iter <= maxIter; iter++ {
		mid = lo + (hi-lo)/2
		fmid = f(mid)
		if !finite(fmid) {
			return Result{}, errs.Numericalf("bisection", "non-finite residual at x = %.6g", mid)
		}
		trace(b.Logger, "bisection", iter, mid, fmid)
		if math.Abs(fmid) <= tol {
			return Result{Root: mid, Residual: fmid, Iterations: iter, Converged: true}, nil
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}

	return Result{}, &errs.NonConvergenceError{
		Method: "bisection", Iterations: maxIter, Residual: []float64{fmid}, Tolerance: tol,
	}
}
