// Package solver provides the root-finding strategies used by the forming
// problems: a damped Newton iteration and a bisection for scalar equations,
// and a Newton iteration with finite-difference Jacobian for small systems.
//
// Every strategy has an explicit convergence contract. A call either returns
// a Result whose residual satisfies the tolerance, or an error. The error is
// an *errs.NonConvergenceError when the iteration budget runs out, and an
// *errs.NumericalError when the residual or the Jacobian is unusable. An
// unconverged iterate is never returned as a success.
package solver

import (
	"math"

	"github.com/charmbracelet/log"
)

// Default convergence settings used when a strategy leaves them at zero.
const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 100
)

// Func is a scalar residual function.
type Func func(x float64) float64

// SystemFunc evaluates the residual vector of x into dst.
// len(dst) must equal len(x).
type SystemFunc func(dst, x []float64)

// Scalar is a strategy that solves f(x) = 0 for a single unknown.
type Scalar interface {
	Solve(f Func, x0 float64) (Result, error)
}

// System is a strategy that solves F(x) = 0 for a vector of unknowns.
type System interface {
	SolveSystem(f SystemFunc, x0 []float64) (SystemResult, error)
}

// Result is the outcome of a converged scalar solve.
type Result struct {
	Root       float64
	Residual   float64
	Iterations int
	Converged  bool
}

// SystemResult is the outcome of a converged vector solve.
type SystemResult struct {
	Root       []float64
	Residual   []float64
	Iterations int
	Converged  bool
}

func tolerance(tol float64) float64 {
	if tol <= 0 {
		return DefaultTolerance
	}
	return tol
}

func maxIterations(n int) int {
	if n <= 0 {
		return DefaultMaxIterations
	}
	return n
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// worst returns the index and magnitude of the largest residual component.
// A NaN component is reported immediately.
func worst(r []float64) (int, float64) {
	idx, mag := 0, 0.0
	for i, v := range r {
		if math.IsNaN(v) {
			return i, math.NaN()
		}
		if a := math.Abs(v); a > mag {
			idx, mag = i, a
		}
	}
	return idx, mag
}

func trace(l *log.Logger, method string, iter int, x, residual any) {
	if l == nil {
		return
	}
	l.Debug("solver iteration", "method", method, "iter", iter, "x", x, "residual", residual)
}
