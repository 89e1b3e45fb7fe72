package solver

import (
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/diff/fd"
)

// Newton is a damped Newton–Raphson iteration for a scalar equation.
//
// The step is halved while it increases the residual magnitude, down to
// MinDamping of the full Newton step. Derivative is optional; when nil the
// derivative is estimated with a central finite difference.
type Newton struct {
	Tolerance     float64
	MaxIterations int
	Derivative    Func
	MinDamping    float64
	Logger        *log.Logger
}

// Solve runs the iteration from x0.
func (n Newton) Solve(f Func, x0 float64) (Result, error) {
	tol := tolerance(n.Tolerance)
	maxIter := maxIterations(n.MaxIterations)
	minDamping := n.MinDamping
	if minDamping <= 0 {
		minDamping = 1.0 / 64
	}

	deriv := n.Derivative
	if deriv == nil {
		deriv = func(x float64) float64 {
			return fd.Derivative(f, x, &fd.Settings{Formula: fd.Central, Step: 1e-6 * math.Max(1, math.Abs(x))})
		}
	}

	x := x0
	fx := f(x)
	for iter := 0; iter <= maxIter; iter++ {
		if !finite(fx) {
			return Result{}, errs.Numericalf("newton", "non-finite residual at x = %.6g", x)
		}
		trace(n.Logger, "newton", iter, x, fx)
		if math.Abs(fx) <= tol {
			return Result{Root: x, Residual: fx, Iterations: iter, Converged: true}, nil
		}
		if iter == maxIter {
			break
		}

		d := deriv(x)
		if d == 0 || !finite(d) {
			// Flat or undefined slope: no Newton direction. Iterating further
			// would only repeat the same point.
			return Result{}, &errs.NonConvergenceError{
				Method: "newton", Iterations: iter, Residual: []float64{fx}, Tolerance: tol,
			}
		}

		step := -fx / d
		lambda := 1.0
		xn := x + step
		fn := f(xn)
		for (!finite(fn) || math.Abs(fn) > math.Abs(fx)) && lambda > minDamping {
			lambda /= 2
			xn = x + lambda*step
			fn = f(xn)
		}
		x, fx = xn, fn
	}

	return Result{}, &errs.NonConvergenceError{
		Method: "newton", Iterations: maxIter, Residual: []float64{fx}, Tolerance: tol,
	}
}
