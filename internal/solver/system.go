package solver

import (
	"errors"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NewtonSystem is a damped Newton iteration for a square nonlinear system.
//
// Jacobian is optional; when nil it is approximated with central finite
// differences. Convergence is declared when every residual component is
// within Tolerance. On failure the returned NonConvergenceError names the
// component with the largest residual.
type NewtonSystem struct {
	Tolerance     float64
	MaxIterations int
	Jacobian      func(dst *mat.Dense, x []float64)
	MinDamping    float64
	Logger        *log.Logger
}

// SolveSystem runs the iteration from x0. x0 is not modified.
func (n NewtonSystem) SolveSystem(f SystemFunc, x0 []float64) (SystemResult, error) {
	dim := len(x0)
	if dim == 0 {
		return SystemResult{}, errs.Domainf("newton-system", "empty unknown vector")
	}
	tol := tolerance(n.Tolerance)
	maxIter := maxIterations(n.MaxIterations)
	minDamping := n.MinDamping
	if minDamping <= 0 {
		minDamping = 1.0 / 64
	}

	x := append([]float64(nil), x0...)
	fx := make([]float64, dim)
	f(fx, x)

	jac := mat.NewDense(dim, dim, nil)
	rhs := mat.NewVecDense(dim, nil)
	xn := make([]float64, dim)
	fn := make([]float64, dim)

	var comp int
	for iter := 0; iter <= maxIter; iter++ {
		var mag float64
		comp, mag = worst(fx)
		if !finite(mag) {
			return SystemResult{}, errs.Numericalf("newton-system", "non-finite residual %d at x = %v", comp, x)
		}
		trace(n.Logger, "newton-system", iter, x, fx)
		if mag <= tol {
			return SystemResult{Root: x, Residual: fx, Iterations: iter, Converged: true}, nil
		}
		if iter == maxIter {
			break
		}

		if n.Jacobian != nil {
			n.Jacobian(jac, x)
		} else {
			fd.Jacobian(jac, f, x, &fd.JacobianSettings{Formula: fd.Central, OriginValue: fx})
		}
		for i, v := range fx {
			rhs.SetVec(i, -v)
		}
		var step mat.VecDense
		if err := step.SolveVec(jac, rhs); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return SystemResult{}, errs.Numericalf("newton-system", "singular Jacobian at x = %v: %v", x, err)
			}
		}

		norm := floats.Norm(fx, 2)
		for lambda := 1.0; ; lambda /= 2 {
			for i := range x {
				xn[i] = x[i] + lambda*step.AtVec(i)
			}
			f(fn, xn)
			_, m := worst(fn)
			if (finite(m) && floats.Norm(fn, 2) <= norm) || lambda/2 < minDamping {
				break
			}
		}
		copy(x, xn)
		copy(fx, fn)
	}

	return SystemResult{}, &errs.NonConvergenceError{
		Method:     "newton-system",
		Iterations: maxIter,
		Residual:   append([]float64(nil), fx...),
		Component:  comp,
		Tolerance:  tol,
	}
}
