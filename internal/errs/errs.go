// Package errs defines the error taxonomy shared by the plasticity engine.
//
// Three kinds of failure are distinguished:
//   - DomainError: an input lies outside the mathematical domain of a formula
//     (negative base to a fractional power, a ratio with a zero denominator,
//     a strain ratio outside the validity range of a necking model).
//   - NumericalError: a result that must be real and finite is not (complex
//     residue in the principal-stress cubic, a singular Jacobian).
//   - NonConvergenceError: an iterative solve used up its iteration budget
//     without meeting the residual tolerance.
//
// Each typed error matches its sentinel with errors.Is, so callers can test
// the kind without a type assertion.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds.
var (
	ErrDomain         = errors.New("domain error")
	ErrNumerical      = errors.New("numerical error")
	ErrNonConvergence = errors.New("no convergence")
)

// DomainError reports an input outside the valid domain of Op.
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// Domainf builds a DomainError with a formatted message.
func Domainf(op, format string, args ...any) error {
	return &DomainError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NumericalError reports a non-finite or complex result in Op.
type NumericalError struct {
	Op  string
	Msg string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Is reports whether target is ErrNumerical.
func (e *NumericalError) Is(target error) bool { return target == ErrNumerical }

// Numericalf builds a NumericalError with a formatted message.
func Numericalf(op, format string, args ...any) error {
	return &NumericalError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NonConvergenceError is returned when an iterative method stops without
// meeting its tolerance. Component is the index of the residual with the
// largest magnitude at the last iterate (always 0 for scalar problems).
type NonConvergenceError struct {
	Method     string
	Iterations int
	Residual   []float64
	Component  int
	Tolerance  float64
}

func (e *NonConvergenceError) Error() string {
	worst := 0.0
	if e.Component < len(e.Residual) {
		worst = e.Residual[e.Component]
	}
	if len(e.Residual) > 1 {
		return fmt.Sprintf("%s: no convergence after %d iterations (residual %d = %.3g, tolerance %.3g)",
			e.Method, e.Iterations, e.Component, worst, e.Tolerance)
	}
	return fmt.Sprintf("%s: no convergence after %d iterations (residual %.3g, tolerance %.3g)",
		e.Method, e.Iterations, worst, e.Tolerance)
}

// Is reports whether target is ErrNonConvergence.
func (e *NonConvergenceError) Is(target error) bool { return target == ErrNonConvergence }

// IsDomain reports whether err is, or wraps, a domain error.
func IsDomain(err error) bool { return errors.Is(err, ErrDomain) }

// IsNumerical reports whether err is, or wraps, a numerical error.
func IsNumerical(err error) bool { return errors.Is(err, ErrNumerical) }

// IsNonConvergence reports whether err is, or wraps, a non-convergence error.
func IsNonConvergence(err error) bool { return errors.Is(err, ErrNonConvergence) }
