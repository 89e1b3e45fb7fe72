// Package forming solves the equilibrium problems of sheet forming.
//
// Each problem combines a yield criterion, a hardening law and the geometry
// of the operation, and reduces to a scalar equation or a small nonlinear
// system solved by the strategies of package solver:
//
//   - TubePressure: internal pressure that brings a loaded thin-wall tube to
//     yield.
//   - StretchStrains: pole and wall strains of a sheet stretched over a
//     punch with friction.
//   - Path.Propagate: tension, strain and contact pressure along a stamping
//     path of arcs, straights and a blank-holder flange.
//   - ImperfectionLimit: strain in the sound zone when a thinner zone necks.
//   - Bending: elastic-plastic bending of a sheet in plane strain.
//
// Results are only returned when the underlying solve converged.
package forming

import (
	"github.com/alexiusacademia/gosheet/internal/solver"
	"github.com/charmbracelet/log"
)

// Options tunes the solvers used by the forming problems. The zero value
// uses the solver defaults.
type Options struct {
	Tolerance     float64
	MaxIterations int
	Logger        *log.Logger
}

func (o Options) newton() solver.Newton {
	return solver.Newton{Tolerance: o.Tolerance, MaxIterations: o.MaxIterations, Logger: o.Logger}
}

func (o Options) system() solver.NewtonSystem {
	return solver.NewtonSystem{Tolerance: o.Tolerance, MaxIterations: o.MaxIterations, Logger: o.Logger}
}
