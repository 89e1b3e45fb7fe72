package hardening

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/solver"
)

// planeStrainFactor converts a uniaxial flow stress into the plane-strain
// flow stress S = (2/√3)·σ̄ under the von Mises criterion.
var planeStrainFactor = 2 / math.Sqrt(3)

// PlaneStrain returns the law with K scaled to the plane-strain flow stress.
func PlaneStrain(law Law) (Law, error) {
	switch l := law.(type) {
	case Hollomon:
		l.K *= planeStrainFactor
		return l, nil
	case Swift:
		l.K *= planeStrainFactor
		return l, nil
	}
	return nil, errs.Domainf("plane strain", "unsupported law %T", law)
}

// Tension returns the membrane tension per unit width σ(ε)·t0·e^(−ε) of a
// sheet of initial thickness t0 in plane strain.
func Tension(law Law, t0, eps float64) (float64, error) {
	if !(t0 > 0) {
		return 0, errs.Domainf("tension", "thickness must be positive, got %v", t0)
	}
	s, err := law.FlowStress(eps)
	if err != nil {
		return 0, err
	}
	return s * t0 * math.Exp(-eps), nil
}

// MaxTensionStrain returns the strain at which Tension is largest: n for
// Hollomon and n − ε0 for Swift, never below zero.
func MaxTensionStrain(law Law) (float64, error) {
	switch l := law.(type) {
	case Hollomon:
		if err := validate("hollomon", l.K, l.N, 0); err != nil {
			return 0, err
		}
		return l.N, nil
	case Swift:
		if err := validate("swift", l.K, l.N, l.Eps0); err != nil {
			return 0, err
		}
		return math.Max(0, l.N-l.Eps0), nil
	}
	return 0, errs.Domainf("max tension", "unsupported law %T", law)
}

// StrainForTension returns the strain on the stable branch [0, ε_max] that
// carries the given tension per unit width. Tension beyond the maximum the
// sheet can carry is a DomainError.
func StrainForTension(law Law, t0, tension float64) (float64, error) {
	if math.IsNaN(tension) || tension < 0 {
		return 0, errs.Domainf("strain for tension", "invalid tension %v", tension)
	}
	emax, err := MaxTensionStrain(law)
	if err != nil {
		return 0, err
	}
	tmax, err := Tension(law, t0, emax)
	if err != nil {
		return 0, err
	}
	tmin, err := Tension(law, t0, 0)
	if err != nil {
		return 0, err
	}

	tol := 1e-10 * math.Max(1, tmax)
	switch {
	case tension > tmax+tol:
		return 0, errs.Domainf("strain for tension", "tension %.4g exceeds the maximum %.4g at ε=%.4g", tension, tmax, emax)
	case tension >= tmax:
		return emax, nil
	case tension <= tmin:
		if tmin-tension <= tol {
			return 0, nil
		}
		return 0, errs.Domainf("strain for tension", "tension %.4g below the initial flow tension %.4g", tension, tmin)
	}

	return bisectTension(law, t0, tension, emax, tol)
}

// bisectTension solves Tension(law, t0, ε) = tension for ε in [0, emax].
// An error from the law stops the solve and is returned as is.
func bisectTension(law Law, t0, tension, emax, tol float64) (float64, error) {
	var evalErr error
	res, err := solver.Bisection{Lo: 0, Hi: emax, Tolerance: tol}.Solve(func(e float64) float64 {
		v, err := Tension(law, t0, e)
		if err != nil {
			evalErr = err
			return math.NaN()
		}
		return v - tension
	}, 0)
	if evalErr != nil {
		return 0, evalErr
	}
	if err != nil {
		return 0, fmt.Errorf("strain for tension %.4g: %w", tension, err)
	}
	return res.Root, nil
}
