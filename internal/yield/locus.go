package yield

import (
	"context"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/sweep"
	"github.com/alexiusacademia/gosheet/internal/tensor"
)

// Point is a plane-stress state (σ1, σ2) on a yield locus.
type Point struct {
	S1 float64
	S2 float64
}

// LocusPoint returns the stress state at which the proportional path α
// reaches the yield stress y under criterion c.
func LocusPoint(c Criterion, y, alpha float64) (Point, error) {
	eff, err := c.Planar(1, alpha)
	if err != nil {
		return Point{}, err
	}
	if eff == 0 {
		return Point{}, errs.Domainf(c.Name(), "zero effective stress at α=%.4g", alpha)
	}
	s1 := y / eff
	return Point{S1: s1, S2: alpha * s1}, nil
}

// LocusAt returns the point of the yield locus in the direction phi of the
// (σ1, σ2) plane, measured from the σ1 axis.
func LocusAt(c Criterion, y, phi float64) (Point, error) {
	dx, dy := math.Cos(phi), math.Sin(phi)
	eff, err := Effective(c, tensor.Plane(dx, dy, 0))
	if err != nil {
		return Point{}, err
	}
	if eff == 0 {
		return Point{}, errs.Domainf(c.Name(), "zero effective stress at φ=%.4g", phi)
	}
	return Point{S1: y * dx / eff, S2: y * dy / eff}, nil
}

// Locus traces the closed yield locus of c at yield stress y with n points.
// Points are evaluated concurrently.
func Locus(ctx context.Context, c Criterion, y float64, n int) ([]Point, error) {
	if n < 3 {
		return nil, errs.Domainf(c.Name(), "locus needs at least 3 points, got %d", n)
	}
	angles := sweep.Linspace(0, 2*math.Pi, n)
	return sweep.Map(ctx, angles, func(phi float64) (Point, error) {
		return LocusAt(c, y, phi)
	}, 0)
}

// MisesStrain returns the von Mises effective strain of a proportional
// plane-stress path, (2/√3)·√(ε1² + ε1ε2 + ε2²).
func MisesStrain(e tensor.Strain) float64 {
	return 2 / math.Sqrt(3) * math.Sqrt(e.E1*e.E1+e.E1*e.E2+e.E2*e.E2)
}

// MisesStrainRatio returns the strain ratio β = (2α−1)/(2−α) that the
// Lévy–Mises flow rule associates with the stress ratio α.
func MisesStrainRatio(alpha float64) (float64, error) {
	if alpha == 2 {
		return 0, errs.Domainf("mises flow rule", "α=2 gives zero major strain")
	}
	return (2*alpha - 1) / (2 - alpha), nil
}

// MisesStressRatio is the inverse of MisesStrainRatio, α = (2β+1)/(2+β).
func MisesStressRatio(beta float64) (float64, error) {
	if beta == -2 {
		return 0, errs.Domainf("mises flow rule", "β=-2 has no stress ratio")
	}
	return (2*beta + 1) / (2 + beta), nil
}
