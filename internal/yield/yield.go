// Package yield evaluates yield criteria for sheet plasticity.
//
// A Criterion maps a plane-stress state, given as the major stress σ1 and the
// stress ratio α = σ2/σ1, to an effective stress. Effective evaluates the
// same criteria on a full stress tensor. Mises and Tresca accept any tensor;
// the orthotropic variants need a plane-stress tensor in the orthotropy axes.
package yield

import (
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/tensor"
)

// Criterion is a yield function evaluated on a proportional plane-stress
// path. Planar returns the effective stress of (σ1, α·σ1, 0).
type Criterion interface {
	Planar(s1, alpha float64) (float64, error)
	Name() string
}

// Mises is the isotropic von Mises criterion.
type Mises struct{}

// Tresca is the maximum shear stress criterion.
type Tresca struct{}

func (Mises) Name() string  { return "mises" }
func (Tresca) Name() string { return "tresca" }

// Planar returns |σ1|·√(1 − α + α²).
func (Mises) Planar(s1, alpha float64) (float64, error) {
	if err := checkPlanar("mises", s1, alpha); err != nil {
		return 0, err
	}
	return math.Abs(s1) * math.Sqrt(1-alpha+alpha*alpha), nil
}

// Planar returns the largest difference among σ1, α·σ1 and the zero
// through-thickness stress.
func (Tresca) Planar(s1, alpha float64) (float64, error) {
	if err := checkPlanar("tresca", s1, alpha); err != nil {
		return 0, err
	}
	s2 := alpha * s1
	hi := math.Max(math.Max(s1, s2), 0)
	lo := math.Min(math.Min(s1, s2), 0)
	return hi - lo, nil
}

// MisesTensor returns the von Mises effective stress of a general tensor.
func MisesTensor(s tensor.Stress) float64 {
	dx, dy, dz := s.X-s.Y, s.Y-s.Z, s.Z-s.X
	shear := s.XY*s.XY + s.XZ*s.XZ + s.YZ*s.YZ
	return math.Sqrt(0.5 * (dx*dx + dy*dy + dz*dz + 6*shear))
}

// Effective returns the effective stress of s under criterion c.
func Effective(c Criterion, s tensor.Stress) (float64, error) {
	for _, v := range s.Components() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errs.Domainf(c.Name(), "non-finite stress component")
		}
	}

	switch c := c.(type) {
	case Mises:
		return MisesTensor(s), nil
	case Tresca:
		p, err := tensor.PrincipalStresses(s)
		if err != nil {
			return 0, err
		}
		return p.Tresca(), nil
	case Hosford:
		return c.orthotropic(s)
	case Hill:
		return c.orthotropic(s)
	default:
		if !s.IsPlane() || s.XY != 0 {
			return 0, errs.Domainf(c.Name(), "criterion needs a principal plane-stress state")
		}
		return planarXY(c, s.X, s.Y)
	}
}

// planarXY evaluates a criterion that is symmetric in its two in-plane
// axes on the pair (sx, sy).
func planarXY(c Criterion, sx, sy float64) (float64, error) {
	if sx == 0 && sy == 0 {
		return 0, nil
	}
	if math.Abs(sx) >= math.Abs(sy) {
		return c.Planar(sx, sy/sx)
	}
	return c.Planar(sy, sx/sy)
}

func checkPlanar(op string, s1, alpha float64) error {
	if math.IsNaN(s1) || math.IsInf(s1, 0) || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return errs.Domainf(op, "non-finite input σ1=%v α=%v", s1, alpha)
	}
	return nil
}
