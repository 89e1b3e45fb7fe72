package yield

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/tensor"
)

// Hosford is the plane-stress orthotropic Hosford criterion with exponent A.
// R0 and R90 are the Lankford coefficients along and across the rolling
// direction; σ1 acts along the rolling direction.
type Hosford struct {
	R0  float64
	R90 float64
	A   float64
}

// Hill is the quadratic Hill 1948 criterion, Hosford with A = 2.
type Hill struct {
	R0  float64
	R90 float64
}

func (Hosford) Name() string { return "hosford" }
func (Hill) Name() string    { return "hill" }

// Planar returns
//
//	|σ1| · ((r90 + r0·α^a + r0·r90·(1−α)^a) / (r90·(1+r0)))^(1/a)
//
// A negative α or 1−α is only accepted when a is an even integer.
func (h Hosford) Planar(s1, alpha float64) (float64, error) {
	if err := checkPlanar("hosford", s1, alpha); err != nil {
		return 0, err
	}
	if err := h.validate(); err != nil {
		return 0, err
	}

	pa, err := power(alpha, h.A)
	if err != nil {
		return 0, err
	}
	pb, err := power(1-alpha, h.A)
	if err != nil {
		return 0, err
	}
	base := (h.R90 + h.R0*pa + h.R0*h.R90*pb) / (h.R90 * (1 + h.R0))
	if base < 0 {
		return 0, errs.Domainf("hosford", "negative base %.4g at α=%.4g", base, alpha)
	}
	return math.Abs(s1) * math.Pow(base, 1/h.A), nil
}

// Planar delegates to Hosford with exponent 2.
func (h Hill) Planar(s1, alpha float64) (float64, error) {
	v, err := h.hosford().Planar(s1, alpha)
	return v, hillError(err)
}

func (h Hill) orthotropic(s tensor.Stress) (float64, error) {
	v, err := h.hosford().orthotropic(s)
	return v, hillError(err)
}

// hillError reports a domain error raised by the underlying Hosford
// evaluation under the Hill name.
func hillError(err error) error {
	var de *errs.DomainError
	if errors.As(err, &de) {
		de.Op = "hill"
	}
	return err
}

func (h Hosford) String() string {
	return fmt.Sprintf("hosford(r0=%.3g, r90=%.3g, a=%.3g)", h.R0, h.R90, h.A)
}

func (h Hill) String() string {
	return fmt.Sprintf("hill(r0=%.3g, r90=%.3g)", h.R0, h.R90)
}

func (h Hill) hosford() Hosford {
	return Hosford{R0: h.R0, R90: h.R90, A: 2}
}

func (h Hosford) validate() error {
	switch {
	case !(h.R0 > 0) || !(h.R90 > 0):
		return errs.Domainf("hosford", "anisotropy coefficients must be positive, got r0=%v r90=%v", h.R0, h.R90)
	case !(h.A >= 1) || math.IsInf(h.A, 0):
		return errs.Domainf("hosford", "exponent must be finite and >= 1, got a=%v", h.A)
	}
	return nil
}

// orthotropic evaluates the criterion on a plane-stress tensor whose axes
// coincide with the rolling and transverse directions.
func (h Hosford) orthotropic(s tensor.Stress) (float64, error) {
	if !s.IsPlane() || s.XY != 0 {
		return 0, errs.Domainf("hosford", "criterion needs a plane-stress state in the orthotropy axes")
	}
	sx, sy := s.X, s.Y
	switch {
	case sx == 0 && sy == 0:
		return 0, nil
	case math.Abs(sx) >= math.Abs(sy):
		return h.Planar(sx, sy/sx)
	}

	// σy dominates: evaluate with the axes swapped and rescale.
	swapped := Hosford{R0: h.R90, R90: h.R0, A: h.A}
	v, err := swapped.Planar(sy, sx/sy)
	if err != nil {
		return 0, err
	}
	scale := math.Pow(h.R0*(1+h.R90)/(h.R90*(1+h.R0)), 1/h.A)
	return v * scale, nil
}

// power returns x^a. A negative x is only allowed for even integer a.
func power(x, a float64) (float64, error) {
	if x >= 0 {
		return math.Pow(x, a), nil
	}
	if a == math.Trunc(a) && math.Mod(a, 2) == 0 {
		return math.Pow(x, a), nil
	}
	return 0, errs.Domainf("hosford", "negative base %.4g with exponent a=%g", x, a)
}

// Anisotropy holds the Lankford coefficients measured at 0°, 45° and 90° to
// the rolling direction.
type Anisotropy struct {
	R0  float64
	R45 float64
	R90 float64
}

// NewAnisotropy returns the coefficients with R45 = 1 for sheets where the
// 45° value was not measured.
func NewAnisotropy(r0, r90 float64) Anisotropy {
	return Anisotropy{R0: r0, R45: 1, R90: r90}
}

// Planar returns Δr = (r0 + r90 − 2r45)/4.
func (a Anisotropy) Planar() float64 {
	return (a.R0 + a.R90 - 2*a.R45) / 4
}

// Normal returns r̄ = (r0 + r90 + 2r45)/4.
func (a Anisotropy) Normal() float64 {
	return (a.R0 + a.R90 + 2*a.R45) / 4
}

func (a Anisotropy) String() string {
	return fmt.Sprintf("r0=%.3g r45=%.3g r90=%.3g (r̄=%.3g, Δr=%.3g)", a.R0, a.R45, a.R90, a.Normal(), a.Planar())
}
