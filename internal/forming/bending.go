package forming

import (
	"context"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/sweep"
)

// Bending is a sheet of thickness Thickness bent in plane strain, with an
// elastic, perfectly plastic material of modulus E, Poisson ratio Nu and
// uniaxial yield stress Y.
type Bending struct {
	Thickness float64
	E         float64
	Nu        float64
	Y         float64
}

// Validate checks the sheet and material constants.
func (b Bending) Validate() error {
	switch {
	case !(b.Thickness > 0):
		return errs.Domainf("bending", "thickness must be positive, got %v", b.Thickness)
	case !(b.E > 0):
		return errs.Domainf("bending", "modulus must be positive, got %v", b.E)
	case !(b.Nu >= 0 && b.Nu < 0.5):
		return errs.Domainf("bending", "Poisson ratio must be in [0, 0.5), got %v", b.Nu)
	case !(b.Y > 0):
		return errs.Domainf("bending", "yield stress must be positive, got %v", b.Y)
	}
	return nil
}

// Modulus returns the plane-strain modulus E' = E/(1−ν²).
func (b Bending) Modulus() float64 {
	return b.E / (1 - b.Nu*b.Nu)
}

// FlowStress returns the plane-strain yield stress S = 2Y/√3.
func (b Bending) FlowStress() float64 {
	return 2 * b.Y / math.Sqrt(3)
}

// ElasticRadius returns the radius of curvature ρe = E't/(2S) at which the
// outer fibres first yield.
func (b Bending) ElasticRadius() float64 {
	return b.Modulus() * b.Thickness / (2 * b.FlowStress())
}

// ElasticMoment returns Me = S·t²/6 per unit width.
func (b Bending) ElasticMoment() float64 {
	return b.FlowStress() * b.Thickness * b.Thickness / 6
}

// PlasticMoment returns the fully plastic moment Mp = 1.5·Me.
func (b Bending) PlasticMoment() float64 {
	return 1.5 * b.ElasticMoment()
}

// Moment returns the bending moment per unit width at radius rho:
// Me·ρe/ρ while elastic and Me·(3 − (ρ/ρe)²)/2 once the surface yields.
func (b Bending) Moment(rho float64) (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if !(rho > 0) {
		return 0, errs.Domainf("bending", "radius of curvature must be positive, got %v", rho)
	}
	re, me := b.ElasticRadius(), b.ElasticMoment()
	if rho >= re {
		return me * re / rho, nil
	}
	r := rho / re
	return me * (3 - r*r) / 2, nil
}

// Strain returns the bending strain y/ρ at distance y from the mid plane.
func (b Bending) Strain(y, rho float64) float64 {
	return y / rho
}

// Stress returns the fibre stress at distance y from the mid plane: E'ε
// while elastic, ±S once yielded.
func (b Bending) Stress(y, rho float64) float64 {
	e := b.Strain(y, rho)
	s := b.FlowStress()
	if math.Abs(e) < s/b.Modulus() {
		return b.Modulus() * e
	}
	return math.Copysign(s, e)
}

// Fibre is the strain and stress at distance Y from the mid plane.
type Fibre struct {
	Y      float64
	Strain float64
	Stress float64
}

// Section samples n fibres through the thickness at radius rho.
func (b Bending) Section(rho float64, n int) ([]Fibre, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !(rho > 0) {
		return nil, errs.Domainf("bending", "radius of curvature must be positive, got %v", rho)
	}
	ys := sweep.Linspace(-b.Thickness/2, b.Thickness/2, n)
	out := make([]Fibre, len(ys))
	for i, y := range ys {
		out[i] = Fibre{Y: y, Strain: b.Strain(y, rho), Stress: b.Stress(y, rho)}
	}
	return out, nil
}

// MomentCurvature evaluates the moment at every curvature 1/ρ. A zero
// curvature gives a zero moment.
func (b Bending) MomentCurvature(ctx context.Context, curvatures []float64) ([]float64, error) {
	return sweep.Map(ctx, curvatures, func(k float64) (float64, error) {
		if k == 0 {
			return 0, nil
		}
		return b.Moment(1 / k)
	}, 0)
}
