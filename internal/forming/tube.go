package forming

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/tensor"
	"github.com/alexiusacademia/gosheet/internal/yield"
)

// Tube is a thin-wall tube under internal pressure, axial force and torque.
// Lengths are in mm, Force in N, Torque in N·m and Yield in MPa.
type Tube struct {
	Yield     float64
	Diameter  float64
	Thickness float64
	Force     float64
	Torque    float64

	// Criterion defaults to von Mises.
	Criterion yield.Criterion
}

// TubeResult is the stress state of the tube at first yield.
type TubeResult struct {
	Pressure   float64
	Stress     tensor.Stress
	Principal  tensor.Principal
	Directions [3]tensor.Vector
	Effective  float64
	Iterations int
}

// Hoop returns the circumferential stress pD/2t.
func (tb Tube) Hoop(p float64) float64 {
	return p * tb.Diameter / (2 * tb.Thickness)
}

// Axial returns the axial stress pD/4t + F/(πDt).
func (tb Tube) Axial(p float64) float64 {
	return p*tb.Diameter/(4*tb.Thickness) + tb.Force/(math.Pi*tb.Diameter*tb.Thickness)
}

// Shear returns the torsional shear stress 2T/(πD²t), with T converted to N·mm.
func (tb Tube) Shear() float64 {
	return 2 * tb.Torque / (math.Pi * tb.Diameter * tb.Diameter * tb.Thickness) * 1000
}

// Stress returns the wall stress tensor at pressure p in radial (x), hoop
// (y) and axial (z) axes. The radial stress is neglected.
func (tb Tube) Stress(p float64) tensor.Stress {
	return tensor.Stress{X: 0, Y: tb.Hoop(p), Z: tb.Axial(p), YZ: tb.Shear()}
}

// Wall returns the plane stress state of the tube wall at pressure p with x
// along the tube axis (the rolling direction) and y around the hoop. It is
// the state the yield criterion sees; orthotropic criteria need Torque = 0 so
// that these axes are principal.
func (tb Tube) Wall(p float64) tensor.Stress {
	return tensor.Plane(tb.Axial(p), tb.Hoop(p), tb.Shear())
}

func (tb Tube) criterion() yield.Criterion {
	if tb.Criterion == nil {
		return yield.Mises{}
	}
	return tb.Criterion
}

// Validate checks the tube geometry and loads.
func (tb Tube) Validate() error {
	switch {
	case !(tb.Yield > 0):
		return errs.Domainf("tube", "yield stress must be positive, got %v", tb.Yield)
	case !(tb.Diameter > 0):
		return errs.Domainf("tube", "diameter must be positive, got %v", tb.Diameter)
	case !(tb.Thickness > 0) || tb.Thickness >= tb.Diameter/2:
		return errs.Domainf("tube", "wall thickness %v invalid for diameter %v", tb.Thickness, tb.Diameter)
	case math.IsNaN(tb.Force) || math.IsInf(tb.Force, 0):
		return errs.Domainf("tube", "non-finite axial force")
	case math.IsNaN(tb.Torque) || math.IsInf(tb.Torque, 0):
		return errs.Domainf("tube", "non-finite torque")
	}
	return nil
}

// TubePressure finds the internal pressure at which the effective stress of
// the tube wall reaches the yield stress. The solve starts from 10 MPa.
func TubePressure(tb Tube, opts Options) (TubeResult, error) {
	if err := tb.Validate(); err != nil {
		return TubeResult{}, err
	}
	c := tb.criterion()

	eff0, err := yield.Effective(c, tb.Wall(0))
	if err != nil {
		return TubeResult{}, err
	}
	if eff0 >= tb.Yield {
		return TubeResult{}, errs.Domainf("tube", "wall already yields without pressure (%s stress %.4g >= %.4g)", c.Name(), eff0, tb.Yield)
	}

	var evalErr error
	res, err := opts.newton().Solve(func(p float64) float64 {
		eff, err := yield.Effective(c, tb.Wall(p))
		if err != nil {
			evalErr = err
			return math.NaN()
		}
		return eff - tb.Yield
	}, 10)
	if evalErr != nil {
		return TubeResult{}, evalErr
	}
	if err != nil {
		return TubeResult{}, fmt.Errorf("tube pressure: %w", err)
	}
	if res.Root <= 0 {
		return TubeResult{}, errs.Numericalf("tube", "solve ended on the non-physical root p=%.6g", res.Root)
	}

	s := tb.Stress(res.Root)
	pr, dirs, err := tensor.PrincipalDirections(s)
	if err != nil {
		return TubeResult{}, err
	}
	eff, err := yield.Effective(c, tb.Wall(res.Root))
	if err != nil {
		return TubeResult{}, err
	}
	return TubeResult{
		Pressure:   res.Root,
		Stress:     s,
		Principal:  pr,
		Directions: dirs,
		Effective:  eff,
		Iterations: res.Iterations,
	}, nil
}
