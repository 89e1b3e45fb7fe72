package forming

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/hardening"
)

// Stretch is a sheet clamped at both ends and stretched over a punch of
// radius Radius. ToolLength is the distance between the clamps and
// ClampLength the unsupported length held at each clamp. Angle is the contact
// angle on the punch in degrees. Material is the uniaxial Hollomon law; the
// sheet deforms in plane strain.
type Stretch struct {
	Radius      float64
	ToolLength  float64
	ClampLength float64
	Friction    float64
	Thickness   float64
	Angle       float64
	Material    hardening.Hollomon
}

// StretchGeometry is the deformed shape of the half sheet: an arc OA on the
// punch followed by a free span AB.
type StretchGeometry struct {
	Stroke        float64
	ArcLength     float64
	SpanLength    float64
	AverageStrain float64
}

// StretchResult holds the solved strains at the pole O and in the span AB
// and the quantities derived from them.
type StretchResult struct {
	Geometry StretchGeometry

	PoleStrain    float64
	SpanStrain    float64
	PoleThickness float64
	SpanThickness float64
	PoleTension   float64
	SpanTension   float64
	PunchPressure float64
	PunchForce    float64
	ExceedsLimit  bool
	Iterations    int
}

// Validate checks the stretching setup.
func (s Stretch) Validate() error {
	switch {
	case !(s.Radius > 0):
		return errs.Domainf("stretch", "punch radius must be positive, got %v", s.Radius)
	case !(s.ToolLength > 0):
		return errs.Domainf("stretch", "tool length must be positive, got %v", s.ToolLength)
	case !(s.ClampLength >= 0) || s.ClampLength >= s.ToolLength/2:
		return errs.Domainf("stretch", "clamp length %v must be in [0, %v)", s.ClampLength, s.ToolLength/2)
	case !(s.Friction >= 0):
		return errs.Domainf("stretch", "friction must be non-negative, got %v", s.Friction)
	case !(s.Thickness > 0):
		return errs.Domainf("stretch", "thickness must be positive, got %v", s.Thickness)
	case !(s.Angle >= 0 && s.Angle < 90):
		return errs.Domainf("stretch", "contact angle must be in [0, 90) degrees, got %v", s.Angle)
	case !(s.Material.K > 0) || !(s.Material.N > 0):
		return errs.Domainf("stretch", "material needs K > 0 and n > 0")
	}
	return nil
}

// Geometry returns the deformed shape for the contact angle.
func (s Stretch) Geometry() StretchGeometry {
	th := s.Angle * math.Pi / 180
	sa, ca, ta := math.Sin(th), math.Cos(th), math.Tan(th)
	half := s.ToolLength / 2

	stroke := s.Radius*(1-ca) - ta*(s.Radius*sa-half)
	xA, yA := s.Radius*sa, stroke-s.Radius*(1-ca)
	xB, yB := half-s.ClampLength*ca, s.ClampLength*sa

	arc := s.Radius * th
	span := math.Hypot(xA-xB, yA-yB)
	return StretchGeometry{
		Stroke:        stroke,
		ArcLength:     arc,
		SpanLength:    span,
		AverageStrain: math.Log((arc + span) / (half - s.ClampLength)),
	}
}

// StretchStrains solves for the pole strain ε_O and the span strain ε_A.
// Two conditions hold at the solution: the length-weighted mean strain
// equals the strain imposed by the geometry, and the tension ratio across
// the arc follows the capstan law T_A/T_O = exp(μθ).
func StretchStrains(s Stretch, opts Options) (StretchResult, error) {
	if err := s.Validate(); err != nil {
		return StretchResult{}, err
	}
	g := s.Geometry()
	th := s.Angle * math.Pi / 180

	var eO, eA float64
	var iters int
	switch {
	case s.Angle == 0:
		// flat sheet
	case !(g.AverageStrain > 0):
		return StretchResult{}, errs.Domainf("stretch", "geometry gives non-positive average strain %.4g", g.AverageStrain)
	default:
		n, mu := s.Material.N, s.Friction
		total := g.ArcLength + g.SpanLength
		res, err := opts.system().SolveSystem(func(dst, x []float64) {
			dst[0] = g.AverageStrain - ((x[0]+x[1])/2*g.ArcLength+x[1]*g.SpanLength)/total
			// Capstan law in log form: n·ln(εA/εO) + εO − εA = μθ.
			dst[1] = n*math.Log(x[1]/x[0]) + x[0] - x[1] - mu*th
		}, []float64{g.AverageStrain, g.AverageStrain})
		if err != nil {
			return StretchResult{}, fmt.Errorf("stretch strains: %w", err)
		}
		eO, eA, iters = res.Root[0], res.Root[1], res.Iterations
		if !(eO > 0) || !(eA > 0) {
			return StretchResult{}, errs.Numericalf("stretch", "solve ended on non-positive strains (%.4g, %.4g)", eO, eA)
		}
	}

	law, err := hardening.PlaneStrain(s.Material)
	if err != nil {
		return StretchResult{}, err
	}
	tO, err := hardening.Tension(law, s.Thickness, eO)
	if err != nil {
		return StretchResult{}, err
	}
	tA, err := hardening.Tension(law, s.Thickness, eA)
	if err != nil {
		return StretchResult{}, err
	}

	return StretchResult{
		Geometry:      g,
		PoleStrain:    eO,
		SpanStrain:    eA,
		PoleThickness: s.Thickness * math.Exp(-eO),
		SpanThickness: s.Thickness * math.Exp(-eA),
		PoleTension:   tO,
		SpanTension:   tA,
		PunchPressure: tO / s.Radius,
		PunchForce:    2 * tA * math.Sin(th),
		ExceedsLimit:  eA > s.Material.N,
		Iterations:    iters,
	}, nil
}
