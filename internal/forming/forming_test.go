package forming

import (
	"context"
	"math"
	"testing"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/hardening"
	"github.com/alexiusacademia/gosheet/internal/yield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTube() Tube {
	return Tube{Yield: 250, Diameter: 80, Thickness: 2, Force: 8000, Torque: 2700}
}

func TestTubePressure(t *testing.T) {
	tb := exampleTube()
	res, err := TubePressure(tb, Options{Tolerance: 1e-12})
	require.NoError(t, err)
	assert.Greater(t, res.Pressure, 0.0)

	// Re-substitute the solved pressure.
	assert.InDelta(t, 250, yield.MisesTensor(tb.Stress(res.Pressure)), 1e-9)
	assert.InDelta(t, 250, res.Effective, 1e-9)

	// Closed form: Mises² = 3a²p² + b² + 3τ² with a = D/4t, b = F/(πDt).
	a := tb.Diameter / (4 * tb.Thickness)
	b := tb.Force / (math.Pi * tb.Diameter * tb.Thickness)
	tau := tb.Shear()
	want := math.Sqrt((250*250-b*b-3*tau*tau)/3) / a
	assert.InDelta(t, want, res.Pressure, 1e-9)
	assert.InDelta(t, 5.211, res.Pressure, 1e-3)

	// Principal values match the tensor and are sorted.
	assert.GreaterOrEqual(t, res.Principal.S1, res.Principal.S2)
	assert.GreaterOrEqual(t, res.Principal.S2, res.Principal.S3)
	assert.InDelta(t, res.Stress.Y+res.Stress.Z, res.Principal.S1+res.Principal.S2+res.Principal.S3, 1e-9)
}

func TestTubePressureTresca(t *testing.T) {
	tb := exampleTube()
	tb.Torque = 1000
	tb.Criterion = yield.Tresca{}
	res, err := TubePressure(tb, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 250, res.Effective, 1e-8)

	mises, err := TubePressure(Tube{Yield: 250, Diameter: 80, Thickness: 2, Force: 8000, Torque: 1000}, Options{})
	require.NoError(t, err)
	assert.Less(t, res.Pressure, mises.Pressure, "Tresca is the more conservative criterion")
}

func TestTubePressureOrthotropic(t *testing.T) {
	tb := exampleTube()
	tb.Torque = 0
	mises, err := TubePressure(tb, Options{Tolerance: 1e-12})
	require.NoError(t, err)

	// Isotropic Hill and quadratic Hosford coincide with von Mises.
	for _, c := range []yield.Criterion{yield.Hill{R0: 1, R90: 1}, yield.Hosford{R0: 1, R90: 1, A: 2}} {
		tb.Criterion = c
		res, err := TubePressure(tb, Options{Tolerance: 1e-12})
		require.NoError(t, err, c.Name())
		assert.InDelta(t, mises.Pressure, res.Pressure, 1e-8, c.Name())
		assert.InDelta(t, 250, res.Effective, 1e-8, c.Name())
	}

	tb.Criterion = yield.Hill{R0: 1.8, R90: 2.2}
	res, err := TubePressure(tb, Options{Tolerance: 1e-12})
	require.NoError(t, err)
	eff, err := yield.Effective(tb.Criterion, tb.Wall(res.Pressure))
	require.NoError(t, err)
	assert.InDelta(t, 250, eff, 1e-8)

	// Shear leaves the orthotropy axes non-principal.
	tb.Torque = 1000
	_, err = TubePressure(tb, Options{})
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
}

func TestTubeAlreadyYielding(t *testing.T) {
	tb := exampleTube()
	tb.Torque = 5000
	_, err := TubePressure(tb, Options{})
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
}

func TestTubeBudget(t *testing.T) {
	_, err := TubePressure(exampleTube(), Options{MaxIterations: 1, Tolerance: 1e-14})
	require.Error(t, err)
	assert.True(t, errs.IsNonConvergence(err))
}

func exampleStretch() Stretch {
	return Stretch{
		Radius:      1100,
		ToolLength:  3000,
		ClampLength: 300,
		Friction:    0.1,
		Thickness:   1.2,
		Angle:       38,
		Material:    hardening.Hollomon{K: 810, N: 0.24},
	}
}

func TestStretchStrains(t *testing.T) {
	s := exampleStretch()
	res, err := StretchStrains(s, Options{Tolerance: 1e-12})
	require.NoError(t, err)

	g := res.Geometry
	assert.InDelta(t, 876.0, g.Stroke, 0.1)
	assert.InDelta(t, 729.5, g.ArcLength, 0.1)
	assert.InDelta(t, 744.1, g.SpanLength, 0.1)
	assert.InDelta(t, 0.2054, g.AverageStrain, 1e-4)

	assert.InDelta(t, 0.1028, res.PoleStrain, 1e-4)
	assert.InDelta(t, 0.2392, res.SpanStrain, 1e-4)
	assert.False(t, res.ExceedsLimit)

	// Both equations hold at the solution.
	mean := ((res.PoleStrain+res.SpanStrain)/2*g.ArcLength + res.SpanStrain*g.SpanLength) / (g.ArcLength + g.SpanLength)
	assert.InDelta(t, g.AverageStrain, mean, 1e-10)
	assert.InDelta(t, math.Exp(0.1*38*math.Pi/180), res.SpanTension/res.PoleTension, 1e-9)

	assert.InDelta(t, res.PoleTension/s.Radius, res.PunchPressure, 1e-12)
	assert.InDelta(t, 2*res.SpanTension*math.Sin(38*math.Pi/180), res.PunchForce, 1e-9)
}

func TestStretchWithoutFriction(t *testing.T) {
	s := exampleStretch()
	s.Friction = 0
	res, err := StretchStrains(s, Options{})
	require.NoError(t, err)
	assert.InDelta(t, res.PoleStrain, res.SpanStrain, 1e-12)
	assert.InDelta(t, res.Geometry.AverageStrain, res.PoleStrain, 1e-12)
	assert.InDelta(t, res.PoleTension, res.SpanTension, 1e-9)
}

func TestStretchFlat(t *testing.T) {
	s := exampleStretch()
	s.Angle = 0
	res, err := StretchStrains(s, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.PoleStrain)
	assert.Zero(t, res.SpanStrain)
	assert.Zero(t, res.PunchForce)
	assert.InDelta(t, s.Thickness, res.PoleThickness, 0)
}

func TestStretchInvalidSetup(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Stretch)
	}{
		{"angle past vertical", func(s *Stretch) { s.Angle = 95 }},
		{"clamps meet", func(s *Stretch) { s.ClampLength = 1500 }},
		{"negative friction", func(s *Stretch) { s.Friction = -0.1 }},
		{"no hardening", func(s *Stretch) { s.Material.N = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := exampleStretch()
			tt.modify(&s)
			_, err := StretchStrains(s, Options{})
			require.Error(t, err)
			assert.True(t, errs.IsDomain(err))
		})
	}
}

func TestStretchAverageStrainGrowsWithAngle(t *testing.T) {
	prev := 0.0
	for _, angle := range []float64{5, 15, 25, 35} {
		s := exampleStretch()
		s.Angle = angle
		g := s.Geometry()
		assert.Greater(t, g.AverageStrain, prev)
		prev = g.AverageStrain
	}
}

func exampleStamping() Stamping {
	return Stamping{
		Geometry: StampingGeometry{
			HalfWidth:    330,
			FaceRadius:   2800,
			PunchRadius:  10,
			DieRadius:    10,
			WallLength:   28,
			LandLength:   0,
			FlangeLength: 80,
			Friction:     0.1,
		},
		Law:        hardening.Hollomon{K: 750, N: 0.23},
		Thickness:  0.8,
		PoleStrain: 0.03,
	}
}

func TestStamp(t *testing.T) {
	s := exampleStamping()
	res, err := Stamp(s)
	require.NoError(t, err)

	nodes := res.Path.Nodes()
	require.Len(t, nodes, 7)
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"O", "A", "B", "C", "D", "E", "F"}, names)

	tO := 750 * math.Pow(0.03, 0.23) * 0.8 * math.Exp(-0.03)
	assert.InDelta(t, tO, nodes[0].Tension, 1e-9)
	assert.InDelta(t, 0.03, nodes[0].Strain, 1e-8)

	face := math.Asin(320.0 / 2800)
	assert.InDelta(t, tO*math.Exp(0.1*face), nodes[1].Tension, 1e-9)
	assert.InDelta(t, tO*math.Exp(0.1*math.Pi/2), nodes[2].Tension, 1e-9)
	assert.InDelta(t, nodes[2].Tension, nodes[3].Tension, 0)
	assert.InDelta(t, nodes[3].Tension*math.Exp(-0.1*math.Pi/2), nodes[4].Tension, 1e-9)
	assert.InDelta(t, nodes[4].Tension, nodes[5].Tension, 0)
	assert.Zero(t, nodes[6].Tension)
	assert.Zero(t, nodes[6].Strain)

	// Strain peaks where tension peaks.
	assert.Equal(t, "B", res.Path.MaxStrain().Name)

	assert.InDelta(t, 2*nodes[2].Tension, res.PunchForce, 1e-9)
	assert.InDelta(t, nodes[5].Tension/0.2, res.HolderForce, 1e-9)

	// Positions accumulate segment lengths.
	assert.InDelta(t, 2800*face, nodes[1].Position, 1e-9)
	assert.InDelta(t, nodes[1].Position+10*(math.Pi/2-face), nodes[2].Position, 1e-9)
	assert.InDelta(t, nodes[5].Position+80, nodes[6].Position, 1e-9)
}

func TestPathContinuity(t *testing.T) {
	res, err := Stamp(exampleStamping())
	require.NoError(t, err)

	segs := res.Path.Segments
	for i := 1; i < len(segs); i++ {
		assert.Equal(t, segs[i-1].End, segs[i].Start, "boundary %s", segs[i].From)
	}
	for _, s := range segs {
		switch s.Kind {
		case Arc:
			assert.InDelta(t, s.Start.Tension/s.Radius, s.PressureStart, 1e-12)
			assert.InDelta(t, s.End.Tension/s.Radius, s.PressureEnd, 1e-12)
		case Straight:
			assert.Zero(t, s.PressureStart)
			assert.Zero(t, s.PressureEnd)
		case Flange:
			assert.InDelta(t, s.Start.Tension/(2*s.Friction*s.Length), s.PressureStart, 1e-12)
		}
	}
}

func TestProfile(t *testing.T) {
	res, err := Stamp(exampleStamping())
	require.NoError(t, err)

	prof, err := res.Path.Profile(10)
	require.NoError(t, err)
	require.NotEmpty(t, prof)
	for i := 1; i < len(prof); i++ {
		assert.GreaterOrEqual(t, prof[i].S, prof[i-1].S)
	}
	last := prof[len(prof)-1]
	assert.Zero(t, last.Tension)
}

func TestPathValidate(t *testing.T) {
	tests := []struct {
		name string
		path Path
	}{
		{"empty", nil},
		{"flange not last", Path{
			{From: "A", To: "B", Kind: Flange, Length: 10, Friction: 0.1},
			{From: "B", To: "C", Kind: Straight, Length: 10},
		}},
		{"flange without friction", Path{{From: "A", To: "B", Kind: Flange, Length: 10}}},
		{"arc without radius", Path{{From: "A", To: "B", Kind: Arc, Wrap: 1}}},
		{"negative friction", Path{{From: "A", To: "B", Kind: Arc, Radius: 5, Wrap: 1, Friction: -0.1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errs.IsDomain(tt.path.Validate()))
		})
	}
}

func TestPathOverload(t *testing.T) {
	law := hardening.Hollomon{K: 500, N: 0.2}
	peak, err := hardening.Tension(law, 1, 0.2)
	require.NoError(t, err)

	p := Path{{From: "A", To: "B", Kind: Arc, Radius: 20, Wrap: math.Pi / 2, Friction: 0.2}}
	_, err = p.Propagate(law, 1, peak*0.95)
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Contains(t, err.Error(), "point B")
}

func TestImperfectionLimit(t *testing.T) {
	law := hardening.Hollomon{K: 500, N: 0.22}
	im := Imperfection{Law: law, Thickness: 1, WidthA: 20, WidthB: 19.6}
	res, err := ImperfectionLimit(im)
	require.NoError(t, err)

	assert.InDelta(t, 0.22, res.StrainB, 1e-12)
	assert.Less(t, res.StrainA, res.StrainB)
	assert.Greater(t, res.StrainA, 0.0)
	fA, err := im.Force(im.WidthA, res.StrainA)
	require.NoError(t, err)
	assert.InDelta(t, res.Force, fA, 1e-5)

	// A larger imperfection lowers the limit strain.
	im.WidthB = 19
	worse, err := ImperfectionLimit(im)
	require.NoError(t, err)
	assert.Less(t, worse.StrainA, res.StrainA)

	im.WidthB = 21
	_, err = ImperfectionLimit(im)
	assert.True(t, errs.IsDomain(err))
}

func TestBending(t *testing.T) {
	b := Bending{Thickness: 1.2, E: 210e3, Nu: 0.3, Y: 100}
	require.NoError(t, b.Validate())

	assert.InDelta(t, 210e3/0.91, b.Modulus(), 1e-6)
	assert.InDelta(t, 200/math.Sqrt(3), b.FlowStress(), 1e-12)
	assert.InDelta(t, b.Modulus()*1.2/(2*b.FlowStress()), b.ElasticRadius(), 1e-9)
	assert.InDelta(t, b.FlowStress()*1.44/6, b.ElasticMoment(), 1e-12)
	assert.InDelta(t, 1.5*b.ElasticMoment(), b.PlasticMoment(), 1e-12)

	// Continuous at the elastic limit.
	re := b.ElasticRadius()
	below, err := b.Moment(re * (1 - 1e-9))
	require.NoError(t, err)
	above, err := b.Moment(re * (1 + 1e-9))
	require.NoError(t, err)
	assert.InDelta(t, b.ElasticMoment(), below, 1e-6)
	assert.InDelta(t, b.ElasticMoment(), above, 1e-6)

	// Tends to the plastic moment at small radii.
	tight, err := b.Moment(re / 1e4)
	require.NoError(t, err)
	assert.InDelta(t, b.PlasticMoment(), tight, 1e-6)

	_, err = b.Moment(0)
	assert.True(t, errs.IsDomain(err))
}

func TestBendingSection(t *testing.T) {
	b := Bending{Thickness: 1.2, E: 210e3, Nu: 0.3, Y: 100}
	fibres, err := b.Section(b.ElasticRadius()/2, 25)
	require.NoError(t, err)
	require.Len(t, fibres, 25)

	assert.InDelta(t, -b.FlowStress(), fibres[0].Stress, 1e-12)
	assert.InDelta(t, b.FlowStress(), fibres[24].Stress, 1e-12)
	assert.InDelta(t, 0, fibres[12].Stress, 1e-9)
	for _, f := range fibres {
		assert.LessOrEqual(t, math.Abs(f.Stress), b.FlowStress()+1e-12)
	}
}

func TestMomentCurvature(t *testing.T) {
	b := Bending{Thickness: 1.2, E: 210e3, Nu: 0.3, Y: 100}
	ks := []float64{0, 0.001, 0.01, 0.0495, 0.2}
	ms, err := b.MomentCurvature(context.Background(), ks)
	require.NoError(t, err)
	require.Len(t, ms, len(ks))
	assert.Zero(t, ms[0])
	for i := 1; i < len(ms); i++ {
		assert.Greater(t, ms[i], ms[i-1])
	}
}
