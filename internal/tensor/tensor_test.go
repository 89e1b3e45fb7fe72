package tensor

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomStress(rng *rand.Rand) Stress {
	c := func() float64 { return rng.Float64()*800 - 400 }
	return Stress{X: c(), Y: c(), Z: c(), XY: c(), XZ: c(), YZ: c()}
}

func TestInvariantsKnownTensor(t *testing.T) {
	s := Stress{X: 10, Y: 20, Z: 30, XY: 5, XZ: -4, YZ: 2}
	inv := s.Invariants()

	assert.Equal(t, 60.0, inv.I1)
	assert.Equal(t, 10.0*20+20*30+30*10-25-16-4, inv.I2)
	det := 10.0*(20*30-2*2) - 5*(5*30-2*(-4)) + (-4)*(5*2-20*(-4))
	assert.InDelta(t, det, inv.I3, 1e-9)
}

func TestPrincipalStressesDiagonalIsExact(t *testing.T) {
	tests := []struct {
		in   Stress
		want Principal
	}{
		{Diagonal(100, -50, 20), Principal{100, 20, -50}},
		{Diagonal(-1, -2, -3), Principal{-1, -2, -3}},
		{Diagonal(7, 7, 7), Principal{7, 7, 7}},
		{Diagonal(0, 0.1, 0), Principal{0.1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in.Components()), func(t *testing.T) {
			got, err := PrincipalStresses(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrincipalStressesWorkedExample(t *testing.T) {
	s := Stress{X: 0, Y: 180, Z: 75, XY: 134}
	p, err := PrincipalStresses(s)
	require.NoError(t, err)

	r := math.Sqrt(90*90 + 134*134)
	assert.InDelta(t, 90+r, p.S1, 1e-9)
	assert.InDelta(t, 75.0, p.S2, 1e-9)
	assert.InDelta(t, 90-r, p.S3, 1e-9)
}

func TestPrincipalStressesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		s := randomStress(rng)
		p, err := PrincipalStresses(s)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, p.S1, p.S2)
		assert.GreaterOrEqual(t, p.S2, p.S3)

		want := s.Invariants()
		got := p.Invariants()
		assert.InDelta(t, want.I1, got.I1, 1e-8)
		assert.InDelta(t, want.I2, got.I2, 1e-6*math.Max(1, math.Abs(want.I2)))
		assert.InDelta(t, want.I3, got.I3, 1e-6*math.Max(1, math.Abs(want.I3)))
	}
}

func TestPrincipalStressesRepeatedRoots(t *testing.T) {
	s := Stress{X: 2, Y: 2, Z: 3, XY: 1}
	p, err := PrincipalStresses(s)
	require.NoError(t, err)
	// The Lode cosine sits at ±1 here, where acos amplifies rounding.
	assert.InDelta(t, 3.0, p.S1, 1e-6)
	assert.InDelta(t, 3.0, p.S2, 1e-6)
	assert.InDelta(t, 1.0, p.S3, 1e-6)

	hydro := Stress{X: 50, Y: 50, Z: 50}
	p, err = PrincipalStresses(hydro)
	require.NoError(t, err)
	assert.Equal(t, Principal{50, 50, 50}, p)
}

func TestPrincipalStressesRejectsNonFinite(t *testing.T) {
	_, err := PrincipalStresses(Stress{X: math.NaN(), XY: 1})
	assert.True(t, errs.IsDomain(err))
}

func TestPrincipalFromInvariantsComplexRoots(t *testing.T) {
	// Invariants of a rotation-like matrix [[0,-1,0],[1,0,0],[0,0,1]]:
	// eigenvalues 1, ±i.
	_, err := PrincipalFromInvariants(Invariants{I1: 1, I2: 1, I3: 1})
	require.Error(t, err)
	assert.True(t, errs.IsNumerical(err))
}

func TestPrincipalFromInvariantsMatchesTensor(t *testing.T) {
	s := Stress{X: 120, Y: -40, Z: 15, XY: 60, XZ: 10, YZ: -25}
	direct, err := PrincipalStresses(s)
	require.NoError(t, err)
	viaInv, err := PrincipalFromInvariants(s.Invariants())
	require.NoError(t, err)

	assert.InDelta(t, direct.S1, viaInv.S1, 1e-8)
	assert.InDelta(t, direct.S2, viaInv.S2, 1e-8)
	assert.InDelta(t, direct.S3, viaInv.S3, 1e-8)
}

func TestPrincipalDirections(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		s := randomStress(rng)
		p, dirs, err := PrincipalDirections(s)
		require.NoError(t, err)

		cubic, err := PrincipalStresses(s)
		require.NoError(t, err)
		assert.InDelta(t, cubic.S1, p.S1, 1e-8)
		assert.InDelta(t, cubic.S2, p.S2, 1e-8)
		assert.InDelta(t, cubic.S3, p.S3, 1e-8)

		values := []float64{p.S1, p.S2, p.S3}
		m := s.Matrix()
		for k, v := range dirs {
			assert.InDelta(t, 1.0, v.Norm(), 1e-10)
			for j := k + 1; j < 3; j++ {
				assert.InDelta(t, 0.0, v.Dot(dirs[j]), 1e-10)
			}
			// A·v = λ·v
			for r := 0; r < 3; r++ {
				av := m.At(r, 0)*v[0] + m.At(r, 1)*v[1] + m.At(r, 2)*v[2]
				assert.InDelta(t, values[k]*v[r], av, 1e-7)
			}
		}
	}
}

func TestMohrCircles(t *testing.T) {
	p := Principal{300, 100, -100}
	c := p.MohrCircles()
	assert.Equal(t, Circle{Center: 200, Radius: 100}, c[0])
	assert.Equal(t, Circle{Center: 0, Radius: 100}, c[1])
	assert.Equal(t, Circle{Center: 100, Radius: 200}, c[2])
	assert.Equal(t, 400.0, p.Tresca())
	assert.Equal(t, 200.0, p.MaxShear())
}

func TestRatios(t *testing.T) {
	a, err := StressRatio(200, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.5, a)

	_, err = StressRatio(0, 100)
	assert.True(t, errs.IsDomain(err))

	_, err = Strain{E1: 0, E2: 0.1}.Ratio()
	assert.True(t, errs.IsDomain(err))

	e := StrainOnPath(0.2, -0.5)
	assert.InDelta(t, -0.1, e.E3(), 1e-15)
	assert.InDelta(t, 1.2*math.Exp(-0.1), e.Thickness(1.2), 1e-15)
}
