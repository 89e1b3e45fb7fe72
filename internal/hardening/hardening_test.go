package hardening

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHollomonRoundTrip(t *testing.T) {
	tests := []struct {
		k, n float64
	}{
		{500, 0.2},
		{750, 0.23},
		{810, 0.24},
		{1200, 0.05},
		{300, 0.5},
	}

	for _, tt := range tests {
		law := Hollomon{K: tt.k, N: tt.n}
		sigma, err := law.FlowStress(0.2)
		require.NoError(t, err)
		assert.InDelta(t, tt.k*math.Pow(0.2, tt.n), sigma, 1e-9)

		eps, err := law.Strain(sigma)
		require.NoError(t, err)
		assert.InDelta(t, 0.2, eps, 1e-12, "K=%v n=%v", tt.k, tt.n)
	}
}

func TestHollomonOrigin(t *testing.T) {
	for _, n := range []float64{0.1, 0.5, 1} {
		s, err := Hollomon{K: 500, N: n}.FlowStress(0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s)
	}
}

func TestHollomonDomain(t *testing.T) {
	_, err := Hollomon{K: 500, N: 0.2}.FlowStress(-0.01)
	assert.True(t, errs.IsDomain(err))

	_, err = Hollomon{K: 500, N: 0.2}.Strain(-10)
	assert.True(t, errs.IsDomain(err))

	_, err = Hollomon{K: 500, N: 0}.Strain(500)
	assert.True(t, errs.IsDomain(err), "n = 0 has no inverse")

	_, err = Hollomon{K: 0, N: 0.2}.FlowStress(0.1)
	assert.True(t, errs.IsDomain(err))

	_, err = Hollomon{K: 500, N: 0.2}.FlowStress(math.NaN())
	assert.True(t, errs.IsDomain(err))
}

func TestSwift(t *testing.T) {
	law := Swift{K: 600, N: 0.22, Eps0: 0.01}

	s, err := law.FlowStress(0)
	require.NoError(t, err)
	assert.InDelta(t, 600*math.Pow(0.01, 0.22), s, 1e-9)

	s, err = law.FlowStress(-0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	for _, e := range []float64{-0.005, 0, 0.1, 0.35} {
		s, err := law.FlowStress(e)
		require.NoError(t, err)
		back, err := law.Strain(s)
		require.NoError(t, err)
		assert.InDelta(t, e, back, 1e-12)
	}

	_, err = law.FlowStress(-0.02)
	assert.True(t, errs.IsDomain(err))
	_, err = Swift{K: 600, N: 0.22, Eps0: -0.01}.FlowStress(0.1)
	assert.True(t, errs.IsDomain(err))
}

func TestPlaneStrain(t *testing.T) {
	ps, err := PlaneStrain(Hollomon{K: 750, N: 0.23})
	require.NoError(t, err)
	assert.InDelta(t, 750*2/math.Sqrt(3), ps.(Hollomon).K, 1e-9)

	ps, err = PlaneStrain(Swift{K: 600, N: 0.2, Eps0: 0.01})
	require.NoError(t, err)
	assert.InDelta(t, 0.01, ps.(Swift).Eps0, 0)
}

func TestMaxTension(t *testing.T) {
	tests := []struct {
		name string
		law  Law
		want float64
	}{
		{"hollomon", Hollomon{K: 750, N: 0.23}, 0.23},
		{"swift", Swift{K: 750, N: 0.23, Eps0: 0.02}, 0.21},
		{"swift large prestrain", Swift{K: 750, N: 0.1, Eps0: 0.3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emax, err := MaxTensionStrain(tt.law)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, emax, 1e-12)

			peak, err := Tension(tt.law, 1, emax)
			require.NoError(t, err)
			for _, d := range []float64{-0.01, 0.01} {
				e := emax + d
				if e < 0 {
					continue
				}
				v, err := Tension(tt.law, 1, e)
				require.NoError(t, err)
				assert.Less(t, v, peak)
			}
		})
	}
}

func TestStrainForTension(t *testing.T) {
	law := Hollomon{K: 810 * 2 / math.Sqrt(3), N: 0.24}
	for _, e := range []float64{0.001, 0.02, 0.1, 0.2, 0.24} {
		tension, err := Tension(law, 1.2, e)
		require.NoError(t, err)
		got, err := StrainForTension(law, 1.2, tension)
		require.NoError(t, err)
		assert.InDelta(t, e, got, 1e-8, "eps=%v", e)
	}

	got, err := StrainForTension(law, 1.2, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	peak, err := Tension(law, 1.2, 0.24)
	require.NoError(t, err)
	_, err = StrainForTension(law, 1.2, peak*1.01)
	assert.True(t, errs.IsDomain(err))
}

// cappedLaw is a Hollomon law that refuses strains above Limit.
type cappedLaw struct {
	Hollomon
	Limit float64
}

func (c cappedLaw) FlowStress(eps float64) (float64, error) {
	if eps > c.Limit {
		return 0, errs.Domainf("capped", "strain %.4g above %.4g", eps, c.Limit)
	}
	return c.Hollomon.FlowStress(eps)
}

func TestBisectTensionReportsLawErrors(t *testing.T) {
	law := cappedLaw{Hollomon: Hollomon{K: 500, N: 0.2}, Limit: 0.1}
	tension, err := Tension(law.Hollomon, 1, 0.15)
	require.NoError(t, err)

	_, err = bisectTension(law, 1, tension, 0.2, 1e-10)
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Contains(t, err.Error(), "capped")

	got, err := bisectTension(law.Hollomon, 1, tension, 0.2, 1e-10)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, got, 1e-8)
}

func TestStrainForTensionBelowPrestrain(t *testing.T) {
	law := Swift{K: 600, N: 0.25, Eps0: 0.05}
	t0, err := Tension(law, 1, 0)
	require.NoError(t, err)

	_, err = StrainForTension(law, 1, t0/2)
	assert.True(t, errs.IsDomain(err))

	got, err := StrainForTension(law, 1, t0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}
