package tensor

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"gonum.org/v1/gonum/mat"
)

const (
	// hydrostaticTol is the J2 level, relative to the squared stress scale,
	// below which the three roots are taken as equal.
	hydrostaticTol = 1e-24

	// complexTol bounds how far the Lode-angle cosine or a negative J2 may
	// stray before the roots are considered complex.
	complexTol = 1e-9
)

// PrincipalStresses returns the three principal stresses of s, sorted
// descending. A diagonal tensor returns its diagonal entries unchanged.
func PrincipalStresses(s Stress) (Principal, error) {
	if !s.finite() {
		return Principal{}, errs.Domainf("principal stresses", "non-finite tensor component in %v", s.Components())
	}
	if s.IsDiagonal() {
		return sorted(s.X, s.Y, s.Z), nil
	}
	scale := s.magnitude()
	return cubicRoots(s.Mean(), s.J2(), s.J3(), scale)
}

// PrincipalFromInvariants solves the characteristic cubic for a given set of
// invariants. Invariants that do not belong to a symmetric tensor produce
// complex roots, which are reported as a NumericalError.
func PrincipalFromInvariants(inv Invariants) (Principal, error) {
	for _, v := range []float64{inv.I1, inv.I2, inv.I3} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Principal{}, errs.Domainf("principal stresses", "non-finite invariant %v", inv)
		}
	}
	j2, j3 := inv.Deviatoric()
	return cubicRoots(inv.I1/3, j2, j3, inv.magnitude())
}

// cubicRoots solves s³ − J2·s − J3 = 0 for the deviatoric principal values
// and shifts them by the mean stress.
func cubicRoots(mean, j2, j3, scale float64) (Principal, error) {
	scale2 := scale * scale
	if j2 < -complexTol*scale2 {
		return Principal{}, errs.Numericalf("principal stresses", "negative J2 = %.6g: complex roots", j2)
	}
	if j2 <= hydrostaticTol*scale2 {
		return Principal{S1: mean, S2: mean, S3: mean}, nil
	}

	r := math.Sqrt(j2 / 3)
	arg := j3 / (2 * r * r * r)
	if math.Abs(arg) > 1+complexTol {
		return Principal{}, errs.Numericalf("principal stresses", "Lode cosine %.12g outside [-1, 1]: complex roots", arg)
	}
	arg = math.Max(-1, math.Min(1, arg))

	theta := math.Acos(arg) / 3
	return sorted(
		mean+2*r*math.Cos(theta),
		mean+2*r*math.Cos(theta-2*math.Pi/3),
		mean+2*r*math.Cos(theta+2*math.Pi/3),
	), nil
}

func sorted(a, b, c float64) Principal {
	v := []float64{a, b, c}
	sort.Sort(sort.Reverse(sort.Float64Slice(v)))
	return Principal{S1: v[0], S2: v[1], S3: v[2]}
}

// PrincipalDirections returns the principal stresses together with the unit
// eigenvectors, in the same order as the stresses. When two or three
// principal stresses coincide the eigenbasis of the repeated subspace is not
// unique; any orthonormal basis returned by the decomposition is valid.
func PrincipalDirections(s Stress) (Principal, [3]Vector, error) {
	var dirs [3]Vector
	if !s.finite() {
		return Principal{}, dirs, errs.Domainf("principal directions", "non-finite tensor component in %v", s.Components())
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(s.Matrix(), true); !ok {
		return Principal{}, dirs, errs.Numericalf("principal directions", "eigen-decomposition failed")
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum returns ascending eigenvalues.
	for i := 0; i < 3; i++ {
		j := 2 - i
		dirs[i] = Vector{vectors.At(0, j), vectors.At(1, j), vectors.At(2, j)}
	}
	return Principal{S1: values[2], S2: values[1], S3: values[0]}, dirs, nil
}

// Tresca returns the Tresca equivalent stress S1 − S3.
func (p Principal) Tresca() float64 {
	return p.S1 - p.S3
}

// MaxShear returns the maximum shear stress (S1 − S3)/2.
func (p Principal) MaxShear() float64 {
	return (p.S1 - p.S3) / 2
}

// Circle is a Mohr circle in the (σ, τ) plane.
type Circle struct {
	Center float64
	Radius float64
}

// MohrCircles returns the three Mohr circles spanned by the pairs
// (S1, S2), (S2, S3) and (S1, S3).
func (p Principal) MohrCircles() [3]Circle {
	return [3]Circle{
		{Center: (p.S1 + p.S2) / 2, Radius: (p.S1 - p.S2) / 2},
		{Center: (p.S2 + p.S3) / 2, Radius: (p.S2 - p.S3) / 2},
		{Center: (p.S1 + p.S3) / 2, Radius: (p.S1 - p.S3) / 2},
	}
}
