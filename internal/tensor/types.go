package tensor

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Stress is a symmetric Cauchy stress tensor given by its six independent
// components (MPa). The off-diagonal pairs are equal by construction.
type Stress struct {
	X  float64 // σx
	Y  float64 // σy
	Z  float64 // σz
	XY float64 // τxy = τyx
	XZ float64 // τxz = τzx
	YZ float64 // τyz = τzy
}

// Invariants holds the three scalar invariants of a stress tensor, in the
// convention of the characteristic polynomial x³ − I1·x² + I2·x − I3 = 0.
type Invariants struct {
	I1 float64 // trace
	I2 float64 // sum of principal 2×2 minors
	I3 float64 // determinant
}

// Principal holds the principal stresses ordered S1 ≥ S2 ≥ S3.
type Principal struct {
	S1 float64
	S2 float64
	S3 float64
}

// Vector is a 3-component direction in the x, y, z frame of the tensor.
type Vector [3]float64

// Strain is an in-plane principal strain pair of a plastically incompressible
// sheet. The thickness strain is always derived as −(E1+E2).
type Strain struct {
	E1 float64 // major strain
	E2 float64 // minor strain
}

// Plane builds a plane-stress tensor (σz = τxz = τyz = 0).
func Plane(sx, sy, txy float64) Stress {
	return Stress{X: sx, Y: sy, XY: txy}
}

// Diagonal builds a tensor with no shear components.
func Diagonal(sx, sy, sz float64) Stress {
	return Stress{X: sx, Y: sy, Z: sz}
}

// Matrix returns the tensor as a gonum symmetric matrix.
func (s Stress) Matrix() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		s.X, s.XY, s.XZ,
		s.XY, s.Y, s.YZ,
		s.XZ, s.YZ, s.Z,
	})
}

// Components returns the six components in the order σx, σy, σz, τxy, τxz, τyz.
func (s Stress) Components() [6]float64 {
	return [6]float64{s.X, s.Y, s.Z, s.XY, s.XZ, s.YZ}
}

// IsPlane reports whether the tensor is a plane-stress state in the x-y plane.
func (s Stress) IsPlane() bool {
	return s.Z == 0 && s.XZ == 0 && s.YZ == 0
}

// IsDiagonal reports whether all shear components are zero.
func (s Stress) IsDiagonal() bool {
	return s.XY == 0 && s.XZ == 0 && s.YZ == 0
}

func (s Stress) finite() bool {
	for _, c := range s.Components() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// magnitude is the largest absolute component, used to scale tolerances.
func (s Stress) magnitude() float64 {
	m := 0.0
	for _, c := range s.Components() {
		m = math.Max(m, math.Abs(c))
	}
	return m
}

// E3 returns the thickness strain implied by incompressibility.
func (e Strain) E3() float64 {
	return -(e.E1 + e.E2)
}

// Thickness returns the current thickness of a sheet of initial thickness t0.
func (e Strain) Thickness(t0 float64) float64 {
	return t0 * math.Exp(e.E3())
}

// Ratio returns the strain ratio β = ε2/ε1.
func (e Strain) Ratio() (float64, error) {
	return StrainRatio(e.E1, e.E2)
}

// Dot returns the scalar product of two vectors.
func (v Vector) Dot(w Vector) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}
