// Package tensor reduces a symmetric 3-D stress tensor to its invariants and
// principal stresses.
//
// The invariants follow the textbook convention: the principal stresses are
// the roots of
//
//	x³ − I1·x² + I2·x − I3 = 0
//
// with I2 = σxσy + σyσz + σzσx − τxy² − τxz² − τyz². The roots are found with
// the trigonometric (Lode angle) solution of the deviatoric cubic, which is
// exact for the three-real-roots case that every symmetric tensor falls in.
package tensor

import "math"

// Invariants returns I1, I2 and I3 of the tensor.
func (s Stress) Invariants() Invariants {
	return Invariants{
		I1: s.X + s.Y + s.Z,
		I2: s.X*s.Y + s.Y*s.Z + s.Z*s.X - s.XY*s.XY - s.XZ*s.XZ - s.YZ*s.YZ,
		I3: s.X*s.Y*s.Z + 2*s.XY*s.XZ*s.YZ - s.X*s.YZ*s.YZ - s.Y*s.XZ*s.XZ - s.Z*s.XY*s.XY,
	}
}

// Mean returns the hydrostatic stress I1/3.
func (s Stress) Mean() float64 {
	return (s.X + s.Y + s.Z) / 3
}

// Deviator returns the deviatoric part of the tensor.
func (s Stress) Deviator() Stress {
	m := s.Mean()
	return Stress{X: s.X - m, Y: s.Y - m, Z: s.Z - m, XY: s.XY, XZ: s.XZ, YZ: s.YZ}
}

// J2 returns the second deviatoric invariant, computed from component
// differences so that it is never negative.
func (s Stress) J2() float64 {
	dxy := s.X - s.Y
	dyz := s.Y - s.Z
	dzx := s.Z - s.X
	return (dxy*dxy+dyz*dyz+dzx*dzx)/6 + s.XY*s.XY + s.XZ*s.XZ + s.YZ*s.YZ
}

// J3 returns the third deviatoric invariant (determinant of the deviator).
func (s Stress) J3() float64 {
	return s.Deviator().Invariants().I3
}

// Invariants returns the invariants recomputed from the principal values.
func (p Principal) Invariants() Invariants {
	return Invariants{
		I1: p.S1 + p.S2 + p.S3,
		I2: p.S1*p.S2 + p.S2*p.S3 + p.S3*p.S1,
		I3: p.S1 * p.S2 * p.S3,
	}
}

// Deviatoric returns J2 and J3 expressed through I1, I2 and I3.
func (inv Invariants) Deviatoric() (j2, j3 float64) {
	j2 = inv.I1*inv.I1/3 - inv.I2
	j3 = 2*inv.I1*inv.I1*inv.I1/27 - inv.I1*inv.I2/3 + inv.I3
	return j2, j3
}

// magnitude is a stress scale for tolerances derived from the invariants.
func (inv Invariants) magnitude() float64 {
	return math.Max(math.Abs(inv.I1)/3, math.Max(math.Sqrt(math.Abs(inv.I2)), math.Cbrt(math.Abs(inv.I3))))
}
