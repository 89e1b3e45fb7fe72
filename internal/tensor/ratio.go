package tensor

import "github.com/alexiusacademia/gosheet/internal/errs"

// StressRatio returns α = σ2/σ1 for a plane-stress path.
func StressRatio(s1, s2 float64) (float64, error) {
	if s1 == 0 {
		return 0, errs.Domainf("stress ratio", "major stress is zero")
	}
	return s2 / s1, nil
}

// StrainRatio returns β = ε2/ε1 for a proportional strain path.
func StrainRatio(e1, e2 float64) (float64, error) {
	if e1 == 0 {
		return 0, errs.Domainf("strain ratio", "major strain is zero")
	}
	return e2 / e1, nil
}

// StrainOnPath returns the strain pair (ε1, β·ε1).
func StrainOnPath(e1, beta float64) Strain {
	return Strain{E1: e1, E2: beta * e1}
}
