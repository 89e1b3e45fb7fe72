// Package necking predicts forming-limit strains on proportional strain
// paths. Each Model maps a strain ratio β = ε2/ε1 to the limit strain pair.
package necking

import (
	"context"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/sweep"
	"github.com/alexiusacademia/gosheet/internal/tensor"
)

// Model is a forming-limit criterion.
type Model interface {
	Limit(beta float64) (tensor.Strain, error)
	Name() string
}

// SwiftDiffuse is Swift's diffuse necking criterion for a Hollomon material
// with hardening exponent N, valid for −1 < β ≤ 1.
type SwiftDiffuse struct {
	N float64
}

// HillLocalized is Hill's localized necking criterion, valid in the drawing
// regime −1 < β ≤ 0. Eps0 is an optional pre-strain.
type HillLocalized struct {
	N    float64
	Eps0 float64
}

// FractureLine is the fracture forming limit ε1 + ε2 = −ε3f of a sheet that
// fractures at thickness strain Eps3 (negative).
type FractureLine struct {
	Eps3 float64
}

func (SwiftDiffuse) Name() string  { return "swift" }
func (HillLocalized) Name() string { return "hill" }
func (FractureLine) Name() string  { return "fracture" }

// Limit returns the diffuse necking strains
//
//	ε1 = n·√3 / (2√(1+β+β²)) · 4(1−a+a²)^(3/2) / ((2−a)² + (2a−1)²·a)
//
// with a = (2β+1)/(2+β), the Mises stress ratio of the path.
func (m SwiftDiffuse) Limit(beta float64) (tensor.Strain, error) {
	if err := checkExponent("swift", m.N); err != nil {
		return tensor.Strain{}, err
	}
	if !(beta > -1 && beta <= 1) {
		return tensor.Strain{}, errs.Domainf("swift", "strain ratio β=%.4g outside (-1, 1]", beta)
	}

	a := (2*beta + 1) / (2 + beta)
	num := 4 * math.Pow(1-a+a*a, 1.5)
	den := (2-a)*(2-a) + (2*a-1)*(2*a-1)*a
	e1 := m.N * math.Sqrt(3) / (2 * math.Sqrt(1+beta+beta*beta)) * num / den
	return tensor.StrainOnPath(e1, beta), nil
}

// Limit returns the localized necking strains
//
//	ε1 = n/(1+β) − ε0·√3/2·√(1+β+β²)
func (m HillLocalized) Limit(beta float64) (tensor.Strain, error) {
	if err := checkExponent("hill", m.N); err != nil {
		return tensor.Strain{}, err
	}
	if m.Eps0 < 0 || math.IsNaN(m.Eps0) {
		return tensor.Strain{}, errs.Domainf("hill", "pre-strain must be non-negative, got %v", m.Eps0)
	}
	if !(beta > -1 && beta <= 0) {
		return tensor.Strain{}, errs.Domainf("hill", "localized necking needs -1 < β ≤ 0, got β=%.4g", beta)
	}

	e1 := m.N/(1+beta) - m.Eps0*math.Sqrt(3)/2*math.Sqrt(1+beta+beta*beta)
	return tensor.StrainOnPath(e1, beta), nil
}

// Limit returns ε1 = −ε3f/(1+β).
func (m FractureLine) Limit(beta float64) (tensor.Strain, error) {
	if !(m.Eps3 < 0) {
		return tensor.Strain{}, errs.Domainf("fracture", "fracture thickness strain must be negative, got %v", m.Eps3)
	}
	if !(beta > -1) || math.IsInf(beta, 0) {
		return tensor.Strain{}, errs.Domainf("fracture", "strain ratio β=%.4g must exceed -1", beta)
	}
	return tensor.StrainOnPath(-m.Eps3/(1+beta), beta), nil
}

func checkExponent(op string, n float64) error {
	if !(n > 0) || math.IsInf(n, 0) {
		return errs.Domainf(op, "hardening exponent must be positive, got %v", n)
	}
	return nil
}

// Curve evaluates m at every β concurrently, in order.
func Curve(ctx context.Context, m Model, betas []float64) ([]tensor.Strain, error) {
	return sweep.Map(ctx, betas, m.Limit, 0)
}
