// Package hardening implements the work-hardening laws that map effective
// plastic strain to flow stress, with their inverses.
package hardening

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
)

// Law is a flow-stress relation σ(ε) for a work-hardening material.
type Law interface {
	FlowStress(eps float64) (float64, error)
	Strain(sigma float64) (float64, error)
	Name() string
}

// Hollomon is the power law σ = K·ε^n.
type Hollomon struct {
	K float64
	N float64
}

// Swift is the pre-strained power law σ = K·(ε0 + ε)^n.
type Swift struct {
	K    float64
	N    float64
	Eps0 float64
}

func (Hollomon) Name() string { return "hollomon" }
func (Swift) Name() string    { return "swift" }

func (h Hollomon) String() string {
	return fmt.Sprintf("σ = %.4g·ε^%.4g", h.K, h.N)
}

func (s Swift) String() string {
	return fmt.Sprintf("σ = %.4g·(%.4g + ε)^%.4g", s.K, s.Eps0, s.N)
}

// FlowStress returns K·ε^n. The origin returns 0 for every n.
func (h Hollomon) FlowStress(eps float64) (float64, error) {
	if err := validate("hollomon", h.K, h.N, 0); err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(eps) || math.IsInf(eps, 0):
		return 0, errs.Domainf("hollomon", "non-finite strain")
	case eps < 0:
		return 0, errs.Domainf("hollomon", "negative strain %.4g", eps)
	case eps == 0:
		return 0, nil
	}
	return h.K * math.Pow(eps, h.N), nil
}

// Strain returns (σ/K)^(1/n).
func (h Hollomon) Strain(sigma float64) (float64, error) {
	if err := validate("hollomon", h.K, h.N, 0); err != nil {
		return 0, err
	}
	return inverse("hollomon", h.K, h.N, sigma)
}

// FlowStress returns K·(ε0 + ε)^n for ε ≥ −ε0.
func (s Swift) FlowStress(eps float64) (float64, error) {
	if err := validate("swift", s.K, s.N, s.Eps0); err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(eps) || math.IsInf(eps, 0):
		return 0, errs.Domainf("swift", "non-finite strain")
	case eps < -s.Eps0:
		return 0, errs.Domainf("swift", "strain %.4g below -ε0 = %.4g", eps, -s.Eps0)
	case eps == -s.Eps0:
		return 0, nil
	}
	return s.K * math.Pow(s.Eps0+eps, s.N), nil
}

// Strain returns (σ/K)^(1/n) − ε0.
func (s Swift) Strain(sigma float64) (float64, error) {
	if err := validate("swift", s.K, s.N, s.Eps0); err != nil {
		return 0, err
	}
	e, err := inverse("swift", s.K, s.N, sigma)
	if err != nil {
		return 0, err
	}
	return e - s.Eps0, nil
}

func inverse(op string, k, n, sigma float64) (float64, error) {
	switch {
	case math.IsNaN(sigma) || math.IsInf(sigma, 0):
		return 0, errs.Domainf(op, "non-finite stress")
	case sigma < 0:
		return 0, errs.Domainf(op, "negative flow stress %.4g", sigma)
	case n == 0:
		return 0, errs.Domainf(op, "n = 0 has no inverse")
	case sigma == 0:
		return 0, nil
	}
	return math.Pow(sigma/k, 1/n), nil
}

func validate(op string, k, n, eps0 float64) error {
	switch {
	case !(k > 0) || math.IsInf(k, 0):
		return errs.Domainf(op, "strength coefficient K must be positive, got %v", k)
	case !(n >= 0) || math.IsInf(n, 0):
		return errs.Domainf(op, "hardening exponent n must be non-negative, got %v", n)
	case !(eps0 >= 0) || math.IsInf(eps0, 0):
		return errs.Domainf(op, "pre-strain ε0 must be non-negative, got %v", eps0)
	}
	return nil
}
