package forming

import (
	"fmt"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/hardening"
)

// Imperfection is a strip made of a sound zone A and a narrower zone B in
// series, both of initial thickness Thickness. The same force passes through
// both zones.
type Imperfection struct {
	Law       hardening.Law
	Thickness float64
	WidthA    float64
	WidthB    float64
}

// ImperfectionResult is the state of the strip when zone B necks.
type ImperfectionResult struct {
	// Factor is the width ratio wB/wA.
	Factor  float64
	StrainA float64
	StrainB float64
	Force   float64
}

// Force returns the strip force w·t0·σ(ε)·e^(−ε) carried by a zone of
// width w at strain eps.
func (im Imperfection) Force(width, eps float64) (float64, error) {
	t, err := hardening.Tension(im.Law, im.Thickness, eps)
	if err != nil {
		return 0, err
	}
	return width * t, nil
}

// ImperfectionLimit returns the strain reached by the sound zone when the
// weaker zone B reaches its maximum force and necks. Zone A then stops
// deforming, so its strain is the limit strain of the strip.
func ImperfectionLimit(im Imperfection) (ImperfectionResult, error) {
	switch {
	case im.Law == nil:
		return ImperfectionResult{}, errs.Domainf("imperfection", "missing hardening law")
	case !(im.WidthA > 0) || !(im.WidthB > 0):
		return ImperfectionResult{}, errs.Domainf("imperfection", "zone widths must be positive")
	case !(im.WidthB < im.WidthA):
		return ImperfectionResult{}, errs.Domainf("imperfection", "zone B (%.4g) must be narrower than zone A (%.4g)", im.WidthB, im.WidthA)
	}

	eB, err := hardening.MaxTensionStrain(im.Law)
	if err != nil {
		return ImperfectionResult{}, err
	}
	force, err := im.Force(im.WidthB, eB)
	if err != nil {
		return ImperfectionResult{}, err
	}
	eA, err := strainForTension(im.Law, im.Thickness, force/im.WidthA)
	if err != nil {
		return ImperfectionResult{}, fmt.Errorf("imperfection: %w", err)
	}
	return ImperfectionResult{
		Factor:  im.WidthB / im.WidthA,
		StrainA: eA,
		StrainB: eB,
		Force:   force,
	}, nil
}
