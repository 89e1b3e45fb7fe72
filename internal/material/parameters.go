// Package material holds sheet material parameters, a table of presets and
// the TOML case files that drive batch runs.
package material

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/hardening"
	"github.com/alexiusacademia/gosheet/internal/yield"
)

// Parameters describes a sheet material. Stresses are in MPa.
//
// A zero Eps0 selects the Hollomon law, a positive one the Swift law.
// Zero r-values default to 1 and a zero Hosford exponent defaults to 2.
type Parameters struct {
	Name        string `toml:"name"`
	Description string `toml:"description,omitempty"`

	// Preset names a built-in material whose values fill every zero field.
	Preset string `toml:"preset,omitempty"`

	Y    float64 `toml:"yield"` // initial yield stress
	K    float64 `toml:"k"`     // strength coefficient
	N    float64 `toml:"n"`     // strain-hardening exponent
	Eps0 float64 `toml:"eps0"`  // Swift prestrain

	R0  float64 `toml:"r0"`
	R45 float64 `toml:"r45"`
	R90 float64 `toml:"r90"`
	A   float64 `toml:"a"` // Hosford exponent

	E  float64 `toml:"e"`  // Young's modulus
	Nu float64 `toml:"nu"` // Poisson ratio
}

// Validate checks that every set value is physically meaningful.
func (p *Parameters) Validate() error {
	vals := []float64{p.Y, p.K, p.N, p.Eps0, p.R0, p.R45, p.R90, p.A, p.E, p.Nu}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{fmt.Sprintf("material %q has a non-finite value", p.Name)}
		}
	}
	if p.K <= 0 {
		return &ValidationError{"strength coefficient k must be positive"}
	}
	if p.N < 0 {
		return &ValidationError{"hardening exponent n must not be negative"}
	}
	if p.Eps0 < 0 {
		return &ValidationError{"prestrain eps0 must not be negative"}
	}
	if p.Y < 0 || p.E < 0 {
		return &ValidationError{"yield stress and modulus must not be negative"}
	}
	if p.R0 < 0 || p.R45 < 0 || p.R90 < 0 {
		return &ValidationError{"r-values must not be negative"}
	}
	if p.A != 0 && p.A < 1 {
		return &ValidationError{fmt.Sprintf("Hosford exponent must be at least 1, got %v", p.A)}
	}
	if p.Nu < 0 || p.Nu >= 0.5 {
		return &ValidationError{fmt.Sprintf("Poisson ratio must be in [0, 0.5), got %v", p.Nu)}
	}
	return nil
}

// Resolve fills the zero fields of p from its preset, if it names one.
func (p Parameters) Resolve() (Parameters, error) {
	if p.Preset == "" {
		return p, nil
	}
	base, err := Preset(p.Preset)
	if err != nil {
		return Parameters{}, err
	}
	return base.Merge(p), nil
}

// Merge returns p with every non-zero field of o applied on top.
func (p Parameters) Merge(o Parameters) Parameters {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	if o.Name != "" {
		p.Name = o.Name
	}
	if o.Description != "" {
		p.Description = o.Description
	}
	p.Preset = ""
	set(&p.Y, o.Y)
	set(&p.K, o.K)
	set(&p.N, o.N)
	set(&p.Eps0, o.Eps0)
	set(&p.R0, o.R0)
	set(&p.R45, o.R45)
	set(&p.R90, o.R90)
	set(&p.A, o.A)
	set(&p.E, o.E)
	set(&p.Nu, o.Nu)
	return p
}

// Hardening returns the Swift law when a prestrain is set, otherwise the
// Hollomon law.
func (p Parameters) Hardening() hardening.Law {
	if p.Eps0 > 0 {
		return hardening.Swift{K: p.K, N: p.N, Eps0: p.Eps0}
	}
	return hardening.Hollomon{K: p.K, N: p.N}
}

// Hollomon returns the Hollomon law, failing for a material with a prestrain.
func (p Parameters) Hollomon() (hardening.Hollomon, error) {
	if p.Eps0 > 0 {
		return hardening.Hollomon{}, &ValidationError{fmt.Sprintf("material %q uses the Swift law, a Hollomon law is required", p.Name)}
	}
	return hardening.Hollomon{K: p.K, N: p.N}, nil
}

// Anisotropy returns the r-values with defaults applied.
func (p Parameters) Anisotropy() yield.Anisotropy {
	return yield.Anisotropy{R0: orOne(p.R0), R45: orOne(p.R45), R90: orOne(p.R90)}
}

// Criterion builds the named yield criterion from the material's r-values.
func (p Parameters) Criterion(name string) (yield.Criterion, error) {
	an := p.Anisotropy()
	switch strings.ToLower(name) {
	case "", "mises":
		return yield.Mises{}, nil
	case "tresca":
		return yield.Tresca{}, nil
	case "hill":
		return yield.Hill{R0: an.R0, R90: an.R90}, nil
	case "hosford":
		a := p.A
		if a == 0 {
			a = 2
		}
		return yield.Hosford{R0: an.R0, R90: an.R90, A: a}, nil
	}
	return nil, &ValidationError{fmt.Sprintf("unknown yield criterion %q (want mises, tresca, hill or hosford)", name)}
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// ValidationError reports an invalid material or case definition. It
// matches errs.ErrDomain.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Is reports whether target is errs.ErrDomain.
func (e *ValidationError) Is(target error) bool { return target == errs.ErrDomain }
