package material

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/hardening"
	"github.com/alexiusacademia/gosheet/internal/necking"
	"github.com/alexiusacademia/gosheet/internal/sweep"
)

// Case is a batch of forming problems sharing one material, read from a
// TOML file. Lengths are in mm, forces in N and angles in degrees.
type Case struct {
	Name     string     `toml:"name"`
	Material Parameters `toml:"material"`

	Tube         []TubeCase         `toml:"tube"`
	Stretch      []StretchCase      `toml:"stretch"`
	Stamping     []StampingCase     `toml:"stamping"`
	Imperfection []ImperfectionCase `toml:"imperfection"`
	Bending      []BendingCase      `toml:"bending"`
	Necking      []NeckingCase      `toml:"necking"`
}

// TubeCase is a tube loaded to first yield.
type TubeCase struct {
	Name      string  `toml:"name"`
	Diameter  float64 `toml:"diameter"`
	Thickness float64 `toml:"thickness"`
	Force     float64 `toml:"force"`  // N
	Torque    float64 `toml:"torque"` // N·m
	Criterion string  `toml:"criterion,omitempty"`
}

// StretchCase is a sheet stretched over a punch.
type StretchCase struct {
	Name        string  `toml:"name"`
	Radius      float64 `toml:"radius"`
	ToolLength  float64 `toml:"tool_length"`
	ClampLength float64 `toml:"clamp_length"`
	Friction    float64 `toml:"friction"`
	Thickness   float64 `toml:"thickness"`
	Angle       float64 `toml:"angle"`
}

// StampingCase is a channel stamped to an imposed pole strain.
type StampingCase struct {
	Name         string  `toml:"name"`
	HalfWidth    float64 `toml:"half_width"`
	FaceRadius   float64 `toml:"face_radius"`
	PunchRadius  float64 `toml:"punch_radius"`
	DieRadius    float64 `toml:"die_radius"`
	WallLength   float64 `toml:"wall_length"`
	LandLength   float64 `toml:"land_length"`
	FlangeLength float64 `toml:"flange_length"`
	Friction     float64 `toml:"friction"`
	PunchWrap    float64 `toml:"punch_wrap,omitempty"` // degrees, 90 when unset
	Thickness    float64 `toml:"thickness"`
	PoleStrain   float64 `toml:"pole_strain"`
	PlaneStrain  bool    `toml:"plane_strain,omitempty"`
}

// ImperfectionCase is a strip with a narrower zone.
type ImperfectionCase struct {
	Name      string  `toml:"name"`
	Thickness float64 `toml:"thickness"`
	WidthA    float64 `toml:"width_a"`
	WidthB    float64 `toml:"width_b"`
}

// BendingCase evaluates the moment of a bent sheet at each radius.
type BendingCase struct {
	Name      string    `toml:"name"`
	Thickness float64   `toml:"thickness"`
	Radii     []float64 `toml:"radii"`
}

// NeckingCase samples a forming-limit model over a range of strain ratios.
type NeckingCase struct {
	Name   string  `toml:"name"`
	Model  string  `toml:"model"`
	From   float64 `toml:"from"`
	To     float64 `toml:"to"`
	Points int     `toml:"points"`
	Eps3   float64 `toml:"eps3,omitempty"` // fracture line only
}

// LoadCase reads and validates a case file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	c, err := ParseCase(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCase decodes a case from TOML text, resolves its material preset and
// validates it. Unknown keys are rejected.
func ParseCase(data []byte) (*Case, error) {
	var c Case
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, &ValidationError{fmt.Sprintf("unknown keys: %s", strings.Join(keys, ", "))}
	}

	c.Material, err = c.Material.Resolve()
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the material and that the case holds at least one problem.
func (c *Case) Validate() error {
	if err := c.Material.Validate(); err != nil {
		return err
	}
	if len(c.Tube)+len(c.Stretch)+len(c.Stamping)+len(c.Imperfection)+len(c.Bending)+len(c.Necking) == 0 {
		return &ValidationError{"case must define at least one problem"}
	}
	for i, n := range c.Necking {
		if n.Points < 2 {
			return &ValidationError{fmt.Sprintf("necking %d: need at least 2 points, got %d", i+1, n.Points)}
		}
	}
	return nil
}

// Tube builds the tube problem. The yield stress comes from the material.
func (tc TubeCase) Tube(p Parameters) (forming.Tube, error) {
	crit, err := p.Criterion(tc.Criterion)
	if err != nil {
		return forming.Tube{}, err
	}
	return forming.Tube{
		Yield:     p.Y,
		Diameter:  tc.Diameter,
		Thickness: tc.Thickness,
		Force:     tc.Force,
		Torque:    tc.Torque,
		Criterion: crit,
	}, nil
}

// Stretch builds the stretch-forming problem, which needs a Hollomon law.
func (sc StretchCase) Stretch(p Parameters) (forming.Stretch, error) {
	law, err := p.Hollomon()
	if err != nil {
		return forming.Stretch{}, err
	}
	return forming.Stretch{
		Radius:      sc.Radius,
		ToolLength:  sc.ToolLength,
		ClampLength: sc.ClampLength,
		Friction:    sc.Friction,
		Thickness:   sc.Thickness,
		Angle:       sc.Angle,
		Material:    law,
	}, nil
}

// Stamping builds the stamping problem, scaling the law to plane strain
// when asked.
func (sc StampingCase) Stamping(p Parameters) (forming.Stamping, error) {
	law := p.Hardening()
	if sc.PlaneStrain {
		var err error
		if law, err = hardening.PlaneStrain(law); err != nil {
			return forming.Stamping{}, err
		}
	}
	return forming.Stamping{
		Geometry: forming.StampingGeometry{
			HalfWidth:    sc.HalfWidth,
			FaceRadius:   sc.FaceRadius,
			PunchRadius:  sc.PunchRadius,
			DieRadius:    sc.DieRadius,
			WallLength:   sc.WallLength,
			LandLength:   sc.LandLength,
			FlangeLength: sc.FlangeLength,
			Friction:     sc.Friction,
			PunchWrap:    sc.PunchWrap * math.Pi / 180,
		},
		Law:        law,
		Thickness:  sc.Thickness,
		PoleStrain: sc.PoleStrain,
	}, nil
}

// Imperfection builds the two-zone strip.
func (ic ImperfectionCase) Imperfection(p Parameters) forming.Imperfection {
	return forming.Imperfection{
		Law:       p.Hardening(),
		Thickness: ic.Thickness,
		WidthA:    ic.WidthA,
		WidthB:    ic.WidthB,
	}
}

// Bending builds the bent sheet from the material's elastic constants.
func (bc BendingCase) Bending(p Parameters) forming.Bending {
	return forming.Bending{Thickness: bc.Thickness, E: p.E, Nu: p.Nu, Y: p.Y}
}

// Build builds the named necking model.
func (nc NeckingCase) Build(p Parameters) (necking.Model, error) {
	return NeckingModel(nc.Model, p, nc.Eps3)
}

// Betas returns the sampled strain ratios.
func (nc NeckingCase) Betas() []float64 {
	return sweep.Linspace(nc.From, nc.To, nc.Points)
}

// NeckingModel builds a necking model by name from the material's hardening
// parameters. eps3 is only used by the fracture line.
func NeckingModel(name string, p Parameters, eps3 float64) (necking.Model, error) {
	switch strings.ToLower(name) {
	case "swift":
		return necking.SwiftDiffuse{N: p.N}, nil
	case "hill":
		return necking.HillLocalized{N: p.N, Eps0: p.Eps0}, nil
	case "fracture":
		return necking.FractureLine{Eps3: eps3}, nil
	}
	return nil, &ValidationError{fmt.Sprintf("unknown necking model %q (want swift, hill or fracture)", name)}
}
