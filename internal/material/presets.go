package material

import (
	"fmt"
	"sort"
	"strings"
)

// Typical handbook values for common sheet grades, plus the materials of
// the worked forming examples.
var presets = []Parameters{
	{
		Name:        "DC04",
		Description: "cold-rolled deep-drawing steel",
		Y:           170, K: 530, N: 0.23,
		R0: 1.8, R45: 1.4, R90: 2.2, A: 6,
		E: 210e3, Nu: 0.3,
	},
	{
		Name:        "DP600",
		Description: "dual-phase high-strength steel",
		Y:           380, K: 1000, N: 0.17, Eps0: 0.002,
		R0: 0.9, R45: 0.8, R90: 1.0, A: 6,
		E: 210e3, Nu: 0.3,
	},
	{
		Name:        "AA5754",
		Description: "Al-Mg alloy, O temper",
		Y:           100, K: 400, N: 0.28,
		R0: 0.7, R45: 0.75, R90: 0.7, A: 8,
		E: 70e3, Nu: 0.33,
	},
	{
		Name:        "SS304",
		Description: "austenitic stainless steel",
		Y:           290, K: 1275, N: 0.45,
		R0: 1.0, R45: 1.2, R90: 0.9, A: 6,
		E: 193e3, Nu: 0.29,
	},
	{
		Name:        "stamping",
		Description: "channel stamping example",
		K:           750, N: 0.23,
	},
	{
		Name:        "stretch",
		Description: "stretch forming example",
		K:           810, N: 0.24,
	},
	{
		Name:        "bending",
		Description: "elastic-plastic bending example",
		Y:           100, K: 100, E: 210e3, Nu: 0.3,
	},
	{
		Name:        "tube",
		Description: "thin-wall tube example",
		Y:           250, K: 250,
	},
}

// Preset returns the built-in material with the given name, ignoring case.
func Preset(name string) (Parameters, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Parameters{}, &ValidationError{fmt.Sprintf("unknown material preset %q (available: %s)", name, strings.Join(Presets(), ", "))}
}

// Presets returns the names of the built-in materials in sorted order.
func Presets() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}
