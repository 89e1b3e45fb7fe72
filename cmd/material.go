package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/material"
)

// materialFlags binds a preset name and per-value overrides to a command.
// Non-zero overrides replace the preset's values.
type materialFlags struct {
	preset string
	p      material.Parameters
}

func (m *materialFlags) bind(cmd *cobra.Command, preset string) {
	f := cmd.Flags()
	f.StringVarP(&m.preset, "material", "m", preset, "Material preset (see 'gosheet materials')")
	f.Float64Var(&m.p.Y, "yield", 0, "Initial yield stress Y (MPa)")
	f.Float64Var(&m.p.K, "k", 0, "Strength coefficient K (MPa)")
	f.Float64Var(&m.p.N, "n", 0, "Strain-hardening exponent n")
	f.Float64Var(&m.p.Eps0, "eps0", 0, "Swift prestrain ε0 (selects the Swift law)")
	f.Float64Var(&m.p.R0, "r0", 0, "Lankford coefficient r0")
	f.Float64Var(&m.p.R45, "r45", 0, "Lankford coefficient r45")
	f.Float64Var(&m.p.R90, "r90", 0, "Lankford coefficient r90")
	f.Float64Var(&m.p.A, "a", 0, "Hosford exponent a")
	f.Float64Var(&m.p.E, "modulus", 0, "Young's modulus E (MPa)")
	f.Float64Var(&m.p.Nu, "poisson", 0, "Poisson ratio ν")
}

func (m *materialFlags) resolve() (material.Parameters, error) {
	p := m.p
	p.Preset = m.preset
	p, err := p.Resolve()
	if err != nil {
		return material.Parameters{}, err
	}
	if p.Name == "" {
		p.Name = "custom"
	}
	if err := p.Validate(); err != nil {
		return material.Parameters{}, fmt.Errorf("material %s: %w", p.Name, err)
	}
	return p, nil
}

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the built-in material presets",
	Long: `List the built-in material presets with their hardening,
anisotropy and elastic constants.

Any command taking --material also accepts overrides such as --k, --n or
--r90; non-zero overrides replace the preset values.

Examples:
  gosheet materials
  gosheet necking --material DC04 --n 0.25`,
	RunE: runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	printHeader(out, "MATERIAL PRESETS")

	w := newTable(out)
	fmt.Fprintf(w, "  Name\tY (MPa)\tK (MPa)\tn\tε0\tr0\tr45\tr90\ta\tE (MPa)\tν\tDescription\n")
	fmt.Fprintf(w, "  ────\t───────\t───────\t─\t──\t──\t───\t───\t─\t───────\t─\t───────────\n")
	for _, name := range material.Presets() {
		p, err := material.Preset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%.0f\t%.0f\t%.3f\t%.3f\t%.2f\t%.2f\t%.2f\t%.0f\t%.0f\t%.2f\t%s\n",
			p.Name, p.Y, p.K, p.N, p.Eps0, p.R0, p.R45, p.R90, p.A, p.E, p.Nu, p.Description)
	}
	w.Flush()
	fmt.Fprintln(out)
	return nil
}
