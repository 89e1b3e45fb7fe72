package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/material"
	"github.com/alexiusacademia/gosheet/internal/necking"
)

var runFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve every problem of a TOML case file",
	Long: `Solve a batch of forming problems defined in a TOML case file.

The case names one material (a preset plus overrides) and any number of
[[tube]], [[stretch]], [[stamping]], [[imperfection]], [[bending]] and
[[necking]] tables. Unknown keys are rejected.

Example case file:
  name = "channel study"

  [material]
  preset = "stamping"

  [[stamping]]
  half_width = 330
  face_radius = 2800
  punch_radius = 10
  die_radius = 10
  wall_length = 28
  flange_length = 80
  friction = 0.1
  thickness = 0.8
  pole_strain = 0.03

Examples:
  gosheet run --file case.toml
  gosheet run -f case.toml -v`,
	RunE: runCase,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Path to case TOML file [required]")
	runCmd.MarkFlagRequired("file")
}

func runCase(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	c, err := material.LoadCase(runFile)
	if err != nil {
		return fmt.Errorf("loading case: %w", err)
	}
	logger.Debug("case loaded", "name", c.Name, "material", c.Material.Name)

	mat := c.Material
	opts := forming.Options{Logger: logger}
	out := cmd.OutOrStdout()

	title := "CASE"
	if c.Name != "" {
		title = "CASE - " + c.Name
	}
	printHeader(out, title)
	printSection(out, "MATERIAL")
	w := newTable(out)
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Hardening:\t%s\n", mat.Hardening())
	fmt.Fprintf(w, "  Anisotropy:\t%s\n", mat.Anisotropy())
	w.Flush()
	fmt.Fprintln(out)

	solved := 0
	for i, tc := range c.Tube {
		tb, err := tc.Tube(mat)
		if err != nil {
			return problemErr("tube", i, tc.Name, err)
		}
		res, err := forming.TubePressure(tb, opts)
		if err != nil {
			return problemErr("tube", i, tc.Name, err)
		}
		box(out, "tube", i, tc.Name,
			fmt.Sprintf("Criterion           = %s", tb.Criterion.Name()),
			fmt.Sprintf("Pressure at yield p = %.4f MPa", res.Pressure),
			fmt.Sprintf("Principal stresses  = %.2f, %.2f, %.2f MPa", res.Principal.S1, res.Principal.S2, res.Principal.S3),
		)
		solved++
	}

	for i, sc := range c.Stretch {
		s, err := sc.Stretch(mat)
		if err != nil {
			return problemErr("stretch", i, sc.Name, err)
		}
		res, err := forming.StretchStrains(s, opts)
		if err != nil {
			return problemErr("stretch", i, sc.Name, err)
		}
		box(out, "stretch", i, sc.Name,
			fmt.Sprintf("Strains εO, εA  = %.4f, %.4f", res.PoleStrain, res.SpanStrain),
			fmt.Sprintf("Punch pressure  = %.4f MPa", res.PunchPressure),
			fmt.Sprintf("Punch force     = %.2f N/mm", res.PunchForce),
			yesNo(res.ExceedsLimit, "⚠ span strain exceeds n", "Below the limit strain n"),
		)
		solved++
	}

	for i, sc := range c.Stamping {
		s, err := sc.Stamping(mat)
		if err != nil {
			return problemErr("stamping", i, sc.Name, err)
		}
		res, err := forming.Stamp(s)
		if err != nil {
			return problemErr("stamping", i, sc.Name, err)
		}
		peak := res.Path.MaxStrain()
		box(out, "stamping", i, sc.Name,
			fmt.Sprintf("Punch force   = %.2f N/mm", res.PunchForce),
			fmt.Sprintf("Holder force  = %.2f N/mm", res.HolderForce),
			fmt.Sprintf("Max strain    = %.5f at %s", peak.Strain, peak.Name),
		)
		solved++
	}

	for i, ic := range c.Imperfection {
		res, err := forming.ImperfectionLimit(ic.Imperfection(mat))
		if err != nil {
			return problemErr("imperfection", i, ic.Name, err)
		}
		box(out, "imperfection", i, ic.Name,
			fmt.Sprintf("Factor f       = %.4f", res.Factor),
			fmt.Sprintf("Limit strain   = %.4f", res.StrainA),
		)
		solved++
	}

	for i, bc := range c.Bending {
		b := bc.Bending(mat)
		if err := b.Validate(); err != nil {
			return problemErr("bending", i, bc.Name, err)
		}
		lines := []string{fmt.Sprintf("ρe = %.2f mm, Me = %.3f, Mp = %.3f N·mm/mm", b.ElasticRadius(), b.ElasticMoment(), b.PlasticMoment())}
		for _, rho := range bc.Radii {
			m, err := b.Moment(rho)
			if err != nil {
				return problemErr("bending", i, bc.Name, err)
			}
			lines = append(lines, fmt.Sprintf("ρ = %-9.2f M = %.3f N·mm/mm", rho, m))
		}
		box(out, "bending", i, bc.Name, lines...)
		solved++
	}

	for i, nc := range c.Necking {
		m, err := nc.Build(mat)
		if err != nil {
			return problemErr("necking", i, nc.Name, err)
		}
		betas := nc.Betas()
		strains, err := necking.Curve(cmd.Context(), m, betas)
		if err != nil {
			return problemErr("necking", i, nc.Name, err)
		}
		lines := make([]string, len(betas))
		for k, e := range strains {
			lines[k] = fmt.Sprintf("β = %+.3f   ε1 = %.4f   ε2 = %+.4f", betas[k], e.E1, e.E2)
		}
		box(out, "necking "+m.Name(), i, nc.Name, lines...)
		solved++
	}

	prog.done(fmt.Sprintf("Solved %d problems", solved))
	return nil
}

func box(w io.Writer, kind string, i int, name string, lines ...string) {
	title := fmt.Sprintf("%s %d", kind, i+1)
	if name != "" {
		title += ": " + name
	}
	fmt.Fprint(w, diagram.DrawSummaryBox(title, lines))
	fmt.Fprintln(w)
}

func problemErr(kind string, i int, name string, err error) error {
	if name != "" {
		return fmt.Errorf("%s %d (%s): %w", kind, i+1, name, err)
	}
	return fmt.Errorf("%s %d: %w", kind, i+1, err)
}
