package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/sweep"
)

var (
	bendMaterial    materialFlags
	bendThickness   float64
	bendRadius      float64
	bendFibres      int
	bendShowDiagram bool
	bendExportFile  string
)

var bendCmd = &cobra.Command{
	Use:   "bend",
	Short: "Elastic-plastic bending of a sheet in plane strain",
	Long: `Compute the moment-curvature response of a sheet bent in plane strain
with an elastic, perfectly plastic material.

Plane-strain constants:
  modulus       E' = E/(1−ν²)
  flow stress   S  = 2Y/√3
  elastic limit ρe = E't/(2S),  Me = S·t²/6,  Mp = 1.5·Me

Examples:
  gosheet bend
  gosheet bend --thickness 1.2 --radius 500 --diagram
  gosheet bend --material DC04 -o moment.png`,
	RunE: runBend,
}

func init() {
	rootCmd.AddCommand(bendCmd)

	bendMaterial.bind(bendCmd, "bending")
	bendCmd.Flags().Float64VarP(&bendThickness, "thickness", "t", 1.2, "Sheet thickness (mm)")
	bendCmd.Flags().Float64VarP(&bendRadius, "radius", "r", 0, "Radius of curvature ρ of the mid plane (mm), half the elastic limit radius when 0")
	bendCmd.Flags().IntVar(&bendFibres, "fibres", 11, "Fibres sampled through the thickness")
	bendCmd.Flags().BoolVar(&bendShowDiagram, "diagram", false, "Show ASCII stress and moment diagrams")
	bendCmd.Flags().StringVarP(&bendExportFile, "output", "o", "", "Export moment-curvature diagram to file (png, svg, pdf)")
}

func runBend(cmd *cobra.Command, args []string) error {
	mat, err := bendMaterial.resolve()
	if err != nil {
		return err
	}
	b := forming.Bending{Thickness: bendThickness, E: mat.E, Nu: mat.Nu, Y: mat.Y}
	if err := b.Validate(); err != nil {
		return err
	}
	rho := bendRadius
	if rho == 0 {
		rho = b.ElasticRadius() / 2
	}
	m, err := b.Moment(rho)
	if err != nil {
		return err
	}
	fibres, err := b.Section(rho, bendFibres)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "ELASTIC-PLASTIC BENDING")

	printSection(out, "PLANE-STRAIN CONSTANTS")
	w := newTable(out)
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Modulus E':\t%.0f MPa\n", b.Modulus())
	fmt.Fprintf(w, "  Flow stress S:\t%.2f MPa\n", b.FlowStress())
	fmt.Fprintf(w, "  Elastic limit radius ρe:\t%.2f mm\n", b.ElasticRadius())
	fmt.Fprintf(w, "  Elastic limit moment Me:\t%.3f N·mm/mm\n", b.ElasticMoment())
	fmt.Fprintf(w, "  Fully plastic moment Mp:\t%.3f N·mm/mm\n", b.PlasticMoment())
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "SECTION AT ρ")
	w = newTable(out)
	fmt.Fprintf(w, "  y (mm)\tStrain\tStress (MPa)\n")
	fmt.Fprintf(w, "  ──────\t──────\t────────────\n")
	for _, f := range fibres {
		fmt.Fprintf(w, "  %.4f\t%.6f\t%.2f\n", f.Y, f.Strain, f.Stress)
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Radius ρ        = %.2f mm", rho),
		fmt.Sprintf("Moment M        = %.3f N·mm/mm", m),
		fmt.Sprintf("M / Mp          = %.4f", m/b.PlasticMoment()),
		yesNo(rho < b.ElasticRadius(), "Outer fibres have yielded", "Section is elastic"),
	}))
	fmt.Fprintln(out)

	if bendShowDiagram || bendExportFile != "" {
		curvatures := sweep.Linspace(0, 5/b.ElasticRadius(), 51)
		moments, err := b.MomentCurvature(cmd.Context(), curvatures)
		if err != nil {
			return err
		}
		if bendShowDiagram {
			fmt.Fprintln(out, diagram.DrawSection(fibres, b.FlowStress()))
			fmt.Fprintln(out, diagram.Chart("M (N·mm/mm) against 1/ρ", diagram.Series{Name: "M", X: curvatures, Y: moments}))
		}
		if bendExportFile != "" {
			if err := diagram.ExportMomentCurvature(bendExportFile, curvatures, moments, b.PlasticMoment()); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Fprintf(out, "Diagram exported to: %s\n", bendExportFile)
		}
	}
	return nil
}
