package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/sweep"
	"github.com/alexiusacademia/gosheet/internal/tensor"
	"github.com/alexiusacademia/gosheet/internal/yield"
)

var (
	yieldMaterial    materialFlags
	yieldCriterion   string
	yieldSX, yieldSY float64
	yieldAlpha       float64
	yieldPoints      int
	yieldShowChart   bool
	yieldExportFile  string
)

var yieldCmd = &cobra.Command{
	Use:   "yield",
	Short: "Evaluate a yield criterion and trace its locus",
	Long: `Evaluate the effective stress of a plane-stress state in the
orthotropy axes of the sheet and trace the yield locus.

Criteria:
  mises    - von Mises (isotropic)
  tresca   - Tresca (isotropic)
  hill     - Hill 1948 with r0 and r90
  hosford  - Hosford with r0, r90 and exponent a

Examples:
  gosheet yield --sx 200 --sy 100
  gosheet yield --material DC04 --criterion hosford --sx 200 --sy 100 --chart
  gosheet yield --material AA5754 --criterion hosford -o locus.png`,
	RunE: runYield,
}

func init() {
	rootCmd.AddCommand(yieldCmd)

	yieldMaterial.bind(yieldCmd, "DC04")
	yieldCmd.Flags().StringVarP(&yieldCriterion, "criterion", "c", "mises", "Yield criterion: mises, tresca, hill, hosford")
	yieldCmd.Flags().Float64Var(&yieldSX, "sx", 0, "Stress along the rolling direction σx (MPa)")
	yieldCmd.Flags().Float64Var(&yieldSY, "sy", 0, "Stress across the rolling direction σy (MPa)")
	yieldCmd.Flags().Float64Var(&yieldAlpha, "alpha", 0.5, "Stress ratio α = σ2/σ1 of the locus point to report")
	yieldCmd.Flags().IntVar(&yieldPoints, "points", 72, "Number of points on the traced locus")
	yieldCmd.Flags().BoolVar(&yieldShowChart, "chart", false, "Show ASCII chart of σ1/Y against α")
	yieldCmd.Flags().StringVarP(&yieldExportFile, "output", "o", "", "Export yield loci to file (png, svg, pdf)")
}

func runYield(cmd *cobra.Command, args []string) error {
	mat, err := yieldMaterial.resolve()
	if err != nil {
		return err
	}
	crit, err := mat.Criterion(yieldCriterion)
	if err != nil {
		return err
	}
	if !(mat.Y > 0) {
		return fmt.Errorf("material %s has no yield stress, set --yield", mat.Name)
	}
	logger := loggerFromContext(cmd.Context())
	logger.Debug("yield criterion", "criterion", crit, "material", mat.Name)

	out := cmd.OutOrStdout()
	printHeader(out, "YIELD CRITERION - "+crit.Name())

	printSection(out, "MATERIAL")
	an := mat.Anisotropy()
	w := newTable(out)
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Yield stress Y:\t%.1f MPa\n", mat.Y)
	fmt.Fprintf(w, "  Anisotropy:\t%s\n", an)
	fmt.Fprintf(w, "  Normal r̄:\t%.3f\n", an.Normal())
	fmt.Fprintf(w, "  Planar Δr:\t%.3f\n", an.Planar())
	w.Flush()
	fmt.Fprintln(out)

	s := tensor.Plane(yieldSX, yieldSY, 0)
	if yieldSX != 0 || yieldSY != 0 {
		eff, err := yield.Effective(crit, s)
		if err != nil {
			return fmt.Errorf("effective stress: %w", err)
		}
		printSection(out, "STRESS STATE")
		w = newTable(out)
		fmt.Fprintf(w, "  σx, σy:\t%.2f, %.2f MPa\n", yieldSX, yieldSY)
		fmt.Fprintf(w, "  Effective stress σ̄:\t%.3f MPa\n", eff)
		fmt.Fprintf(w, "  σ̄ / Y:\t%.4f\n", eff/mat.Y)
		fmt.Fprintf(w, "  Status:\t%s\n", yesNo(eff >= mat.Y, "Yields", "Elastic"))
		w.Flush()
		fmt.Fprintln(out)
	}

	pt, err := yield.LocusPoint(crit, mat.Y, yieldAlpha)
	if err != nil {
		return fmt.Errorf("locus point: %w", err)
	}
	printSection(out, "LOCUS POINT")
	w = newTable(out)
	fmt.Fprintf(w, "  Stress ratio α:\t%.3f\n", yieldAlpha)
	fmt.Fprintf(w, "  (σ1, σ2):\t(%.2f, %.2f) MPa\n", pt.S1, pt.S2)
	if beta, err := yield.MisesStrainRatio(yieldAlpha); err == nil {
		fmt.Fprintf(w, "  Strain ratio β (Lévy–Mises):\t%.4f\n", beta)
	}
	w.Flush()
	fmt.Fprintln(out)

	if yieldShowChart {
		alphas := sweep.Linspace(-1, 1, 41)
		var series []diagram.Series
		for _, c := range compared(crit) {
			ys, err := sweep.Map(cmd.Context(), alphas, func(a float64) (float64, error) {
				p, err := yield.LocusPoint(c, 1, a)
				if err != nil {
					return math.NaN(), nil
				}
				return p.S1, nil
			}, 0)
			if err != nil {
				return err
			}
			series = append(series, diagram.Series{Name: c.Name(), X: alphas, Y: ys})
		}
		fmt.Fprintln(out, diagram.Chart("σ1/Y against α", series...))
	}

	if yieldExportFile != "" {
		var loci []diagram.Series
		for _, c := range compared(crit) {
			pts, err := yield.Locus(cmd.Context(), c, mat.Y, yieldPoints)
			if err != nil {
				return fmt.Errorf("%s locus: %w", c.Name(), err)
			}
			loci = append(loci, diagram.LocusSeries(c.Name(), pts))
		}
		if err := diagram.ExportLocus(yieldExportFile, loci); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", yieldExportFile)
	}
	return nil
}

// compared returns the isotropic criteria followed by crit, without repeats.
func compared(crit yield.Criterion) []yield.Criterion {
	out := []yield.Criterion{yield.Mises{}, yield.Tresca{}}
	for _, c := range out {
		if c.Name() == crit.Name() {
			return out
		}
	}
	return append(out, crit)
}
