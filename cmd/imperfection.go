package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/sweep"
)

var (
	imperfectionMaterial  materialFlags
	imperfectionThickness float64
	imperfectionWidthA    float64
	imperfectionWidthB    float64
	imperfectionSweep     int
)

var imperfectionCmd = &cobra.Command{
	Use:   "imperfection",
	Short: "Limit strain of a strip with a narrower zone",
	Long: `Compute the limit strain of a strip made of a sound zone A and a
slightly narrower zone B loaded in series.

Zone B reaches its maximum force first and necks; zone A then stops
deforming. The strain in zone A at that moment is the limit strain of the
strip, which falls as the imperfection factor f = wB/wA decreases.

Examples:
  gosheet imperfection
  gosheet imperfection --material DP600 --width-a 20 --width-b 19.8
  gosheet imperfection --sweep 10`,
	RunE: runImperfection,
}

func init() {
	rootCmd.AddCommand(imperfectionCmd)

	imperfectionMaterial.bind(imperfectionCmd, "DC04")
	imperfectionCmd.Flags().Float64VarP(&imperfectionThickness, "thickness", "t", 1, "Initial strip thickness (mm)")
	imperfectionCmd.Flags().Float64Var(&imperfectionWidthA, "width-a", 20, "Width of the sound zone A (mm)")
	imperfectionCmd.Flags().Float64Var(&imperfectionWidthB, "width-b", 19.6, "Width of the weak zone B (mm)")
	imperfectionCmd.Flags().IntVar(&imperfectionSweep, "sweep", 0, "Also tabulate the limit strain for this many factors between f and 1")
}

func runImperfection(cmd *cobra.Command, args []string) error {
	mat, err := imperfectionMaterial.resolve()
	if err != nil {
		return err
	}
	im := forming.Imperfection{
		Law:       mat.Hardening(),
		Thickness: imperfectionThickness,
		WidthA:    imperfectionWidthA,
		WidthB:    imperfectionWidthB,
	}
	res, err := forming.ImperfectionLimit(im)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "IMPERFECTION-DRIVEN NECKING")

	printSection(out, "STRIP")
	w := newTable(out)
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Hardening:\t%s\n", im.Law)
	fmt.Fprintf(w, "  Widths wA, wB:\t%.3f, %.3f mm\n", im.WidthA, im.WidthB)
	fmt.Fprintf(w, "  Factor f = wB/wA:\t%.4f\n", res.Factor)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Strain in zone B at necking εB = %.4f", res.StrainB),
		fmt.Sprintf("Limit strain in zone A      εA = %.4f", res.StrainA),
		fmt.Sprintf("Maximum strip force         F  = %.2f N", res.Force),
	}))
	fmt.Fprintln(out)

	if imperfectionSweep > 1 {
		factors := sweep.Linspace(res.Factor, 1-1e-4, imperfectionSweep)
		limits, err := sweep.Map(cmd.Context(), factors, func(f float64) (float64, error) {
			s := im
			s.WidthB = f * s.WidthA
			r, err := forming.ImperfectionLimit(s)
			return r.StrainA, err
		}, 0)
		if err != nil {
			return err
		}
		printSection(out, "LIMIT STRAIN AGAINST IMPERFECTION")
		w = newTable(out)
		fmt.Fprintf(w, "  f\tεA\n")
		fmt.Fprintf(w, "  ─\t──\n")
		for i, f := range factors {
			fmt.Fprintf(w, "  %.4f\t%.4f\n", f, limits[i])
		}
		w.Flush()
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.Chart("εA against f", diagram.Series{Name: "εA", X: factors, Y: limits}))
	}
	return nil
}
