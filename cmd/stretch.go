package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/sweep"
)

var (
	stretchMaterial    materialFlags
	stretchRadius      float64
	stretchToolLength  float64
	stretchClampLength float64
	stretchFriction    float64
	stretchThickness   float64
	stretchAngle       float64
	stretchSweep       int
)

var stretchCmd = &cobra.Command{
	Use:   "stretch",
	Short: "Stretch forming of a clamped sheet over a punch",
	Long: `Solve the strains of a sheet clamped at both ends and stretched over a
punch of radius R until it wraps the punch through the contact angle θ.

The pole strain εO and the span strain εA satisfy:
  - the length-weighted mean strain equals the strain imposed by the geometry
  - the tensions at A and O follow the capstan law TA = TO·exp(μθ)

The sheet deforms in plane strain with a Hollomon material.

Examples:
  gosheet stretch
  gosheet stretch --radius 1100 --tool-length 3000 --clamp-length 300 --angle 38
  gosheet stretch --friction 0.2 --sweep 10`,
	RunE: runStretch,
}

func init() {
	rootCmd.AddCommand(stretchCmd)

	stretchMaterial.bind(stretchCmd, "stretch")
	stretchCmd.Flags().Float64VarP(&stretchRadius, "radius", "r", 1100, "Punch radius R (mm)")
	stretchCmd.Flags().Float64Var(&stretchToolLength, "tool-length", 3000, "Distance between the clamps (mm)")
	stretchCmd.Flags().Float64Var(&stretchClampLength, "clamp-length", 300, "Unsupported length at each clamp (mm)")
	stretchCmd.Flags().Float64Var(&stretchFriction, "friction", 0.1, "Friction coefficient μ")
	stretchCmd.Flags().Float64VarP(&stretchThickness, "thickness", "t", 1.2, "Initial sheet thickness (mm)")
	stretchCmd.Flags().Float64Var(&stretchAngle, "angle", 38, "Contact angle θ on the punch (degrees)")
	stretchCmd.Flags().IntVar(&stretchSweep, "sweep", 0, "Also tabulate strains for this many angles up to --angle")
}

func runStretch(cmd *cobra.Command, args []string) error {
	mat, err := stretchMaterial.resolve()
	if err != nil {
		return err
	}
	law, err := mat.Hollomon()
	if err != nil {
		return err
	}
	s := forming.Stretch{
		Radius:      stretchRadius,
		ToolLength:  stretchToolLength,
		ClampLength: stretchClampLength,
		Friction:    stretchFriction,
		Thickness:   stretchThickness,
		Angle:       stretchAngle,
		Material:    law,
	}
	opts := forming.Options{Logger: loggerFromContext(cmd.Context())}
	res, err := forming.StretchStrains(s, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "STRETCH FORMING")

	printSection(out, "GEOMETRY")
	w := newTable(out)
	fmt.Fprintf(w, "  Contact angle θ:\t%.2f°\n", s.Angle)
	fmt.Fprintf(w, "  Punch stroke:\t%.2f mm\n", res.Geometry.Stroke)
	fmt.Fprintf(w, "  Arc length OA:\t%.2f mm\n", res.Geometry.ArcLength)
	fmt.Fprintf(w, "  Span length AB:\t%.2f mm\n", res.Geometry.SpanLength)
	fmt.Fprintf(w, "  Average strain:\t%.4f\n", res.Geometry.AverageStrain)
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "STRAINS AND TENSIONS")
	w = newTable(out)
	fmt.Fprintf(w, "  \tPole O\tSpan A\n")
	fmt.Fprintf(w, "  \t──────\t──────\n")
	fmt.Fprintf(w, "  Strain ε1:\t%.4f\t%.4f\n", res.PoleStrain, res.SpanStrain)
	fmt.Fprintf(w, "  Thickness:\t%.4f mm\t%.4f mm\n", res.PoleThickness, res.SpanThickness)
	fmt.Fprintf(w, "  Tension:\t%.2f N/mm\t%.2f N/mm\n", res.PoleTension, res.SpanTension)
	w.Flush()
	fmt.Fprintln(out)

	status := "Below the limit strain n"
	if res.ExceedsLimit {
		status = fmt.Sprintf("⚠ Span strain exceeds n = %.3f, the sheet is likely to neck", law.N)
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Punch pressure at O = %.4f MPa", res.PunchPressure),
		fmt.Sprintf("Punch force         = %.2f N/mm", res.PunchForce),
		status,
	}))
	fmt.Fprintln(out)

	if stretchSweep > 1 {
		angles := sweep.Linspace(stretchAngle/float64(stretchSweep), stretchAngle, stretchSweep)
		rows, err := sweep.Map(cmd.Context(), angles, func(a float64) (forming.StretchResult, error) {
			sa := s
			sa.Angle = a
			return forming.StretchStrains(sa, opts)
		}, 0)
		if err != nil {
			return err
		}
		printSection(out, "STRAINS AGAINST CONTACT ANGLE")
		w = newTable(out)
		fmt.Fprintf(w, "  θ (°)\tStroke (mm)\tεO\tεA\tForce (N/mm)\n")
		fmt.Fprintf(w, "  ─────\t───────────\t──\t──\t────────────\n")
		pole, span := make([]float64, len(rows)), make([]float64, len(rows))
		for i, r := range rows {
			fmt.Fprintf(w, "  %.2f\t%.2f\t%.4f\t%.4f\t%.2f\n", angles[i], r.Geometry.Stroke, r.PoleStrain, r.SpanStrain, r.PunchForce)
			pole[i], span[i] = r.PoleStrain, r.SpanStrain
		}
		w.Flush()
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.Chart("strain against θ",
			diagram.Series{Name: "pole O", X: angles, Y: pole},
			diagram.Series{Name: "span A", X: angles, Y: span},
		))
	}
	return nil
}
