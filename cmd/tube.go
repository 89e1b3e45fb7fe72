package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/forming"
)

var (
	tubeMaterial   materialFlags
	tubeDiameter   float64
	tubeThickness  float64
	tubeForce      float64
	tubeTorque     float64
	tubeCriterion  string
	tubeExportFile string
)

var tubeCmd = &cobra.Command{
	Use:   "tube",
	Short: "Internal pressure that brings a loaded thin-wall tube to yield",
	Long: `Find the internal pressure p at which a thin-wall tube, also carrying
an axial force F and a torque T, first yields.

Stresses in the tube wall:
  hoop   σθ = pD/2t
  axial  σz = pD/4t + F/(πDt)
  shear  τ  = 2T/(πD²t)

The pressure solves σ̄(p) = Y by Newton iteration.

Examples:
  gosheet tube
  gosheet tube --yield 250 --diameter 80 --thickness 2 --force 8000 --torque 2700
  gosheet tube --criterion tresca --torque 1000 -o mohr.png
  gosheet tube --material DC04 --yield 250 --criterion hill --torque 0`,
	RunE: runTube,
}

func init() {
	rootCmd.AddCommand(tubeCmd)

	tubeMaterial.bind(tubeCmd, "tube")
	tubeCmd.Flags().Float64VarP(&tubeDiameter, "diameter", "d", 80, "Mean tube diameter D (mm)")
	tubeCmd.Flags().Float64VarP(&tubeThickness, "thickness", "t", 2, "Wall thickness t (mm)")
	tubeCmd.Flags().Float64VarP(&tubeForce, "force", "F", 8000, "Axial force F (N)")
	tubeCmd.Flags().Float64VarP(&tubeTorque, "torque", "T", 2700, "Torque T (N·m)")
	tubeCmd.Flags().StringVarP(&tubeCriterion, "criterion", "c", "mises", "Yield criterion: mises, tresca, hill, hosford (hill and hosford need --torque 0)")
	tubeCmd.Flags().StringVarP(&tubeExportFile, "output", "o", "", "Export Mohr circles at yield to file (png, svg, pdf)")
}

func runTube(cmd *cobra.Command, args []string) error {
	mat, err := tubeMaterial.resolve()
	if err != nil {
		return err
	}
	crit, err := mat.Criterion(tubeCriterion)
	if err != nil {
		return err
	}
	tb := forming.Tube{
		Yield:     mat.Y,
		Diameter:  tubeDiameter,
		Thickness: tubeThickness,
		Force:     tubeForce,
		Torque:    tubeTorque,
		Criterion: crit,
	}
	logger := loggerFromContext(cmd.Context())
	res, err := forming.TubePressure(tb, forming.Options{Logger: logger})
	if err != nil {
		return err
	}
	logger.Debug("tube pressure solved", "iterations", res.Iterations)

	out := cmd.OutOrStdout()
	printHeader(out, "TUBE PRESSURE AT FIRST YIELD")

	printSection(out, "INPUT")
	w := newTable(out)
	fmt.Fprintf(w, "  Yield stress Y:\t%.1f MPa\n", tb.Yield)
	fmt.Fprintf(w, "  Diameter D:\t%.2f mm\n", tb.Diameter)
	fmt.Fprintf(w, "  Thickness t:\t%.3f mm\n", tb.Thickness)
	fmt.Fprintf(w, "  Axial force F:\t%.1f N\n", tb.Force)
	fmt.Fprintf(w, "  Torque T:\t%.1f N·m\n", tb.Torque)
	fmt.Fprintf(w, "  Criterion:\t%s\n", crit.Name())
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "WALL STRESSES AT YIELD")
	w = newTable(out)
	fmt.Fprintf(w, "  Hoop σθ:\t%.3f MPa\n", tb.Hoop(res.Pressure))
	fmt.Fprintf(w, "  Axial σz:\t%.3f MPa\n", tb.Axial(res.Pressure))
	fmt.Fprintf(w, "  Shear τ:\t%.3f MPa\n", tb.Shear())
	fmt.Fprintf(w, "  Effective σ̄:\t%.3f MPa\n", res.Effective)
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawTensor("STRESS TENSOR (MPa)", res.Stress))
	fmt.Fprintln(out)

	printSection(out, "PRINCIPAL STRESSES")
	w = newTable(out)
	for i, v := range []float64{res.Principal.S1, res.Principal.S2, res.Principal.S3} {
		d := res.Directions[i]
		fmt.Fprintf(w, "  σ%d:\t%.3f MPa\t(%.4f, %.4f, %.4f)\n", i+1, v, d[0], d[1], d[2])
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Pressure at yield p = %.4f MPa", res.Pressure),
		fmt.Sprintf("Newton iterations   = %d", res.Iterations),
	}))
	fmt.Fprintln(out)

	if tubeExportFile != "" {
		if err := diagram.ExportMohr(tubeExportFile, res.Principal); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", tubeExportFile)
	}
	return nil
}
