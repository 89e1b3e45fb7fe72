package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/tensor"
	"github.com/alexiusacademia/gosheet/internal/yield"
)

var (
	stressSX, stressSY, stressSZ    float64
	stressTXY, stressTXZ, stressTYZ float64
	stressExportFile                string
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Invariants, principal stresses and equivalent stresses of a tensor",
	Long: `Analyze a symmetric Cauchy stress tensor.

Reports the invariants I1, I2, I3 and J2, J3, the principal stresses
σ1 ≥ σ2 ≥ σ3 with their directions, and the von Mises and Tresca
equivalent stresses. The Mohr circles can be exported as an image.

Examples:
  gosheet stress --sx 100 --sy 50 --txy 30
  gosheet stress --sx 100 --sy 50 --sz -20 --txy 30 --tyz 10 -o mohr.png`,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	stressCmd.Flags().Float64Var(&stressSX, "sx", 0, "Normal stress σx (MPa)")
	stressCmd.Flags().Float64Var(&stressSY, "sy", 0, "Normal stress σy (MPa)")
	stressCmd.Flags().Float64Var(&stressSZ, "sz", 0, "Normal stress σz (MPa)")
	stressCmd.Flags().Float64Var(&stressTXY, "txy", 0, "Shear stress τxy (MPa)")
	stressCmd.Flags().Float64Var(&stressTXZ, "txz", 0, "Shear stress τxz (MPa)")
	stressCmd.Flags().Float64Var(&stressTYZ, "tyz", 0, "Shear stress τyz (MPa)")
	stressCmd.Flags().StringVarP(&stressExportFile, "output", "o", "", "Export Mohr circles to file (png, svg, pdf)")
}

func runStress(cmd *cobra.Command, args []string) error {
	s := tensor.Stress{X: stressSX, Y: stressSY, Z: stressSZ, XY: stressTXY, XZ: stressTXZ, YZ: stressTYZ}
	p, dirs, err := tensor.PrincipalDirections(s)
	if err != nil {
		return fmt.Errorf("principal stresses: %w", err)
	}
	inv := s.Invariants()

	out := cmd.OutOrStdout()
	printHeader(out, "STRESS TENSOR ANALYSIS")
	fmt.Fprint(out, diagram.DrawTensor("STRESS TENSOR (MPa)", s))
	fmt.Fprintln(out)

	printSection(out, "INVARIANTS")
	w := newTable(out)
	fmt.Fprintf(w, "  I1:\t%.4f\n", inv.I1)
	fmt.Fprintf(w, "  I2:\t%.4f\n", inv.I2)
	fmt.Fprintf(w, "  I3:\t%.4f\n", inv.I3)
	fmt.Fprintf(w, "  J2:\t%.4f\n", s.J2())
	fmt.Fprintf(w, "  J3:\t%.4f\n", s.J3())
	fmt.Fprintf(w, "  Mean stress σm:\t%.4f MPa\n", s.Mean())
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "PRINCIPAL STRESSES")
	w = newTable(out)
	fmt.Fprintf(w, "  \tValue (MPa)\tDirection\n")
	fmt.Fprintf(w, "  \t───────────\t─────────\n")
	for i, v := range []float64{p.S1, p.S2, p.S3} {
		d := dirs[i]
		fmt.Fprintf(w, "  σ%d\t%.4f\t(%.4f, %.4f, %.4f)\n", i+1, v, d[0], d[1], d[2])
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "EQUIVALENT STRESSES")
	w = newTable(out)
	fmt.Fprintf(w, "  von Mises:\t%.4f MPa\n", yield.MisesTensor(s))
	fmt.Fprintf(w, "  Tresca (σ1 − σ3):\t%.4f MPa\n", p.Tresca())
	fmt.Fprintf(w, "  Max shear:\t%.4f MPa\n", p.MaxShear())
	w.Flush()
	fmt.Fprintln(out)

	if stressExportFile != "" {
		if err := diagram.ExportMohr(stressExportFile, p); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", stressExportFile)
	}
	return nil
}
