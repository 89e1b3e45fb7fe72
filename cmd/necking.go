package cmd

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/material"
	"github.com/alexiusacademia/gosheet/internal/necking"
	"github.com/alexiusacademia/gosheet/internal/sweep"
	"github.com/alexiusacademia/gosheet/internal/tensor"
)

var (
	neckingMaterial   materialFlags
	neckingModel      string
	neckingFrom       float64
	neckingTo         float64
	neckingPoints     int
	neckingEps3       float64
	neckingShowChart  bool
	neckingExportFile string
)

var neckingCmd = &cobra.Command{
	Use:   "necking",
	Short: "Forming limit strains from necking models",
	Long: `Compute the limit strains (ε1, ε2) along proportional strain paths
β = ε2/ε1 and build the forming limit curve.

Models:
  swift     - diffuse necking, valid for -1 < β ≤ 1
  hill      - localized necking, valid for -1 < β ≤ 0
  fracture  - fracture line ε1 + ε2 = -ε3f (needs --eps3)
  all       - every model, each over its own range

Examples:
  gosheet necking --material DC04
  gosheet necking --n 0.22 --k 500 --model hill --from -0.5 --to 0
  gosheet necking --material AA5754 --eps3 -0.6 --chart -o flc.png`,
	RunE: runNecking,
}

func init() {
	rootCmd.AddCommand(neckingCmd)

	neckingMaterial.bind(neckingCmd, "DC04")
	neckingCmd.Flags().StringVar(&neckingModel, "model", "all", "Necking model: swift, hill, fracture, all")
	neckingCmd.Flags().Float64Var(&neckingFrom, "from", -0.5, "First strain ratio β")
	neckingCmd.Flags().Float64Var(&neckingTo, "to", 1, "Last strain ratio β")
	neckingCmd.Flags().IntVar(&neckingPoints, "points", 16, "Number of strain ratios")
	neckingCmd.Flags().Float64Var(&neckingEps3, "eps3", 0, "Fracture thickness strain ε3f (negative)")
	neckingCmd.Flags().BoolVar(&neckingShowChart, "chart", false, "Show ASCII chart of ε1 against β")
	neckingCmd.Flags().StringVarP(&neckingExportFile, "output", "o", "", "Export forming limit diagram to file (png, svg, pdf)")
}

// limitCurve holds the limit strains of one model; ok marks the ratios
// inside the model's range.
type limitCurve struct {
	name    string
	strains []tensor.Strain
	ok      []bool
}

func runNecking(cmd *cobra.Command, args []string) error {
	mat, err := neckingMaterial.resolve()
	if err != nil {
		return err
	}
	if neckingPoints < 2 {
		return fmt.Errorf("need at least 2 points, got %d", neckingPoints)
	}
	betas := sweep.Linspace(neckingFrom, neckingTo, neckingPoints)

	names := []string{strings.ToLower(neckingModel)}
	if names[0] == "all" {
		names = []string{"swift", "hill"}
		if neckingEps3 < 0 {
			names = append(names, "fracture")
		}
	}
	strict := len(names) == 1

	var curves []limitCurve
	for _, name := range names {
		m, err := material.NeckingModel(name, mat, neckingEps3)
		if err != nil {
			return err
		}
		c, err := evalLimits(cmd.Context(), m, betas, strict)
		if err != nil {
			return fmt.Errorf("%s necking: %w", name, err)
		}
		curves = append(curves, c)
	}

	out := cmd.OutOrStdout()
	printHeader(out, "FORMING LIMIT STRAINS")

	printSection(out, "MATERIAL")
	w := newTable(out)
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Hardening:\t%s\n", mat.Hardening())
	if neckingEps3 < 0 {
		fmt.Fprintf(w, "  Fracture strain ε3f:\t%.3f\n", neckingEps3)
	}
	w.Flush()
	fmt.Fprintln(out)

	for _, c := range curves {
		printSection(out, strings.ToUpper(c.name)+" LIMIT STRAINS")
		w = newTable(out)
		fmt.Fprintf(w, "  β\tε1\tε2\tε3\n")
		fmt.Fprintf(w, "  ─\t──\t──\t──\n")
		for i, b := range betas {
			if !c.ok[i] {
				fmt.Fprintf(w, "  %.3f\t—\t—\t—\n", b)
				continue
			}
			e := c.strains[i]
			fmt.Fprintf(w, "  %.3f\t%.4f\t%.4f\t%.4f\n", b, e.E1, e.E2, e.E3())
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if neckingShowChart {
		series := make([]diagram.Series, len(curves))
		for i, c := range curves {
			ys := make([]float64, len(betas))
			for k := range betas {
				ys[k] = math.NaN()
				if c.ok[k] {
					ys[k] = c.strains[k].E1
				}
			}
			series[i] = diagram.Series{Name: c.name, X: betas, Y: ys}
		}
		fmt.Fprintln(out, diagram.Chart("ε1 against β", series...))
	}

	if neckingExportFile != "" {
		series := make([]diagram.Series, len(curves))
		for i, c := range curves {
			var valid []tensor.Strain
			for k, e := range c.strains {
				if c.ok[k] {
					valid = append(valid, e)
				}
			}
			series[i] = diagram.StrainSeries(c.name, valid)
		}
		if err := diagram.ExportFLC(neckingExportFile, series); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", neckingExportFile)
	}
	return nil
}

// evalLimits evaluates m at every ratio. In strict mode any error fails the
// curve; otherwise ratios outside the model's range are left out.
func evalLimits(ctx context.Context, m necking.Model, betas []float64, strict bool) (limitCurve, error) {
	c := limitCurve{name: m.Name(), ok: make([]bool, len(betas))}
	if strict {
		strains, err := necking.Curve(ctx, m, betas)
		if err != nil {
			return limitCurve{}, err
		}
		for i := range c.ok {
			c.ok[i] = true
		}
		c.strains = strains
		return c, nil
	}

	type point struct {
		e  tensor.Strain
		ok bool
	}
	pts, err := sweep.Map(ctx, betas, func(b float64) (point, error) {
		e, err := m.Limit(b)
		if errs.IsDomain(err) {
			return point{}, nil
		}
		return point{e: e, ok: err == nil}, err
	}, 0)
	if err != nil {
		return limitCurve{}, err
	}
	c.strains = make([]tensor.Strain, len(pts))
	for i, p := range pts {
		c.strains[i], c.ok[i] = p.e, p.ok
	}
	return c, nil
}
