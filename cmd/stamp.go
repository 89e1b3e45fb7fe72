package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosheet/internal/diagram"
	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/hardening"
)

var (
	stampMaterial    materialFlags
	stampGeometry    forming.StampingGeometry
	stampWrapDegrees float64
	stampThickness   float64
	stampPoleStrain  float64
	stampPlaneStrain bool
	stampShowDiagram bool
	stampSamples     int
	stampExportFile  string
)

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Tension, strain and pressure along a stamped channel",
	Long: `Propagate the sheet tension from the pole of the punch to the flange
of a stamped channel: punch face O-A, punch corner A-B, wall B-C, die
radius C-D, die land D-E and flange E-F under the blank holder.

Friction changes the tension on every arc by the capstan factor exp(μφ).
The blank holder carries the flange tension through friction on both
faces of the sheet. Strains follow from the tension through the hardening
law; the punch force per unit width is 2·TB·sin(θ).

Examples:
  gosheet stamp
  gosheet stamp --pole-strain 0.05 --friction 0.15 --diagram
  gosheet stamp --plane-strain -o profile.png`,
	RunE: runStamp,
}

func init() {
	rootCmd.AddCommand(stampCmd)

	stampMaterial.bind(stampCmd, "stamping")
	f := stampCmd.Flags()
	f.Float64Var(&stampGeometry.HalfWidth, "half-width", 330, "Punch half width a (mm)")
	f.Float64Var(&stampGeometry.FaceRadius, "face-radius", 2800, "Punch face radius Rf (mm)")
	f.Float64Var(&stampGeometry.PunchRadius, "punch-radius", 10, "Punch corner radius Rp (mm)")
	f.Float64Var(&stampGeometry.DieRadius, "die-radius", 10, "Die radius Rd (mm)")
	f.Float64Var(&stampGeometry.WallLength, "wall-length", 28, "Wall length BC (mm)")
	f.Float64Var(&stampGeometry.LandLength, "land-length", 0, "Die land length DE (mm)")
	f.Float64Var(&stampGeometry.FlangeLength, "flange-length", 80, "Flange length EF under the holder (mm)")
	f.Float64Var(&stampGeometry.Friction, "friction", 0.1, "Friction coefficient μ on every contact")
	f.Float64Var(&stampWrapDegrees, "wrap", 90, "Wrap angle from the pole to the wall (degrees)")
	f.Float64VarP(&stampThickness, "thickness", "t", 0.8, "Initial sheet thickness (mm)")
	f.Float64Var(&stampPoleStrain, "pole-strain", 0.03, "Imposed strain at the pole O")
	f.BoolVar(&stampPlaneStrain, "plane-strain", false, "Scale the law to the plane-strain flow stress (2/√3)")
	f.BoolVar(&stampShowDiagram, "diagram", false, "Show ASCII strain and tension diagrams")
	f.IntVar(&stampSamples, "samples", 20, "Profile samples per arc")
	f.StringVarP(&stampExportFile, "output", "o", "", "Export path profile to file (png, svg, pdf)")
}

func runStamp(cmd *cobra.Command, args []string) error {
	mat, err := stampMaterial.resolve()
	if err != nil {
		return err
	}
	law := mat.Hardening()
	if stampPlaneStrain {
		if law, err = hardening.PlaneStrain(law); err != nil {
			return err
		}
	}
	geom := stampGeometry
	geom.PunchWrap = stampWrapDegrees * math.Pi / 180

	res, err := forming.Stamp(forming.Stamping{
		Geometry:   geom,
		Law:        law,
		Thickness:  stampThickness,
		PoleStrain: stampPoleStrain,
	})
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("stamping path solved", "law", law, "segments", len(res.Path.Segments))

	out := cmd.OutOrStdout()
	printHeader(out, "CHANNEL STAMPING")

	printSection(out, "MATERIAL")
	w := newTable(out)
	fmt.Fprintf(w, "  Material:\t%s\n", mat.Name)
	fmt.Fprintf(w, "  Hardening:\t%s\n", law)
	fmt.Fprintf(w, "  Plane strain:\t%s\n", yesNo(stampPlaneStrain, "yes", "no"))
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "SEGMENTS")
	w = newTable(out)
	fmt.Fprintf(w, "  Segment\tKind\tLength (mm)\tWrap (°)\tPressure (MPa)\n")
	fmt.Fprintf(w, "  ───────\t────\t───────────\t────────\t──────────────\n")
	for _, s := range res.Path.Segments {
		fmt.Fprintf(w, "  %s%s\t%s\t%.2f\t%.2f\t%.4f → %.4f\n",
			s.From, s.To, s.Kind, s.Len(), s.Wrap*180/math.Pi, s.PressureStart, s.PressureEnd)
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "POINTS")
	nodes := res.Path.Nodes()
	w = newTable(out)
	fmt.Fprintf(w, "  Point\ts (mm)\tTension (N/mm)\tStrain ε1\tThickness (mm)\n")
	fmt.Fprintf(w, "  ─────\t──────\t──────────────\t─────────\t──────────────\n")
	for _, n := range nodes {
		fmt.Fprintf(w, "  %s\t%.2f\t%.3f\t%.5f\t%.4f\n", n.Name, n.Position, n.Tension, n.Strain, n.Thickness)
	}
	w.Flush()
	fmt.Fprintln(out)

	peak := res.Path.MaxStrain()
	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Punch force     = %.2f N/mm", res.PunchForce),
		fmt.Sprintf("Holder force    = %.2f N/mm", res.HolderForce),
		fmt.Sprintf("Max strain      = %.5f at %s", peak.Strain, peak.Name),
	}))
	fmt.Fprintln(out)

	if stampShowDiagram || stampExportFile != "" {
		prof, err := res.Path.Profile(stampSamples)
		if err != nil {
			return err
		}
		if stampShowDiagram {
			fmt.Fprintln(out, diagram.DrawPathDiagram(nodes))
			s, t := make([]float64, len(prof)), make([]float64, len(prof))
			for i, q := range prof {
				s[i], t[i] = q.S, q.Tension
			}
			fmt.Fprintln(out, diagram.Chart("tension (N/mm) along the path, per sample", diagram.Series{Name: "T", X: s, Y: t}))
		}
		if stampExportFile != "" {
			if err := diagram.ExportProfile(stampExportFile, prof, nodes); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Fprintf(out, "Diagram exported to: %s\n", stampExportFile)
		}
	}
	return nil
}
