package diagram

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/tensor"
	"github.com/alexiusacademia/gosheet/internal/yield"
)

var palette = []color.Color{
	color.RGBA{R: 0, G: 0, B: 139, A: 255},
	color.RGBA{R: 200, G: 0, B: 0, A: 255},
	color.RGBA{R: 0, G: 100, B: 0, A: 255},
	color.RGBA{R: 255, G: 140, B: 0, A: 255},
	color.RGBA{R: 139, G: 69, B: 19, A: 255},
}

// LocusSeries converts a traced yield locus into a closed series.
func LocusSeries(name string, pts []yield.Point) Series {
	s := Series{Name: name, X: make([]float64, 0, len(pts)+1), Y: make([]float64, 0, len(pts)+1)}
	for _, p := range pts {
		s.X = append(s.X, p.S1)
		s.Y = append(s.Y, p.S2)
	}
	if len(pts) > 0 {
		s.X = append(s.X, pts[0].S1)
		s.Y = append(s.Y, pts[0].S2)
	}
	return s
}

// StrainSeries converts forming-limit strains into an (ε2, ε1) series.
func StrainSeries(name string, strains []tensor.Strain) Series {
	s := Series{Name: name, X: make([]float64, len(strains)), Y: make([]float64, len(strains))}
	for i, e := range strains {
		s.X[i], s.Y[i] = e.E2, e.E1
	}
	return s
}

// ExportCurves exports line plots of the series with a legend.
func ExportCurves(filename, title, xLabel, yLabel string, series []Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if err := addSeries(p, series); err != nil {
		return err
	}
	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportLocus exports yield loci in the (σ1, σ2) plane with equal axes.
func ExportLocus(filename string, loci []Series) error {
	p := plot.New()
	p.Title.Text = "Yield Locus"
	p.X.Label.Text = "σ1 (MPa)"
	p.Y.Label.Text = "σ2 (MPa)"
	p.Add(plotter.NewGrid())

	if err := addSeries(p, loci); err != nil {
		return err
	}
	square(p)
	return save(p, 7*vg.Inch, 7*vg.Inch, filename)
}

// ExportFLC exports forming-limit curves in the (ε2, ε1) plane.
func ExportFLC(filename string, curves []Series) error {
	return ExportCurves(filename, "Forming Limit Diagram", "ε2", "ε1", curves)
}

// ExportMohr exports the three Mohr circles of a principal stress state.
func ExportMohr(filename string, pr tensor.Principal) error {
	p := plot.New()
	p.Title.Text = "Mohr Circles"
	p.X.Label.Text = "σ (MPa)"
	p.Y.Label.Text = "τ (MPa)"
	p.Add(plotter.NewGrid())

	names := []string{"σ1–σ2", "σ2–σ3", "σ1–σ3"}
	for i, c := range pr.MohrCircles() {
		pts := make(plotter.XYs, 121)
		for k := range pts {
			a := 2 * math.Pi * float64(k) / float64(len(pts)-1)
			pts[k] = plotter.XY{X: c.Center + c.Radius*math.Cos(a), Y: c.Radius * math.Sin(a)}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = palette[i%len(palette)]
		p.Add(l)
		p.Legend.Add(names[i], l)
	}

	principal, err := plotter.NewScatter(plotter.XYs{{X: pr.S1}, {X: pr.S2}, {X: pr.S3}})
	if err != nil {
		return err
	}
	principal.GlyphStyle.Color = color.Black
	principal.GlyphStyle.Radius = vg.Points(3)
	principal.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(principal)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: pr.S1}, {X: pr.S2}, {X: pr.S3}},
		Labels: []string{"σ1", "σ2", "σ3"},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	square(p)
	return save(p, 7*vg.Inch, 7*vg.Inch, filename)
}

// ExportProfile exports tension, strain and contact pressure along a forming
// path as three stacked plots sharing the abscissa.
func ExportProfile(filename string, prof []forming.ProfilePoint, nodes []forming.Node) error {
	rows := []struct {
		label string
		value func(forming.ProfilePoint) float64
	}{
		{"T (N/mm)", func(q forming.ProfilePoint) float64 { return q.Tension }},
		{"ε1", func(q forming.ProfilePoint) float64 { return q.Strain }},
		{"p (MPa)", func(q forming.ProfilePoint) float64 { return q.Pressure }},
	}

	plots := make([][]*plot.Plot, len(rows))
	for i, r := range rows {
		p := plot.New()
		p.Y.Label.Text = r.label
		p.Add(plotter.NewGrid())
		if i == 0 {
			p.Title.Text = "Forming Path Profile"
		}
		if i == len(rows)-1 {
			p.X.Label.Text = "s (mm)"
		}

		pts := make(plotter.XYs, len(prof))
		for k, q := range prof {
			pts[k] = plotter.XY{X: q.S, Y: r.value(q)}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = palette[i%len(palette)]
		p.Add(l)

		if err := markNodes(p, nodes); err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}
	return saveTiles(plots, 8*vg.Inch, 9*vg.Inch, filename)
}

// ExportMomentCurvature exports the bending moment against curvature.
func ExportMomentCurvature(filename string, curvature, moment []float64, plastic float64) error {
	s := []Series{{Name: "M(1/ρ)", X: curvature, Y: moment}}
	if plastic > 0 && len(curvature) > 1 {
		s = append(s, Series{
			Name: "Mp",
			X:    []float64{curvature[0], curvature[len(curvature)-1]},
			Y:    []float64{plastic, plastic},
		})
	}
	return ExportCurves(filename, "Moment–Curvature", "1/ρ (1/mm)", "M (N·mm/mm)", s)
}

func addSeries(p *plot.Plot, series []Series) error {
	for i, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for k := range s.X {
			pts[k] = plotter.XY{X: s.X[k], Y: s.Y[k]}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = palette[i%len(palette)]
		if i > 0 {
			l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		p.Add(l)
		if s.Name != "" {
			p.Legend.Add(s.Name, l)
		}
	}
	p.Legend.Top = true
	return nil
}

// markNodes draws a dashed vertical line at each named node.
func markNodes(p *plot.Plot, nodes []forming.Node) error {
	for _, n := range nodes {
		l, err := plotter.NewLine(plotter.XYs{{X: n.Position, Y: p.Y.Min}, {X: n.Position, Y: p.Y.Max}})
		if err != nil {
			return err
		}
		l.LineStyle.Color = color.Gray{Y: 128}
		l.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(l)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: n.Position, Y: p.Y.Max}},
			Labels: []string{n.Name},
		})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}
	return nil
}

// square gives both axes the same range so circles stay round.
func square(p *plot.Plot) {
	lo := math.Min(p.X.Min, p.Y.Min)
	hi := math.Max(p.X.Max, p.Y.Max)
	pad := 0.05 * (hi - lo)
	p.X.Min, p.X.Max = lo-pad, hi+pad
	p.Y.Min, p.Y.Max = lo-pad, hi+pad
}

// save writes p in the format given by the file extension. Unknown
// extensions get ".png" appended.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	filename, err := prepare(filename)
	if err != nil {
		return err
	}
	return p.Save(width, height, filename)
}

// saveTiles aligns a grid of plots on one canvas and writes it in the format
// given by the file extension.
func saveTiles(plots [][]*plot.Plot, width, height vg.Length, filename string) error {
	filename, err := prepare(filename)
	if err != nil {
		return err
	}

	var c interface {
		vg.CanvasSizer
		io.WriterTo
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg":
		c = vgsvg.New(width, height)
	case ".pdf":
		c = vgpdf.New(width, height)
	default:
		c = vgimg.PngCanvas{Canvas: vgimg.New(width, height)}
	}

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func prepare(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return filename, nil
}
