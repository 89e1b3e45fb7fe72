package diagram

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/hardening"
	"github.com/alexiusacademia/gosheet/internal/necking"
	"github.com/alexiusacademia/gosheet/internal/sweep"
	"github.com/alexiusacademia/gosheet/internal/tensor"
	"github.com/alexiusacademia/gosheet/internal/yield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawTensor(t *testing.T) {
	out := DrawTensor("STRESS", tensor.Stress{X: 100, Y: -50.5, XY: 12.25})
	assert.Contains(t, out, "STRESS")
	assert.Contains(t, out, "100.000")
	assert.Contains(t, out, "-50.500")
	assert.Equal(t, 2, strings.Count(out, "12.250"))
}

func TestDrawSummaryBoxAlignsUnicode(t *testing.T) {
	input := []string{"σ1 = 10 MPa", "p = 5.211 MPa"}
	out := DrawSummaryBox("RESULTS", input)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top border, title, separator, body, bottom border
	require.Len(t, lines, len(input)+4)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func stampedNodes(t *testing.T) ([]forming.Node, []forming.ProfilePoint) {
	t.Helper()
	res, err := forming.Stamp(forming.Stamping{
		Geometry: forming.StampingGeometry{
			HalfWidth: 330, FaceRadius: 2800, PunchRadius: 10, DieRadius: 10,
			WallLength: 28, FlangeLength: 80, Friction: 0.1,
		},
		Law:        hardening.Hollomon{K: 750, N: 0.23},
		Thickness:  0.8,
		PoleStrain: 0.03,
	})
	require.NoError(t, err)
	prof, err := res.Path.Profile(10)
	require.NoError(t, err)
	return res.Path.Nodes(), prof
}

func TestDrawPathDiagram(t *testing.T) {
	nodes, _ := stampedNodes(t)
	out := DrawPathDiagram(nodes)
	assert.Equal(t, 1, strings.Count(out, "◄ max"))
	for _, n := range nodes {
		assert.Contains(t, out, "  "+n.Name+" ")
	}
	assert.NotPanics(t, func() { DrawPathDiagram(nil) })
}

func TestDrawSection(t *testing.T) {
	b := forming.Bending{Thickness: 1.2, E: 210e3, Nu: 0.3, Y: 100}
	fibres, err := b.Section(b.ElasticRadius()/2, 9)
	require.NoError(t, err)
	out := DrawSection(fibres, b.FlowStress())
	assert.Contains(t, out, "(plastic)")
	assert.Contains(t, out, "░")
	assert.Contains(t, out, "█")
}

func TestChart(t *testing.T) {
	betas := sweep.Linspace(-0.5, 0, 11)
	hill, err := necking.Curve(context.Background(), necking.HillLocalized{N: 0.2}, betas)
	require.NoError(t, err)
	swift, err := necking.Curve(context.Background(), necking.SwiftDiffuse{N: 0.2}, betas)
	require.NoError(t, err)

	e1 := func(s []tensor.Strain) []float64 {
		out := make([]float64, len(s))
		for i, e := range s {
			out[i] = e.E1
		}
		return out
	}
	out := Chart("ε1 against β",
		Series{Name: "hill", X: betas, Y: e1(hill)},
		Series{Name: "swift", X: betas, Y: e1(swift)},
	)
	assert.Contains(t, out, "ε1 against β")
	assert.Contains(t, out, "hill")
	assert.Contains(t, out, "swift")

	three := Chart("three",
		Series{Name: "a", Y: []float64{1, 2, 3}},
		Series{Name: "b", Y: []float64{3, 2, 1}},
		Series{Name: "c", Y: []float64{2, 2, 2}},
	)
	assert.Contains(t, three, "three")

	assert.Empty(t, Chart("nothing"))
}

func TestSeriesConversions(t *testing.T) {
	pts, err := yield.Locus(context.Background(), yield.Mises{}, 250, 24)
	require.NoError(t, err)
	s := LocusSeries("mises", pts)
	require.Len(t, s.X, 25)
	assert.Equal(t, s.X[0], s.X[24])
	assert.Equal(t, s.Y[0], s.Y[24])

	fs := StrainSeries("flc", []tensor.Strain{{E1: 0.3, E2: -0.1}, {E1: 0.2, E2: 0}})
	assert.Equal(t, []float64{-0.1, 0}, fs.X)
	assert.Equal(t, []float64{0.3, 0.2}, fs.Y)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	pts, err := yield.Locus(context.Background(), yield.Hosford{R0: 1.8, R90: 2.2, A: 6}, 200, 60)
	require.NoError(t, err)
	pr, err := tensor.PrincipalStresses(tensor.Stress{X: 120, Y: 40, XY: 30})
	require.NoError(t, err)
	nodes, prof := stampedNodes(t)

	tests := []struct {
		name string
		file string
		fn   func(string) error
	}{
		{"locus png", "locus.png", func(f string) error {
			return ExportLocus(f, []Series{LocusSeries("hosford", pts)})
		}},
		{"flc svg", "flc.svg", func(f string) error {
			return ExportFLC(f, []Series{StrainSeries("hill", []tensor.Strain{{E1: 0.4, E2: -0.2}, {E1: 0.2, E2: 0}})})
		}},
		{"mohr pdf", "out/mohr.pdf", func(f string) error { return ExportMohr(f, pr) }},
		{"profile png", "profile.png", func(f string) error { return ExportProfile(f, prof, nodes) }},
		{"profile svg", "profile.svg", func(f string) error { return ExportProfile(f, prof, nodes) }},
		{"moment", "moment.png", func(f string) error {
			return ExportMomentCurvature(f, []float64{0, 0.001, 0.002}, []float64{0, 100, 150}, 160)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, tt.fn(path))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestExportAppendsPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.txt")
	require.NoError(t, ExportCurves(path, "t", "x", "y", []Series{{X: []float64{0, 1}, Y: []float64{0, 1}}}))
	_, err := os.Stat(path + ".png")
	assert.NoError(t, err)

	err = ExportCurves(path, "t", "x", "y", []Series{{Name: "bad", X: []float64{0}, Y: []float64{0, 1}}})
	assert.Error(t, err)
}
