package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gosheet/internal/forming"
	"github.com/alexiusacademia/gosheet/internal/tensor"
)

// Series is a named curve. X holds the abscissa of each sample of Y.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// DrawTensor draws a stress tensor as a bracketed 3×3 matrix.
func DrawTensor(title string, s tensor.Stress) string {
	var sb strings.Builder
	rows := [3][3]float64{
		{s.X, s.XY, s.XZ},
		{s.XY, s.Y, s.YZ},
		{s.XZ, s.YZ, s.Z},
	}
	cells := make([]string, 0, 9)
	w := 0
	for _, r := range rows {
		for _, v := range r {
			c := fmt.Sprintf("%.3f", v)
			cells = append(cells, c)
			w = max(w, len(c))
		}
	}
	inner := 3*w + 4

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(title))))
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat(" ", inner)))
	for i := 0; i < 3; i++ {
		sb.WriteString(fmt.Sprintf("  │ %*s %*s %*s │\n", w, cells[3*i], w, cells[3*i+1], w, cells[3*i+2]))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat(" ", inner)))
	return sb.String()
}

// DrawPathDiagram draws the strain at every node of a forming path as a
// horizontal bar, marking the most strained node.
func DrawPathDiagram(nodes []forming.Node) string {
	var sb strings.Builder
	width := 40

	sb.WriteString("\n")
	sb.WriteString("  STRAIN ALONG THE PATH\n")
	sb.WriteString("  ─────────────────────\n\n")

	if len(nodes) == 0 {
		return sb.String()
	}
	peak := 0
	for i, n := range nodes {
		if n.Strain > nodes[peak].Strain {
			peak = i
		}
	}
	scale := 0.0
	if nodes[peak].Strain > 0 {
		scale = float64(width) / nodes[peak].Strain
	}

	for i, n := range nodes {
		barLen := int(n.Strain * scale)
		mark := ""
		if i == peak && n.Strain > 0 {
			mark = " ◄ max"
		}
		sb.WriteString(fmt.Sprintf("  %-3s │%-*s ε=%.4f  T=%.2f N/mm%s\n",
			n.Name, width, strings.Repeat("█", barLen), n.Strain, n.Tension, mark))
	}
	sb.WriteString(fmt.Sprintf("      └%s\n", strings.Repeat("─", width)))
	return sb.String()
}

// DrawSection draws the fibre stresses through the thickness of a bent
// sheet, compression to the left of the mid plane and tension to the right.
// flow is the plane-strain yield stress used for scaling.
func DrawSection(fibres []forming.Fibre, flow float64) string {
	var sb strings.Builder
	half := 20

	sb.WriteString("\n")
	sb.WriteString("  STRESS THROUGH THE THICKNESS\n")
	sb.WriteString("  ────────────────────────────\n\n")

	if !(flow > 0) {
		return sb.String()
	}
	scale := float64(half) / flow
	// Outer fibre on top.
	for i := len(fibres) - 1; i >= 0; i-- {
		f := fibres[i]
		n := min(half, int(math.Abs(f.Stress)*scale+0.5))
		left, right := strings.Repeat(" ", half), strings.Repeat(" ", half)
		if f.Stress < 0 {
			left = strings.Repeat(" ", half-n) + strings.Repeat("░", n)
		} else {
			right = strings.Repeat("█", n) + strings.Repeat(" ", half-n)
		}
		yield := ""
		if math.Abs(f.Stress) >= flow*(1-1e-12) {
			yield = " (plastic)"
		}
		sb.WriteString(fmt.Sprintf("  %+7.3f %s│%s %+8.2f MPa%s\n", f.Y, left, right, f.Stress, yield))
	}
	sb.WriteString(fmt.Sprintf("          %s┴%s\n", strings.Repeat("─", half), strings.Repeat("─", half)))
	sb.WriteString(fmt.Sprintf("          -S = %-*.1f S = %.1f\n", 2*half-6, -flow, flow))
	return sb.String()
}

// chartColors are cycled over the series of a chart; legends need one
// colour per series.
var chartColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Magenta,
}

// Chart plots one or more series with asciigraph. The series should share
// a uniform abscissa; only the first series' range is shown in the caption.
func Chart(caption string, series ...Series) string {
	data := make([][]float64, 0, len(series))
	legends := make([]string, 0, len(series))
	for _, s := range series {
		if len(s.Y) == 0 {
			continue
		}
		data = append(data, s.Y)
		legends = append(legends, s.Name)
	}
	if len(data) == 0 {
		return ""
	}
	if x := series[0].X; len(x) > 1 {
		caption = fmt.Sprintf("%s  (x: %.3g … %.3g)", caption, x[0], x[len(x)-1])
	}
	opts := []asciigraph.Option{
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	}
	if len(data) > 1 {
		colors := make([]asciigraph.AnsiColor, len(legends))
		for i := range colors {
			colors[i] = chartColors[i%len(chartColors)]
		}
		opts = append(opts, asciigraph.SeriesColors(colors...), asciigraph.SeriesLegends(legends...))
	}
	return asciigraph.PlotMany(data, opts...) + "\n"
}

// DrawSummaryBox creates a summary box for results. Widths are counted in
// runes so lines with Greek symbols stay aligned.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
