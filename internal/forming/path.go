package forming

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/hardening"
)

// SegmentKind identifies how a path segment transmits tension.
type SegmentKind int

const (
	// Arc is a segment in contact with a tool radius. Tension changes by the
	// capstan factor exp(μ·Wrap) and the contact pressure is T/R.
	Arc SegmentKind = iota
	// Straight is a free span. Tension is constant and there is no contact.
	Straight
	// Flange is the portion under the blank holder. The holder force
	// B = T/(2μ) consumes the entering tension over Length.
	Flange
)

func (k SegmentKind) String() string {
	switch k {
	case Arc:
		return "arc"
	case Straight:
		return "straight"
	case Flange:
		return "flange"
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

// Segment is one part of a sheet path between two named points.
//
// Wrap is the signed contact angle of an arc in radians: positive when the
// tension grows from From to To. Length is used by straights and flanges;
// an arc's length is Radius·|Wrap|.
type Segment struct {
	From     string
	To       string
	Kind     SegmentKind
	Radius   float64
	Wrap     float64
	Length   float64
	Friction float64
}

// Len returns the length of the segment along the sheet.
func (s Segment) Len() float64 {
	if s.Kind == Arc {
		return s.Radius * math.Abs(s.Wrap)
	}
	return s.Length
}

func (s Segment) name() string { return s.From + s.To }

// Path is an ordered sequence of segments. Consecutive segments share a
// point and a flange, if present, is the last segment.
type Path []Segment

// Node is the state of the sheet at a segment boundary.
type Node struct {
	Name      string
	Position  float64
	Tension   float64
	Strain    float64
	Thickness float64
}

// SegmentState is the solved state of one segment. Pressures are the
// contact pressures just inside the segment at each end.
type SegmentState struct {
	Segment
	Start         Node
	End           Node
	PressureStart float64
	PressureEnd   float64
	HolderForce   float64
}

// PathState is the solved tension, strain and pressure along a Path.
type PathState struct {
	Law       hardening.Law
	Thickness float64
	Segments  []SegmentState
}

// Validate checks the segment data and the flange placement.
func (p Path) Validate() error {
	if len(p) == 0 {
		return errs.Domainf("path", "empty path")
	}
	for i, s := range p {
		if !(s.Friction >= 0) {
			return errs.Domainf("path", "segment %s: friction must be non-negative", s.name())
		}
		switch s.Kind {
		case Arc:
			if !(s.Radius > 0) || math.IsNaN(s.Wrap) || math.IsInf(s.Wrap, 0) {
				return errs.Domainf("path", "arc %s needs a positive radius and a finite wrap angle", s.name())
			}
		case Straight:
			if !(s.Length >= 0) {
				return errs.Domainf("path", "straight %s needs a non-negative length", s.name())
			}
		case Flange:
			if i != len(p)-1 {
				return errs.Domainf("path", "flange %s must be the last segment", s.name())
			}
			if !(s.Length > 0) || !(s.Friction > 0) {
				return errs.Domainf("path", "flange %s needs a positive length and friction", s.name())
			}
		default:
			return errs.Domainf("path", "segment %s has unknown kind %v", s.name(), s.Kind)
		}
	}
	return nil
}

// Propagate carries the tension t0Tension at the first point along the path.
// Tension is continuous at every boundary; arcs scale it by the capstan
// factor and the flange brings it to zero at the free edge. Strains follow
// from the tension through law on the stable branch, so a tension above the
// maximum the sheet can carry is reported as a DomainError.
func (p Path) Propagate(law hardening.Law, t0, t0Tension float64) (PathState, error) {
	if err := p.Validate(); err != nil {
		return PathState{}, err
	}
	if !(t0 > 0) {
		return PathState{}, errs.Domainf("path", "thickness must be positive, got %v", t0)
	}
	if !(t0Tension >= 0) || math.IsInf(t0Tension, 0) {
		return PathState{}, errs.Domainf("path", "invalid starting tension %v", t0Tension)
	}

	node := func(name string, pos, tension float64) (Node, error) {
		e, err := strainForTension(law, t0, tension)
		if err != nil {
			return Node{}, fmt.Errorf("point %s: %w", name, err)
		}
		return Node{Name: name, Position: pos, Tension: tension, Strain: e, Thickness: t0 * math.Exp(-e)}, nil
	}

	start, err := node(p[0].From, 0, t0Tension)
	if err != nil {
		return PathState{}, err
	}

	st := PathState{Law: law, Thickness: t0, Segments: make([]SegmentState, 0, len(p))}
	for _, s := range p {
		ss := SegmentState{Segment: s, Start: start}
		var tEnd float64
		switch s.Kind {
		case Arc:
			tEnd = start.Tension * math.Exp(s.Friction*s.Wrap)
			ss.PressureStart = start.Tension / s.Radius
			ss.PressureEnd = tEnd / s.Radius
		case Straight:
			tEnd = start.Tension
		case Flange:
			ss.HolderForce = start.Tension / (2 * s.Friction)
			ss.PressureStart = ss.HolderForce / s.Length
			ss.PressureEnd = ss.PressureStart
		}

		end, err := node(s.To, start.Position+s.Len(), tEnd)
		if err != nil {
			return PathState{}, err
		}
		ss.End = end
		st.Segments = append(st.Segments, ss)
		start = end
	}
	return st, nil
}

// strainForTension treats a tension below the initial flow tension of the
// sheet as elastic, with no plastic strain.
func strainForTension(law hardening.Law, t0, tension float64) (float64, error) {
	initial, err := hardening.Tension(law, t0, 0)
	if err != nil {
		return 0, err
	}
	if tension <= initial {
		return 0, nil
	}
	return hardening.StrainForTension(law, t0, tension)
}

// Nodes returns the boundary points of the path in order.
func (st PathState) Nodes() []Node {
	if len(st.Segments) == 0 {
		return nil
	}
	out := make([]Node, 0, len(st.Segments)+1)
	out = append(out, st.Segments[0].Start)
	for _, s := range st.Segments {
		out = append(out, s.End)
	}
	return out
}

// Node returns the boundary point with the given name.
func (st PathState) Node(name string) (Node, bool) {
	for _, n := range st.Nodes() {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// MaxStrain returns the largest strain along the path and where it occurs.
func (st PathState) MaxStrain() Node {
	var best Node
	for i, n := range st.Nodes() {
		if i == 0 || n.Strain > best.Strain {
			best = n
		}
	}
	return best
}

// ProfilePoint is a sample of the path state at position S.
type ProfilePoint struct {
	S        float64
	Tension  float64
	Strain   float64
	Pressure float64
}

// Profile samples tension, strain and pressure along the path with at least
// samples points per arc. Straights and flanges contribute their end points.
func (st PathState) Profile(samples int) ([]ProfilePoint, error) {
	if samples < 2 {
		samples = 2
	}
	var out []ProfilePoint
	for _, s := range st.Segments {
		switch s.Kind {
		case Arc:
			for i := range samples {
				f := float64(i) / float64(samples-1)
				tension := s.Start.Tension * math.Exp(s.Friction*s.Wrap*f)
				e, err := strainForTension(st.Law, st.Thickness, tension)
				if err != nil {
					return nil, fmt.Errorf("segment %s: %w", s.name(), err)
				}
				out = append(out, ProfilePoint{
					S:        s.Start.Position + f*s.Len(),
					Tension:  tension,
					Strain:   e,
					Pressure: tension / s.Radius,
				})
			}
		case Straight:
			out = append(out,
				ProfilePoint{S: s.Start.Position, Tension: s.Start.Tension, Strain: s.Start.Strain},
				ProfilePoint{S: s.End.Position, Tension: s.End.Tension, Strain: s.End.Strain},
			)
		case Flange:
			out = append(out,
				ProfilePoint{S: s.Start.Position, Tension: s.Start.Tension, Strain: s.Start.Strain, Pressure: s.PressureStart},
				ProfilePoint{S: s.End.Position, Tension: s.End.Tension, Strain: s.End.Strain, Pressure: s.PressureEnd},
			)
		}
	}
	return out, nil
}

// StampingGeometry is the half section of a channel stamped by a punch with
// a large face radius and corner radius, drawn over a die radius from a
// blank held by a blank holder.
type StampingGeometry struct {
	HalfWidth    float64 // a, punch half width
	FaceRadius   float64 // Rf
	PunchRadius  float64 // Rp
	DieRadius    float64 // Rd
	WallLength   float64 // BC
	LandLength   float64 // DE
	FlangeLength float64 // EF
	Friction     float64 // μ on every contact
	PunchWrap    float64 // wrap from pole to wall OB, π/2 when zero
}

// NewStampingPath builds the path O-A-B-C-D-E-F of the channel: the punch
// face OA, the punch corner AB, the wall BC, the die radius CD (tension
// falling towards the die), the die land DE and the flange EF.
func NewStampingPath(g StampingGeometry) (Path, error) {
	wrap := g.wrap()
	switch {
	case !(g.FaceRadius > 0) || !(g.PunchRadius > 0) || !(g.DieRadius > 0):
		return nil, errs.Domainf("stamping", "tool radii must be positive")
	case !(g.HalfWidth > g.PunchRadius):
		return nil, errs.Domainf("stamping", "half width %v must exceed the punch radius %v", g.HalfWidth, g.PunchRadius)
	}
	sin := (g.HalfWidth - g.PunchRadius) / g.FaceRadius
	if sin > 1 {
		return nil, errs.Domainf("stamping", "face radius %v too small for half width %v", g.FaceRadius, g.HalfWidth)
	}
	face := math.Asin(sin)
	if face >= wrap {
		return nil, errs.Domainf("stamping", "face angle %.4g exceeds the punch wrap %.4g", face, wrap)
	}

	mu := g.Friction
	p := Path{
		{From: "O", To: "A", Kind: Arc, Radius: g.FaceRadius, Wrap: face, Friction: mu},
		{From: "A", To: "B", Kind: Arc, Radius: g.PunchRadius, Wrap: wrap - face, Friction: mu},
		{From: "B", To: "C", Kind: Straight, Length: g.WallLength},
		{From: "C", To: "D", Kind: Arc, Radius: g.DieRadius, Wrap: -wrap, Friction: mu},
		{From: "D", To: "E", Kind: Straight, Length: g.LandLength},
		{From: "E", To: "F", Kind: Flange, Length: g.FlangeLength, Friction: mu},
	}
	return p, p.Validate()
}

// Stamping is a channel stamping operation with the strain at the pole of
// the punch imposed.
type Stamping struct {
	Geometry   StampingGeometry
	Law        hardening.Law
	Thickness  float64
	PoleStrain float64
}

// StampingResult holds the solved path and the forming loads.
type StampingResult struct {
	Path        PathState
	PunchForce  float64
	HolderForce float64
}

// Stamp solves the stamping path from the pole tension implied by the pole
// strain and returns the punch force per unit width 2·T_B·sin(θ_OB).
func Stamp(s Stamping) (StampingResult, error) {
	path, err := NewStampingPath(s.Geometry)
	if err != nil {
		return StampingResult{}, err
	}
	if s.Law == nil {
		return StampingResult{}, errs.Domainf("stamping", "missing hardening law")
	}
	tO, err := hardening.Tension(s.Law, s.Thickness, s.PoleStrain)
	if err != nil {
		return StampingResult{}, err
	}
	st, err := path.Propagate(s.Law, s.Thickness, tO)
	if err != nil {
		return StampingResult{}, fmt.Errorf("stamping: %w", err)
	}
	return StampingResult{
		Path:        st,
		PunchForce:  PunchForce(st, "B", s.Geometry.wrap()),
		HolderForce: st.Segments[len(st.Segments)-1].HolderForce,
	}, nil
}

func (g StampingGeometry) wrap() float64 {
	if g.PunchWrap == 0 {
		return math.Pi / 2
	}
	return g.PunchWrap
}

// PunchForce returns 2·T·sin(θ), the vertical force per unit width of the
// two wall tensions at point at leaving the punch with wrap θ.
func PunchForce(st PathState, at string, wrap float64) float64 {
	n, ok := st.Node(at)
	if !ok {
		return 0
	}
	return 2 * n.Tension * math.Sin(wrap)
}
