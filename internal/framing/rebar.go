package framing

import (
	"fmt"

	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/geom"
)

// Kind distinguishes straight bars from U-shaped bent bars
type Kind int

const (
	Straight Kind = iota
	Bent
)

func (k Kind) String() string {
	if k == Bent {
		return "bent"
	}
	return "straight"
}

// LinearLayout is a linear replication of a bar: Count bars, Spacing apart,
// along the bar's Direction. Symmetric spreads the set both ways around
// the first bar instead of stacking it on one side.
type LinearLayout struct {
	Count     int
	Spacing   float64
	Symmetric bool
}

// Single is the layout of a bar that is not replicated.
var Single = LinearLayout{Count: 1}

// Replicated reports whether the layout produces more than one bar.
func (l LinearLayout) Replicated() bool {
	return l.Count >= 2
}

// Span returns the distance between the first and last bar of the set.
func (l LinearLayout) Span() float64 {
	if l.Count < 2 {
		return 0
	}
	return float64(l.Count-1) * l.Spacing
}

// Role names the edge or corner a bar frames, e.g. "long+".
type Role struct {
	Main string // principal curve the bar runs along: "long" or "transverse"
	Side int    // +1 or -1: which side of the opening
}

func (r Role) String() string {
	if r.Side < 0 {
		return r.Main + "-"
	}
	return r.Main + "+"
}

// RebarSpec describes one bar (or layout set) to place. It is never
// modified once Layout returns it.
type RebarSpec struct {
	Kind Kind
	Role Role
	Copy int // replica index, 0 for the base bar

	// Shape is the polyline as created, before Moves.
	Shape geom.Polyline
	// Moves are applied in order after creation.
	Moves []geom.Vec

	Bar       catalog.BarType
	Direction geom.Vec
	Layout    LinearLayout
}

// Points returns the positioned polyline of the first bar of the set.
func (s RebarSpec) Points() geom.Polyline {
	return s.Shape.Translated(s.Offset())
}

// Offset returns the sum of all moves.
func (s RebarSpec) Offset() geom.Vec {
	var total geom.Vec
	for _, m := range s.Moves {
		total = total.Add(m)
	}
	return total
}

// Instances returns the positioned polyline of every bar in the layout set.
func (s RebarSpec) Instances() []geom.Polyline {
	base := s.Points()
	if !s.Layout.Replicated() {
		return []geom.Polyline{base}
	}
	step := s.Direction.Normalize().MulScalar(s.Layout.Spacing)
	start := 0.0
	if s.Layout.Symmetric {
		start = -0.5 * float64(s.Layout.Count-1)
	}
	out := make([]geom.Polyline, 0, s.Layout.Count)
	for i := 0; i < s.Layout.Count; i++ {
		out = append(out, base.Translated(step.MulScalar(start+float64(i))))
	}
	return out
}

// BarCount returns how many physical bars the spec stands for.
func (s RebarSpec) BarCount() int {
	if s.Layout.Count < 1 {
		return 1
	}
	return s.Layout.Count
}

func (s RebarSpec) String() string {
	return fmt.Sprintf("%s %s #%d %s x%d", s.Kind, s.Role, s.Copy, s.Bar, s.BarCount())
}
