// Package diagram draws the framing of an opening, as text for the
// terminal or as an image through gonum/plot.
//
// Both views are plan views on the face of the host: X runs along the
// opening's long curve, Y along its transverse curve, origin at the
// opening center.
package diagram

import (
	"math"

	"github.com/alexiusacademia/holeframe/internal/framing"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/hole"
)

// Point is a 2D coordinate in the plan view (mm)
type Point struct {
	X float64
	Y float64
}

// Line is a bar projected onto the plan view
type Line struct {
	From, To Point
	Spec     int // index of the spec it was drawn from
}

// Plan holds the projected outline and bars of one framed opening
type Plan struct {
	Opening  string
	Length   float64 // along X
	Width    float64 // along Y
	Straight []Line
	Bent     []Line // top leg of every bent bar
	Min, Max Point  // bounds of everything drawn
}

type projection struct {
	origin geom.Vec
	u, v   geom.Vec
}

func (p projection) point(q geom.Vec) Point {
	d := q.Sub(p.origin)
	return Point{X: d.Dot(p.u), Y: d.Dot(p.v)}
}

// NewPlan projects the specs laid out for a frame onto its face.
func NewPlan(f *hole.Frame, specs []framing.RebarSpec) *Plan {
	long, transverse := f.LongCurve(), f.TransverseCurve()
	proj := projection{origin: f.Location(), u: long.Direction(), v: transverse.Direction()}

	pl := &Plan{
		Opening: string(f.Opening()),
		Length:  long.Length(),
		Width:   transverse.Length(),
	}
	pl.Min = Point{X: -pl.Length / 2, Y: -pl.Width / 2}
	pl.Max = Point{X: pl.Length / 2, Y: pl.Width / 2}

	for i, s := range specs {
		for _, inst := range s.Instances() {
			var ln Line
			switch s.Kind {
			case framing.Straight:
				ln = Line{From: proj.point(inst[0]), To: proj.point(inst[len(inst)-1]), Spec: i}
				pl.Straight = append(pl.Straight, ln)
			case framing.Bent:
				ln = Line{From: proj.point(inst[0]), To: proj.point(inst[1]), Spec: i}
				pl.Bent = append(pl.Bent, ln)
			}
			pl.grow(ln.From)
			pl.grow(ln.To)
		}
	}
	return pl
}

func (pl *Plan) grow(p Point) {
	pl.Min.X = math.Min(pl.Min.X, p.X)
	pl.Min.Y = math.Min(pl.Min.Y, p.Y)
	pl.Max.X = math.Max(pl.Max.X, p.X)
	pl.Max.Y = math.Max(pl.Max.Y, p.Y)
}

// Outline returns the corners of the opening, counter-clockwise from the
// bottom left, closed.
func (pl *Plan) Outline() []Point {
	hx, hy := pl.Length/2, pl.Width/2
	return []Point{{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy}, {-hx, -hy}}
}
