// Package framing computes the reinforcement around a rectangular opening.
//
// Each of the four edges gets a pair of straight bars (one near each face)
// running parallel to it, anchored past the opening and replicated outward
// at a fixed step. Four sets of U-shaped bent bars, one per edge, wrap the
// opening edge and tie both faces together.
//
// Layout is pure: the same frame and parameters always give the same specs.
package framing

import (
	"math"

	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/hole"
)

// countTolerance absorbs rounding in measured curve lengths when counting
// bent bars, so 900/300 is 3 and not 4.
const countTolerance = 1e-9

// Layout returns every bar spec framing the opening: long-edge straight
// bars, transverse-edge straight bars, then the four bent bar sets.
//
// Parameters are validated before any geometry is touched. A degenerate
// frame, or a host too thin for the configured covers, yields a
// GeometryError and no specs at all.
func Layout(f *hole.Frame, p Parameters) ([]RebarSpec, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	c, ok := covers[f.HostType()]
	if !ok {
		return nil, errors.Geometry("opening %s: no cover rules for %s host", f.Opening(), f.HostType())
	}
	if err := checkThickness(f, c, p); err != nil {
		return nil, err
	}

	long := f.LongCurve()
	transverse := f.TransverseCurve()

	specs := make([]RebarSpec, 0, 2*p.LongCount+2*p.TransverseCount+4)
	specs = append(specs, straightSet(f, c, "long", long, transverse, p.LongBar, p.LongAnchorage, p.LongCount, p.LongStep, p)...)
	specs = append(specs, straightSet(f, c, "transverse", transverse, long, p.TransverseBar, p.TransverseAnchorage, p.TransverseCount, p.TransverseStep, p)...)

	for _, pair := range []struct {
		name      string
		main, sub geom.Segment
	}{
		{"long", long, transverse},
		{"transverse", transverse, long},
	} {
		for _, side := range []int{+1, -1} {
			specs = append(specs, bent(f, c, pair.name, side, pair.main, pair.sub, p))
		}
	}
	return specs, nil
}

func checkThickness(f *hole.Frame, c cover, p Parameters) error {
	for _, b := range []catalog.BarType{p.LongBar, p.TransverseBar} {
		if span := c.straightSpan(p, b.Diameter, f.Thickness()); span <= 0 {
			return errors.Geometry("opening %s: host thickness %g leaves no room between %s pairs (span %g)",
				f.Opening(), f.Thickness(), b.Name, span)
		}
	}
	if h := c.bendHeight(p, p.BendBar.Diameter, f.Thickness()); h <= 0 {
		return errors.Geometry("opening %s: host thickness %g leaves no room for %s bends (height %g)",
			f.Opening(), f.Thickness(), p.BendBar.Name, h)
	}
	return nil
}

// straightSet lays out the straight bars along both sides of one principal
// curve: the two base bars, then their replicas stepped outward.
func straightSet(f *hole.Frame, c cover, name string, main, sub geom.Segment, bar catalog.BarType, anchorage float64, count int, step float64, p Parameters) []RebarSpec {
	out := make([]RebarSpec, 0, 2*count)
	var bases [2]RebarSpec
	for i, side := range []int{+1, -1} {
		bases[i] = straight(f, c, Role{Main: name, Side: side}, main, sub, bar, anchorage, p)
		out = append(out, bases[i])
	}

	for i := 1; i < count; i++ {
		for j, side := range []int{+1, -1} {
			copyDir := sub.Direction().MulScalar(float64(side) * step * float64(i))
			replica := bases[j]
			replica.Copy = i
			replica.Moves = append(append([]geom.Vec(nil), bases[j].Moves...), copyDir)
			out = append(out, replica)
		}
	}
	return out
}

// straight places the first bar running along main on the given side of
// the opening. The bar comes as a pair across the thickness.
func straight(f *hole.Frame, c cover, role Role, main, sub geom.Segment, bar catalog.BarType, anchorage float64, p Parameters) RebarSpec {
	subDir := sub.Direction().MulScalar(float64(role.Side))
	down := f.FaceNormal().Neg()
	d := bar.Diameter

	return RebarSpec{
		Kind:  Straight,
		Role:  role,
		Shape: main.Extended(anchorage).Polyline(),
		Moves: []geom.Vec{
			subDir.MulScalar(0.5*sub.Length() + p.Offset),
			down.MulScalar(c.straightOffset(p, d)),
		},
		Bar:       bar,
		Direction: down,
		Layout: LinearLayout{
			Count:   2,
			Spacing: c.straightSpan(p, d, f.Thickness()),
		},
	}
}

// bent places the set of U bars along main on the given side of the
// opening: flat on the top face, down through the thickness, flat on the
// bottom face, both legs pointing away from the opening.
func bent(f *hole.Frame, c cover, name string, side int, main, sub geom.Segment, p Parameters) RebarSpec {
	mainDir := main.Direction()
	subDir := sub.Direction().MulScalar(float64(side))
	normal := f.FaceNormal()
	d := p.BendBar.Diameter

	height := c.bendHeight(p, d, f.Thickness())
	leg := subDir.MulScalar(p.BendLength)

	p2 := main.Start
	p1 := p2.Add(leg)
	p3 := p2.Sub(normal.MulScalar(height))
	p4 := p3.Add(leg)

	mainLen := main.Length()
	n := BentCount(mainLen, p.BendStep)
	layout := Single
	if n >= 2 {
		layout = LinearLayout{Count: n, Spacing: p.BendStep}
	}

	return RebarSpec{
		Kind:  Bent,
		Role:  Role{Main: name, Side: side},
		Shape: geom.Polyline{p1, p2, p3, p4},
		Moves: []geom.Vec{
			subDir.MulScalar(0.5*sub.Length() + p.Offset - d),
			normal.Neg().MulScalar(c.bendOffset(p, d)),
			mainDir.MulScalar(CenteringOffset(mainLen, p.BendStep)),
		},
		Bar:       p.BendBar,
		Direction: mainDir,
		Layout:    layout,
	}
}

// BentCount returns the number of bent bars spread along a curve of the
// given length: ceil(length/step), at least one.
func BentCount(length, step float64) int {
	if step <= 0 {
		return 1
	}
	n := int(math.Ceil(length/step - countTolerance))
	if n < 1 {
		return 1
	}
	return n
}

// CenteringOffset is the shift along the curve that centers a bent bar set
// on the curve.
func CenteringOffset(length, step float64) float64 {
	n := BentCount(length, step)
	return (length - float64(n-1)*step) / 2
}
