package geom

// Segment is a bound straight line between two points.
type Segment struct {
	Start Vec
	End   Vec
}

// NewCentered returns a segment of the given length along dir, centered at c.
func NewCentered(c, dir Vec, length float64) Segment {
	half := dir.Normalize().MulScalar(0.5 * length)
	return Segment{Start: c.Sub(half), End: c.Add(half)}
}

// Length returns the distance between the end points.
func (s Segment) Length() float64 {
	return s.End.Sub(s.Start).Length()
}

// IsDegenerate reports whether the segment has no usable length.
func (s Segment) IsDegenerate() bool {
	return s.Length() < Tolerance
}

// Direction returns the unit vector from Start to End.
// A degenerate segment has the zero direction.
func (s Segment) Direction() Vec {
	d, _ := Unit(s.End.Sub(s.Start))
	return d
}

// Midpoint returns the point halfway between the end points.
func (s Segment) Midpoint() Vec {
	return s.Start.Add(s.End).MulScalar(0.5)
}

// Reversed returns the segment running the other way.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Extended lengthens the segment by d past each end point.
func (s Segment) Extended(d float64) Segment {
	dir := s.Direction().MulScalar(d)
	return Segment{Start: s.Start.Sub(dir), End: s.End.Add(dir)}
}

// Translated moves both end points by v.
func (s Segment) Translated(v Vec) Segment {
	return Segment{Start: s.Start.Add(v), End: s.End.Add(v)}
}

// Polyline returns the two end points as a polyline.
func (s Segment) Polyline() Polyline {
	return Polyline{s.Start, s.End}
}

// Polyline is an open chain of points joined by straight segments.
type Polyline []Vec

// Translated returns a copy of the polyline moved by v.
func (p Polyline) Translated(v Vec) Polyline {
	out := make(Polyline, len(p))
	for i, pt := range p {
		out[i] = pt.Add(v)
	}
	return out
}

// Segments returns the straight pieces of the polyline.
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		segs = append(segs, Segment{Start: p[i], End: p[i+1]})
	}
	return segs
}

// Length returns the total length of all pieces.
func (p Polyline) Length() float64 {
	var total float64
	for _, s := range p.Segments() {
		total += s.Length()
	}
	return total
}
