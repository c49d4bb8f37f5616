// Package hole derives the geometric frame of a rectangular opening from
// the data of the element it is cut into.
//
// A Frame is built in one pass, in dependency order: host category,
// thickness, face normal, in-plane orientation, raw dimensions, canonical
// width and length, location, and finally the two center curves. Nothing
// is recomputed from a partially built frame.
package hole

import (
	"math"

	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// planeTolerance is the largest cosine between the orientation and the face
// normal that is still treated as in-plane model noise.
const planeTolerance = 1e-6

// Frame is the canonical reference frame of one opening. It is immutable
// once Derive returns it.
type Frame struct {
	opening host.Ref
	host    host.Ref
	kind    host.Type

	location    geom.Vec
	faceNormal  geom.Vec
	orientation geom.Vec
	thickness   float64

	width  float64 // min of the raw dimensions
	length float64 // max of the raw dimensions

	lengthCurve geom.Segment
	widthCurve  geom.Segment
}

// Opening returns the opening the frame was derived for.
func (f *Frame) Opening() host.Ref { return f.opening }

// Host returns the element the opening is cut into.
func (f *Frame) Host() host.Ref { return f.host }

// HostType returns the host category, Floor or Wall.
func (f *Frame) HostType() host.Type { return f.kind }

// Location returns the opening center at mid-thickness of the host.
func (f *Frame) Location() geom.Vec { return f.location }

// FaceNormal returns the unit normal of the host faces.
func (f *Frame) FaceNormal() geom.Vec { return f.faceNormal }

// Orientation returns the unit in-plane direction of the length curve.
func (f *Frame) Orientation() geom.Vec { return f.orientation }

// Thickness returns the host thickness (mm).
func (f *Frame) Thickness() float64 { return f.thickness }

// Width returns the smaller opening dimension (mm).
func (f *Frame) Width() float64 { return f.width }

// Length returns the larger opening dimension (mm).
func (f *Frame) Length() float64 { return f.length }

// LengthCurve runs along Orientation through Location and spans the
// opening's length parameter.
func (f *Frame) LengthCurve() geom.Segment { return f.lengthCurve }

// WidthCurve runs across Orientation, in the face plane, and spans the
// opening's width parameter.
func (f *Frame) WidthCurve() geom.Segment { return f.widthCurve }

// LongCurve returns the longer of the two center curves by measured length.
func (f *Frame) LongCurve() geom.Segment {
	if f.lengthCurve.Length() > f.widthCurve.Length() {
		return f.lengthCurve
	}
	return f.widthCurve
}

// TransverseCurve returns the shorter of the two center curves.
func (f *Frame) TransverseCurve() geom.Segment {
	if f.lengthCurve.Length() > f.widthCurve.Length() {
		return f.widthCurve
	}
	return f.lengthCurve
}

// Check reports a GeometryError if either center curve has collapsed.
func (f *Frame) Check() error {
	if f == nil {
		return errors.Geometry("no hole frame")
	}
	if f.lengthCurve.IsDegenerate() || f.widthCurve.IsDegenerate() {
		return errors.Geometry("opening %s has a zero-length center curve", f.opening)
	}
	if geom.IsZero(f.faceNormal) || geom.IsZero(f.orientation) {
		return errors.Geometry("opening %s has no usable orientation", f.opening)
	}
	return nil
}

// Derive builds the frame of an opening from provider data.
//
// A GeometryError is returned when the host is neither a floor nor a wall,
// the host has no thickness, either opening dimension is missing, or the
// orientation vectors cannot span the face plane.
func Derive(p host.Provider, opening host.Ref) (*Frame, error) {
	hostRef, err := p.Host(opening)
	if err != nil {
		return nil, err
	}

	kind := p.Category(hostRef)
	st, ok := strategies[kind]
	if !ok {
		return nil, errors.Geometry("opening %s: host %s is neither a floor nor a wall", opening, hostRef)
	}

	f := &Frame{opening: opening, host: hostRef, kind: kind}

	f.thickness = p.Thickness(hostRef)
	if f.thickness <= 0 {
		return nil, errors.Geometry("opening %s: host %s has no thickness", opening, hostRef)
	}

	normal, ok := geom.Unit(st.normal(p, hostRef))
	if !ok {
		return nil, errors.Geometry("opening %s: host %s has no face normal", opening, hostRef)
	}
	f.faceNormal = normal

	facing, hand := p.Axes(opening)
	orientation, ok := geom.Unit(st.orientation(facing, hand))
	if !ok || geom.Parallel(orientation, normal) {
		return nil, errors.Geometry("opening %s has no in-plane orientation", opening)
	}
	tilt := orientation.Dot(normal)
	if math.Abs(tilt) > planeTolerance {
		return nil, errors.Geometry("opening %s: orientation is tilted out of the face plane (cos %.3g)", opening, tilt)
	}
	// project out the residue so the two center curves stay perpendicular
	f.orientation = orientation.Sub(normal.MulScalar(tilt)).Normalize()

	d1, d2 := p.OpeningDimensions(opening)
	if d1 <= 0 || d2 <= 0 {
		return nil, errors.Geometry("opening %s: missing dimension (length %g, width %g)", opening, d1, d2)
	}
	f.width = math.Min(d1, d2)
	f.length = math.Max(d1, d2)

	f.location = st.location(p.InsertionPoint(opening), f.faceNormal, f.thickness, d2)

	f.lengthCurve = geom.NewCentered(f.location, f.orientation, d1)
	f.widthCurve = geom.NewCentered(f.location, geom.Perpendicular(f.orientation, f.faceNormal), d2)

	if err := f.Check(); err != nil {
		return nil, err
	}
	return f, nil
}

// DeriveAll derives the frames of every opening, stopping at the first failure.
func DeriveAll(p host.Provider, openings []host.Ref) ([]*Frame, error) {
	frames := make([]*Frame, 0, len(openings))
	for _, ref := range openings {
		f, err := Derive(p, ref)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
