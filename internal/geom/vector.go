package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Tolerance is the length below which a vector or segment is treated as zero (mm).
const Tolerance = 1e-9

// Vec is a 3D point or direction in model coordinates (mm).
type Vec = v3.Vec

// Common axes
var (
	Zero  = Vec{}
	AxisX = Vec{X: 1}
	AxisY = Vec{Y: 1}
	AxisZ = Vec{Z: 1}
)

// V builds a vector from its components.
func V(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// IsZero reports whether v is shorter than Tolerance.
func IsZero(v Vec) bool {
	return v.Length() < Tolerance
}

// Unit returns v normalized, and false if v has no usable direction.
func Unit(v Vec) (Vec, bool) {
	if IsZero(v) {
		return Zero, false
	}
	return v.Normalize(), true
}

// RotateAbout rotates v by angle (radians, right hand rule) about axis.
func RotateAbout(v, axis Vec, angle float64) Vec {
	return sdf.Rotate3d(axis.Normalize(), angle).MulPosition(v)
}

// Perpendicular returns v rotated a quarter turn about axis.
func Perpendicular(v, axis Vec) Vec {
	return RotateAbout(v, axis, math.Pi/2)
}

// Parallel reports whether a and b point along the same line.
func Parallel(a, b Vec) bool {
	return a.Cross(b).Length() < Tolerance*math.Max(1, a.Length()*b.Length())
}

// Near reports whether two points coincide within tol.
func Near(a, b Vec, tol float64) bool {
	return a.Sub(b).Length() <= tol
}
