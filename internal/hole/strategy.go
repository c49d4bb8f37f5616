package hole

import (
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// strategy holds the floor/wall differences of frame derivation.
type strategy struct {
	normal      func(p host.Provider, hostRef host.Ref) geom.Vec
	orientation func(facing, hand geom.Vec) geom.Vec
	// location recenters the insertion point; rawWidth is the opening's
	// width parameter before canonicalization.
	location func(point, normal geom.Vec, thickness, rawWidth float64) geom.Vec
}

var strategies = map[host.Type]strategy{
	host.Floor: {
		normal: func(host.Provider, host.Ref) geom.Vec {
			return geom.AxisZ
		},
		orientation: func(facing, _ geom.Vec) geom.Vec {
			return facing
		},
		location: func(point, _ geom.Vec, _, _ float64) geom.Vec {
			return point
		},
	},
	host.Wall: {
		normal: func(p host.Provider, hostRef host.Ref) geom.Vec {
			return p.FaceNormal(hostRef)
		},
		orientation: func(_, hand geom.Vec) geom.Vec {
			return hand
		},
		// Wall openings are placed on the wall face at their sill: move to
		// mid-thickness, then up to mid-height.
		location: func(point, normal geom.Vec, thickness, rawWidth float64) geom.Vec {
			return point.
				Add(normal.MulScalar(0.5 * thickness)).
				Add(geom.AxisZ.MulScalar(0.5 * rawWidth))
		},
	},
}
